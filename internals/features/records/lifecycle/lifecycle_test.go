// file: internals/features/records/lifecycle/lifecycle_test.go
package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kyaungku_backend/internals/features/records/lifecycle"
	smodel "kyaungku_backend/internals/features/records/students/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&smodel.StudentModel{}))
	return db
}

func seedStudent(t *testing.T, db *gorm.DB) *smodel.StudentModel {
	t.Helper()
	m := smodel.StudentModel{
		StudentPersonalSlug: "p-1",
		StudentName:         "Aung Aung",
		StudentNumber:       "STU-001",
		StudentSchoolName:   "No.1 BEHS",
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func TestHandleAction_StatusChange(t *testing.T) {
	db := openTestDB(t)
	m := seedStudent(t, db)

	require.NoError(t, lifecycle.HandleAction(db, m, smodel.StudentLifecycle, "graduated"))

	var stored smodel.StudentModel
	require.NoError(t, db.First(&stored, m.StudentID).Error)
	require.Equal(t, smodel.StudentGraduated, stored.StudentStatus)
	require.False(t, stored.StudentDeletedAt.Valid)
}

func TestHandleAction_DeleteThenRestore(t *testing.T) {
	db := openTestDB(t)
	m := seedStudent(t, db)

	require.NoError(t, lifecycle.HandleAction(db, m, smodel.StudentLifecycle, "delete"))

	// Hidden from scoped reads, status forced to the delete status.
	var live smodel.StudentModel
	err := db.Where("student_slug = ?", m.StudentSlug).First(&live).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var trashed smodel.StudentModel
	require.NoError(t, db.Unscoped().Where("student_slug = ?", m.StudentSlug).First(&trashed).Error)
	require.Equal(t, smodel.StudentInactive, trashed.StudentStatus)
	require.True(t, trashed.StudentDeletedAt.Valid)

	// Restore clears the marker and resets to the default status.
	require.NoError(t, lifecycle.HandleAction(db, &trashed, smodel.StudentLifecycle, "restore"))

	var restored smodel.StudentModel
	require.NoError(t, db.Where("student_slug = ?", m.StudentSlug).First(&restored).Error)
	require.Equal(t, smodel.StudentEnrolled, restored.StudentStatus)
	require.False(t, restored.StudentDeletedAt.Valid)
}

func TestHandleAction_RestoreOnLiveRecordRejected(t *testing.T) {
	db := openTestDB(t)
	m := seedStudent(t, db)

	err := lifecycle.HandleAction(db, m, smodel.StudentLifecycle, "restore")
	require.ErrorIs(t, err, lifecycle.ErrNotDeleted)
}

func TestHandleAction_UnknownActionRejected(t *testing.T) {
	db := openTestDB(t)
	m := seedStudent(t, db)

	err := lifecycle.HandleAction(db, m, smodel.StudentLifecycle, "promote")
	require.ErrorIs(t, err, lifecycle.ErrInvalidAction)
}
