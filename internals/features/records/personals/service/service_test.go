// file: internals/features/records/personals/service/service_test.go
package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	emodel "kyaungku_backend/internals/features/records/employees/model"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	"kyaungku_backend/internals/features/records/personals/service"
	smodel "kyaungku_backend/internals/features/records/students/model"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
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

	require.NoError(t, db.AutoMigrate(
		&pmodel.PersonalModel{},
		&pmodel.PersonalUpdateModel{},
		&smodel.StudentModel{},
		&smodel.GuardianModel{},
		&tmodel.TeacherModel{},
		&emodel.EmployeeModel{},
	))
	return db
}

func baseFields() service.PersonalFields {
	return service.PersonalFields{
		FullName:     "Aung Aung",
		BirthDate:    "2008-05-14",
		Gender:       pmodel.GenderMale,
		RegionCode:   "12",
		TownshipCode: "MaYaKa",
		Citizenship:  "N",
		SerialNumber: "123456",
	}
}

func TestResolveOrCreatePersonal_DedupByCompositeKey(t *testing.T) {
	db := openTestDB(t)

	p1, isNew, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	require.True(t, isNew)
	require.Len(t, p1.PersonalSlug, 36)

	// Same key, different non-key fields: reused, nothing written.
	f := baseFields()
	f.FullName = "Aung Aung Jr."
	p2, isNew, err := service.ResolveOrCreatePersonal(db, f)
	require.NoError(t, err)
	require.False(t, isNew)
	require.Equal(t, p1.PersonalSlug, p2.PersonalSlug)
	require.Equal(t, "Aung Aung", p2.PersonalFullName)

	var count int64
	require.NoError(t, db.Model(&pmodel.PersonalModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// Different serial number is a different person.
	f2 := baseFields()
	f2.SerialNumber = "999999"
	p3, isNew, err := service.ResolveOrCreatePersonal(db, f2)
	require.NoError(t, err)
	require.True(t, isNew)
	require.NotEqual(t, p1.PersonalSlug, p3.PersonalSlug)
}

func TestEnsureUnclaimed(t *testing.T) {
	db := openTestDB(t)

	p, _, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	require.NoError(t, service.EnsureUnclaimed(db, p.PersonalSlug))

	student := smodel.StudentModel{
		StudentPersonalSlug: p.PersonalSlug,
		StudentName:         p.PersonalFullName,
		StudentNumber:       "STU-001",
		StudentSchoolName:   "No.1 BEHS",
	}
	require.NoError(t, db.Create(&student).Error)

	err = service.EnsureUnclaimed(db, p.PersonalSlug)
	require.ErrorIs(t, err, service.ErrIdentityClaimed)
}

func TestApplyPersonalEdit_NoOpWritesNothing(t *testing.T) {
	db := openTestDB(t)

	p, _, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	target, err := service.NewUpdateTarget(pmodel.TargetStudent, "s-000000000000000000000000000000001")
	require.NoError(t, err)

	changed, err := service.ApplyPersonalEdit(db, p, target, baseFields())
	require.NoError(t, err)
	require.False(t, changed)

	var count int64
	require.NoError(t, db.Model(&pmodel.PersonalUpdateModel{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestApplyPersonalEdit_ChangeAppendsOneSnapshot(t *testing.T) {
	db := openTestDB(t)

	p, _, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	target, err := service.NewUpdateTarget(pmodel.TargetStudent, "stu-1")
	require.NoError(t, err)

	f := baseFields()
	f.FullName = "Aung Aung Jr."
	changed, err := service.ApplyPersonalEdit(db, p, target, f)
	require.NoError(t, err)
	require.True(t, changed)

	var count int64
	require.NoError(t, db.Model(&pmodel.PersonalUpdateModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// The personal row is never mutated.
	var stored pmodel.PersonalModel
	require.NoError(t, db.First(&stored, p.PersonalID).Error)
	require.Equal(t, "Aung Aung", stored.PersonalFullName)

	// Re-submitting the same edit is a no-op against the effective view.
	changed, err = service.ApplyPersonalEdit(db, p, target, f)
	require.NoError(t, err)
	require.False(t, changed)
	require.NoError(t, db.Model(&pmodel.PersonalUpdateModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestResolveEffective_LatestWinsPerTarget(t *testing.T) {
	db := openTestDB(t)

	p, _, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	student, err := service.NewUpdateTarget(pmodel.TargetStudent, "stu-1")
	require.NoError(t, err)
	teacher, err := service.NewUpdateTarget(pmodel.TargetTeacher, "tch-1")
	require.NoError(t, err)

	// No snapshots: base personal.
	eff, err := service.ResolveEffective(db, p, student)
	require.NoError(t, err)
	require.False(t, eff.FromUpdate)
	require.Equal(t, "Aung Aung", eff.Fields.FullName)

	f1 := baseFields()
	f1.FullName = "First Edit"
	_, err = service.ApplyPersonalEdit(db, p, student, f1)
	require.NoError(t, err)

	f2 := baseFields()
	f2.FullName = "Second Edit"
	_, err = service.ApplyPersonalEdit(db, p, student, f2)
	require.NoError(t, err)

	eff, err = service.ResolveEffective(db, p, student)
	require.NoError(t, err)
	require.True(t, eff.FromUpdate)
	require.Equal(t, "Second Edit", eff.Fields.FullName)

	// A different target still sees the base personal.
	eff, err = service.ResolveEffective(db, p, teacher)
	require.NoError(t, err)
	require.False(t, eff.FromUpdate)
	require.Equal(t, "Aung Aung", eff.Fields.FullName)
}

func TestResolveEffective_TieBreakOnUpdateID(t *testing.T) {
	db := openTestDB(t)

	p, _, err := service.ResolveOrCreatePersonal(db, baseFields())
	require.NoError(t, err)
	target, err := service.NewUpdateTarget(pmodel.TargetEmployee, "emp-1")
	require.NoError(t, err)

	// Two snapshots with the same timestamp: the higher id wins.
	now := time.Now().Truncate(time.Second)
	for _, name := range []string{"Older", "Newer"} {
		birth, err := service.ParseDate("2008-05-14")
		require.NoError(t, err)
		row := pmodel.PersonalUpdateModel{
			PersonalUpdatePersonalID:   p.PersonalID,
			PersonalUpdatePersonalSlug: p.PersonalSlug,
			PersonalUpdateFullName:     name,
			PersonalUpdateBirthDate:    birth,
			PersonalUpdateGender:       pmodel.GenderMale,
			PersonalUpdateRegionCode:   "12",
			PersonalUpdateTownshipCode: "MaYaKa",
			PersonalUpdateCitizenship:  "N",
			PersonalUpdateSerialNumber: "123456",
			PersonalUpdateTargetKind:   pmodel.TargetEmployee,
			PersonalUpdateTargetSlug:   "emp-1",
			PersonalUpdateCreatedAt:    now,
		}
		require.NoError(t, db.Create(&row).Error)
	}

	eff, err := service.ResolveEffective(db, p, target)
	require.NoError(t, err)
	require.Equal(t, "Newer", eff.Fields.FullName)
}

func TestDateNormalization(t *testing.T) {
	d, err := service.ParseDate("2008-05-14")
	require.NoError(t, err)
	require.Equal(t, "2008-05-14", service.DateString(d))

	_, err = service.ParseDate("14-05-2008")
	require.Error(t, err)

	_, err = service.ParseDate("2008-5-14")
	require.Error(t, err)
}

func TestNewUpdateTarget_RejectsUnknownKind(t *testing.T) {
	_, err := service.NewUpdateTarget(pmodel.TargetKind("parent"), "x")
	require.Error(t, err)

	_, err = service.NewUpdateTarget(pmodel.TargetGuardian, "")
	require.Error(t, err)
}
