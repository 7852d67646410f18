// file: internals/features/records/students/model/student_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/lifecycle"
	helper "kyaungku_backend/internals/helpers"
)

// =======================================
// ENUM & LIFECYCLE RULES
// =======================================

type StudentStatus string

const (
	StudentEnrolled  StudentStatus = "enrolled"
	StudentGraduated StudentStatus = "graduated"
	StudentSuspended StudentStatus = "suspended"
	StudentInactive  StudentStatus = "inactive"
)

var validStudentStatus = map[StudentStatus]struct{}{
	StudentEnrolled:  {},
	StudentGraduated: {},
	StudentSuspended: {},
	StudentInactive:  {},
}

func IsValidStudentStatus(s StudentStatus) bool {
	_, ok := validStudentStatus[s]
	return ok
}

var StudentLifecycle = lifecycle.Rules{
	Statuses:      []string{"enrolled", "graduated", "suspended", "inactive"},
	DeleteStatus:  string(StudentInactive),
	DefaultStatus: string(StudentEnrolled),
}

// =======================================
// Model: students
// =======================================

type StudentModel struct {
	StudentID   uint   `gorm:"column:student_id;primaryKey;autoIncrement" json:"-"`
	StudentSlug string `gorm:"column:student_slug;type:varchar(36);not null;uniqueIndex" json:"student_slug"`

	// One live student per personal (exclusive claim)
	StudentPersonalSlug string `gorm:"column:student_personal_slug;type:varchar(36);not null;uniqueIndex" json:"-"`

	// Denormalized copy of the personal's full name at creation time.
	// Allowed to drift from the snapshot trail; read paths resolve the
	// current name through the effective view instead.
	StudentName string `gorm:"column:student_name;type:varchar(255);not null" json:"student_name"`

	StudentNumber             string  `gorm:"column:student_number;type:varchar(50);not null;uniqueIndex" json:"student_number"`
	StudentRegistrationNumber *string `gorm:"column:student_registration_number;type:varchar(50);uniqueIndex" json:"student_registration_number,omitempty"`
	StudentSchoolName         string  `gorm:"column:student_school_name;type:varchar(255);not null" json:"student_school_name"`
	StudentSchoolCode         *string `gorm:"column:student_school_code;type:varchar(50)" json:"student_school_code,omitempty"`
	StudentEmail              *string `gorm:"column:student_email;type:varchar(255);uniqueIndex" json:"student_email,omitempty"`
	StudentPhone              *string `gorm:"column:student_phone;type:varchar(50);uniqueIndex" json:"student_phone,omitempty"`
	StudentAddress            *string `gorm:"column:student_address;type:text" json:"student_address,omitempty"`

	StudentStatus StudentStatus `gorm:"column:student_status;type:varchar(16);not null;default:'enrolled'" json:"student_status"`

	StudentAdmissionDate  *datatypes.Date `gorm:"column:student_admission_date" json:"student_admission_date,omitempty"`
	StudentGraduationDate *datatypes.Date `gorm:"column:student_graduation_date" json:"student_graduation_date,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;autoUpdateTime" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

// =======================================
// Hooks
// =======================================

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.StudentSlug) == "" {
		m.StudentSlug = helper.NewExternalID()
	}
	if m.StudentStatus == "" {
		m.StudentStatus = StudentEnrolled
	}
	return m.validateEnums()
}

// BeforeSave runs ahead of BeforeCreate on insert, so defaults are filled
// here too.
func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	if m.StudentStatus == "" {
		m.StudentStatus = StudentEnrolled
	}
	return m.validateEnums()
}

func (m *StudentModel) validateEnums() error {
	if !IsValidStudentStatus(m.StudentStatus) {
		return errors.New("invalid student_status")
	}
	return nil
}

// =======================================
// lifecycle.Record
// =======================================

func (m *StudentModel) RecordSlug() string            { return m.StudentSlug }
func (m *StudentModel) RecordStatus() string          { return string(m.StudentStatus) }
func (m *StudentModel) SetRecordStatus(status string) { m.StudentStatus = StudentStatus(status) }
func (m *StudentModel) RecordDeleted() bool           { return m.StudentDeletedAt.Valid }
func (m *StudentModel) StatusColumn() string          { return "student_status" }
func (m *StudentModel) DeletedAtColumn() string       { return "student_deleted_at" }
