// file: internals/features/records/teachers/model/teacher_model.go
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

type TeacherStatus string

const (
	TeacherActive     TeacherStatus = "active"
	TeacherResigned   TeacherStatus = "resigned"
	TeacherOnLeave    TeacherStatus = "on_leave"
	TeacherTerminated TeacherStatus = "terminated"
)

var validTeacherStatus = map[TeacherStatus]struct{}{
	TeacherActive:     {},
	TeacherResigned:   {},
	TeacherOnLeave:    {},
	TeacherTerminated: {},
}

func IsValidTeacherStatus(s TeacherStatus) bool {
	_, ok := validTeacherStatus[s]
	return ok
}

var TeacherLifecycle = lifecycle.Rules{
	Statuses:      []string{"active", "resigned", "on_leave", "terminated"},
	DeleteStatus:  string(TeacherResigned),
	DefaultStatus: string(TeacherActive),
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

func IsValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract:
		return true
	}
	return false
}

// =======================================
// Model: teachers
// =======================================

type TeacherModel struct {
	TeacherID   uint   `gorm:"column:teacher_id;primaryKey;autoIncrement" json:"-"`
	TeacherSlug string `gorm:"column:teacher_slug;type:varchar(36);not null;uniqueIndex" json:"teacher_slug"`

	TeacherPersonalSlug string `gorm:"column:teacher_personal_slug;type:varchar(36);not null;uniqueIndex" json:"-"`

	// Name cache from the personal at creation time; reads resolve through
	// the effective view.
	TeacherName string `gorm:"column:teacher_name;type:varchar(255);not null" json:"teacher_name"`

	TeacherCode  string  `gorm:"column:teacher_code;type:varchar(50);not null;uniqueIndex" json:"teacher_code"`
	TeacherEmail *string `gorm:"column:teacher_email;type:varchar(255);uniqueIndex" json:"teacher_email,omitempty"`
	TeacherPhone string  `gorm:"column:teacher_phone;type:varchar(50);not null;uniqueIndex" json:"teacher_phone"`

	TeacherDepartment     string  `gorm:"column:teacher_department;type:varchar(100);not null" json:"teacher_department"`
	TeacherSpecialization *string `gorm:"column:teacher_specialization;type:varchar(100)" json:"teacher_specialization,omitempty"`
	TeacherDesignation    *string `gorm:"column:teacher_designation;type:varchar(100)" json:"teacher_designation,omitempty"`

	TeacherSalary         float64        `gorm:"column:teacher_salary;type:decimal(10,2);not null" json:"teacher_salary"`
	TeacherHireDate       datatypes.Date `gorm:"column:teacher_hire_date;not null" json:"teacher_hire_date"`
	TeacherEmploymentType EmploymentType `gorm:"column:teacher_employment_type;type:varchar(16);not null;default:'full-time'" json:"teacher_employment_type"`

	TeacherStatus TeacherStatus `gorm:"column:teacher_status;type:varchar(16);not null;default:'active'" json:"teacher_status"`

	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;not null;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;not null;autoUpdateTime" json:"teacher_updated_at"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;index" json:"teacher_deleted_at,omitempty"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.TeacherSlug) == "" {
		m.TeacherSlug = helper.NewExternalID()
	}
	if m.TeacherStatus == "" {
		m.TeacherStatus = TeacherActive
	}
	if m.TeacherEmploymentType == "" {
		m.TeacherEmploymentType = EmploymentFullTime
	}
	return m.validateEnums()
}

// BeforeSave runs ahead of BeforeCreate on insert, so defaults are filled
// here too.
func (m *TeacherModel) BeforeSave(tx *gorm.DB) error {
	if m.TeacherStatus == "" {
		m.TeacherStatus = TeacherActive
	}
	if m.TeacherEmploymentType == "" {
		m.TeacherEmploymentType = EmploymentFullTime
	}
	return m.validateEnums()
}

func (m *TeacherModel) validateEnums() error {
	if !IsValidTeacherStatus(m.TeacherStatus) {
		return errors.New("invalid teacher_status")
	}
	if !IsValidEmploymentType(m.TeacherEmploymentType) {
		return errors.New("invalid teacher_employment_type")
	}
	return nil
}

// =======================================
// lifecycle.Record
// =======================================

func (m *TeacherModel) RecordSlug() string            { return m.TeacherSlug }
func (m *TeacherModel) RecordStatus() string          { return string(m.TeacherStatus) }
func (m *TeacherModel) SetRecordStatus(status string) { m.TeacherStatus = TeacherStatus(status) }
func (m *TeacherModel) RecordDeleted() bool           { return m.TeacherDeletedAt.Valid }
func (m *TeacherModel) StatusColumn() string          { return "teacher_status" }
func (m *TeacherModel) DeletedAtColumn() string       { return "teacher_deleted_at" }
