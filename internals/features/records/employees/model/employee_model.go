// file: internals/features/records/employees/model/employee_model.go
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

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeResigned   EmployeeStatus = "resigned"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
	EmployeeTerminated EmployeeStatus = "terminated"
)

var validEmployeeStatus = map[EmployeeStatus]struct{}{
	EmployeeActive:     {},
	EmployeeResigned:   {},
	EmployeeOnLeave:    {},
	EmployeeTerminated: {},
}

func IsValidEmployeeStatus(s EmployeeStatus) bool {
	_, ok := validEmployeeStatus[s]
	return ok
}

var EmployeeLifecycle = lifecycle.Rules{
	Statuses:      []string{"active", "resigned", "on_leave", "terminated"},
	DeleteStatus:  string(EmployeeResigned),
	DefaultStatus: string(EmployeeActive),
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
// Model: employees
// =======================================

type EmployeeModel struct {
	EmployeeID   uint   `gorm:"column:employee_id;primaryKey;autoIncrement" json:"-"`
	EmployeeSlug string `gorm:"column:employee_slug;type:varchar(36);not null;uniqueIndex" json:"employee_slug"`

	EmployeePersonalSlug string `gorm:"column:employee_personal_slug;type:varchar(36);not null;uniqueIndex" json:"-"`

	// Name cache from the personal at creation time; reads resolve through
	// the effective view.
	EmployeeName string `gorm:"column:employee_name;type:varchar(255);not null" json:"employee_name"`

	EmployeeCode  string  `gorm:"column:employee_code;type:varchar(50);not null;uniqueIndex" json:"employee_code"`
	EmployeeEmail *string `gorm:"column:employee_email;type:varchar(255);uniqueIndex" json:"employee_email,omitempty"`
	EmployeePhone *string `gorm:"column:employee_phone;type:varchar(50);uniqueIndex" json:"employee_phone,omitempty"`

	EmployeeAddress    *string `gorm:"column:employee_address;type:text" json:"employee_address,omitempty"`
	EmployeePosition   *string `gorm:"column:employee_position;type:varchar(100)" json:"employee_position,omitempty"`
	EmployeeDepartment *string `gorm:"column:employee_department;type:varchar(100)" json:"employee_department,omitempty"`

	EmployeeEmploymentType  EmploymentType  `gorm:"column:employee_employment_type;type:varchar(16);not null;default:'full-time'" json:"employee_employment_type"`
	EmployeeHireDate        datatypes.Date  `gorm:"column:employee_hire_date;not null" json:"employee_hire_date"`
	EmployeeResignDate      *datatypes.Date `gorm:"column:employee_resign_date" json:"employee_resign_date,omitempty"`
	EmployeeExperienceYears int             `gorm:"column:employee_experience_years;not null;default:0" json:"employee_experience_years"`
	EmployeeSalary          float64         `gorm:"column:employee_salary;type:decimal(10,2);not null;default:0" json:"employee_salary"`

	EmployeeStatus EmployeeStatus `gorm:"column:employee_status;type:varchar(16);not null;default:'active'" json:"employee_status"`

	EmployeeCreatedAt time.Time      `gorm:"column:employee_created_at;not null;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt time.Time      `gorm:"column:employee_updated_at;not null;autoUpdateTime" json:"employee_updated_at"`
	EmployeeDeletedAt gorm.DeletedAt `gorm:"column:employee_deleted_at;index" json:"employee_deleted_at,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }

func (m *EmployeeModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.EmployeeSlug) == "" {
		m.EmployeeSlug = helper.NewExternalID()
	}
	if m.EmployeeStatus == "" {
		m.EmployeeStatus = EmployeeActive
	}
	if m.EmployeeEmploymentType == "" {
		m.EmployeeEmploymentType = EmploymentFullTime
	}
	return m.validateEnums()
}

// BeforeSave runs ahead of BeforeCreate on insert, so defaults are filled
// here too.
func (m *EmployeeModel) BeforeSave(tx *gorm.DB) error {
	if m.EmployeeStatus == "" {
		m.EmployeeStatus = EmployeeActive
	}
	if m.EmployeeEmploymentType == "" {
		m.EmployeeEmploymentType = EmploymentFullTime
	}
	return m.validateEnums()
}

func (m *EmployeeModel) validateEnums() error {
	if !IsValidEmployeeStatus(m.EmployeeStatus) {
		return errors.New("invalid employee_status")
	}
	if !IsValidEmploymentType(m.EmployeeEmploymentType) {
		return errors.New("invalid employee_employment_type")
	}
	return nil
}

// =======================================
// lifecycle.Record
// =======================================

func (m *EmployeeModel) RecordSlug() string            { return m.EmployeeSlug }
func (m *EmployeeModel) RecordStatus() string          { return string(m.EmployeeStatus) }
func (m *EmployeeModel) SetRecordStatus(status string) { m.EmployeeStatus = EmployeeStatus(status) }
func (m *EmployeeModel) RecordDeleted() bool           { return m.EmployeeDeletedAt.Valid }
func (m *EmployeeModel) StatusColumn() string          { return "employee_status" }
func (m *EmployeeModel) DeletedAtColumn() string       { return "employee_deleted_at" }
