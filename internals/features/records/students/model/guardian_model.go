// file: internals/features/records/students/model/guardian_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/lifecycle"
	helper "kyaungku_backend/internals/helpers"
)

// =======================================
// ENUM & LIFECYCLE RULES
// =======================================

type GuardianRelation string

const (
	GuardianFather   GuardianRelation = "father"
	GuardianMother   GuardianRelation = "mother"
	GuardianGuardian GuardianRelation = "guardian"
)

var validGuardianRelation = map[GuardianRelation]struct{}{
	GuardianFather:   {},
	GuardianMother:   {},
	GuardianGuardian: {},
}

func IsValidGuardianRelation(r GuardianRelation) bool {
	_, ok := validGuardianRelation[r]
	return ok
}

type GuardianStatus string

const (
	GuardianActive   GuardianStatus = "active"
	GuardianInactive GuardianStatus = "inactive"
)

var GuardianLifecycle = lifecycle.Rules{
	Statuses:      []string{"active", "inactive"},
	DeleteStatus:  string(GuardianInactive),
	DefaultStatus: string(GuardianActive),
}

// =======================================
// Model: guardians
// Guardians share personals freely (no exclusive claim): several guardians,
// across several students, may reference one personal.
// =======================================

type GuardianModel struct {
	GuardianID   uint   `gorm:"column:guardian_id;primaryKey;autoIncrement" json:"-"`
	GuardianSlug string `gorm:"column:guardian_slug;type:varchar(36);not null;uniqueIndex" json:"guardian_slug"`

	GuardianPersonalSlug string `gorm:"column:guardian_personal_slug;type:varchar(36);not null;index" json:"-"`
	GuardianStudentSlug  string `gorm:"column:guardian_student_slug;type:varchar(36);not null;uniqueIndex:uq_guardian_student_relation" json:"-"`

	GuardianRelation GuardianRelation `gorm:"column:guardian_relation;type:varchar(10);not null;uniqueIndex:uq_guardian_student_relation" json:"guardian_relation"`

	// Denormalized name cache, same caveat as student_name.
	GuardianName       string  `gorm:"column:guardian_name;type:varchar(255);not null" json:"guardian_name"`
	GuardianOccupation *string `gorm:"column:guardian_occupation;type:varchar(100)" json:"guardian_occupation,omitempty"`
	GuardianPhone      *string `gorm:"column:guardian_phone;type:varchar(50);uniqueIndex" json:"guardian_phone,omitempty"`
	GuardianEmail      *string `gorm:"column:guardian_email;type:varchar(255);uniqueIndex" json:"guardian_email,omitempty"`

	GuardianStatus GuardianStatus `gorm:"column:guardian_status;type:varchar(16);not null;default:'active'" json:"guardian_status"`

	GuardianCreatedAt time.Time      `gorm:"column:guardian_created_at;not null;autoCreateTime" json:"guardian_created_at"`
	GuardianUpdatedAt time.Time      `gorm:"column:guardian_updated_at;not null;autoUpdateTime" json:"guardian_updated_at"`
	GuardianDeletedAt gorm.DeletedAt `gorm:"column:guardian_deleted_at;index" json:"guardian_deleted_at,omitempty"`
}

func (GuardianModel) TableName() string { return "guardians" }

func (m *GuardianModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.GuardianSlug) == "" {
		m.GuardianSlug = helper.NewExternalID()
	}
	if m.GuardianStatus == "" {
		m.GuardianStatus = GuardianActive
	}
	return m.validateEnums()
}

// BeforeSave runs ahead of BeforeCreate on insert, so defaults are filled
// here too.
func (m *GuardianModel) BeforeSave(tx *gorm.DB) error {
	if m.GuardianStatus == "" {
		m.GuardianStatus = GuardianActive
	}
	return m.validateEnums()
}

func (m *GuardianModel) validateEnums() error {
	if !IsValidGuardianRelation(m.GuardianRelation) {
		return errors.New("invalid guardian_relation")
	}
	if m.GuardianStatus != GuardianActive && m.GuardianStatus != GuardianInactive {
		return errors.New("invalid guardian_status")
	}
	return nil
}

// =======================================
// lifecycle.Record
// =======================================

func (m *GuardianModel) RecordSlug() string            { return m.GuardianSlug }
func (m *GuardianModel) RecordStatus() string          { return string(m.GuardianStatus) }
func (m *GuardianModel) SetRecordStatus(status string) { m.GuardianStatus = GuardianStatus(status) }
func (m *GuardianModel) RecordDeleted() bool           { return m.GuardianDeletedAt.Valid }
func (m *GuardianModel) StatusColumn() string          { return "guardian_status" }
func (m *GuardianModel) DeletedAtColumn() string       { return "guardian_deleted_at" }
