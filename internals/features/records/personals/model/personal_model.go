// file: internals/features/records/personals/model/personal_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	helper "kyaungku_backend/internals/helpers"
)

// =======================================
// ENUM & VALIDATOR
// =======================================

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var validGender = map[Gender]struct{}{
	GenderMale:   {},
	GenderFemale: {},
}

type BloodType string

var validBloodType = map[BloodType]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {},
	"AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

func IsValidGender(g Gender) bool {
	_, ok := validGender[g]
	return ok
}

func IsValidBloodType(b BloodType) bool {
	_, ok := validBloodType[b]
	return ok
}

// =======================================
// Model: personals
// Canonical identity row, deduplicated on the NRC composite key.
// Never mutated by the edit flow; edits land in personal_updates.
// =======================================

type PersonalModel struct {
	PersonalID   uint   `gorm:"column:personal_id;primaryKey;autoIncrement" json:"-"`
	PersonalSlug string `gorm:"column:personal_slug;type:varchar(36);not null;uniqueIndex" json:"personal_slug"`

	PersonalFullName  string         `gorm:"column:personal_full_name;type:varchar(255);not null" json:"personal_full_name"`
	PersonalBirthDate datatypes.Date `gorm:"column:personal_birth_date;not null" json:"personal_birth_date"`
	PersonalGender    Gender         `gorm:"column:personal_gender;type:varchar(10);not null" json:"personal_gender"`

	// NRC composite key; unique across live rows (soft-deleted rows are
	// excluded at the lookup, the index itself is plain like the source schema)
	PersonalRegionCode   string `gorm:"column:personal_region_code;type:varchar(10);not null;uniqueIndex:uq_personal_nrc" json:"personal_region_code"`
	PersonalTownshipCode string `gorm:"column:personal_township_code;type:varchar(10);not null;uniqueIndex:uq_personal_nrc" json:"personal_township_code"`
	PersonalSerialNumber string `gorm:"column:personal_serial_number;type:varchar(20);not null;uniqueIndex:uq_personal_nrc" json:"personal_serial_number"`
	PersonalCitizenship  string `gorm:"column:personal_citizenship;type:varchar(10);not null" json:"personal_citizenship"`

	PersonalNationality *string    `gorm:"column:personal_nationality;type:varchar(50)" json:"personal_nationality,omitempty"`
	PersonalReligion    *string    `gorm:"column:personal_religion;type:varchar(50)" json:"personal_religion,omitempty"`
	PersonalBloodType   *BloodType `gorm:"column:personal_blood_type;type:varchar(3)" json:"personal_blood_type,omitempty"`

	PersonalCreatedAt time.Time      `gorm:"column:personal_created_at;not null;autoCreateTime" json:"personal_created_at"`
	PersonalUpdatedAt time.Time      `gorm:"column:personal_updated_at;not null;autoUpdateTime" json:"personal_updated_at"`
	PersonalDeletedAt gorm.DeletedAt `gorm:"column:personal_deleted_at;index" json:"personal_deleted_at,omitempty"`
}

func (PersonalModel) TableName() string { return "personals" }

// =======================================
// Hooks
// =======================================

func (m *PersonalModel) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(m.PersonalSlug) == "" {
		m.PersonalSlug = helper.NewExternalID()
	}
	return m.validateEnums()
}

func (m *PersonalModel) BeforeSave(tx *gorm.DB) error {
	return m.validateEnums()
}

func (m *PersonalModel) validateEnums() error {
	if !IsValidGender(m.PersonalGender) {
		return errors.New("invalid personal_gender")
	}
	if m.PersonalBloodType != nil && !IsValidBloodType(*m.PersonalBloodType) {
		return errors.New("invalid personal_blood_type")
	}
	return nil
}
