// file: internals/features/records/personals/model/personal_update_model.go
package model

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =======================================
// ENUM: target kind (closed set)
// The polymorphic link is an explicit tagged pair (kind, slug), never a
// runtime type name.
// =======================================

type TargetKind string

const (
	TargetStudent  TargetKind = "student"
	TargetTeacher  TargetKind = "teacher"
	TargetEmployee TargetKind = "employee"
	TargetGuardian TargetKind = "guardian"
)

var validTargetKind = map[TargetKind]struct{}{
	TargetStudent:  {},
	TargetTeacher:  {},
	TargetEmployee: {},
	TargetGuardian: {},
}

func IsValidTargetKind(k TargetKind) bool {
	_, ok := validTargetKind[k]
	return ok
}

// =======================================
// Model: personal_updates
// Append-only snapshot of the identity fields, tagged with the role record
// that triggered the edit. Immutable once created; "latest" is
// ORDER BY created_at DESC, id DESC.
// =======================================

type PersonalUpdateModel struct {
	PersonalUpdateID uint64 `gorm:"column:personal_update_id;primaryKey;autoIncrement" json:"-"`

	// Owning identity: internal id for referential integrity, slug for the
	// external contract. The only internal-id cross reference in the schema.
	PersonalUpdatePersonalID   uint   `gorm:"column:personal_update_personal_id;not null;index" json:"-"`
	PersonalUpdatePersonalSlug string `gorm:"column:personal_update_personal_slug;type:varchar(36);not null;index" json:"personal_update_personal_slug"`

	// Snapshot fields
	PersonalUpdateFullName     string         `gorm:"column:personal_update_full_name;type:varchar(255);not null" json:"personal_update_full_name"`
	PersonalUpdateBirthDate    datatypes.Date `gorm:"column:personal_update_birth_date;not null" json:"personal_update_birth_date"`
	PersonalUpdateGender       Gender         `gorm:"column:personal_update_gender;type:varchar(10);not null" json:"personal_update_gender"`
	PersonalUpdateRegionCode   string         `gorm:"column:personal_update_region_code;type:varchar(10);not null" json:"personal_update_region_code"`
	PersonalUpdateTownshipCode string         `gorm:"column:personal_update_township_code;type:varchar(10);not null" json:"personal_update_township_code"`
	PersonalUpdateCitizenship  string         `gorm:"column:personal_update_citizenship;type:varchar(10);not null" json:"personal_update_citizenship"`
	PersonalUpdateSerialNumber string         `gorm:"column:personal_update_serial_number;type:varchar(20);not null" json:"personal_update_serial_number"`
	PersonalUpdateNationality  *string        `gorm:"column:personal_update_nationality;type:varchar(50)" json:"personal_update_nationality,omitempty"`
	PersonalUpdateReligion     *string        `gorm:"column:personal_update_religion;type:varchar(50)" json:"personal_update_religion,omitempty"`
	PersonalUpdateBloodType    *BloodType     `gorm:"column:personal_update_blood_type;type:varchar(3)" json:"personal_update_blood_type,omitempty"`

	// Editing role record (tagged union)
	PersonalUpdateTargetKind TargetKind `gorm:"column:personal_update_target_kind;type:varchar(16);not null;index:idx_personal_update_target" json:"personal_update_target_kind"`
	PersonalUpdateTargetSlug string     `gorm:"column:personal_update_target_slug;type:varchar(36);not null;index:idx_personal_update_target" json:"personal_update_target_slug"`

	PersonalUpdateCreatedAt time.Time `gorm:"column:personal_update_created_at;not null;autoCreateTime" json:"personal_update_created_at"`
}

func (PersonalUpdateModel) TableName() string { return "personal_updates" }

func (m *PersonalUpdateModel) BeforeCreate(tx *gorm.DB) error {
	if !IsValidTargetKind(m.PersonalUpdateTargetKind) {
		return errors.New("invalid personal_update_target_kind")
	}
	if !IsValidGender(m.PersonalUpdateGender) {
		return errors.New("invalid personal_update_gender")
	}
	if m.PersonalUpdateBloodType != nil && !IsValidBloodType(*m.PersonalUpdateBloodType) {
		return errors.New("invalid personal_update_blood_type")
	}
	return nil
}
