// file: internals/features/records/personals/service/types.go
package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"

	pmodel "kyaungku_backend/internals/features/records/personals/model"
)

// ErrIdentityClaimed: the personal is already referenced by a student,
// teacher or employee (exclusive kinds). Guardians are exempt.
var ErrIdentityClaimed = errors.New("this personal is already assigned to another role record")

const dateLayout = "2006-01-02"

// =======================================
// Composite key (NRC)
// =======================================

type CompositeKey struct {
	RegionCode   string
	TownshipCode string
	Citizenship  string
	SerialNumber string
}

// =======================================
// PersonalFields: the ten tracked identity fields, dates already
// normalized to YYYY-MM-DD strings so comparisons are exact.
// =======================================

type PersonalFields struct {
	FullName     string
	BirthDate    string // YYYY-MM-DD
	Gender       pmodel.Gender
	RegionCode   string
	TownshipCode string
	Citizenship  string
	SerialNumber string
	Nationality  *string
	Religion     *string
	BloodType    *pmodel.BloodType
}

func (f PersonalFields) Key() CompositeKey {
	return CompositeKey{
		RegionCode:   f.RegionCode,
		TownshipCode: f.TownshipCode,
		Citizenship:  f.Citizenship,
		SerialNumber: f.SerialNumber,
	}
}

// =======================================
// UpdateTarget: tagged (kind, slug) pair naming the editing role record.
// =======================================

type UpdateTarget struct {
	Kind pmodel.TargetKind
	Slug string
}

func NewUpdateTarget(kind pmodel.TargetKind, slug string) (UpdateTarget, error) {
	if !pmodel.IsValidTargetKind(kind) {
		return UpdateTarget{}, fmt.Errorf("invalid update target kind: %q", kind)
	}
	if slug == "" {
		return UpdateTarget{}, errors.New("update target slug is required")
	}
	return UpdateTarget{Kind: kind, Slug: slug}, nil
}

// =======================================
// Date helpers
// =======================================

func DateString(d datatypes.Date) string {
	return time.Time(d).Format(dateLayout)
}

func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return datatypes.Date(t), nil
}

// =======================================
// Field conversion
// =======================================

func FieldsFromPersonal(m *pmodel.PersonalModel) PersonalFields {
	return PersonalFields{
		FullName:     m.PersonalFullName,
		BirthDate:    DateString(m.PersonalBirthDate),
		Gender:       m.PersonalGender,
		RegionCode:   m.PersonalRegionCode,
		TownshipCode: m.PersonalTownshipCode,
		Citizenship:  m.PersonalCitizenship,
		SerialNumber: m.PersonalSerialNumber,
		Nationality:  m.PersonalNationality,
		Religion:     m.PersonalReligion,
		BloodType:    m.PersonalBloodType,
	}
}

func FieldsFromUpdate(u *pmodel.PersonalUpdateModel) PersonalFields {
	return PersonalFields{
		FullName:     u.PersonalUpdateFullName,
		BirthDate:    DateString(u.PersonalUpdateBirthDate),
		Gender:       u.PersonalUpdateGender,
		RegionCode:   u.PersonalUpdateRegionCode,
		TownshipCode: u.PersonalUpdateTownshipCode,
		Citizenship:  u.PersonalUpdateCitizenship,
		SerialNumber: u.PersonalUpdateSerialNumber,
		Nationality:  u.PersonalUpdateNationality,
		Religion:     u.PersonalUpdateReligion,
		BloodType:    u.PersonalUpdateBloodType,
	}
}
