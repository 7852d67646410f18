// file: internals/features/records/personals/dto/personal_dto.go
package dto

import (
	"strings"
	"time"

	pmodel "kyaungku_backend/internals/features/records/personals/model"
	"kyaungku_backend/internals/features/records/personals/service"
)

/* =========================================================
   INPUT — identity fields as submitted inside a role payload
   ========================================================= */

// PersonalInput carries the ten tracked identity fields. Role create and
// update requests embed one of these per person in the payload.
type PersonalInput struct {
	FullName     string  `json:"full_name" validate:"required,min=1,max=255"`
	BirthDate    string  `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Gender       string  `json:"gender" validate:"required,oneof=male female"`
	RegionCode   string  `json:"region_code" validate:"required,min=1,max=10"`
	TownshipCode string  `json:"township_code" validate:"required,min=1,max=10"`
	Citizenship  string  `json:"citizenship" validate:"required,min=1,max=10"`
	SerialNumber string  `json:"serial_number" validate:"required,min=1,max=20"`
	Nationality  *string `json:"nationality" validate:"omitempty,max=100"`
	Religion     *string `json:"religion" validate:"omitempty,max=100"`
	BloodType    *string `json:"blood_type" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

func (r *PersonalInput) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.BirthDate = strings.TrimSpace(r.BirthDate)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
	r.RegionCode = strings.TrimSpace(r.RegionCode)
	r.TownshipCode = strings.TrimSpace(r.TownshipCode)
	r.Citizenship = strings.TrimSpace(r.Citizenship)
	r.SerialNumber = strings.TrimSpace(r.SerialNumber)
	trimPtr(&r.Nationality)
	trimPtr(&r.Religion)
	if r.BloodType != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.BloodType))
		if v == "" {
			r.BloodType = nil
		} else {
			r.BloodType = &v
		}
	}
}

func (r PersonalInput) ToFields() service.PersonalFields {
	var bt *pmodel.BloodType
	if r.BloodType != nil {
		v := pmodel.BloodType(*r.BloodType)
		bt = &v
	}
	return service.PersonalFields{
		FullName:     r.FullName,
		BirthDate:    r.BirthDate,
		Gender:       pmodel.Gender(r.Gender),
		RegionCode:   r.RegionCode,
		TownshipCode: r.TownshipCode,
		Citizenship:  r.Citizenship,
		SerialNumber: r.SerialNumber,
		Nationality:  r.Nationality,
		Religion:     r.Religion,
		BloodType:    bt,
	}
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}

/* =========================================================
   RESPONSES
   ========================================================= */

// PersonalResponse is the identity block every role response embeds,
// built from the effective view for that role record.
type PersonalResponse struct {
	PersonalSlug string  `json:"personal_slug"`
	FullName     string  `json:"full_name"`
	BirthDate    string  `json:"birth_date"`
	Gender       string  `json:"gender"`
	RegionCode   string  `json:"region_code"`
	TownshipCode string  `json:"township_code"`
	Citizenship  string  `json:"citizenship"`
	SerialNumber string  `json:"serial_number"`
	Nationality  *string `json:"nationality,omitempty"`
	Religion     *string `json:"religion,omitempty"`
	BloodType    *string `json:"blood_type,omitempty"`
}

func FromEffective(e service.EffectivePersonal) PersonalResponse {
	return fromFields(e.Slug, e.Fields)
}

func FromPersonalModel(m *pmodel.PersonalModel) PersonalResponse {
	return fromFields(m.PersonalSlug, service.FieldsFromPersonal(m))
}

func fromFields(slug string, f service.PersonalFields) PersonalResponse {
	var bt *string
	if f.BloodType != nil {
		v := string(*f.BloodType)
		bt = &v
	}
	return PersonalResponse{
		PersonalSlug: slug,
		FullName:     f.FullName,
		BirthDate:    f.BirthDate,
		Gender:       string(f.Gender),
		RegionCode:   f.RegionCode,
		TownshipCode: f.TownshipCode,
		Citizenship:  f.Citizenship,
		SerialNumber: f.SerialNumber,
		Nationality:  f.Nationality,
		Religion:     f.Religion,
		BloodType:    bt,
	}
}

// PersonalDetailResponse is the read-only personals surface: base columns
// plus row timestamps. Identity edits never land here, only in the
// per-role snapshots.
type PersonalDetailResponse struct {
	PersonalResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func DetailFromPersonalModel(m *pmodel.PersonalModel) PersonalDetailResponse {
	return PersonalDetailResponse{
		PersonalResponse: FromPersonalModel(m),
		CreatedAt:        m.PersonalCreatedAt,
		UpdatedAt:        m.PersonalUpdatedAt,
	}
}
