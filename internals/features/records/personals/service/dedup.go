// file: internals/features/records/personals/service/dedup.go
package service

import (
	"gorm.io/gorm"

	emodel "kyaungku_backend/internals/features/records/employees/model"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	smodel "kyaungku_backend/internals/features/records/students/model"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
	helper "kyaungku_backend/internals/helpers"
)

// ResolveOrCreatePersonal is the deduplication gate. It looks up a live
// personal by the exact composite key and reuses it; on a miss it creates a
// new row with a fresh external id. Exactly one insert on a miss, none on a
// hit.
//
// Two concurrent creates with the same key can both miss the lookup; the
// second insert then fails on the uq_personal_nrc index and surfaces as a
// generic write error rather than a clean conflict. Known gap, accepted —
// there is no application-level locking here.
func ResolveOrCreatePersonal(tx *gorm.DB, fields PersonalFields) (*pmodel.PersonalModel, bool, error) {
	key := fields.Key()

	var existing pmodel.PersonalModel
	err := tx.
		Where("personal_region_code = ?", key.RegionCode).
		Where("personal_township_code = ?", key.TownshipCode).
		Where("personal_citizenship = ?", key.Citizenship).
		Where("personal_serial_number = ?", key.SerialNumber).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !helper.IsNotFound(err) {
		return nil, false, err
	}

	birth, err := ParseDate(fields.BirthDate)
	if err != nil {
		return nil, false, err
	}

	created := pmodel.PersonalModel{
		PersonalSlug:         helper.NewExternalID(),
		PersonalFullName:     fields.FullName,
		PersonalBirthDate:    birth,
		PersonalGender:       fields.Gender,
		PersonalRegionCode:   key.RegionCode,
		PersonalTownshipCode: key.TownshipCode,
		PersonalCitizenship:  key.Citizenship,
		PersonalSerialNumber: key.SerialNumber,
		PersonalNationality:  fields.Nationality,
		PersonalReligion:     fields.Religion,
		PersonalBloodType:    fields.BloodType,
	}
	if err := tx.Create(&created).Error; err != nil {
		return nil, false, err
	}
	return &created, true, nil
}

// EnsureUnclaimed enforces identity exclusivity for the exclusive role
// kinds: a personal may back at most one live student, teacher or employee.
// Callers creating one of those kinds must run this after the gate resolves
// an existing personal. Guardians never call it.
func EnsureUnclaimed(tx *gorm.DB, personalSlug string) error {
	var n int64

	if err := tx.Model(&smodel.StudentModel{}).
		Where("student_personal_slug = ?", personalSlug).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrIdentityClaimed
	}

	if err := tx.Model(&tmodel.TeacherModel{}).
		Where("teacher_personal_slug = ?", personalSlug).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrIdentityClaimed
	}

	if err := tx.Model(&emodel.EmployeeModel{}).
		Where("employee_personal_slug = ?", personalSlug).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrIdentityClaimed
	}

	return nil
}
