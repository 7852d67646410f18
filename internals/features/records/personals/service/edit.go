// file: internals/features/records/personals/service/edit.go
package service

import (
	"gorm.io/gorm"

	pmodel "kyaungku_backend/internals/features/records/personals/model"
)

// ApplyPersonalEdit compares the submitted identity fields to the effective
// view for (personal, target) and, when at least one tracked field differs,
// appends exactly one personal_updates snapshot. The personal row itself is
// never touched and older snapshots are never removed.
//
// The check-then-append is not guarded by any constraint: two concurrent
// edits can both see a stale view and both append; the resolver's
// latest-wins ordering makes the later append authoritative.
func ApplyPersonalEdit(tx *gorm.DB, p *pmodel.PersonalModel, target UpdateTarget, next PersonalFields) (bool, error) {
	current, err := ResolveEffective(tx, p, target)
	if err != nil {
		return false, err
	}
	if !fieldsDiffer(current.Fields, next) {
		return false, nil
	}

	birth, err := ParseDate(next.BirthDate)
	if err != nil {
		return false, err
	}

	row := pmodel.PersonalUpdateModel{
		PersonalUpdatePersonalID:   p.PersonalID,
		PersonalUpdatePersonalSlug: p.PersonalSlug,
		PersonalUpdateFullName:     next.FullName,
		PersonalUpdateBirthDate:    birth,
		PersonalUpdateGender:       next.Gender,
		PersonalUpdateRegionCode:   next.RegionCode,
		PersonalUpdateTownshipCode: next.TownshipCode,
		PersonalUpdateCitizenship:  next.Citizenship,
		PersonalUpdateSerialNumber: next.SerialNumber,
		PersonalUpdateNationality:  next.Nationality,
		PersonalUpdateReligion:     next.Religion,
		PersonalUpdateBloodType:    next.BloodType,
		PersonalUpdateTargetKind:   target.Kind,
		PersonalUpdateTargetSlug:   target.Slug,
	}
	if err := tx.Create(&row).Error; err != nil {
		return false, err
	}
	return true, nil
}

// fieldsDiffer: exact, case-sensitive equality per tracked field. Dates are
// already normalized to YYYY-MM-DD strings on both sides.
func fieldsDiffer(cur, next PersonalFields) bool {
	if cur.FullName != next.FullName ||
		cur.BirthDate != next.BirthDate ||
		cur.Gender != next.Gender ||
		cur.RegionCode != next.RegionCode ||
		cur.TownshipCode != next.TownshipCode ||
		cur.Citizenship != next.Citizenship ||
		cur.SerialNumber != next.SerialNumber {
		return true
	}
	return !eqPtr(cur.Nationality, next.Nationality) ||
		!eqPtr(cur.Religion, next.Religion) ||
		!eqPtr(cur.BloodType, next.BloodType)
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
