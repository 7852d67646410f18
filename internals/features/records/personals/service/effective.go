// file: internals/features/records/personals/service/effective.go
package service

import (
	"gorm.io/gorm"

	pmodel "kyaungku_backend/internals/features/records/personals/model"
	helper "kyaungku_backend/internals/helpers"
)

// LoadPersonalBySlug fetches a live personal by its external id.
func LoadPersonalBySlug(tx *gorm.DB, slug string) (*pmodel.PersonalModel, error) {
	var p pmodel.PersonalModel
	if err := tx.Where("personal_slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// EffectivePersonal is the "current" identity data for a role record:
// the latest snapshot written by that record, or the base personal when no
// snapshot exists.
type EffectivePersonal struct {
	Slug       string
	Fields     PersonalFields
	FromUpdate bool
}

// ResolveEffective is a pure read. Every show/list path that surfaces
// personal fields for a role record goes through here — the base personal
// columns are never read directly when a target context exists.
func ResolveEffective(tx *gorm.DB, p *pmodel.PersonalModel, target UpdateTarget) (EffectivePersonal, error) {
	var latest pmodel.PersonalUpdateModel
	err := tx.
		Where("personal_update_personal_id = ?", p.PersonalID).
		Where("personal_update_target_kind = ?", target.Kind).
		Where("personal_update_target_slug = ?", target.Slug).
		Order("personal_update_created_at DESC, personal_update_id DESC").
		First(&latest).Error
	if err == nil {
		return EffectivePersonal{
			Slug:       p.PersonalSlug,
			Fields:     FieldsFromUpdate(&latest),
			FromUpdate: true,
		}, nil
	}
	if !helper.IsNotFound(err) {
		return EffectivePersonal{}, err
	}
	return EffectivePersonal{
		Slug:   p.PersonalSlug,
		Fields: FieldsFromPersonal(p),
	}, nil
}
