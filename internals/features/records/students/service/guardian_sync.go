// file: internals/features/records/students/service/guardian_sync.go
package service

import (
	"errors"

	"gorm.io/gorm"

	pmodel "kyaungku_backend/internals/features/records/personals/model"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	"kyaungku_backend/internals/features/records/lifecycle"
	smodel "kyaungku_backend/internals/features/records/students/model"
)

// GuardianSpec is one guardian as submitted in a student payload, already
// normalized and validated.
type GuardianSpec struct {
	Relation   smodel.GuardianRelation
	Fields     pservice.PersonalFields
	Occupation *string
	Phone      *string
	Email      *string
}

// CreateGuardian runs the dedup gate for the guardian's personal (no
// exclusivity check, guardians may share a personal with anyone) and
// inserts the guardian row.
func CreateGuardian(tx *gorm.DB, studentSlug string, spec GuardianSpec) (*smodel.GuardianModel, error) {
	p, _, err := pservice.ResolveOrCreatePersonal(tx, spec.Fields)
	if err != nil {
		return nil, err
	}
	g := smodel.GuardianModel{
		GuardianPersonalSlug: p.PersonalSlug,
		GuardianStudentSlug:  studentSlug,
		GuardianRelation:     spec.Relation,
		GuardianName:         spec.Fields.FullName,
		GuardianOccupation:   spec.Occupation,
		GuardianPhone:        spec.Phone,
		GuardianEmail:        spec.Email,
	}
	if err := tx.Create(&g).Error; err != nil {
		return nil, err
	}
	// The gate may reuse a personal whose effective data differs from the
	// submitted fields; record the difference against the new guardian.
	target, err := pservice.NewUpdateTarget(pmodel.TargetGuardian, g.GuardianSlug)
	if err != nil {
		return nil, err
	}
	if _, err := pservice.ApplyPersonalEdit(tx, p, target, spec.Fields); err != nil {
		return nil, err
	}
	return &g, nil
}

// SyncGuardians reconciles a student's live guardians against the update
// payload, keyed by relation:
//   - relation present on both sides: role fields updated in place, identity
//     changes appended to that guardian's snapshot trail (the row and its
//     history survive);
//   - relation only in the payload: gate + create;
//   - relation only in the database: soft-deleted via the lifecycle machine.
func SyncGuardians(tx *gorm.DB, studentSlug string, specs []GuardianSpec) error {
	var existing []smodel.GuardianModel
	if err := tx.
		Where("guardian_student_slug = ?", studentSlug).
		Find(&existing).Error; err != nil {
		return err
	}

	byRelation := make(map[smodel.GuardianRelation]*smodel.GuardianModel, len(existing))
	for i := range existing {
		byRelation[existing[i].GuardianRelation] = &existing[i]
	}

	seen := make(map[smodel.GuardianRelation]struct{}, len(specs))
	for _, spec := range specs {
		seen[spec.Relation] = struct{}{}

		g, ok := byRelation[spec.Relation]
		if !ok {
			// A trashed row still owns the (student, relation) pair; revive
			// it instead of colliding with the unique index.
			var trashed smodel.GuardianModel
			err := tx.Unscoped().
				Where("guardian_student_slug = ?", studentSlug).
				Where("guardian_relation = ?", spec.Relation).
				First(&trashed).Error
			switch {
			case err == nil:
				if err := lifecycle.HandleAction(tx, &trashed, smodel.GuardianLifecycle, "restore"); err != nil {
					return err
				}
				// Reload so the later Save does not re-write the stale
				// deleted_at from the trashed copy.
				if err := tx.Where("guardian_slug = ?", trashed.GuardianSlug).First(&trashed).Error; err != nil {
					return err
				}
				g = &trashed
			case errors.Is(err, gorm.ErrRecordNotFound):
				if _, err := CreateGuardian(tx, studentSlug, spec); err != nil {
					return err
				}
				continue
			default:
				return err
			}
		}

		p, _, err := pservice.ResolveOrCreatePersonal(tx, spec.Fields)
		if err != nil {
			return err
		}
		// Repoint when the submitted key resolves to a different person.
		if g.GuardianPersonalSlug != p.PersonalSlug {
			g.GuardianPersonalSlug = p.PersonalSlug
		}
		g.GuardianOccupation = spec.Occupation
		g.GuardianPhone = spec.Phone
		g.GuardianEmail = spec.Email
		if err := tx.Save(g).Error; err != nil {
			return err
		}

		target, err := pservice.NewUpdateTarget(pmodel.TargetGuardian, g.GuardianSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, spec.Fields); err != nil {
			return err
		}
	}

	for rel, g := range byRelation {
		if _, ok := seen[rel]; ok {
			continue
		}
		if err := lifecycle.HandleAction(tx, g, smodel.GuardianLifecycle, "delete"); err != nil {
			return err
		}
	}
	return nil
}
