// file: internals/features/records/lifecycle/lifecycle.go
package lifecycle

import (
	"errors"

	"gorm.io/gorm"
)

// Shared status/soft-delete state machine for the role record kinds.
// Composed into each model (not inherited): a model satisfies Record and
// owns its Rules.

var (
	ErrInvalidAction = errors.New("invalid action")
	// ErrNotDeleted: restore requested on a live record. Rejected operation,
	// not a server failure.
	ErrNotDeleted = errors.New("record is not deleted")
)

// Record is what a role model exposes to the state machine. The value
// behind the interface must be a pointer to the GORM model so Save/Delete
// operate on the right row.
type Record interface {
	RecordSlug() string
	RecordStatus() string
	SetRecordStatus(status string)
	RecordDeleted() bool
	// Column names, needed for the restore update.
	StatusColumn() string
	DeletedAtColumn() string
}

// Rules is a role kind's status table.
type Rules struct {
	// Statuses legal as explicit actions (always allowed, no transition
	// restrictions are modeled).
	Statuses []string
	// DeleteStatus is forced before soft-deleting.
	DeleteStatus string
	// DefaultStatus is the initial status and the restore target.
	DefaultStatus string
}

func (r Rules) isStatus(action string) bool {
	for _, s := range r.Statuses {
		if s == action {
			return true
		}
	}
	return false
}

// HandleAction drives one transition:
//   - a status value: set and persist;
//   - "delete": set the delete status, persist, then soft delete (both
//     writes observable, in that order);
//   - "restore": only legal on a soft-deleted record; clears the delete
//     marker and resets to the default status.
//
// rec must have been loaded Unscoped so restore can see trashed rows.
func HandleAction(tx *gorm.DB, rec Record, rules Rules, action string) error {
	switch {
	case rules.isStatus(action):
		rec.SetRecordStatus(action)
		return tx.Unscoped().Save(rec).Error

	case action == "delete":
		rec.SetRecordStatus(rules.DeleteStatus)
		if err := tx.Unscoped().Save(rec).Error; err != nil {
			return err
		}
		return tx.Delete(rec).Error

	case action == "restore":
		if !rec.RecordDeleted() {
			return ErrNotDeleted
		}
		if err := tx.Unscoped().Model(rec).
			Updates(map[string]any{
				rec.DeletedAtColumn(): nil,
				rec.StatusColumn():    rules.DefaultStatus,
			}).Error; err != nil {
			return err
		}
		// Keep the in-memory record in step for callers that render it.
		rec.SetRecordStatus(rules.DefaultStatus)
		return nil

	default:
		return ErrInvalidAction
	}
}
