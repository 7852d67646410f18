// file: internals/helpers/dberr.go
package helper

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsDuplicateKey detects unique violations (Postgres SQLSTATE 23505 and
// friends) from the driver error text.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "23505")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
