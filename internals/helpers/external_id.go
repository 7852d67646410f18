// file: internals/helpers/external_id.go
package helper

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// External ids are always 36 characters: a random UUID in API flows,
// a fixed-width numeric string in seed/fixture flows.

const externalIDLen = 36

// NewExternalID returns a fresh random external id.
func NewExternalID() string {
	return uuid.NewString()
}

// FixtureID returns the deterministic seed id for an index:
// "1" followed by zero padding, ending with the index digits.
func FixtureID(index int) string {
	digits := strconv.Itoa(index)
	if len(digits) >= externalIDLen-1 {
		return "1" + digits[:externalIDLen-1]
	}
	return "1" + strings.Repeat("0", externalIDLen-1-len(digits)) + digits
}
