package common

import (
	"github.com/google/uuid"
)

// NewSearchID generates a unique search ID with the "srch_" prefix
// Format: srch_<uuid>
func NewSearchID() string {
	return "srch_" + uuid.New().String()
}
