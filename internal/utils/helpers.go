package utils

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	referenceAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	referenceSize     = 10
)

// TicketReference generates a short human-readable reference code for
// support tickets, e.g. QW-7GK2M9X4TD.
func TicketReference() string {
	return "QW-" + gonanoid.MustGenerate(referenceAlphabet, referenceSize)
}

func StringPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func TimePtr(t time.Time) *time.Time {
	return &t
}
