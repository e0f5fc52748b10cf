package urn

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidIdentifier is returned when a string does not match the
// urn:<namespace>:uuid:<uuid> scheme.
var ErrInvalidIdentifier = errors.New("invalid identifier: expected urn:<namespace>:uuid:<uuid>")

const uuidMarker = "uuid"

// Decode parses urn:<namespace>:uuid:<uuid> and returns the embedded UUID.
// Scheme matching is case-insensitive.
func Decode(s string) (uuid.UUID, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 {
		return uuid.Nil, ErrInvalidIdentifier
	}
	if !strings.EqualFold(parts[0], "urn") || parts[1] == "" || !strings.EqualFold(parts[2], uuidMarker) {
		return uuid.Nil, ErrInvalidIdentifier
	}
	id, err := uuid.Parse(parts[3])
	if err != nil {
		return uuid.Nil, ErrInvalidIdentifier
	}
	return id, nil
}

// Namespace returns the <namespace> segment of a URN, or "" if the
// string is not a valid URN.
func Namespace(s string) string {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 || !strings.EqualFold(parts[0], "urn") {
		return ""
	}
	return strings.ToLower(parts[1])
}

// Encode formats a UUID as urn:<prefix>:uuid:<uuid>, always lowercase.
func Encode(prefix string, id uuid.UUID) string {
	return "urn:" + strings.ToLower(prefix) + ":" + uuidMarker + ":" + id.String()
}

// IsURN reports whether the token parses under the URN scheme. Callers
// use it to tell surrogate-id references apart from opaque external
// identifiers.
func IsURN(s string) bool {
	_, err := Decode(s)
	return err == nil
}
