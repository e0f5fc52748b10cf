package entity

// FieldViolation describes a single field-level constraint failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
