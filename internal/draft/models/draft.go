package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"creditref/internal/request"
)

// Draft is a built request document waiting to be sent to the bureau.
type Draft struct {
	ID       uuid.UUID        `json:"id"`
	Document request.Document `json:"document"`
	// Rejections lists inputs discarded in permissive mode.
	Rejections []Rejection `json:"rejections"`
	CreatedBy  string      `json:"created_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Rejection records one field input a rule turned down.
type Rejection struct {
	Kind   request.PartialKind `json:"kind"`
	Field  request.Field       `json:"field"`
	Input  json.RawMessage     `json:"input"`
	Reason string              `json:"reason"`
}

// NewRejection converts a validation error into its stored form.
func NewRejection(err *request.ValidationError) Rejection {
	input, marshalErr := json.Marshal(err.Input)
	if marshalErr != nil {
		input = json.RawMessage("null")
	}
	return Rejection{
		Kind:   err.Kind,
		Field:  err.Field,
		Input:  input,
		Reason: err.Reason.Error(),
	}
}

// Clean reports whether every field input was accepted.
func (d *Draft) Clean() bool {
	return len(d.Rejections) == 0
}
