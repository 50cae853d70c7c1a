package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"creditref/internal/request"
	dErrors "creditref/pkg/domain-errors"
)

// BuildInput is the client-facing description of a request to build.
type BuildInput struct {
	// Mode overrides the service default when set.
	Mode       *request.Mode    `json:"mode,omitempty"`
	Applicants []ApplicantInput `json:"applicants"`
}

type ApplicantInput struct {
	Title      string `json:"title,omitempty"`
	GivenName  string `json:"given_name"`
	MiddleName string `json:"middle_name,omitempty"`
	FamilyName string `json:"family_name"`
	// DateOfBirth is YYYY-MM-DD.
	DateOfBirth string `json:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"`

	ApplicationData FieldInput   `json:"application_data,omitempty"`
	LocationDetails []FieldInput `json:"location_details,omitempty"`
}

// FieldInput maps field names to setter arguments. A JSON array supplies
// several arguments (["01452", "123456"] for a telephone, [10, 3] for a
// duration); any other value is the single argument.
type FieldInput map[request.Field]json.RawMessage

func (f FieldInput) args(field request.Field) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(f[field]))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, fmt.Sprintf("field %s is not valid JSON", field))
	}
	if list, ok := v.([]any); ok {
		return list, nil
	}
	return []any{v}, nil
}

func (a ApplicantInput) options() ([]request.ApplicantOption, error) {
	var opts []request.ApplicantOption
	if a.Title != "" {
		opts = append(opts, request.WithTitle(a.Title))
	}
	if a.MiddleName != "" {
		opts = append(opts, request.WithMiddleName(a.MiddleName))
	}
	if a.DateOfBirth != "" {
		dob, err := time.Parse(time.DateOnly, a.DateOfBirth)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "date_of_birth must be YYYY-MM-DD")
		}
		opts = append(opts, request.WithDateOfBirth(dob))
	}
	if a.Gender != "" {
		opts = append(opts, request.WithGender(a.Gender))
	}
	return opts, nil
}
