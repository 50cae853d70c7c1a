// Package request builds the applicant and application sections of an outbound
// credit-reference request.
//
// A Request owns the error mode and acts as the factory for applicants and
// partials. Every partial reads the mode from its applicant's request at the
// moment a field is set, so switching the mode affects all partials at once
// and never rewrites values already stored.
//
// A Request is not safe for concurrent use; build one per outbound document.
package request

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"creditref/internal/request/rules"
)

// Request is the aggregate root for one outbound document.
type Request struct {
	mode       Mode
	now        func() time.Time
	observer   Observer
	applicants []*Applicant
	partials   []Partial
}

type Option func(r *Request)

// WithMode sets the initial mode. The default is ModeStrict.
func WithMode(mode Mode) Option {
	return func(r *Request) {
		r.mode = mode
	}
}

func WithObserver(observer Observer) Option {
	return func(r *Request) {
		r.observer = observer
	}
}

// WithClock overrides the clock used for date-of-birth checks.
func WithClock(now func() time.Time) Option {
	return func(r *Request) {
		r.now = now
	}
}

// New creates an empty request in strict mode.
func New(opts ...Option) *Request {
	r := &Request{mode: ModeStrict, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Request) Mode() Mode {
	return r.mode
}

// SetMode switches the error mode for every subsequent set call on every
// partial of this request.
func (r *Request) SetMode(mode Mode) *Request {
	r.mode = mode
	return r
}

// CreateApplicant constructs and registers an applicant. Missing or malformed
// names fail with a construction error in either mode.
func (r *Request) CreateApplicant(givenName, familyName string, opts ...ApplicantOption) (*Applicant, error) {
	a, err := newApplicant(r, givenName, familyName, opts...)
	if err != nil {
		return nil, err
	}
	r.applicants = append(r.applicants, a)
	return a, nil
}

// CreateApplicationData constructs application data for applicant and
// registers it for serialization.
func (r *Request) CreateApplicationData(applicant *Applicant) (*ApplicationData, error) {
	if err := r.owns(applicant); err != nil {
		return nil, err
	}
	d, err := NewApplicationData(applicant)
	if err != nil {
		return nil, err
	}
	r.partials = append(r.partials, d)
	return d, nil
}

// CreateLocationDetails constructs an address section for applicant and
// registers it for serialization.
func (r *Request) CreateLocationDetails(applicant *Applicant) (*LocationDetails, error) {
	if err := r.owns(applicant); err != nil {
		return nil, err
	}
	l, err := NewLocationDetails(applicant)
	if err != nil {
		return nil, err
	}
	r.partials = append(r.partials, l)
	return l, nil
}

// CreatePartial constructs and registers a partial of the given kind.
func (r *Request) CreatePartial(kind PartialKind, applicant *Applicant) (Partial, error) {
	switch kind {
	case KindApplicationData:
		d, err := r.CreateApplicationData(applicant)
		if err != nil {
			return nil, err
		}
		return d, nil
	case KindLocationDetails:
		l, err := r.CreateLocationDetails(applicant)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, constructionError("unknown partial kind " + string(kind))
	}
}

func (r *Request) owns(applicant *Applicant) error {
	if applicant == nil {
		return constructionError("applicant is required")
	}
	if applicant.request != r {
		return constructionError("applicant belongs to another request")
	}
	return nil
}

func (r *Request) Applicants() []*Applicant {
	return slices.Clone(r.applicants)
}

// Partials returns the partials created through this request's factories.
func (r *Request) Partials() []Partial {
	return slices.Clone(r.partials)
}

// PartialsFor returns the registered partials bound to applicant.
func (r *Request) PartialsFor(applicant *Applicant) []Partial {
	var out []Partial
	for _, p := range r.partials {
		if p.Applicant() == applicant {
			out = append(out, p)
		}
	}
	return out
}

func (r *Request) fieldAccepted(kind PartialKind, field Field, value rules.Value) {
	if r.observer != nil {
		r.observer.FieldAccepted(kind, field, value)
	}
}

func (r *Request) fieldRejected(err *ValidationError, mode Mode) {
	if r.observer != nil {
		r.observer.FieldRejected(err, mode)
	}
}

// Document is the serializer-facing snapshot of a request: applicant
// identity plus the stored fields of every registered partial.
type Document struct {
	Mode       Mode                `json:"mode"`
	Applicants []ApplicantDocument `json:"applicants"`
}

type ApplicantDocument struct {
	ID          uuid.UUID         `json:"id"`
	Title       string            `json:"title,omitempty"`
	GivenName   string            `json:"given_name"`
	MiddleName  string            `json:"middle_name,omitempty"`
	FamilyName  string            `json:"family_name"`
	DateOfBirth string            `json:"date_of_birth,omitempty"`
	Gender      string            `json:"gender,omitempty"`
	Partials    []PartialDocument `json:"partials"`
}

type PartialDocument struct {
	Kind   PartialKind           `json:"kind"`
	Fields map[Field]rules.Value `json:"fields"`
}

// Document snapshots the request. Later changes to the request do not affect
// the returned value.
func (r *Request) Document() Document {
	doc := Document{
		Mode:       r.mode,
		Applicants: make([]ApplicantDocument, 0, len(r.applicants)),
	}
	for _, a := range r.applicants {
		ad := ApplicantDocument{
			ID:         a.id,
			Title:      a.title,
			GivenName:  a.givenName,
			MiddleName: a.middleName,
			FamilyName: a.familyName,
			Gender:     a.gender,
			Partials:   []PartialDocument{},
		}
		if dob, ok := a.DateOfBirth(); ok {
			ad.DateOfBirth = dob.Format(time.DateOnly)
		}
		for _, p := range r.PartialsFor(a) {
			ad.Partials = append(ad.Partials, PartialDocument{Kind: p.Kind(), Fields: p.Values()})
		}
		doc.Applicants = append(doc.Applicants, ad)
	}
	return doc
}
