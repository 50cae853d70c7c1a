package request

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"creditref/internal/request/rules"
)

// Applicant is a natural person the request's partials describe.
//
// Invariants:
//   - Given and family names are present, valid and never change
//   - Always linked to the Request that created it
type Applicant struct {
	id          uuid.UUID
	request     *Request
	title       string
	givenName   string
	middleName  string
	familyName  string
	dateOfBirth time.Time
	gender      string
}

// ApplicantOption sets an optional attribute at construction.
type ApplicantOption func(a *Applicant) error

var (
	nameRule   = rules.Name()
	titleRule  = rules.OneOf("Mr", "Mrs", "Miss", "Ms", "Mx", "Dr", "Rev", "Prof")
	genderRule = rules.OneOf("M", "F")
)

// WithTitle sets the courtesy title, e.g. "Mr" or "Dr".
func WithTitle(title string) ApplicantOption {
	return func(a *Applicant) error {
		v, err := titleRule(title)
		if err != nil {
			return constructionError(fmt.Sprintf("invalid title: %v", err))
		}
		a.title, _ = v.AsText()
		return nil
	}
}

func WithMiddleName(name string) ApplicantOption {
	return func(a *Applicant) error {
		v, err := nameRule(name)
		if err != nil {
			return constructionError(fmt.Sprintf("invalid middle name: %v", err))
		}
		a.middleName, _ = v.AsText()
		return nil
	}
}

// WithDateOfBirth sets the date of birth. It must not be after the request's clock.
func WithDateOfBirth(dob time.Time) ApplicantOption {
	return func(a *Applicant) error {
		if dob.IsZero() {
			return constructionError("date of birth cannot be zero")
		}
		if dob.After(a.request.now()) {
			return constructionError("date of birth cannot be in the future")
		}
		y, m, d := dob.Date()
		a.dateOfBirth = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return nil
	}
}

// WithGender sets the gender code, "M" or "F".
func WithGender(gender string) ApplicantOption {
	return func(a *Applicant) error {
		v, err := genderRule(gender)
		if err != nil {
			return constructionError(fmt.Sprintf("invalid gender: %v", err))
		}
		a.gender, _ = v.AsText()
		return nil
	}
}

func newApplicant(r *Request, givenName, familyName string, opts ...ApplicantOption) (*Applicant, error) {
	given, err := requiredName("given name", givenName)
	if err != nil {
		return nil, err
	}
	family, err := requiredName("family name", familyName)
	if err != nil {
		return nil, err
	}

	a := &Applicant{
		id:         uuid.New(),
		request:    r,
		givenName:  given,
		familyName: family,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func requiredName(label, name string) (string, error) {
	v, err := nameRule(name)
	if err != nil {
		if rules.CollapseSpaces(name) == "" {
			return "", constructionError(label + " is required")
		}
		return "", constructionError(fmt.Sprintf("invalid %s: %v", label, err))
	}
	s, _ := v.AsText()
	return s, nil
}

func (a *Applicant) ID() uuid.UUID      { return a.id }
func (a *Applicant) Title() string      { return a.title }
func (a *Applicant) GivenName() string  { return a.givenName }
func (a *Applicant) MiddleName() string { return a.middleName }
func (a *Applicant) FamilyName() string { return a.familyName }
func (a *Applicant) Gender() string     { return a.gender }
func (a *Applicant) Request() *Request  { return a.request }

// DateOfBirth returns the date of birth and whether one was given.
func (a *Applicant) DateOfBirth() (time.Time, bool) {
	return a.dateOfBirth, !a.dateOfBirth.IsZero()
}
