package request

import (
	"fmt"
	"maps"
	"slices"

	"creditref/internal/request/rules"
	dErrors "creditref/pkg/domain-errors"
)

// Partial is a section of the request document bound to one applicant.
type Partial interface {
	Kind() PartialKind
	Applicant() *Applicant
	// Get returns the stored value of field, or rules.Unset.
	Get(field Field) rules.Value
	// Apply runs field's rule on args under the request's current mode.
	Apply(field Field, args ...any) error
	// Values returns a copy of every field that holds a value.
	Values() map[Field]rules.Value
	// Fields lists the fields this kind of partial accepts, sorted.
	Fields() []Field
}

// Observer is told about every set call a partial handles. Permissive-mode
// rejections are reported too, since the caller never sees them.
type Observer interface {
	FieldAccepted(kind PartialKind, field Field, value rules.Value)
	FieldRejected(err *ValidationError, mode Mode)
}

// fieldSet is the state machine shared by all partial kinds. Each field moves
// unset -> valid(v) -> valid(v') on accepted input; rejected input never
// changes it.
type fieldSet struct {
	kind      PartialKind
	applicant *Applicant
	catalog   map[Field]rules.Rule
	values    map[Field]rules.Value
}

func newFieldSet(kind PartialKind, applicant *Applicant, catalog map[Field]rules.Rule) (*fieldSet, error) {
	if applicant == nil || applicant.request == nil {
		return nil, constructionError(fmt.Sprintf("%s requires an applicant created by a request", kind))
	}
	return &fieldSet{
		kind:      kind,
		applicant: applicant,
		catalog:   catalog,
		values:    make(map[Field]rules.Value, len(catalog)),
	}, nil
}

func (f *fieldSet) Kind() PartialKind {
	return f.kind
}

func (f *fieldSet) Applicant() *Applicant {
	return f.applicant
}

func (f *fieldSet) Get(field Field) rules.Value {
	return f.values[field]
}

func (f *fieldSet) Apply(field Field, args ...any) error {
	rule, ok := f.catalog[field]
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("%s has no field %q", f.kind, field))
	}

	req := f.applicant.request
	value, err := rule(args...)
	if err != nil {
		verr := &ValidationError{Kind: f.kind, Field: field, Input: slices.Clone(args), Reason: err}
		// Mode is read at the moment of the mutation, never cached.
		mode := req.Mode()
		req.fieldRejected(verr, mode)
		if mode == ModePermissive {
			return nil
		}
		return verr
	}

	f.values[field] = value
	req.fieldAccepted(f.kind, field, value)
	return nil
}

func (f *fieldSet) Values() map[Field]rules.Value {
	return maps.Clone(f.values)
}

func (f *fieldSet) Fields() []Field {
	return slices.Sorted(maps.Keys(f.catalog))
}
