package request

import (
	"regexp"

	"creditref/internal/request/rules"
)

var (
	flatPattern        = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} /\-]{0,15}$`)
	houseNamePattern   = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} '&.,\-]{0,39}$`)
	houseNumberPattern = regexp.MustCompile(`^[0-9]{1,5}[A-Z]?$`)
	streetPattern      = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} '&.,\-]{0,59}$`)
)

var locationDetailsRules = map[Field]rules.Rule{
	FieldFlat:          rules.Pattern(flatPattern, rules.CollapseSpaces, rules.Upper),
	FieldHouseName:     rules.Pattern(houseNamePattern, rules.CollapseSpaces, rules.TitleCase),
	FieldHouseNumber:   rules.Pattern(houseNumberPattern, rules.StripSpaces, rules.Upper),
	FieldStreet:        rules.Pattern(streetPattern, rules.CollapseSpaces, rules.TitleCase),
	FieldStreet2:       rules.Pattern(streetPattern, rules.CollapseSpaces, rules.TitleCase),
	FieldDistrict:      rules.Name(),
	FieldPostTown:      rules.Name(),
	FieldCounty:        rules.Name(),
	FieldPostcode:      rules.Postcode(),
	FieldCountry:       rules.OneOf("GB", "IE", "IM", "JE", "GG"),
	FieldTimeAtAddress: rules.Duration(),
}

// LocationDetails is a UK address the applicant lives or has lived at. It
// follows the same getter/setter contract as ApplicationData.
type LocationDetails struct {
	*fieldSet
}

// NewLocationDetails binds an address to applicant without registering it on
// the request.
func NewLocationDetails(applicant *Applicant) (*LocationDetails, error) {
	fs, err := newFieldSet(KindLocationDetails, applicant, locationDetailsRules)
	if err != nil {
		return nil, err
	}
	return &LocationDetails{fieldSet: fs}, nil
}

func (l *LocationDetails) Set(field Field, args ...any) (*LocationDetails, error) {
	return l, l.Apply(field, args...)
}

func (l *LocationDetails) Flat() rules.Value { return l.Get(FieldFlat) }
func (l *LocationDetails) SetFlat(flat any) (*LocationDetails, error) {
	return l.Set(FieldFlat, flat)
}

func (l *LocationDetails) HouseName() rules.Value { return l.Get(FieldHouseName) }
func (l *LocationDetails) SetHouseName(name any) (*LocationDetails, error) {
	return l.Set(FieldHouseName, name)
}

func (l *LocationDetails) HouseNumber() rules.Value { return l.Get(FieldHouseNumber) }
func (l *LocationDetails) SetHouseNumber(number any) (*LocationDetails, error) {
	return l.Set(FieldHouseNumber, number)
}

func (l *LocationDetails) Street() rules.Value { return l.Get(FieldStreet) }
func (l *LocationDetails) SetStreet(street any) (*LocationDetails, error) {
	return l.Set(FieldStreet, street)
}

func (l *LocationDetails) Street2() rules.Value { return l.Get(FieldStreet2) }
func (l *LocationDetails) SetStreet2(street any) (*LocationDetails, error) {
	return l.Set(FieldStreet2, street)
}

func (l *LocationDetails) District() rules.Value { return l.Get(FieldDistrict) }
func (l *LocationDetails) SetDistrict(district any) (*LocationDetails, error) {
	return l.Set(FieldDistrict, district)
}

func (l *LocationDetails) PostTown() rules.Value { return l.Get(FieldPostTown) }
func (l *LocationDetails) SetPostTown(town any) (*LocationDetails, error) {
	return l.Set(FieldPostTown, town)
}

func (l *LocationDetails) County() rules.Value { return l.Get(FieldCounty) }
func (l *LocationDetails) SetCounty(county any) (*LocationDetails, error) {
	return l.Set(FieldCounty, county)
}

func (l *LocationDetails) Postcode() rules.Value { return l.Get(FieldPostcode) }
func (l *LocationDetails) SetPostcode(postcode any) (*LocationDetails, error) {
	return l.Set(FieldPostcode, postcode)
}

func (l *LocationDetails) Country() rules.Value { return l.Get(FieldCountry) }
func (l *LocationDetails) SetCountry(code any) (*LocationDetails, error) {
	return l.Set(FieldCountry, code)
}

func (l *LocationDetails) TimeAtAddress() rules.Value { return l.Get(FieldTimeAtAddress) }
func (l *LocationDetails) SetTimeAtAddress(yearsMonths ...any) (*LocationDetails, error) {
	return l.Set(FieldTimeAtAddress, yearsMonths...)
}
