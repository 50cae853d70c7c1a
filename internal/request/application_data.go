package request

import (
	"regexp"

	"creditref/internal/request/rules"
)

var (
	identifierPattern   = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)
	ninoPattern         = regexp.MustCompile(`^[A-CEGHJ-PR-TW-Z][A-CEGHJ-NPR-TW-Z][0-9]{6}[A-D]?$`)
	licencePattern      = regexp.MustCompile(`^[A-Z0-9]{1,18}$`)
	registrationPattern = regexp.MustCompile(`^[A-Z0-9]{1,8}$`)
	employerPattern     = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} &'.,()\-]{0,59}$`)
)

// applicationDataRules is the field catalog for ApplicationData. Code sets
// are the remote service's data contract.
var applicationDataRules = map[Field]rules.Rule{
	FieldMaritalStatus:     rules.OneOf("S", "M", "D", "W", "P"),
	FieldResidentialStatus: rules.OneOf("O", "T", "C", "L", "X"),
	FieldCountryOfBirth:    rules.OneOf("E", "S", "W", "N", "I", "O"),
	FieldOccupationStatus:  rules.OneOf("P", "T", "C"),
	FieldEmploymentStatus:  rules.OneOf("E", "S", "U", "R", "H", "T"),

	FieldHomeTelephone:         rules.Telephone("N", "X"),
	FieldWorkTelephone:         rules.Telephone("N", "X"),
	FieldMobileTelephoneNumber: rules.Digits(1, 15),

	FieldDependants:   rules.Dependants(),
	FieldEmailAddress: rules.Email(),

	FieldNationalInsuranceNumber: rules.Pattern(ninoPattern, rules.StripSpaces, rules.Upper),
	FieldPassportNumber:          rules.Pattern(identifierPattern, rules.Upper),
	FieldBankSortCode:            rules.Pattern(identifierPattern, rules.Upper),
	FieldBankAccountNumber:       rules.Pattern(identifierPattern, rules.Upper),
	FieldDrivingLicenseNumber:    rules.Pattern(licencePattern, rules.Upper),
	FieldVehicleRegistration:     rules.Pattern(registrationPattern, rules.StripSpaces, rules.Upper),

	FieldPlaceOfBirth:      rules.Name(),
	FieldMothersMaidenName: rules.Name(),
	FieldBirthSurname:      rules.Name(),
	FieldEmployerName:      rules.Pattern(employerPattern, rules.CollapseSpaces),

	FieldTimeWithBank:     rules.Duration(),
	FieldTimeWithEmployer: rules.Duration(),

	FieldCurrentAccountHeld: rules.TriState("Q"),
	FieldCheckCardHeld:      rules.TriState("Q"),
	FieldGrossAnnualIncome:  rules.Integer(),
}

// ApplicationData holds the personal, employment and banking details of one
// applicant.
//
// Each field has a getter returning the stored value (rules.Unset until a set
// succeeds) and a setter that always returns the receiver so calls can be
// chained. A setter's error is non-nil only in strict mode or for a field this
// partial does not have; rejected input never replaces a stored value.
type ApplicationData struct {
	*fieldSet
}

// NewApplicationData binds application data to applicant without registering
// it on the request. Use Request.CreateApplicationData to include it in the
// request document.
func NewApplicationData(applicant *Applicant) (*ApplicationData, error) {
	fs, err := newFieldSet(KindApplicationData, applicant, applicationDataRules)
	if err != nil {
		return nil, err
	}
	return &ApplicationData{fieldSet: fs}, nil
}

// Set runs field's rule on args. The receiver is returned whether or not the
// input was accepted.
func (d *ApplicationData) Set(field Field, args ...any) (*ApplicationData, error) {
	return d, d.Apply(field, args...)
}

func (d *ApplicationData) MaritalStatus() rules.Value { return d.Get(FieldMaritalStatus) }
func (d *ApplicationData) SetMaritalStatus(code any) (*ApplicationData, error) {
	return d.Set(FieldMaritalStatus, code)
}

func (d *ApplicationData) ResidentialStatus() rules.Value { return d.Get(FieldResidentialStatus) }
func (d *ApplicationData) SetResidentialStatus(code any) (*ApplicationData, error) {
	return d.Set(FieldResidentialStatus, code)
}

func (d *ApplicationData) CountryOfBirth() rules.Value { return d.Get(FieldCountryOfBirth) }
func (d *ApplicationData) SetCountryOfBirth(code any) (*ApplicationData, error) {
	return d.Set(FieldCountryOfBirth, code)
}

func (d *ApplicationData) OccupationStatus() rules.Value { return d.Get(FieldOccupationStatus) }
func (d *ApplicationData) SetOccupationStatus(code any) (*ApplicationData, error) {
	return d.Set(FieldOccupationStatus, code)
}

func (d *ApplicationData) EmploymentStatus() rules.Value { return d.Get(FieldEmploymentStatus) }
func (d *ApplicationData) SetEmploymentStatus(code any) (*ApplicationData, error) {
	return d.Set(FieldEmploymentStatus, code)
}

// HomeTelephone is "{area} {number}", or the flag N (none) or X (ex-directory).
func (d *ApplicationData) HomeTelephone() rules.Value { return d.Get(FieldHomeTelephone) }
func (d *ApplicationData) SetHomeTelephone(parts ...any) (*ApplicationData, error) {
	return d.Set(FieldHomeTelephone, parts...)
}

func (d *ApplicationData) WorkTelephone() rules.Value { return d.Get(FieldWorkTelephone) }
func (d *ApplicationData) SetWorkTelephone(parts ...any) (*ApplicationData, error) {
	return d.Set(FieldWorkTelephone, parts...)
}

func (d *ApplicationData) MobileTelephoneNumber() rules.Value { return d.Get(FieldMobileTelephoneNumber) }
func (d *ApplicationData) SetMobileTelephoneNumber(number any) (*ApplicationData, error) {
	return d.Set(FieldMobileTelephoneNumber, number)
}

// Dependants is 0..7, or 8 for "Z" (not given) and 9 for "Q" (not asked).
func (d *ApplicationData) Dependants() rules.Value { return d.Get(FieldDependants) }
func (d *ApplicationData) SetDependants(count any) (*ApplicationData, error) {
	return d.Set(FieldDependants, count)
}

func (d *ApplicationData) EmailAddress() rules.Value { return d.Get(FieldEmailAddress) }
func (d *ApplicationData) SetEmailAddress(address any) (*ApplicationData, error) {
	return d.Set(FieldEmailAddress, address)
}

func (d *ApplicationData) NationalInsuranceNumber() rules.Value { return d.Get(FieldNationalInsuranceNumber) }
func (d *ApplicationData) SetNationalInsuranceNumber(number any) (*ApplicationData, error) {
	return d.Set(FieldNationalInsuranceNumber, number)
}

func (d *ApplicationData) PassportNumber() rules.Value { return d.Get(FieldPassportNumber) }
func (d *ApplicationData) SetPassportNumber(number any) (*ApplicationData, error) {
	return d.Set(FieldPassportNumber, number)
}

func (d *ApplicationData) BankSortCode() rules.Value { return d.Get(FieldBankSortCode) }
func (d *ApplicationData) SetBankSortCode(code any) (*ApplicationData, error) {
	return d.Set(FieldBankSortCode, code)
}

func (d *ApplicationData) BankAccountNumber() rules.Value { return d.Get(FieldBankAccountNumber) }
func (d *ApplicationData) SetBankAccountNumber(number any) (*ApplicationData, error) {
	return d.Set(FieldBankAccountNumber, number)
}

func (d *ApplicationData) DrivingLicenseNumber() rules.Value { return d.Get(FieldDrivingLicenseNumber) }
func (d *ApplicationData) SetDrivingLicenseNumber(number any) (*ApplicationData, error) {
	return d.Set(FieldDrivingLicenseNumber, number)
}

func (d *ApplicationData) VehicleRegistration() rules.Value { return d.Get(FieldVehicleRegistration) }
func (d *ApplicationData) SetVehicleRegistration(registration any) (*ApplicationData, error) {
	return d.Set(FieldVehicleRegistration, registration)
}

func (d *ApplicationData) PlaceOfBirth() rules.Value { return d.Get(FieldPlaceOfBirth) }
func (d *ApplicationData) SetPlaceOfBirth(place any) (*ApplicationData, error) {
	return d.Set(FieldPlaceOfBirth, place)
}

func (d *ApplicationData) MothersMaidenName() rules.Value { return d.Get(FieldMothersMaidenName) }
func (d *ApplicationData) SetMothersMaidenName(name any) (*ApplicationData, error) {
	return d.Set(FieldMothersMaidenName, name)
}

func (d *ApplicationData) BirthSurname() rules.Value { return d.Get(FieldBirthSurname) }
func (d *ApplicationData) SetBirthSurname(name any) (*ApplicationData, error) {
	return d.Set(FieldBirthSurname, name)
}

func (d *ApplicationData) EmployerName() rules.Value { return d.Get(FieldEmployerName) }
func (d *ApplicationData) SetEmployerName(name any) (*ApplicationData, error) {
	return d.Set(FieldEmployerName, name)
}

// TimeWithBank is formatted as "10y 3m", "10y" or "3m".
func (d *ApplicationData) TimeWithBank() rules.Value { return d.Get(FieldTimeWithBank) }
func (d *ApplicationData) SetTimeWithBank(yearsMonths ...any) (*ApplicationData, error) {
	return d.Set(FieldTimeWithBank, yearsMonths...)
}

func (d *ApplicationData) TimeWithEmployer() rules.Value { return d.Get(FieldTimeWithEmployer) }
func (d *ApplicationData) SetTimeWithEmployer(yearsMonths ...any) (*ApplicationData, error) {
	return d.Set(FieldTimeWithEmployer, yearsMonths...)
}

// CurrentAccountHeld is a boolean, or the text "Q" when the question was not asked.
func (d *ApplicationData) CurrentAccountHeld() rules.Value { return d.Get(FieldCurrentAccountHeld) }
func (d *ApplicationData) SetCurrentAccountHeld(held any) (*ApplicationData, error) {
	return d.Set(FieldCurrentAccountHeld, held)
}

func (d *ApplicationData) CheckCardHeld() rules.Value { return d.Get(FieldCheckCardHeld) }
func (d *ApplicationData) SetCheckCardHeld(held any) (*ApplicationData, error) {
	return d.Set(FieldCheckCardHeld, held)
}

// GrossAnnualIncome is an integer; setters also accept a string holding only
// an integer.
func (d *ApplicationData) GrossAnnualIncome() rules.Value { return d.Get(FieldGrossAnnualIncome) }
func (d *ApplicationData) SetGrossAnnualIncome(amount any) (*ApplicationData, error) {
	return d.Set(FieldGrossAnnualIncome, amount)
}
