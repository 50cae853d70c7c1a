package request

// Field names one field of a partial. The string form is the wire name used
// in documents and the HTTP API.
type Field string

// PartialKind names a section of the outbound request document.
type PartialKind string

const (
	KindApplicationData PartialKind = "application_data"
	KindLocationDetails PartialKind = "location_details"
)

// ApplicationData fields.
const (
	FieldMaritalStatus           Field = "marital_status"
	FieldResidentialStatus       Field = "residential_status"
	FieldCountryOfBirth          Field = "country_of_birth"
	FieldOccupationStatus        Field = "occupation_status"
	FieldEmploymentStatus        Field = "employment_status"
	FieldHomeTelephone           Field = "home_telephone"
	FieldWorkTelephone           Field = "work_telephone"
	FieldMobileTelephoneNumber   Field = "mobile_telephone_number"
	FieldDependants              Field = "dependants"
	FieldEmailAddress            Field = "email_address"
	FieldNationalInsuranceNumber Field = "national_insurance_number"
	FieldPassportNumber          Field = "passport_number"
	FieldBankSortCode            Field = "bank_sort_code"
	FieldBankAccountNumber       Field = "bank_account_number"
	FieldDrivingLicenseNumber    Field = "driving_license_number"
	FieldVehicleRegistration     Field = "vehicle_registration"
	FieldPlaceOfBirth            Field = "place_of_birth"
	FieldMothersMaidenName       Field = "mothers_maiden_name"
	FieldBirthSurname            Field = "birth_surname"
	FieldEmployerName            Field = "employer_name"
	FieldTimeWithBank            Field = "time_with_bank"
	FieldTimeWithEmployer        Field = "time_with_employer"
	FieldCurrentAccountHeld      Field = "current_account_held"
	FieldCheckCardHeld           Field = "check_card_held"
	FieldGrossAnnualIncome       Field = "gross_annual_income"
)

// LocationDetails fields.
const (
	FieldFlat          Field = "flat"
	FieldHouseName     Field = "house_name"
	FieldHouseNumber   Field = "house_number"
	FieldStreet        Field = "street"
	FieldStreet2       Field = "street2"
	FieldDistrict      Field = "district"
	FieldPostTown      Field = "post_town"
	FieldCounty        Field = "county"
	FieldPostcode      Field = "postcode"
	FieldCountry       Field = "country"
	FieldTimeAtAddress Field = "time_at_address"
)
