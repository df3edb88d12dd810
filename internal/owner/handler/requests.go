package handler

import (
	"boiregistry/internal/owner/models"
	"boiregistry/internal/validation"
)

// newOwnerSchema builds the rule table for beneficial owner payloads. The
// clock feeds the age rule so tests can pin the current date. Conditional
// requirements only fire while their discriminator holds the sentinel value,
// so partial updates stay unaffected unless they touch the discriminator.
func newOwnerSchema(now validation.Clock) validation.Schema {
	return validation.Schema{
		Rules: []validation.Rule{
			{
				Field:           "firstName",
				RequiredMessage: "First Name is required",
				Checks:          []validation.Check{validation.Length(1, 50, "First Name must be between 1 and 50 characters")},
			},
			{
				Field:  "middleName",
				Checks: []validation.Check{validation.MaxLen(50, "Middle Name cannot exceed 50 characters")},
			},
			{
				Field:           "lastName",
				RequiredMessage: "Last Name is required",
				Checks:          []validation.Check{validation.Length(1, 50, "Last Name must be between 1 and 50 characters")},
			},
			{
				Field:           "dateOfBirth",
				RequiredMessage: "Date of Birth is required",
				Checks: []validation.Check{
					validation.DateYMD("Date of Birth must be a valid date (YYYY-MM-DD)"),
					validation.Adult(18,
						"Beneficial owner must be at least 18 years old",
						"Date of Birth cannot be in the future",
						now),
				},
			},
			{
				Field:           "residenceLocation",
				RequiredMessage: "Residence location is required",
				Checks:          []validation.Check{validation.OneOfMsg(`Residence location must be either "inside" or "outside"`, models.ResidenceLocations...)},
			},
			{
				Field:           "country",
				RequiredMessage: "Country is required",
				Checks:          []validation.Check{validation.Length(2, 100, "Country must be between 2 and 100 characters")},
			},
			{
				Field:           "street",
				RequiredMessage: "Street address is required",
				Checks:          []validation.Check{validation.Length(5, 200, "Street address must be between 5 and 200 characters")},
			},
			{
				Field:           "city",
				RequiredMessage: "City is required",
				Checks:          []validation.Check{validation.Length(2, 100, "City must be between 2 and 100 characters")},
			},
			{
				Field:           "stateProvidence",
				RequiredMessage: "State/Providence is required",
				Checks:          []validation.Check{validation.Length(2, 100, "State/Providence must be between 2 and 100 characters")},
			},
			{
				Field:           "zipPostalCode",
				RequiredMessage: "Zip/Postal Code is required",
				Checks:          []validation.Check{validation.Length(3, 20, "Zip/Postal Code must be between 3 and 20 characters")},
			},
			{
				Field:           "identifyingDocumentType",
				RequiredMessage: "Identifying document type is required",
				Checks:          []validation.Check{validation.OneOfMsg("Document type must be license, id, passport, or other", models.DocumentTypes...)},
			},
			{
				Field:           "identifyingDocumentNumber",
				RequiredMessage: "Identifying document number is required",
				Checks:          []validation.Check{validation.Length(3, 50, "Document number must be between 3 and 50 characters")},
			},
			{
				Field:           "issuingJurisdiction",
				RequiredMessage: "Country/Jurisdiction is required",
			},
			{
				Field:  "jurisdictionStateProvidence",
				Checks: []validation.Check{validation.MaxLen(100, "State/Providence cannot exceed 100 characters")},
			},
			{
				Field:           "photoId",
				RequiredMessage: "Photo ID is required",
				Checks:          []validation.Check{validation.IsString("Photo ID must be a valid string")},
			},
			{
				Field:           "certificationAccepted",
				RequiredMessage: "Certification must be accepted",
				Checks: []validation.Check{validation.MustBeTrue(
					"Certification must be a boolean value",
					"Client must certify that all information is accurate and complete")},
			},
			{
				Field:           "serviceTermsAccepted",
				RequiredMessage: "Service terms must be accepted",
				Checks: []validation.Check{validation.MustBeTrue(
					"Service terms must be a boolean value",
					"Client must accept service terms and delivery timeframe")},
			},
			{
				Field:           "electronicSignature",
				RequiredMessage: "Electronic signature is required",
				Checks:          []validation.Check{validation.Length(2, 100, "Electronic signature must be between 2 and 100 characters")},
			},
			{
				Field:           "reportingCompanyId",
				RequiredMessage: "Associated reporting company is required",
				Checks:          []validation.Check{validation.PositiveInt("Reporting company ID must be a valid positive integer")},
			},
			{
				Field:  "isActive",
				Checks: []validation.Check{validation.Boolean("isActive must be a boolean value")},
			},
		},
		Conditionals: []validation.Conditional{
			{
				Discriminator: "residenceLocation",
				Sentinel:      "outside",
				Dependent:     "countryOutsideUS",
				Message:       "Country Outside US is required when residence is outside USA",
				Checks:        []validation.Check{validation.Length(2, 100, "Country Outside US must be between 2 and 100 characters")},
			},
			{
				Discriminator: "issuingJurisdiction",
				Sentinel:      "other",
				Dependent:     "jurisdictionCountryOutsideUS",
				Message:       "Country Outside US is required when jurisdiction is other",
				Checks:        []validation.Check{validation.Length(2, 100, "Country Outside US must be between 2 and 100 characters")},
			},
		},
	}
}

// bindOwner builds the entity from a validated create payload.
func bindOwner(p map[string]any) *models.BeneficialOwner {
	o := &models.BeneficialOwner{
		FirstName:                    validation.String(p, "firstName"),
		MiddleName:                   validation.String(p, "middleName"),
		LastName:                     validation.String(p, "lastName"),
		ResidenceLocation:            models.ResidenceLocation(validation.String(p, "residenceLocation")),
		Country:                      validation.String(p, "country"),
		CountryOutsideUS:             validation.String(p, "countryOutsideUS"),
		Street:                       validation.String(p, "street"),
		City:                         validation.String(p, "city"),
		StateProvidence:              validation.String(p, "stateProvidence"),
		ZipPostalCode:                validation.String(p, "zipPostalCode"),
		IdentifyingDocumentType:      models.DocumentType(validation.String(p, "identifyingDocumentType")),
		IdentifyingDocumentNumber:    validation.String(p, "identifyingDocumentNumber"),
		IssuingJurisdiction:          validation.String(p, "issuingJurisdiction"),
		JurisdictionCountryOutsideUS: validation.String(p, "jurisdictionCountryOutsideUS"),
		JurisdictionStateProvidence:  validation.String(p, "jurisdictionStateProvidence"),
		PhotoID:                      validation.String(p, "photoId"),
		ElectronicSignature:          validation.String(p, "electronicSignature"),
	}
	if d, ok := validation.Date(p, "dateOfBirth"); ok {
		o.DateOfBirth = d
	}
	if b, ok := validation.Bool(p, "certificationAccepted"); ok {
		o.CertificationAccepted = b
	}
	if b, ok := validation.Bool(p, "serviceTermsAccepted"); ok {
		o.ServiceTermsAccepted = b
	}
	if n, ok := validation.Int64(p, "reportingCompanyId"); ok {
		o.ReportingCompanyID = n
	}
	o.IsActive = true
	if b, ok := validation.Bool(p, "isActive"); ok {
		o.IsActive = b
	}
	return o
}

// bindOwnerPatch builds the partial update from a validated payload; absent
// fields stay nil.
func bindOwnerPatch(p map[string]any) models.OwnerPatch {
	patch := models.OwnerPatch{
		FirstName:                    validation.StringPtr(p, "firstName"),
		MiddleName:                   validation.StringPtr(p, "middleName"),
		LastName:                     validation.StringPtr(p, "lastName"),
		DateOfBirth:                  validation.DatePtr(p, "dateOfBirth"),
		Country:                      validation.StringPtr(p, "country"),
		CountryOutsideUS:             validation.StringPtr(p, "countryOutsideUS"),
		Street:                       validation.StringPtr(p, "street"),
		City:                         validation.StringPtr(p, "city"),
		StateProvidence:              validation.StringPtr(p, "stateProvidence"),
		ZipPostalCode:                validation.StringPtr(p, "zipPostalCode"),
		IdentifyingDocumentNumber:    validation.StringPtr(p, "identifyingDocumentNumber"),
		IssuingJurisdiction:          validation.StringPtr(p, "issuingJurisdiction"),
		JurisdictionCountryOutsideUS: validation.StringPtr(p, "jurisdictionCountryOutsideUS"),
		JurisdictionStateProvidence:  validation.StringPtr(p, "jurisdictionStateProvidence"),
		PhotoID:                      validation.StringPtr(p, "photoId"),
		ElectronicSignature:          validation.StringPtr(p, "electronicSignature"),
		CertificationAccepted:        validation.BoolPtr(p, "certificationAccepted"),
		ServiceTermsAccepted:         validation.BoolPtr(p, "serviceTermsAccepted"),
		ReportingCompanyID:           validation.Int64Ptr(p, "reportingCompanyId"),
		IsActive:                     validation.BoolPtr(p, "isActive"),
	}
	if s := validation.String(p, "residenceLocation"); s != "" {
		v := models.ResidenceLocation(s)
		patch.ResidenceLocation = &v
	}
	if s := validation.String(p, "identifyingDocumentType"); s != "" {
		v := models.DocumentType(s)
		patch.IdentifyingDocumentType = &v
	}
	return patch
}
