package handler

import (
	"boiregistry/internal/company/models"
	"boiregistry/internal/validation"
)

// companySchema is the rule table for reporting company payloads. Create
// enforces the required rules; update re-applies per-field rules to whatever
// is present.
var companySchema = validation.Schema{
	Rules: []validation.Rule{
		{
			Field:           "companyName",
			RequiredMessage: "Company name is required",
			Checks:          []validation.Check{validation.Length(2, 200, "Company name must be between 2 and 200 characters")},
		},
		{
			Field:  "alternateNames",
			Checks: []validation.Check{validation.StringsEach(200, "Alternate names must each be at most 200 characters")},
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
			Field:           "state",
			RequiredMessage: "State is required",
			Checks:          []validation.Check{validation.Length(2, 100, "State must be between 2 and 100 characters")},
		},
		{
			Field:           "zipCode",
			RequiredMessage: "Zip code is required",
			Checks:          []validation.Check{validation.Length(3, 20, "Zip code must be between 3 and 20 characters")},
		},
		{
			Field:  "country",
			Checks: []validation.Check{validation.Length(2, 100, "Country must be between 2 and 100 characters")},
		},
		{
			Field:           "taxIdType",
			RequiredMessage: "Tax ID type is required",
			Checks:          []validation.Check{validation.OneOfMsg("Tax ID type must be EIN, SSN, ITIN, or Foreign", models.TaxIDTypes...)},
		},
		{
			Field:           "taxIdNumber",
			RequiredMessage: "Tax ID number is required",
			Checks:          []validation.Check{validation.MaxLen(50, "Tax ID number cannot exceed 50 characters")},
		},
		{
			Field:           "countryOrJurisdiction",
			RequiredMessage: "Country or jurisdiction is required",
			Checks:          []validation.Check{validation.Length(2, 100, "Country or jurisdiction must be between 2 and 100 characters")},
		},
		{
			Field:           "stateOfIncorporation",
			RequiredMessage: "State of incorporation is required",
			Checks:          []validation.Check{validation.Length(2, 100, "State of incorporation must be between 2 and 100 characters")},
		},
		{
			Field:           "businessType",
			RequiredMessage: "Business type is required",
			Checks:          []validation.Check{validation.OneOfMsg("Business type must be Corporation, LLC, Partnership, Trust, or Other", models.BusinessTypes...)},
		},
		{
			Field:           "formationDate",
			RequiredMessage: "Formation date is required",
			Checks:          []validation.Check{validation.DateYMD("Formation date must be a valid date (YYYY-MM-DD)")},
		},
		{
			Field:  "email",
			Checks: []validation.Check{validation.Email("Email must be a valid email address")},
		},
		{
			Field:  "phone",
			Checks: []validation.Check{validation.MaxLen(20, "Phone cannot exceed 20 characters")},
		},
		{
			Field:  "status",
			Checks: []validation.Check{validation.OneOfMsg("Status must be Active, Inactive, Pending, or Dissolved", models.CompanyStatuses...)},
		},
		{
			Field:  "notes",
			Checks: []validation.Check{validation.MaxLen(1000, "Notes cannot exceed 1000 characters")},
		},
		{
			Field:  "isActive",
			Checks: []validation.Check{validation.Boolean("isActive must be a boolean value")},
		},
	},
}

// bindCompany builds the entity from a validated create payload.
func bindCompany(p map[string]any) *models.ReportingCompany {
	c := &models.ReportingCompany{
		CompanyName:           validation.String(p, "companyName"),
		AlternateNames:        validation.Strings(p, "alternateNames"),
		Street:                validation.String(p, "street"),
		City:                  validation.String(p, "city"),
		State:                 validation.String(p, "state"),
		ZipCode:               validation.String(p, "zipCode"),
		Country:               validation.String(p, "country"),
		TaxIDType:             models.TaxIDType(validation.String(p, "taxIdType")),
		TaxIDNumber:           validation.String(p, "taxIdNumber"),
		CountryOrJurisdiction: validation.String(p, "countryOrJurisdiction"),
		StateOfIncorporation:  validation.String(p, "stateOfIncorporation"),
		BusinessType:          models.BusinessType(validation.String(p, "businessType")),
		Email:                 validation.String(p, "email"),
		Phone:                 validation.String(p, "phone"),
		Status:                models.CompanyStatus(validation.String(p, "status")),
		Notes:                 validation.String(p, "notes"),
	}
	if c.AlternateNames == nil {
		c.AlternateNames = []string{}
	}
	if d, ok := validation.Date(p, "formationDate"); ok {
		c.FormationDate = d
	}
	c.IsActive = true
	if b, ok := validation.Bool(p, "isActive"); ok {
		c.IsActive = b
	}
	return c
}

// bindCompanyPatch builds the partial update from a validated payload;
// absent fields stay nil.
func bindCompanyPatch(p map[string]any) models.CompanyPatch {
	patch := models.CompanyPatch{
		CompanyName:           validation.StringPtr(p, "companyName"),
		Street:                validation.StringPtr(p, "street"),
		City:                  validation.StringPtr(p, "city"),
		State:                 validation.StringPtr(p, "state"),
		ZipCode:               validation.StringPtr(p, "zipCode"),
		Country:               validation.StringPtr(p, "country"),
		TaxIDNumber:           validation.StringPtr(p, "taxIdNumber"),
		CountryOrJurisdiction: validation.StringPtr(p, "countryOrJurisdiction"),
		StateOfIncorporation:  validation.StringPtr(p, "stateOfIncorporation"),
		Email:                 validation.StringPtr(p, "email"),
		Phone:                 validation.StringPtr(p, "phone"),
		Notes:                 validation.StringPtr(p, "notes"),
		FormationDate:         validation.DatePtr(p, "formationDate"),
		IsActive:              validation.BoolPtr(p, "isActive"),
	}
	if validation.Has(p, "alternateNames") {
		names := validation.Strings(p, "alternateNames")
		patch.AlternateNames = &names
	}
	if s := validation.String(p, "taxIdType"); s != "" {
		t := models.TaxIDType(s)
		patch.TaxIDType = &t
	}
	if s := validation.String(p, "businessType"); s != "" {
		t := models.BusinessType(s)
		patch.BusinessType = &t
	}
	if s := validation.String(p, "status"); s != "" {
		t := models.CompanyStatus(s)
		patch.Status = &t
	}
	return patch
}
