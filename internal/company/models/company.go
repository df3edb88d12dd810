// Package models defines the ReportingCompany entity and its closed sets.
package models

import (
	"fmt"
	"time"

	"boiregistry/pkg/domain"
)

// TaxIDType is the kind of tax identifier a company files under.
type TaxIDType string

const (
	TaxIDTypeEIN     TaxIDType = "EIN"
	TaxIDTypeSSN     TaxIDType = "SSN"
	TaxIDTypeITIN    TaxIDType = "ITIN"
	TaxIDTypeForeign TaxIDType = "Foreign"
)

// TaxIDTypes is the closed set accepted by validation.
var TaxIDTypes = []string{"EIN", "SSN", "ITIN", "Foreign"}

// BusinessType is the legal form of the company.
type BusinessType string

const (
	BusinessTypeCorporation BusinessType = "Corporation"
	BusinessTypeLLC         BusinessType = "LLC"
	BusinessTypePartnership BusinessType = "Partnership"
	BusinessTypeTrust       BusinessType = "Trust"
	BusinessTypeOther       BusinessType = "Other"
)

var BusinessTypes = []string{"Corporation", "LLC", "Partnership", "Trust", "Other"}

// CompanyStatus is the filing status of the company. It is independent of
// IsActive: status tracks the business lifecycle, IsActive is a record-level
// flag no company endpoint currently toggles.
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "Active"
	CompanyStatusInactive  CompanyStatus = "Inactive"
	CompanyStatusPending   CompanyStatus = "Pending"
	CompanyStatusDissolved CompanyStatus = "Dissolved"
)

var CompanyStatuses = []string{"Active", "Inactive", "Pending", "Dissolved"}

// DefaultCountry is applied when the create payload omits country.
const DefaultCountry = "United States"

// ReportingCompany is a registered business entity subject to a compliance
// filing. IDs are assigned by storage and immutable.
type ReportingCompany struct {
	ID                    int64         `json:"id"`
	CompanyName           string        `json:"companyName"`
	AlternateNames        []string      `json:"alternateNames"`
	Street                string        `json:"street"`
	City                  string        `json:"city"`
	State                 string        `json:"state"`
	ZipCode               string        `json:"zipCode"`
	Country               string        `json:"country"`
	TaxIDType             TaxIDType     `json:"taxIdType"`
	TaxIDNumber           string        `json:"taxIdNumber"`
	CountryOrJurisdiction string        `json:"countryOrJurisdiction"`
	StateOfIncorporation  string        `json:"stateOfIncorporation"`
	BusinessType          BusinessType  `json:"businessType"`
	FormationDate         domain.Date   `json:"formationDate"`
	Email                 string        `json:"email,omitempty"`
	Phone                 string        `json:"phone,omitempty"`
	Status                CompanyStatus `json:"status"`
	Notes                 string        `json:"notes,omitempty"`
	IsActive              bool          `json:"isActive"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// FullAddress derives the mailing address line at the presentation boundary;
// it is never stored.
func (c *ReportingCompany) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", c.Street, c.City, c.State, c.ZipCode, c.Country)
}

// CompanyPatch carries a partial update; nil fields are left unchanged.
type CompanyPatch struct {
	CompanyName           *string
	AlternateNames        *[]string
	Street                *string
	City                  *string
	State                 *string
	ZipCode               *string
	Country               *string
	TaxIDType             *TaxIDType
	TaxIDNumber           *string
	CountryOrJurisdiction *string
	StateOfIncorporation  *string
	BusinessType          *BusinessType
	FormationDate         *domain.Date
	Email                 *string
	Phone                 *string
	Status                *CompanyStatus
	Notes                 *string
	IsActive              *bool
}

// CompanySummary is the small identity block attached to owner-by-company
// listings.
type CompanySummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
