// Package models defines the BeneficialOwner entity and its closed sets.
package models

import (
	"time"

	"boiregistry/pkg/domain"
)

// ResidenceLocation says whether the owner resides inside or outside the US.
type ResidenceLocation string

const (
	ResidenceInside  ResidenceLocation = "inside"
	ResidenceOutside ResidenceLocation = "outside"
)

var ResidenceLocations = []string{"inside", "outside"}

// DocumentType is the kind of identifying document presented.
type DocumentType string

const (
	DocumentLicense  DocumentType = "license"
	DocumentID       DocumentType = "id"
	DocumentPassport DocumentType = "passport"
	DocumentOther    DocumentType = "other"
)

var DocumentTypes = []string{"license", "id", "passport", "other"}

// BeneficialOwner is an individual who must be disclosed for a reporting
// company. IsActive is the soft-delete flag: listings only include active
// owners, but a soft-deleted owner stays retrievable by ID.
type BeneficialOwner struct {
	ID                           int64             `json:"id"`
	FirstName                    string            `json:"firstName"`
	MiddleName                   string            `json:"middleName,omitempty"`
	LastName                     string            `json:"lastName"`
	DateOfBirth                  domain.Date       `json:"dateOfBirth"`
	ResidenceLocation            ResidenceLocation `json:"residenceLocation"`
	Country                      string            `json:"country"`
	CountryOutsideUS             string            `json:"countryOutsideUS,omitempty"`
	Street                       string            `json:"street"`
	City                         string            `json:"city"`
	StateProvidence              string            `json:"stateProvidence"`
	ZipPostalCode                string            `json:"zipPostalCode"`
	IdentifyingDocumentType      DocumentType      `json:"identifyingDocumentType"`
	IdentifyingDocumentNumber    string            `json:"identifyingDocumentNumber"`
	IssuingJurisdiction          string            `json:"issuingJurisdiction"`
	JurisdictionCountryOutsideUS string            `json:"jurisdictionCountryOutsideUS,omitempty"`
	JurisdictionStateProvidence  string            `json:"jurisdictionStateProvidence,omitempty"`
	PhotoID                      string            `json:"photoId"`
	CertificationAccepted        bool              `json:"certificationAccepted"`
	ServiceTermsAccepted         bool              `json:"serviceTermsAccepted"`
	ElectronicSignature          string            `json:"electronicSignature"`
	SignatureDate                time.Time         `json:"signatureDate"`
	ReportingCompanyID           int64             `json:"reportingCompanyId"`
	IsActive                     bool              `json:"isActive"`
	// CompanyName is the joined company context attached on reads; it is
	// derived, never written.
	CompanyName string    `json:"companyName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FullName derives the display name at the presentation boundary.
func (o *BeneficialOwner) FullName() string {
	if o.MiddleName != "" {
		return o.FirstName + " " + o.MiddleName + " " + o.LastName
	}
	return o.FirstName + " " + o.LastName
}

// OwnerPatch carries a partial update; nil fields are left unchanged.
type OwnerPatch struct {
	FirstName                    *string
	MiddleName                   *string
	LastName                     *string
	DateOfBirth                  *domain.Date
	ResidenceLocation            *ResidenceLocation
	Country                      *string
	CountryOutsideUS             *string
	Street                       *string
	City                         *string
	StateProvidence              *string
	ZipPostalCode                *string
	IdentifyingDocumentType      *DocumentType
	IdentifyingDocumentNumber    *string
	IssuingJurisdiction          *string
	JurisdictionCountryOutsideUS *string
	JurisdictionStateProvidence  *string
	PhotoID                      *string
	CertificationAccepted        *bool
	ServiceTermsAccepted         *bool
	ElectronicSignature          *string
	ReportingCompanyID           *int64
	IsActive                     *bool
}

// OwnerFilter bounds a listing. CompanyID, when set, restricts to one
// reporting company. Listings always include only active owners.
type OwnerFilter struct {
	CompanyID *int64
	Page      int
	Limit     int
}
