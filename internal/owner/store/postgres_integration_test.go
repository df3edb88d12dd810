//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	companymodels "boiregistry/internal/company/models"
	companystore "boiregistry/internal/company/store"
	"boiregistry/internal/owner/models"
	"boiregistry/internal/owner/store"
	"boiregistry/pkg/domain"
	"boiregistry/pkg/platform/sentinel"
	"boiregistry/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	store     *store.PostgresStore
	companies *companystore.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
	s.companies = companystore.NewPostgres(s.postgres.Pool)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func (s *PostgresStoreSuite) createCompany(name string) int64 {
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &companymodels.ReportingCompany{
		CompanyName:           name,
		AlternateNames:        []string{},
		Street:                "100 Main Street",
		City:                  "Springfield",
		State:                 "IL",
		ZipCode:               "62701",
		Country:               "United States",
		TaxIDType:             companymodels.TaxIDTypeEIN,
		TaxIDNumber:           "12-3456789",
		CountryOrJurisdiction: "United States",
		StateOfIncorporation:  "Delaware",
		BusinessType:          companymodels.BusinessTypeLLC,
		FormationDate:         domain.NewDate(2019, time.March, 1),
		Status:                companymodels.CompanyStatusActive,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	s.Require().NoError(s.companies.Create(context.Background(), c))
	return c.ID
}

func newTestOwner(firstName string, companyID int64) *models.BeneficialOwner {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.BeneficialOwner{
		FirstName:                 firstName,
		LastName:                  "Doe",
		DateOfBirth:               domain.NewDate(1990, time.May, 20),
		ResidenceLocation:         models.ResidenceInside,
		Country:                   "United States",
		Street:                    "200 Oak Avenue",
		City:                      "Portland",
		StateProvidence:           "Oregon",
		ZipPostalCode:             "97201",
		IdentifyingDocumentType:   models.DocumentPassport,
		IdentifyingDocumentNumber: "X1234567",
		IssuingJurisdiction:       "United States",
		PhotoID:                   "uploads/passport.png",
		CertificationAccepted:     true,
		ServiceTermsAccepted:      true,
		ElectronicSignature:       firstName + " Doe",
		SignatureDate:             now,
		ReportingCompanyID:        companyID,
		IsActive:                  true,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}

func (s *PostgresStoreSuite) TestCreateJoinsCompanyName() {
	ctx := context.Background()
	companyID := s.createCompany("Acme Holdings LLC")

	o := newTestOwner("Jane", companyID)
	s.Require().NoError(s.store.Create(ctx, o))
	s.Require().NotZero(o.ID)

	found, err := s.store.FindByID(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal("Jane", found.FirstName)
	s.Equal("Acme Holdings LLC", found.CompanyName)
	s.Equal(o.DateOfBirth, found.DateOfBirth)
}

func (s *PostgresStoreSuite) TestCreateAgainstMissingCompanyIsReferenceNotFound() {
	o := newTestOwner("Jane", 9999)
	err := s.store.Create(context.Background(), o)
	s.Require().ErrorIs(err, sentinel.ErrReferenceNotFound)
}

func (s *PostgresStoreSuite) TestListExcludesInactive() {
	ctx := context.Background()
	companyID := s.createCompany("Acme Holdings LLC")

	active := newTestOwner("Active", companyID)
	s.Require().NoError(s.store.Create(ctx, active))
	inactive := newTestOwner("Inactive", companyID)
	s.Require().NoError(s.store.Create(ctx, inactive))
	_, err := s.store.SoftDelete(ctx, inactive.ID, time.Now().UTC())
	s.Require().NoError(err)

	owners, total, err := s.store.List(ctx, models.OwnerFilter{Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(owners, 1)
	s.Equal("Active", owners[0].FirstName)

	// The soft-deleted row is still reachable by ID.
	found, err := s.store.FindByID(ctx, inactive.ID)
	s.Require().NoError(err)
	s.False(found.IsActive)
}

func (s *PostgresStoreSuite) TestListFiltersByCompany() {
	ctx := context.Background()
	companyA := s.createCompany("Alpha LLC")
	companyB := s.createCompany("Beta Corp")

	s.Require().NoError(s.store.Create(ctx, newTestOwner("AlphaOwner", companyA)))
	s.Require().NoError(s.store.Create(ctx, newTestOwner("BetaOwner", companyB)))

	owners, total, err := s.store.List(ctx, models.OwnerFilter{CompanyID: &companyA, Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(1), total)
	s.Require().Len(owners, 1)
	s.Equal("AlphaOwner", owners[0].FirstName)
	s.Equal("Alpha LLC", owners[0].CompanyName)
}

func (s *PostgresStoreSuite) TestUpdateReassignsCompany() {
	ctx := context.Background()
	companyA := s.createCompany("Alpha LLC")
	companyB := s.createCompany("Beta Corp")

	o := newTestOwner("Jane", companyA)
	s.Require().NoError(s.store.Create(ctx, o))

	updated, err := s.store.Update(ctx, o.ID, models.OwnerPatch{ReportingCompanyID: &companyB}, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal(companyB, updated.ReportingCompanyID)
	s.Equal("Beta Corp", updated.CompanyName)

	missing := int64(9999)
	_, err = s.store.Update(ctx, o.ID, models.OwnerPatch{ReportingCompanyID: &missing}, time.Now().UTC())
	s.Require().ErrorIs(err, sentinel.ErrReferenceNotFound,
		"a dangling company reference must not read as a missing owner")
}

func (s *PostgresStoreSuite) TestPermanentDelete() {
	ctx := context.Background()
	companyID := s.createCompany("Acme Holdings LLC")

	o := newTestOwner("Jane", companyID)
	s.Require().NoError(s.store.Create(ctx, o))

	deleted, err := s.store.Delete(ctx, o.ID)
	s.Require().NoError(err)
	s.Equal("Jane", deleted.FirstName)

	_, err = s.store.FindByID(ctx, o.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
