//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"boiregistry/internal/company/models"
	"boiregistry/internal/company/store"
	"boiregistry/pkg/domain"
	"boiregistry/pkg/platform/sentinel"
	"boiregistry/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
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
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func newTestCompany(name string) *models.ReportingCompany {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.ReportingCompany{
		CompanyName:           name,
		AlternateNames:        []string{name + " Group"},
		Street:                "100 Main Street",
		City:                  "Springfield",
		State:                 "IL",
		ZipCode:               "62701",
		Country:               "United States",
		TaxIDType:             models.TaxIDTypeEIN,
		TaxIDNumber:           "12-3456789",
		CountryOrJurisdiction: "United States",
		StateOfIncorporation:  "Delaware",
		BusinessType:          models.BusinessTypeLLC,
		FormationDate:         domain.NewDate(2019, time.March, 1),
		Status:                models.CompanyStatusActive,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	c := newTestCompany("Acme Holdings LLC")
	s.Require().NoError(s.store.Create(ctx, c))
	s.Require().NotZero(c.ID)

	found, err := s.store.FindByID(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.CompanyName, found.CompanyName)
	s.Equal(c.AlternateNames, found.AlternateNames)
	s.Equal(c.TaxIDType, found.TaxIDType)
	s.Equal(c.FormationDate, found.FormationDate)
}

func (s *PostgresStoreSuite) TestFindUnknownIsNotFound() {
	_, err := s.store.FindByID(context.Background(), 9999)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListNewestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i, name := range []string{"Oldest Inc", "Middle Inc", "Newest Inc"} {
		c := newTestCompany(name)
		c.CreatedAt = base.Add(time.Duration(i) * time.Second)
		s.Require().NoError(s.store.Create(ctx, c))
	}

	companies, total, err := s.store.List(ctx, 1, 2)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(companies, 2)
	s.Equal("Newest Inc", companies[0].CompanyName)
	s.Equal("Middle Inc", companies[1].CompanyName)
}

func (s *PostgresStoreSuite) TestUpdatePatchesOnlyPresentFields() {
	ctx := context.Background()
	c := newTestCompany("Before Inc")
	s.Require().NoError(s.store.Create(ctx, c))

	name := "After Inc"
	updated, err := s.store.Update(ctx, c.ID, models.CompanyPatch{CompanyName: &name}, time.Now().UTC())
	s.Require().NoError(err)
	s.Equal("After Inc", updated.CompanyName)
	s.Equal(c.City, updated.City)

	_, err = s.store.Update(ctx, 9999, models.CompanyPatch{CompanyName: &name}, time.Now().UTC())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteRestrictedByOwnerFK() {
	ctx := context.Background()
	c := newTestCompany("Guarded Inc")
	s.Require().NoError(s.store.Create(ctx, c))

	_, err := s.postgres.Pool.Exec(ctx, `
		INSERT INTO beneficial_owners (
			first_name, last_name, date_of_birth, residence_location, country,
			street, city, state_providence, zip_postal_code,
			identifying_document_type, identifying_document_number,
			issuing_jurisdiction, photo_id, certification_accepted,
			service_terms_accepted, electronic_signature, reporting_company_id
		) VALUES ('Jane', 'Doe', '1990-05-20', 'inside', 'United States',
			'200 Oak Avenue', 'Portland', 'Oregon', '97201',
			'passport', 'X1234567', 'United States', 'uploads/p.png',
			TRUE, TRUE, 'Jane Doe', $1)
	`, c.ID)
	s.Require().NoError(err)

	_, err = s.store.Delete(ctx, c.ID)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	_, err = s.postgres.Pool.Exec(ctx, `DELETE FROM beneficial_owners WHERE reporting_company_id = $1`, c.ID)
	s.Require().NoError(err)

	deleted, err := s.store.Delete(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Guarded Inc", deleted.CompanyName)
}
