package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"boiregistry/internal/company/models"
	"boiregistry/pkg/platform/sentinel"
)

type CompanyStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func (s *CompanyStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestCompanyStoreSuite(t *testing.T) {
	suite.Run(t, new(CompanyStoreSuite))
}

func (s *CompanyStoreSuite) newCompany(name string, createdAt time.Time) *models.ReportingCompany {
	return &models.ReportingCompany{
		CompanyName: name,
		Status:      models.CompanyStatusActive,
		IsActive:    true,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func (s *CompanyStoreSuite) TestCreateAndFind() {
	s.Run("assigns sequential IDs", func() {
		a := s.newCompany("First", time.Now())
		b := s.newCompany("Second", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, a))
		s.Require().NoError(s.store.Create(s.ctx, b))
		s.Equal(int64(1), a.ID)
		s.Equal(int64(2), b.ID)
	})

	s.Run("finds by ID", func() {
		c := s.newCompany("Lookup", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, c))

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal("Lookup", found.CompanyName)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CompanyStoreSuite) TestListOrderingAndPaging() {
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		c := s.newCompany(fmt.Sprintf("Company %d", i), base.Add(time.Duration(i)*time.Hour))
		s.Require().NoError(s.store.Create(s.ctx, c))
	}

	companies, total, err := s.store.List(s.ctx, 1, 3)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(companies, 3)
	s.Equal("Company 4", companies[0].CompanyName, "newest first")
	s.Equal("Company 2", companies[2].CompanyName)

	companies, total, err = s.store.List(s.ctx, 3, 2)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(companies, 1)
	s.Equal("Company 0", companies[0].CompanyName)

	companies, _, err = s.store.List(s.ctx, 9, 10)
	s.Require().NoError(err)
	s.Empty(companies, "page past the end is empty, not an error")
}

func (s *CompanyStoreSuite) TestUpdate() {
	c := s.newCompany("Before", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, c))

	name := "After"
	now := time.Now().Add(time.Minute)
	updated, err := s.store.Update(s.ctx, c.ID, models.CompanyPatch{CompanyName: &name}, now)
	s.Require().NoError(err)
	s.Equal("After", updated.CompanyName)
	s.Equal(now, updated.UpdatedAt)
	s.Equal(c.CreatedAt, updated.CreatedAt)

	_, err = s.store.Update(s.ctx, 999, models.CompanyPatch{CompanyName: &name}, now)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CompanyStoreSuite) TestDeleteHonorsRefChecker() {
	referenced := map[int64]bool{}
	s.store.SetRefChecker(func(_ context.Context, companyID int64) (bool, error) {
		return referenced[companyID], nil
	})

	c := s.newCompany("Guarded", time.Now())
	s.Require().NoError(s.store.Create(s.ctx, c))
	referenced[c.ID] = true

	_, err := s.store.Delete(s.ctx, c.ID)
	s.Require().ErrorIs(err, sentinel.ErrConflict)

	referenced[c.ID] = false
	deleted, err := s.store.Delete(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Equal("Guarded", deleted.CompanyName)

	_, err = s.store.FindByID(s.ctx, c.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
