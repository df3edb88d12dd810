// Package store provides the ReportingCompany persistence implementations.
// The in-memory store keeps handler tests lightweight; the Postgres store is
// the durable implementation. Both satisfy service.CompanyStore.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"boiregistry/internal/company/models"
	"boiregistry/pkg/platform/sentinel"
)

// RefChecker reports whether any beneficial owner still references the
// company. The memory store uses it to mirror the database FK restriction on
// hard delete.
type RefChecker func(ctx context.Context, companyID int64) (bool, error)

// MemoryStore is a mutex-guarded map store. It intentionally favors clarity
// over performance.
type MemoryStore struct {
	mu        sync.RWMutex
	companies map[int64]models.ReportingCompany
	nextID    int64
	ownerRefs RefChecker
}

func NewMemory() *MemoryStore {
	return &MemoryStore{companies: make(map[int64]models.ReportingCompany)}
}

// SetRefChecker wires the owner-reference guard used on Delete.
func (s *MemoryStore) SetRefChecker(fn RefChecker) { s.ownerRefs = fn }

func (s *MemoryStore) Create(_ context.Context, company *models.ReportingCompany) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	company.ID = s.nextID
	s.companies[company.ID] = *company
	return nil
}

func (s *MemoryStore) List(_ context.Context, page, limit int) ([]*models.ReportingCompany, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.ReportingCompany, 0, len(s.companies))
	for _, c := range s.companies {
		all = append(all, c)
	}
	sortNewestFirst(all)

	total := int64(len(all))
	return pageOf(all, page, limit), total, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (*models.ReportingCompany, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) Update(_ context.Context, id int64, patch models.CompanyPatch, now time.Time) (*models.ReportingCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	applyPatch(&c, patch)
	c.UpdatedAt = now
	s.companies[id] = c
	return &c, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) (*models.ReportingCompany, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if s.ownerRefs != nil {
		referenced, err := s.ownerRefs(ctx, id)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, sentinel.ErrConflict
		}
	}
	delete(s.companies, id)
	return &c, nil
}

func applyPatch(c *models.ReportingCompany, patch models.CompanyPatch) {
	if patch.CompanyName != nil {
		c.CompanyName = *patch.CompanyName
	}
	if patch.AlternateNames != nil {
		c.AlternateNames = *patch.AlternateNames
	}
	if patch.Street != nil {
		c.Street = *patch.Street
	}
	if patch.City != nil {
		c.City = *patch.City
	}
	if patch.State != nil {
		c.State = *patch.State
	}
	if patch.ZipCode != nil {
		c.ZipCode = *patch.ZipCode
	}
	if patch.Country != nil {
		c.Country = *patch.Country
	}
	if patch.TaxIDType != nil {
		c.TaxIDType = *patch.TaxIDType
	}
	if patch.TaxIDNumber != nil {
		c.TaxIDNumber = *patch.TaxIDNumber
	}
	if patch.CountryOrJurisdiction != nil {
		c.CountryOrJurisdiction = *patch.CountryOrJurisdiction
	}
	if patch.StateOfIncorporation != nil {
		c.StateOfIncorporation = *patch.StateOfIncorporation
	}
	if patch.BusinessType != nil {
		c.BusinessType = *patch.BusinessType
	}
	if patch.FormationDate != nil {
		c.FormationDate = *patch.FormationDate
	}
	if patch.Email != nil {
		c.Email = *patch.Email
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Notes != nil {
		c.Notes = *patch.Notes
	}
	if patch.IsActive != nil {
		c.IsActive = *patch.IsActive
	}
}

func sortNewestFirst(all []models.ReportingCompany) {
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
}

func pageOf(all []models.ReportingCompany, page, limit int) []*models.ReportingCompany {
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*models.ReportingCompany{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*models.ReportingCompany, 0, end-offset)
	for i := offset; i < end; i++ {
		c := all[i]
		out = append(out, &c)
	}
	return out
}
