// Package store provides the BeneficialOwner persistence implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"boiregistry/internal/owner/models"
	"boiregistry/pkg/platform/sentinel"
)

// CompanyNameLookup resolves the joined company name attached on reads.
type CompanyNameLookup func(ctx context.Context, companyID int64) (string, bool)

// MemoryStore is a mutex-guarded map store for handler tests and local runs.
type MemoryStore struct {
	mu          sync.RWMutex
	owners      map[int64]models.BeneficialOwner
	nextID      int64
	companyName CompanyNameLookup
}

func NewMemory() *MemoryStore {
	return &MemoryStore{owners: make(map[int64]models.BeneficialOwner)}
}

// SetCompanyNames wires the join used to attach companyName on reads.
func (s *MemoryStore) SetCompanyNames(fn CompanyNameLookup) { s.companyName = fn }

// HasCompanyRefs reports whether any owner row, active or not, references
// the company. Used by the company store's delete guard.
func (s *MemoryStore) HasCompanyRefs(_ context.Context, companyID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.owners {
		if o.ReportingCompanyID == companyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Create(_ context.Context, owner *models.BeneficialOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	owner.ID = s.nextID
	stored := *owner
	stored.CompanyName = "" // joined on read, never stored
	s.owners[owner.ID] = stored
	return nil
}

func (s *MemoryStore) List(ctx context.Context, f models.OwnerFilter) ([]*models.BeneficialOwner, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.BeneficialOwner, 0, len(s.owners))
	for _, o := range s.owners {
		if !o.IsActive {
			continue
		}
		if f.CompanyID != nil && o.ReportingCompanyID != *f.CompanyID {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	offset := (f.Page - 1) * f.Limit
	if offset >= len(matched) {
		return []*models.BeneficialOwner{}, total, nil
	}
	end := offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]*models.BeneficialOwner, 0, end-offset)
	for i := offset; i < end; i++ {
		o := matched[i]
		s.attachCompanyName(ctx, &o)
		out = append(out, &o)
	}
	return out, total, nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.owners[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	s.attachCompanyName(ctx, &o)
	return &o, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, patch models.OwnerPatch, now time.Time) (*models.BeneficialOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	applyPatch(&o, patch)
	o.UpdatedAt = now
	s.owners[id] = o
	s.attachCompanyName(ctx, &o)
	return &o, nil
}

func (s *MemoryStore) SoftDelete(ctx context.Context, id int64, now time.Time) (*models.BeneficialOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	o.IsActive = false
	o.UpdatedAt = now
	s.owners[id] = o
	s.attachCompanyName(ctx, &o)
	return &o, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.owners[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	delete(s.owners, id)
	s.attachCompanyName(ctx, &o)
	return &o, nil
}

func (s *MemoryStore) attachCompanyName(ctx context.Context, o *models.BeneficialOwner) {
	if s.companyName == nil {
		return
	}
	if name, ok := s.companyName(ctx, o.ReportingCompanyID); ok {
		o.CompanyName = name
	}
}

func applyPatch(o *models.BeneficialOwner, patch models.OwnerPatch) {
	if patch.FirstName != nil {
		o.FirstName = *patch.FirstName
	}
	if patch.MiddleName != nil {
		o.MiddleName = *patch.MiddleName
	}
	if patch.LastName != nil {
		o.LastName = *patch.LastName
	}
	if patch.DateOfBirth != nil {
		o.DateOfBirth = *patch.DateOfBirth
	}
	if patch.ResidenceLocation != nil {
		o.ResidenceLocation = *patch.ResidenceLocation
	}
	if patch.Country != nil {
		o.Country = *patch.Country
	}
	if patch.CountryOutsideUS != nil {
		o.CountryOutsideUS = *patch.CountryOutsideUS
	}
	if patch.Street != nil {
		o.Street = *patch.Street
	}
	if patch.City != nil {
		o.City = *patch.City
	}
	if patch.StateProvidence != nil {
		o.StateProvidence = *patch.StateProvidence
	}
	if patch.ZipPostalCode != nil {
		o.ZipPostalCode = *patch.ZipPostalCode
	}
	if patch.IdentifyingDocumentType != nil {
		o.IdentifyingDocumentType = *patch.IdentifyingDocumentType
	}
	if patch.IdentifyingDocumentNumber != nil {
		o.IdentifyingDocumentNumber = *patch.IdentifyingDocumentNumber
	}
	if patch.IssuingJurisdiction != nil {
		o.IssuingJurisdiction = *patch.IssuingJurisdiction
	}
	if patch.JurisdictionCountryOutsideUS != nil {
		o.JurisdictionCountryOutsideUS = *patch.JurisdictionCountryOutsideUS
	}
	if patch.JurisdictionStateProvidence != nil {
		o.JurisdictionStateProvidence = *patch.JurisdictionStateProvidence
	}
	if patch.PhotoID != nil {
		o.PhotoID = *patch.PhotoID
	}
	if patch.CertificationAccepted != nil {
		o.CertificationAccepted = *patch.CertificationAccepted
	}
	if patch.ServiceTermsAccepted != nil {
		o.ServiceTermsAccepted = *patch.ServiceTermsAccepted
	}
	if patch.ElectronicSignature != nil {
		o.ElectronicSignature = *patch.ElectronicSignature
	}
	if patch.ReportingCompanyID != nil {
		o.ReportingCompanyID = *patch.ReportingCompanyID
	}
	if patch.IsActive != nil {
		o.IsActive = *patch.IsActive
	}
}
