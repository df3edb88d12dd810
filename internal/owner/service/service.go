// Package service implements the beneficial owner use cases: create against
// an existing company, active-only listings, partial updates, soft delete and
// permanent delete.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	companymodels "boiregistry/internal/company/models"
	"boiregistry/internal/owner/models"
	dErrors "boiregistry/pkg/domain-errors"
	"boiregistry/pkg/platform/sentinel"
)

// OwnerStore is the persistence boundary the service depends on.
type OwnerStore interface {
	Create(ctx context.Context, owner *models.BeneficialOwner) error
	List(ctx context.Context, f models.OwnerFilter) ([]*models.BeneficialOwner, int64, error)
	FindByID(ctx context.Context, id int64) (*models.BeneficialOwner, error)
	Update(ctx context.Context, id int64, patch models.OwnerPatch, now time.Time) (*models.BeneficialOwner, error)
	SoftDelete(ctx context.Context, id int64, now time.Time) (*models.BeneficialOwner, error)
	Delete(ctx context.Context, id int64) (*models.BeneficialOwner, error)
}

// CompanyDirectory resolves reporting companies for existence checks.
type CompanyDirectory interface {
	FindByID(ctx context.Context, id int64) (*companymodels.ReportingCompany, error)
}

// OwnerService coordinates company existence checks, timestamps and store
// error translation for beneficial owners.
type OwnerService struct {
	store     OwnerStore
	companies CompanyDirectory
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*OwnerService)

// WithClock overrides the time source, used by tests for stable timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *OwnerService) { s.now = now }
}

func New(store OwnerStore, companies CompanyDirectory, logger *slog.Logger, opts ...Option) *OwnerService {
	s := &OwnerService{store: store, companies: companies, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create verifies the referenced company exists, stamps the signature date
// and persists the owner. A foreign key violation on the insert still reads
// as a missing company in case it is deleted concurrently.
func (s *OwnerService) Create(ctx context.Context, owner *models.BeneficialOwner) (*models.BeneficialOwner, error) {
	company, err := s.companies.FindByID(ctx, owner.ReportingCompanyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "verify reporting company")
	}

	now := s.now().UTC()
	owner.SignatureDate = now
	owner.CreatedAt = now
	owner.UpdatedAt = now

	if err := s.store.Create(ctx, owner); err != nil {
		if errors.Is(err, sentinel.ErrReferenceNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create beneficial owner")
	}
	owner.CompanyName = company.CompanyName
	s.logger.InfoContext(ctx, "beneficial owner created",
		"owner_id", owner.ID, "company_id", owner.ReportingCompanyID)
	return owner, nil
}

// List returns one page of active owners plus the overall active total.
func (s *OwnerService) List(ctx context.Context, f models.OwnerFilter) ([]*models.BeneficialOwner, int64, error) {
	owners, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "list beneficial owners")
	}
	return owners, total, nil
}

// ListByCompany returns one page of the company's active owners together
// with a summary of the company itself. The company must exist even when it
// has no owners.
func (s *OwnerService) ListByCompany(ctx context.Context, companyID int64, page, limit int) ([]*models.BeneficialOwner, int64, *companymodels.CompanySummary, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, 0, nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		}
		return nil, 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "verify reporting company")
	}

	owners, total, err := s.store.List(ctx, models.OwnerFilter{CompanyID: &companyID, Page: page, Limit: limit})
	if err != nil {
		return nil, 0, nil, dErrors.Wrap(err, dErrors.CodeInternal, "list beneficial owners by company")
	}
	summary := &companymodels.CompanySummary{ID: company.ID, Name: company.CompanyName}
	return owners, total, summary, nil
}

// Get fetches one owner by ID, soft-deleted ones included.
func (s *OwnerService) Get(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	owner, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Beneficial owner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get beneficial owner")
	}
	return owner, nil
}

// Update applies a partial patch. When the patch moves the owner to another
// company, that company must exist.
func (s *OwnerService) Update(ctx context.Context, id int64, patch models.OwnerPatch) (*models.BeneficialOwner, error) {
	if patch.ReportingCompanyID != nil {
		if _, err := s.companies.FindByID(ctx, *patch.ReportingCompanyID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "verify reporting company")
		}
	}

	owner, err := s.store.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "Beneficial owner not found")
		case errors.Is(err, sentinel.ErrReferenceNotFound):
			// The patched company vanished between the existence check and
			// the update; the missing entity is the company, not the owner.
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update beneficial owner")
	}
	s.logger.InfoContext(ctx, "beneficial owner updated", "owner_id", id)
	return owner, nil
}

// SoftDelete deactivates the owner without removing the row. Soft deleting
// an already inactive owner succeeds and is a no-op beyond the timestamp.
func (s *OwnerService) SoftDelete(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	owner, err := s.store.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Beneficial owner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "soft delete beneficial owner")
	}
	s.logger.InfoContext(ctx, "beneficial owner deactivated", "owner_id", id)
	return owner, nil
}

// PermanentDelete removes the row entirely, whether active or not.
func (s *OwnerService) PermanentDelete(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	owner, err := s.store.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Beneficial owner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "permanently delete beneficial owner")
	}
	s.logger.InfoContext(ctx, "beneficial owner permanently deleted", "owner_id", id)
	return owner, nil
}
