// Package service implements the reporting company use cases on top of a
// pluggable store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boiregistry/internal/company/models"
	dErrors "boiregistry/pkg/domain-errors"
	"boiregistry/pkg/platform/sentinel"
)

// CompanyStore is the persistence boundary the service depends on.
type CompanyStore interface {
	Create(ctx context.Context, company *models.ReportingCompany) error
	List(ctx context.Context, page, limit int) ([]*models.ReportingCompany, int64, error)
	FindByID(ctx context.Context, id int64) (*models.ReportingCompany, error)
	Update(ctx context.Context, id int64, patch models.CompanyPatch, now time.Time) (*models.ReportingCompany, error)
	Delete(ctx context.Context, id int64) (*models.ReportingCompany, error)
}

// CompanyService coordinates validation-adjacent defaults, timestamps and
// store error translation for reporting companies.
type CompanyService struct {
	store  CompanyStore
	logger *slog.Logger
	now    func() time.Time
}

type Option func(*CompanyService)

// WithClock overrides the time source, used by tests for stable timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *CompanyService) { s.now = now }
}

func New(store CompanyStore, logger *slog.Logger, opts ...Option) *CompanyService {
	s := &CompanyService{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create persists a new company, filling defaults for country and status.
// The caller decides the active flag; the binder defaults it to true.
func (s *CompanyService) Create(ctx context.Context, company *models.ReportingCompany) (*models.ReportingCompany, error) {
	if company.Country == "" {
		company.Country = models.DefaultCountry
	}
	if company.Status == "" {
		company.Status = models.CompanyStatusActive
	}
	now := s.now().UTC()
	company.CreatedAt = now
	company.UpdatedAt = now

	if err := s.store.Create(ctx, company); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Reporting company conflicts with an existing record")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create reporting company")
	}
	s.logger.InfoContext(ctx, "reporting company created", "company_id", company.ID)
	return company, nil
}

// List returns one page of companies plus the overall total.
func (s *CompanyService) List(ctx context.Context, page, limit int) ([]*models.ReportingCompany, int64, error) {
	companies, total, err := s.store.List(ctx, page, limit)
	if err != nil {
		return nil, 0, dErrors.Wrap(err, dErrors.CodeInternal, "list reporting companies")
	}
	return companies, total, nil
}

// Get fetches one company by ID.
func (s *CompanyService) Get(ctx context.Context, id int64) (*models.ReportingCompany, error) {
	company, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get reporting company")
	}
	return company, nil
}

// Update applies a partial patch and returns the updated record.
func (s *CompanyService) Update(ctx context.Context, id int64, patch models.CompanyPatch) (*models.ReportingCompany, error) {
	company, err := s.store.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeConflict, "Reporting company conflicts with an existing record")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "update reporting company")
	}
	s.logger.InfoContext(ctx, "reporting company updated", "company_id", id)
	return company, nil
}

// Delete removes a company permanently. Companies that still have beneficial
// owners attached cannot be deleted; the database restricts the reference.
func (s *CompanyService) Delete(ctx context.Context, id int64) (*models.ReportingCompany, error) {
	company, err := s.store.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "Reporting company not found")
		case errors.Is(err, sentinel.ErrConflict):
			return nil, dErrors.New(dErrors.CodeValidation, "Cannot delete reporting company while beneficial owners reference it")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "delete reporting company")
	}
	s.logger.InfoContext(ctx, "reporting company deleted", "company_id", id)
	return company, nil
}
