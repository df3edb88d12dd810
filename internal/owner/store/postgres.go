package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"boiregistry/internal/owner/models"
	"boiregistry/pkg/domain"
	"boiregistry/pkg/platform/sentinel"
)

// PostgresStore persists beneficial owners in PostgreSQL. Reads attach the
// joined company name explicitly; there is no lazy loading.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const ownerColumns = `o.id, o.first_name, o.middle_name, o.last_name, o.date_of_birth,
	o.residence_location, o.country, o.country_outside_us, o.street, o.city,
	o.state_providence, o.zip_postal_code, o.identifying_document_type,
	o.identifying_document_number, o.issuing_jurisdiction, o.jurisdiction_country_outside_us,
	o.jurisdiction_state_providence, o.photo_id, o.certification_accepted,
	o.service_terms_accepted, o.electronic_signature, o.signature_date,
	o.reporting_company_id, o.is_active, o.created_at, o.updated_at`

const ownerSelect = `
	SELECT ` + ownerColumns + `, COALESCE(c.company_name, '')
	FROM beneficial_owners o
	LEFT JOIN reporting_companies c ON c.id = o.reporting_company_id`

func (s *PostgresStore) Create(ctx context.Context, o *models.BeneficialOwner) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO beneficial_owners (
			first_name, middle_name, last_name, date_of_birth, residence_location,
			country, country_outside_us, street, city, state_providence, zip_postal_code,
			identifying_document_type, identifying_document_number, issuing_jurisdiction,
			jurisdiction_country_outside_us, jurisdiction_state_providence, photo_id,
			certification_accepted, service_terms_accepted, electronic_signature,
			signature_date, reporting_company_id, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING id
	`,
		o.FirstName, o.MiddleName, o.LastName, o.DateOfBirth.Time(), string(o.ResidenceLocation),
		o.Country, o.CountryOutsideUS, o.Street, o.City, o.StateProvidence, o.ZipPostalCode,
		string(o.IdentifyingDocumentType), o.IdentifyingDocumentNumber, o.IssuingJurisdiction,
		o.JurisdictionCountryOutsideUS, o.JurisdictionStateProvidence, o.PhotoID,
		o.CertificationAccepted, o.ServiceTermsAccepted, o.ElectronicSignature,
		o.SignatureDate, o.ReportingCompanyID, o.IsActive, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		// A FK violation here means the referenced company was deleted
		// between the service's existence check and this insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("insert beneficial owner: %w", sentinel.ErrReferenceNotFound)
		}
		return fmt.Errorf("insert beneficial owner: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, f models.OwnerFilter) ([]*models.BeneficialOwner, int64, error) {
	where := "WHERE o.is_active = TRUE"
	args := []any{}
	if f.CompanyID != nil {
		args = append(args, *f.CompanyID)
		where += fmt.Sprintf(" AND o.reporting_company_id = $%d", len(args))
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM beneficial_owners o " + where
	if err := s.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count beneficial owners: %w", err)
	}

	args = append(args, f.Limit)
	limitPos := len(args)
	args = append(args, (f.Page-1)*f.Limit)
	query := fmt.Sprintf("%s %s ORDER BY o.created_at DESC, o.id DESC LIMIT $%d OFFSET $%d",
		ownerSelect, where, limitPos, limitPos+1)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list beneficial owners: %w", err)
	}
	defer rows.Close()

	owners := make([]*models.BeneficialOwner, 0, f.Limit)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, 0, err
		}
		owners = append(owners, o)
	}
	return owners, total, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	row := s.pool.QueryRow(ctx, ownerSelect+" WHERE o.id = $1", id)
	o, err := scanOwner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return o, err
}

func (s *PostgresStore) Update(ctx context.Context, id int64, patch models.OwnerPatch, now time.Time) (*models.BeneficialOwner, error) {
	sets, args := ownerSetClauses(patch)
	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	tag, err := s.pool.Exec(ctx, fmt.Sprintf(
		"UPDATE beneficial_owners SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)), args...)
	if err != nil {
		// 23503 singles out the patched company reference; a missing owner
		// row surfaces below as zero rows affected.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, fmt.Errorf("update beneficial owner: %w", sentinel.ErrReferenceNotFound)
		}
		return nil, fmt.Errorf("update beneficial owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *PostgresStore) SoftDelete(ctx context.Context, id int64, now time.Time) (*models.BeneficialOwner, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE beneficial_owners SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, now)
	if err != nil {
		return nil, fmt.Errorf("soft delete beneficial owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (*models.BeneficialOwner, error) {
	// Capture the record before removal so the response can echo it.
	o, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM beneficial_owners WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("delete beneficial owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrNotFound
	}
	return o, nil
}

func ownerSetClauses(patch models.OwnerPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.MiddleName != nil {
		add("middle_name", *patch.MiddleName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.DateOfBirth != nil {
		add("date_of_birth", patch.DateOfBirth.Time())
	}
	if patch.ResidenceLocation != nil {
		add("residence_location", string(*patch.ResidenceLocation))
	}
	if patch.Country != nil {
		add("country", *patch.Country)
	}
	if patch.CountryOutsideUS != nil {
		add("country_outside_us", *patch.CountryOutsideUS)
	}
	if patch.Street != nil {
		add("street", *patch.Street)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.StateProvidence != nil {
		add("state_providence", *patch.StateProvidence)
	}
	if patch.ZipPostalCode != nil {
		add("zip_postal_code", *patch.ZipPostalCode)
	}
	if patch.IdentifyingDocumentType != nil {
		add("identifying_document_type", string(*patch.IdentifyingDocumentType))
	}
	if patch.IdentifyingDocumentNumber != nil {
		add("identifying_document_number", *patch.IdentifyingDocumentNumber)
	}
	if patch.IssuingJurisdiction != nil {
		add("issuing_jurisdiction", *patch.IssuingJurisdiction)
	}
	if patch.JurisdictionCountryOutsideUS != nil {
		add("jurisdiction_country_outside_us", *patch.JurisdictionCountryOutsideUS)
	}
	if patch.JurisdictionStateProvidence != nil {
		add("jurisdiction_state_providence", *patch.JurisdictionStateProvidence)
	}
	if patch.PhotoID != nil {
		add("photo_id", *patch.PhotoID)
	}
	if patch.CertificationAccepted != nil {
		add("certification_accepted", *patch.CertificationAccepted)
	}
	if patch.ServiceTermsAccepted != nil {
		add("service_terms_accepted", *patch.ServiceTermsAccepted)
	}
	if patch.ElectronicSignature != nil {
		add("electronic_signature", *patch.ElectronicSignature)
	}
	if patch.ReportingCompanyID != nil {
		add("reporting_company_id", *patch.ReportingCompanyID)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	return sets, args
}

func scanOwner(row pgx.Row) (*models.BeneficialOwner, error) {
	var o models.BeneficialOwner
	var residence, docType string
	var dob time.Time
	err := row.Scan(
		&o.ID, &o.FirstName, &o.MiddleName, &o.LastName, &dob,
		&residence, &o.Country, &o.CountryOutsideUS, &o.Street, &o.City,
		&o.StateProvidence, &o.ZipPostalCode, &docType,
		&o.IdentifyingDocumentNumber, &o.IssuingJurisdiction, &o.JurisdictionCountryOutsideUS,
		&o.JurisdictionStateProvidence, &o.PhotoID, &o.CertificationAccepted,
		&o.ServiceTermsAccepted, &o.ElectronicSignature, &o.SignatureDate,
		&o.ReportingCompanyID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
		&o.CompanyName,
	)
	if err != nil {
		return nil, err
	}
	o.ResidenceLocation = models.ResidenceLocation(residence)
	o.IdentifyingDocumentType = models.DocumentType(docType)
	o.DateOfBirth = domain.DateOf(dob)
	return &o, nil
}
