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

	"boiregistry/internal/company/models"
	"boiregistry/pkg/domain"
	"boiregistry/pkg/platform/sentinel"
)

// PostgresStore persists reporting companies in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const companyColumns = `id, company_name, alternate_names, street, city, state, zip_code, country,
	tax_id_type, tax_id_number, country_or_jurisdiction, state_of_incorporation, business_type,
	formation_date, email, phone, status, notes, is_active, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, c *models.ReportingCompany) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO reporting_companies (
			company_name, alternate_names, street, city, state, zip_code, country,
			tax_id_type, tax_id_number, country_or_jurisdiction, state_of_incorporation,
			business_type, formation_date, email, phone, status, notes, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`,
		c.CompanyName, c.AlternateNames, c.Street, c.City, c.State, c.ZipCode, c.Country,
		string(c.TaxIDType), c.TaxIDNumber, c.CountryOrJurisdiction, c.StateOfIncorporation,
		string(c.BusinessType), c.FormationDate.Time(), c.Email, c.Phone, string(c.Status),
		c.Notes, c.IsActive, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		return translatePgError(err, "insert reporting company")
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context, page, limit int) ([]*models.ReportingCompany, int64, error) {
	var total int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reporting_companies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count reporting companies: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM reporting_companies
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list reporting companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*models.ReportingCompany, 0, limit)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, c)
	}
	return companies, total, rows.Err()
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (*models.ReportingCompany, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM reporting_companies
		WHERE id = $1
	`, id)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return c, err
}

func (s *PostgresStore) Update(ctx context.Context, id int64, patch models.CompanyPatch, now time.Time) (*models.ReportingCompany, error) {
	sets, args := companySetClauses(patch)
	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		UPDATE reporting_companies SET %s WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), companyColumns), args...)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePgError(err, "update reporting company")
	}
	return c, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) (*models.ReportingCompany, error) {
	row := s.pool.QueryRow(ctx, `
		DELETE FROM reporting_companies WHERE id = $1
		RETURNING `+companyColumns+`
	`, id)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, translatePgError(err, "delete reporting company")
	}
	return c, nil
}

func companySetClauses(patch models.CompanyPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.CompanyName != nil {
		add("company_name", *patch.CompanyName)
	}
	if patch.AlternateNames != nil {
		add("alternate_names", *patch.AlternateNames)
	}
	if patch.Street != nil {
		add("street", *patch.Street)
	}
	if patch.City != nil {
		add("city", *patch.City)
	}
	if patch.State != nil {
		add("state", *patch.State)
	}
	if patch.ZipCode != nil {
		add("zip_code", *patch.ZipCode)
	}
	if patch.Country != nil {
		add("country", *patch.Country)
	}
	if patch.TaxIDType != nil {
		add("tax_id_type", string(*patch.TaxIDType))
	}
	if patch.TaxIDNumber != nil {
		add("tax_id_number", *patch.TaxIDNumber)
	}
	if patch.CountryOrJurisdiction != nil {
		add("country_or_jurisdiction", *patch.CountryOrJurisdiction)
	}
	if patch.StateOfIncorporation != nil {
		add("state_of_incorporation", *patch.StateOfIncorporation)
	}
	if patch.BusinessType != nil {
		add("business_type", string(*patch.BusinessType))
	}
	if patch.FormationDate != nil {
		add("formation_date", patch.FormationDate.Time())
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Status != nil {
		add("status", string(*patch.Status))
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	return sets, args
}

func scanCompany(row pgx.Row) (*models.ReportingCompany, error) {
	var c models.ReportingCompany
	var taxIDType, businessType, status string
	var formationDate time.Time
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.AlternateNames, &c.Street, &c.City, &c.State, &c.ZipCode,
		&c.Country, &taxIDType, &c.TaxIDNumber, &c.CountryOrJurisdiction, &c.StateOfIncorporation,
		&businessType, &formationDate, &c.Email, &c.Phone, &status, &c.Notes, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.TaxIDType = models.TaxIDType(taxIDType)
	c.BusinessType = models.BusinessType(businessType)
	c.Status = models.CompanyStatus(status)
	c.FormationDate = domain.DateOf(formationDate)
	return &c, nil
}

// translatePgError maps constraint violations onto sentinel errors so
// services can produce field-scoped responses. 23503 on delete means owner
// rows still reference the company; 23505 is a uniqueness violation.
func translatePgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23505", "23514":
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
