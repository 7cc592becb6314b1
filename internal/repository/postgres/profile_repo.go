package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// profileRepo stores each section as a JSONB array column of the profiles
// row. Every section mutation is a single UPDATE whose guard sits in the
// WHERE clause, so concurrent writers never lose updates.
type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	profile.Normalize()
	sections := make([]interface{}, 0, len(domain.SectionKinds))
	for _, kind := range domain.SectionKinds {
		data, err := json.Marshal(profile.SectionField(kind))
		if err != nil {
			return fmt.Errorf("encode %s: %w", kind, err)
		}
		sections = append(sections, string(data))
	}

	query := `INSERT INTO profiles (id, employee_id, summary, projects, experiences, educations, skills, languages, created_at, updated_at)
              VALUES ($1::uuid, $2, $3, $4::jsonb, $5::jsonb, $6::jsonb, $7::jsonb, $8::jsonb, $9, $10)`
	args := []interface{}{profile.ID.String(), profile.EmployeeID, profile.Summary}
	args = append(args, sections...)
	args = append(args, profile.CreatedAt, profile.UpdatedAt)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Profile, error) {
	query := `SELECT id, employee_id, summary, projects, experiences, educations, skills, languages, created_at, updated_at
              FROM profiles WHERE employee_id = $1`

	var p domain.Profile
	raw := make([][]byte, len(domain.SectionKinds))
	err := r.db.QueryRow(ctx, query, employeeID).Scan(
		&p.ID, &p.EmployeeID, &p.Summary,
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4],
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}

	for i, kind := range domain.SectionKinds {
		if err := json.Unmarshal(raw[i], p.SectionField(kind)); err != nil {
			return nil, fmt.Errorf("decode %s: %w", kind, err)
		}
	}
	p.Normalize()
	return &p, nil
}

func (r *profileRepo) UpdateSummary(ctx context.Context, employeeID, summary string) error {
	query := `UPDATE profiles SET summary = $2, updated_at = NOW() WHERE employee_id = $1`
	result, err := r.db.Exec(ctx, query, employeeID, summary)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE employee_id = $1`, employeeID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepo) AppendSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, item json.RawMessage) error {
	col, err := sectionColumn(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE profiles SET %[1]s = %[1]s || jsonb_build_array($2::jsonb), updated_at = NOW()
              WHERE employee_id = $1`, col)
	result, err := r.db.Exec(ctx, query, employeeID, string(item))
	if err != nil {
		return fmt.Errorf("append %s item: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// ReplaceSectionItem swaps the element whose id matches, keeping its
// position in the array.
func (r *profileRepo) ReplaceSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, id uuid.UUID, item json.RawMessage) error {
	col, err := sectionColumn(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE profiles SET %[1]s = (
                  SELECT jsonb_agg(CASE WHEN t.elem->>'id' = $2::text THEN $3::jsonb ELSE t.elem END ORDER BY t.pos)
                  FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(elem, pos)
              ), updated_at = NOW()
              WHERE employee_id = $1 AND %[1]s @> jsonb_build_array(jsonb_build_object('id', $2::text))`, col)
	result, err := r.db.Exec(ctx, query, employeeID, id.String(), string(item))
	if err != nil {
		return fmt.Errorf("replace %s item: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return r.missing(ctx, employeeID)
	}
	return nil
}

func (r *profileRepo) PullSectionItem(ctx context.Context, employeeID string, kind domain.SectionKind, id uuid.UUID) error {
	col, err := sectionColumn(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE profiles SET %[1]s = COALESCE((
                  SELECT jsonb_agg(t.elem ORDER BY t.pos)
                  FROM jsonb_array_elements(%[1]s) WITH ORDINALITY AS t(elem, pos)
                  WHERE t.elem->>'id' <> $2::text
              ), '[]'::jsonb), updated_at = NOW()
              WHERE employee_id = $1 AND %[1]s @> jsonb_build_array(jsonb_build_object('id', $2::text))`, col)
	result, err := r.db.Exec(ctx, query, employeeID, id.String())
	if err != nil {
		return fmt.Errorf("pull %s item: %w", kind, err)
	}
	if result.RowsAffected() == 0 {
		return r.missing(ctx, employeeID)
	}
	return nil
}

func (r *profileRepo) ListSectionItems(ctx context.Context, employeeID string, kind domain.SectionKind) ([]json.RawMessage, error) {
	col, err := sectionColumn(kind)
	if err != nil {
		return nil, err
	}

	var raw []byte
	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE employee_id = $1`, col)
	if err := r.db.QueryRow(ctx, query, employeeID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("select %s: %w", kind, err)
	}

	items := []json.RawMessage{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return items, nil
}

// missing tells apart an absent profile from an absent item after a guarded
// UPDATE matched no row.
func (r *profileRepo) missing(ctx context.Context, employeeID string) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM profiles WHERE employee_id = $1)`, employeeID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check profile: %w", err)
	}
	if !exists {
		return domain.ErrProfileNotFound
	}
	return domain.ErrSectionItemNotFound
}

// sectionColumn maps a section kind to its quoted column name. Only known
// kinds reach the SQL text.
func sectionColumn(kind domain.SectionKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSection, kind)
	}
	return pq.QuoteIdentifier(string(kind)), nil
}
