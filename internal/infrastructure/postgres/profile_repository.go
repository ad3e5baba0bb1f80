package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/profile"
)

// ProfileRepository implements profile.Repository. Sale back-references live
// in the uuid[] column sales.
type ProfileRepository struct {
	q querier
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{q: pool}
}

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	sales := p.Sales
	if sales == nil {
		sales = []uuid.UUID{}
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO profiles
		(profile_id, username, password_hash, role, sales, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, p.ProfileID, p.Username, p.PasswordHash, p.Role, sales, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	return mapInsertErr(err)
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID uuid.UUID) (*profile.Profile, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, profile_id, username, password_hash, role, sales, created_at, updated_at
		FROM profiles WHERE profile_id=$1
	`, profileID)
	return scanProfile(row)
}

func (r *ProfileRepository) GetByUsername(ctx context.Context, username string) (*profile.Profile, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, profile_id, username, password_hash, role, sales, created_at, updated_at
		FROM profiles WHERE username=$1
	`, username)
	return scanProfile(row)
}

// AddSale appends saleID to each listed profile that does not already hold it.
func (r *ProfileRepository) AddSale(ctx context.Context, profileIDs []uuid.UUID, saleID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		UPDATE profiles
		SET sales = array_append(sales, $1::uuid), updated_at=$2
		WHERE profile_id = ANY($3::uuid[]) AND NOT (sales @> ARRAY[$1::uuid])
	`, saleID, time.Now().UTC(), profileIDs)
	return err
}

func (r *ProfileRepository) RemoveSale(ctx context.Context, profileIDs []uuid.UUID, saleID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `
		UPDATE profiles
		SET sales = array_remove(sales, $1::uuid), updated_at=$2
		WHERE profile_id = ANY($3::uuid[]) AND sales @> ARRAY[$1::uuid]
	`, saleID, time.Now().UTC(), profileIDs)
	return err
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.ID, &p.ProfileID, &p.Username, &p.PasswordHash, &p.Role, &p.Sales, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if p.Sales == nil {
		p.Sales = []uuid.UUID{}
	}
	return &p, nil
}
