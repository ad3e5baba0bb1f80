package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// PropertyRepository implements property.Repository.
type PropertyRepository struct {
	q querier
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{q: pool}
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO properties
		(property_id, owner_id, title, status, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, p.PropertyID, p.OwnerID, p.Title, p.Status, p.Version, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	return mapInsertErr(err)
}

func (r *PropertyRepository) GetByID(ctx context.Context, propertyID uuid.UUID) (*property.Property, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, property_id, owner_id, title, status, version, created_at, updated_at
		FROM properties WHERE property_id=$1
	`, propertyID)
	return scanProperty(row)
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, p *property.Property, expectedVersion int64) error {
	res, err := r.q.Exec(ctx, `
		UPDATE properties
		SET status=$1, version=$2, updated_at=$3
		WHERE property_id=$4 AND version=$5
	`, p.Status, p.Version, p.UpdatedAt, p.PropertyID, expectedVersion)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return property.ErrVersionConflict
	}
	return nil
}

func scanProperty(row pgx.Row) (*property.Property, error) {
	var p property.Property
	if err := row.Scan(&p.ID, &p.PropertyID, &p.OwnerID, &p.Title, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
