package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// SaleRepository implements sale.Repository.
type SaleRepository struct {
	q querier
}

func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{q: pool}
}

func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO sales
		(sale_id, buyer_id, seller_id, property_id, status, price, notes, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, s.SaleID, s.BuyerID, s.SellerID, s.PropertyID, s.Status, s.Price, s.Notes, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
	return mapInsertErr(err)
}

func (r *SaleRepository) GetByID(ctx context.Context, saleID uuid.UUID) (*sale.Sale, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, sale_id, buyer_id, seller_id, property_id, status, price, notes, created_at, updated_at
		FROM sales WHERE sale_id=$1
	`, saleID)
	return scanSale(row)
}

func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	_, err := r.q.Exec(ctx, `
		UPDATE sales SET status=$1, price=$2, notes=$3, updated_at=$4 WHERE sale_id=$5
	`, s.Status, s.Price, s.Notes, s.UpdatedAt, s.SaleID)
	return err
}

func (r *SaleRepository) Delete(ctx context.Context, saleID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM sales WHERE sale_id=$1`, saleID)
	return err
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	if err := row.Scan(&s.ID, &s.SaleID, &s.BuyerID, &s.SellerID, &s.PropertyID, &s.Status, &s.Price, &s.Notes, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
