package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/estate-hub/estate-hub/internal/domain/agreement"
)

const agreementColumns = `id, agreement_id, buyer_id, seller_id, property_id, status, monthly_rent, start_date, end_date, terms, created_at, updated_at`

// AgreementRepository implements agreement.Repository.
type AgreementRepository struct {
	q querier
}

func NewAgreementRepository(pool *pgxpool.Pool) *AgreementRepository {
	return &AgreementRepository{q: pool}
}

func (r *AgreementRepository) Create(ctx context.Context, a *agreement.RentAgreement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO rent_agreements
		(agreement_id, buyer_id, seller_id, property_id, status, monthly_rent, start_date, end_date, terms, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`, a.AgreementID, a.BuyerID, a.SellerID, a.PropertyID, a.Status, a.MonthlyRent,
		a.StartDate, a.EndDate, a.Terms, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	return mapInsertErr(err)
}

func (r *AgreementRepository) GetByID(ctx context.Context, agreementID uuid.UUID) (*agreement.RentAgreement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+agreementColumns+` FROM rent_agreements WHERE agreement_id=$1`, agreementID)
	return scanAgreement(row)
}

func (r *AgreementRepository) Update(ctx context.Context, a *agreement.RentAgreement) error {
	_, err := r.q.Exec(ctx, `
		UPDATE rent_agreements
		SET status=$1, monthly_rent=$2, start_date=$3, end_date=$4, terms=$5, updated_at=$6
		WHERE agreement_id=$7
	`, a.Status, a.MonthlyRent, a.StartDate, a.EndDate, a.Terms, a.UpdatedAt, a.AgreementID)
	return err
}

func (r *AgreementRepository) Delete(ctx context.Context, agreementID uuid.UUID) error {
	_, err := r.q.Exec(ctx, `DELETE FROM rent_agreements WHERE agreement_id=$1`, agreementID)
	return err
}

func (r *AgreementRepository) List(ctx context.Context, filter agreement.Filter, limit, offset int) ([]*agreement.RentAgreement, error) {
	where, args := agreementWhere(filter)
	query := `SELECT ` + agreementColumns + ` FROM rent_agreements` + where +
		` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*agreement.RentAgreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AgreementRepository) Count(ctx context.Context, filter agreement.Filter) (int, error) {
	where, args := agreementWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM rent_agreements`+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func agreementWhere(filter agreement.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.BuyerID != nil {
		args = append(args, *filter.BuyerID)
		conds = append(conds, "buyer_id=$"+strconv.Itoa(len(args)))
	}
	if filter.SellerID != nil {
		args = append(args, *filter.SellerID)
		conds = append(conds, "seller_id=$"+strconv.Itoa(len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAgreement(row pgx.Row) (*agreement.RentAgreement, error) {
	var a agreement.RentAgreement
	if err := row.Scan(
		&a.ID, &a.AgreementID, &a.BuyerID, &a.SellerID, &a.PropertyID, &a.Status,
		&a.MonthlyRent, &a.StartDate, &a.EndDate, &a.Terms, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
