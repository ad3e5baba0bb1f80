package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/estate-hub/estate-hub/internal/domain/txn"
)

// TxManager implements txn.Manager on a pgx pool.
type TxManager struct {
	pool   *pgxpool.Pool
	repos  txn.Repositories
	logger zerolog.Logger
}

func NewTxManager(pool *pgxpool.Pool, logger zerolog.Logger) *TxManager {
	return &TxManager{
		pool:   pool,
		repos:  repositories(pool),
		logger: logger.With().Str("component", "tx").Logger(),
	}
}

// WithinTx runs fn in a read-committed transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos txn.Repositories) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			m.logger.Warn().Err(err).Msg("rollback failed")
		}
	}()

	if err := fn(ctx, repositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Repos returns repositories bound to the pool, for reads outside a transaction.
func (m *TxManager) Repos() txn.Repositories {
	return m.repos
}

func repositories(q querier) txn.Repositories {
	return txn.Repositories{
		Agreements: &AgreementRepository{q: q},
		Sales:      &SaleRepository{q: q},
		Properties: &PropertyRepository{q: q},
		Profiles:   &ProfileRepository{q: q},
	}
}
