// Package txntest provides a txn.Manager for service tests.
package txntest

import (
	"context"

	"github.com/estate-hub/estate-hub/internal/domain/txn"
)

// Manager passes the same repositories to every transaction. It records how
// many transactions ran and how many were rolled back.
type Manager struct {
	Repositories txn.Repositories
	Committed    int
	RolledBack   int
}

func New(repos txn.Repositories) *Manager {
	return &Manager{Repositories: repos}
}

func (m *Manager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos txn.Repositories) error) error {
	if err := fn(ctx, m.Repositories); err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}

func (m *Manager) Repos() txn.Repositories {
	return m.Repositories
}
