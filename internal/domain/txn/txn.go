// Package txn groups the repositories that a lifecycle transition writes
// together, so an agreement or sale write and the property write it drives
// commit or roll back as one unit.
package txn

import (
	"context"

	"github.com/estate-hub/estate-hub/internal/domain/agreement"
	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
	"github.com/estate-hub/estate-hub/internal/domain/sale"
)

// Repositories is a set of repositories bound to one connection or transaction.
type Repositories struct {
	Agreements agreement.Repository
	Sales      sale.Repository
	Properties property.Repository
	Profiles   profile.Repository
}

// Manager runs work inside a transaction.
type Manager interface {
	// WithinTx commits if fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	// Repos returns repositories that run outside any transaction.
	Repos() Repositories
}
