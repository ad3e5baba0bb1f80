package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/estate-hub/estate-hub/internal/domain/profile"
	"github.com/estate-hub/estate-hub/internal/domain/property"
)

// mapInsertErr turns constraint violations on insert into domain errors.
// A foreign key violation means the referenced property or profile is gone.
func mapInsertErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		switch pgErr.ConstraintName {
		case "rent_agreements_property_fk", "sales_property_fk":
			return fmt.Errorf("%w: %s", property.ErrNotFound, pgErr.Detail)
		default:
			return fmt.Errorf("%w: %s", profile.ErrNotFound, pgErr.Detail)
		}
	case pgerrcode.UniqueViolation:
		if pgErr.ConstraintName == "profiles_username_key" {
			return profile.ErrUsernameTaken
		}
	}
	return err
}
