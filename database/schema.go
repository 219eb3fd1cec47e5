package database

import (
	"context"
	"fmt"

	"interview-scheduler/logging"
)

// Migrate creates the roommates and events tables when they do not exist.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range d.dialect.Schema() {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate %s: %w", d.dialect.Name(), err)
		}
	}
	logging.FromContext(ctx).Debug("schema ready", "dialect", d.dialect.Name())
	return nil
}
