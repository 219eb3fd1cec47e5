package roommate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"interview-scheduler/apperr"
	"interview-scheduler/database"
	"interview-scheduler/logging"
)

func (a *Accessor) GetRoommates(ctx context.Context) ([]Roommate, error) {
	roommates := []Roommate{}
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT id, name, color FROM roommates ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var r Roommate
			if err := rows.Scan(&r.ID, &r.Name, &r.Color); err != nil {
				return err
			}
			roommates = append(roommates, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list roommates: %w", err)
	}
	return roommates, nil
}

func (a *Accessor) GetRoommate(ctx context.Context, id int64) (Roommate, error) {
	var r Roommate
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		var err error
		r, err = get(ctx, q, id)
		return err
	})
	return r, err
}

func (a *Accessor) CreateRoommate(ctx context.Context, roommate Roommate) (Roommate, error) {
	if err := roommate.Validate(); err != nil {
		return Roommate{}, err
	}

	err := a.db.WithTx(ctx, func(q database.Querier) error {
		id, err := q.Insert(ctx, `INSERT INTO roommates (name, color) VALUES (?, ?)`, roommate.Name, roommate.Color)
		if err != nil {
			return translate(err)
		}
		roommate.ID = id
		return nil
	})
	if err != nil {
		return Roommate{}, err
	}
	return roommate, nil
}

// UpdateRoommate applies the supplied fields in one unit of work and returns
// the stored record.
func (a *Accessor) UpdateRoommate(ctx context.Context, id int64, patch Patch) (Roommate, error) {
	var updated Roommate
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		if _, err := get(ctx, q, id); err != nil {
			return err
		}
		if err := patch.Validate(); err != nil {
			return err
		}
		if name, ok := patch.Name.Get(); ok {
			if _, err := q.Exec(ctx, `UPDATE roommates SET name = ? WHERE id = ?`, name, id); err != nil {
				return translate(err)
			}
		}
		if color, ok := patch.Color.Get(); ok {
			if _, err := q.Exec(ctx, `UPDATE roommates SET color = ? WHERE id = ?`, color, id); err != nil {
				return translate(err)
			}
		}

		var err error
		updated, err = get(ctx, q, id)
		return err
	})
	if err != nil {
		return Roommate{}, err
	}
	return updated, nil
}

// DeleteRoommate removes the roommate together with its events.
func (a *Accessor) DeleteRoommate(ctx context.Context, id int64) error {
	return a.db.WithTx(ctx, func(q database.Querier) error {
		n, err := q.Exec(ctx, `DELETE FROM roommates WHERE id = ?`, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.New(apperr.KindNotFound, "not found")
		}
		return nil
	})
}

// Exists reports whether id names a stored roommate. It runs inside the
// caller's unit of work.
func (a *Accessor) Exists(ctx context.Context, q database.Querier, id int64) (bool, error) {
	var found int64
	err := q.QueryRow(ctx, `SELECT id FROM roommates WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("scan: %w", err)
	}
	return true, nil
}

// Seed inserts Roster when the roommates table is empty and reports how many
// rows were added.
func (a *Accessor) Seed(ctx context.Context) (int, error) {
	inserted := 0
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		var count int
		if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM roommates`).Scan(&count); err != nil {
			return fmt.Errorf("count: %w", err)
		}
		if count > 0 {
			return nil
		}
		for _, r := range Roster {
			if _, err := q.Insert(ctx, `INSERT INTO roommates (name, color) VALUES (?, ?)`, r.Name, r.Color); err != nil {
				return fmt.Errorf("insert %s: %w", r.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("seed roommates: %w", err)
	}
	if inserted > 0 {
		logging.FromContext(ctx).Info("seeded roommates", "count", inserted)
	}
	return inserted, nil
}

func get(ctx context.Context, q database.Querier, id int64) (Roommate, error) {
	var r Roommate
	row := q.QueryRow(ctx, `SELECT id, name, color FROM roommates WHERE id = ?`, id)
	if err := row.Scan(&r.ID, &r.Name, &r.Color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Roommate{}, apperr.New(apperr.KindNotFound, "not found")
		}
		return Roommate{}, fmt.Errorf("scan: %w", err)
	}
	return r, nil
}

func translate(err error) error {
	if database.IsConstraint(err, database.ConstraintUnique) {
		return apperr.New(apperr.KindDuplicateName, "Roommate name must be unique")
	}
	return err
}
