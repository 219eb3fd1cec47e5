package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"interview-scheduler/apperr"
	"interview-scheduler/database"
	"interview-scheduler/logging"
	"interview-scheduler/timestamp"
)

// CreateEvent validates the draft, checks it against every stored event and
// inserts it. Conflicts are reported alongside the new event unless the draft
// asks to reject on conflict, in which case a *ConflictError is returned and
// nothing is written.
func (a *Accessor) CreateEvent(ctx context.Context, draft Draft) (Result, error) {
	if draft.RoommateID == 0 {
		return Result{}, apperr.New(apperr.KindMissingField, "roommate_id is required")
	}
	draft.normalizeText()

	var result Result
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		if err := a.checkRoommate(ctx, q, draft.RoommateID); err != nil {
			return err
		}

		start, errStart := timestamp.Normalize(draft.Start)
		end, errEnd := timestamp.Normalize(draft.End)
		if errStart != nil || errEnd != nil {
			return apperr.New(apperr.KindInvalidTimestamp, "invalid start or end ISO datetime")
		}
		if start >= end {
			return apperr.New(apperr.KindInvalidInterval, "end must be after start")
		}

		conflicts, err := FindConflicts(ctx, q, start, end, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 && draft.RejectOnConflict {
			return &ConflictError{Conflicts: conflicts}
		}

		id, err := q.Insert(ctx,
			`INSERT INTO events (roommate_id, title, start, "end", location, notes) VALUES (?, ?, ?, ?, ?, ?)`,
			draft.RoommateID, draft.Title, start, end, draft.Location, draft.Notes)
		if err != nil {
			return fmt.Errorf("insert: %w", err)
		}

		created, err := get(ctx, q, id)
		if err != nil {
			return err
		}
		result = Result{Event: created, Conflicts: conflicts}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logging.FromContext(ctx).Info("event created",
		"event_id", result.Event.ID, "roommate_id", draft.RoommateID, "conflicts", len(result.Conflicts))
	return result, nil
}

// UpdateEvent applies the supplied fields atomically. The ordering of start and
// end is checked against the resulting interval, mixing supplied and stored
// values. Conflicts are computed for the resulting interval excluding the
// event itself and never block the update.
func (a *Accessor) UpdateEvent(ctx context.Context, id int64, patch Patch) (Result, error) {
	var result Result
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		current, err := get(ctx, q, id)
		if err != nil {
			return err
		}

		var (
			sets []string
			args []any
		)
		stage := func(column string, value any) {
			sets = append(sets, column+" = ?")
			args = append(args, value)
		}

		if roommateID, ok := patch.RoommateID.Get(); ok {
			if err := a.checkRoommate(ctx, q, roommateID); err != nil {
				return err
			}
			stage("roommate_id", roommateID)
		}
		if title, ok := patch.Title.Get(); ok {
			stage("title", titleOrDefault(title))
		}
		start, end := current.Start, current.End
		if raw, ok := patch.Start.Get(); ok {
			if start, err = timestamp.Normalize(raw); err != nil {
				return apperr.New(apperr.KindInvalidTimestamp, "invalid start")
			}
			stage("start", start)
		}
		if raw, ok := patch.End.Get(); ok {
			if end, err = timestamp.Normalize(raw); err != nil {
				return apperr.New(apperr.KindInvalidTimestamp, "invalid end")
			}
			stage(`"end"`, end)
		}
		if location, ok := patch.Location.Get(); ok {
			stage("location", strings.TrimSpace(location))
		}
		if notes, ok := patch.Notes.Get(); ok {
			stage("notes", strings.TrimSpace(notes))
		}

		if len(sets) == 0 {
			return apperr.New(apperr.KindNoFields, "no fields to update")
		}
		if start >= end {
			return apperr.New(apperr.KindInvalidInterval, "end must be after start")
		}

		args = append(args, id)
		if _, err := q.Exec(ctx, `UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
			return fmt.Errorf("update: %w", err)
		}

		conflicts, err := FindConflicts(ctx, q, start, end, id)
		if err != nil {
			return err
		}
		updated, err := get(ctx, q, id)
		if err != nil {
			return err
		}
		result = Result{Event: updated, Conflicts: conflicts}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logging.FromContext(ctx).Info("event updated", "event_id", id, "conflicts", len(result.Conflicts))
	return result, nil
}

func (a *Accessor) GetEvent(ctx context.Context, id int64) (Event, error) {
	var e Event
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		var err error
		e, err = get(ctx, q, id)
		return err
	})
	return e, err
}

// GetEvents lists events overlapping the range, ordered by start. Each bound
// is normalized independently; an empty bound leaves that side open.
func (a *Accessor) GetEvents(ctx context.Context, r Range) ([]Event, error) {
	query := selectEvents
	var (
		where []string
		args  []any
	)
	if r.Start != "" {
		start, err := timestamp.Normalize(r.Start)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidTimestamp, "invalid start or end ISO datetime")
		}
		where = append(where, `e."end" > ?`)
		args = append(args, start)
	}
	if r.End != "" {
		end, err := timestamp.Normalize(r.End)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidTimestamp, "invalid start or end ISO datetime")
		}
		where = append(where, `e.start < ?`)
		args = append(args, end)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY e.start, e.id`

	var events []Event
	err := a.db.WithTx(ctx, func(q database.Querier) error {
		var err error
		events, err = queryEvents(ctx, q, query, args...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (a *Accessor) DeleteEvent(ctx context.Context, id int64) error {
	return a.db.WithTx(ctx, func(q database.Querier) error {
		n, err := q.Exec(ctx, `DELETE FROM events WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		if n == 0 {
			return apperr.New(apperr.KindNotFound, "not found")
		}
		return nil
	})
}

func (a *Accessor) checkRoommate(ctx context.Context, q database.Querier, id int64) error {
	ok, err := a.roommates.Exists(ctx, q, id)
	if err != nil {
		return fmt.Errorf("check roommate: %w", err)
	}
	if !ok {
		return apperr.New(apperr.KindInvalidReference, "invalid roommate_id")
	}
	return nil
}

func get(ctx context.Context, q database.Querier, id int64) (Event, error) {
	e, err := scanEvent(q.QueryRow(ctx, selectEvents+` WHERE e.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Event{}, apperr.New(apperr.KindNotFound, "not found")
		}
		return Event{}, fmt.Errorf("scan: %w", err)
	}
	return e, nil
}
