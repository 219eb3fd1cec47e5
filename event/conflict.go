package event

import (
	"context"
	"fmt"

	"interview-scheduler/database"
)

const selectEvents = `SELECT e.id, e.title, e.start, e."end", e.location, e.notes, e.roommate_id, r.name, r.color ` +
	`FROM events e JOIN roommates r ON r.id = e.roommate_id`

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Arguments are normalized timestamps, so touching
// endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// FindConflicts returns every stored event overlapping [start, end), across
// all roommates, ordered by start. excludeID, when non-zero, is skipped.
func FindConflicts(ctx context.Context, q database.Querier, start, end string, excludeID int64) ([]Event, error) {
	query := selectEvents + ` WHERE e.start < ? AND e."end" > ?`
	args := []any{end, start}
	if excludeID != 0 {
		query += ` AND e.id != ?`
		args = append(args, excludeID)
	}
	query += ` ORDER BY e.start, e.id`

	conflicts, err := queryEvents(ctx, q, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find conflicts: %w", err)
	}
	return conflicts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (Event, error) {
	var e Event
	err := s.Scan(&e.ID, &e.Title, &e.Start, &e.End, &e.Location, &e.Notes,
		&e.Roommate.ID, &e.Roommate.Name, &e.Roommate.Color)
	return e, err
}

func queryEvents(ctx context.Context, q database.Querier, query string, args ...any) ([]Event, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
