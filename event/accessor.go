package event

import (
	"context"

	"interview-scheduler/database"
)

type RoommateChecker interface {
	Exists(ctx context.Context, q database.Querier, id int64) (bool, error)
}

type Accessor struct {
	db        *database.DB
	roommates RoommateChecker
}

func NewAccessor(db *database.DB, roommates RoommateChecker) *Accessor {
	return &Accessor{
		db:        db,
		roommates: roommates,
	}
}
