package roommate

import "interview-scheduler/database"

// Accessor is the DB layer entrypoint for roommate-related queries.
type Accessor struct {
	db *database.DB
}

func NewAccessor(db *database.DB) *Accessor {
	return &Accessor{db: db}
}
