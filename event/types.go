package event

import (
	"fmt"
	"strings"

	"interview-scheduler/apperr"
	"interview-scheduler/roommate"

	"github.com/samber/mo"
)

const DefaultTitle = "Interview"

// Event is the public read shape. Roommate name and color are joined at read
// time and always reflect the current roommate record.
type Event struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Start    string            `json:"start"`
	End      string            `json:"end"`
	Location string            `json:"location"`
	Notes    string            `json:"notes"`
	Roommate roommate.Roommate `json:"roommate"`
}

// Draft is the input to CreateEvent. Start and End are raw timestamps.
type Draft struct {
	RoommateID       int64
	Title            string
	Start            string
	End              string
	Location         string
	Notes            string
	RejectOnConflict bool
}

func (d *Draft) normalizeText() {
	d.Title = titleOrDefault(d.Title)
	d.Location = strings.TrimSpace(d.Location)
	d.Notes = strings.TrimSpace(d.Notes)
}

// Patch carries the fields supplied to UpdateEvent. Start and End are raw
// timestamps.
type Patch struct {
	RoommateID mo.Option[int64]
	Title      mo.Option[string]
	Start      mo.Option[string]
	End        mo.Option[string]
	Location   mo.Option[string]
	Notes      mo.Option[string]
}

// Range bounds a listing. Empty bounds are unbounded.
type Range struct {
	Start string
	End   string
}

// Result is returned by create and update. Conflicts never block an update and
// only block a create that asked for it.
type Result struct {
	Event     Event   `json:"event"`
	Conflicts []Event `json:"conflicts"`
}

// ConflictError rejects a create whose interval overlaps existing events.
type ConflictError struct {
	Conflicts []Event
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict with %d existing event(s)", len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return apperr.New(apperr.KindConflictDetected, "conflict")
}

func titleOrDefault(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}
