package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"interview-scheduler/event"

	"github.com/samber/mo"
)

func (a *API) getEvents(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.GetEvents(r.Context(), rangeFromQuery(r))
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, events)
}

func (a *API) getEventsCalendar(w http.ResponseWriter, r *http.Request) {
	events, err := a.events.GetEvents(r.Context(), rangeFromQuery(r))
	if err != nil {
		a.Fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := event.WriteCalendar(&buf, events, a.now()); err != nil {
		a.Fail(w, r, fmt.Errorf("encode calendar: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (a *API) getEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.badRequest(w, "invalid event ID")
		return
	}

	evt, err := a.events.GetEvent(r.Context(), id)
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, evt)
}

type createEventRequest struct {
	RoommateID       int64  `json:"roommate_id"`
	Title            string `json:"title"`
	Start            string `json:"start"`
	End              string `json:"end"`
	Location         string `json:"location"`
	Notes            string `json:"notes"`
	RejectOnConflict truthy `json:"rejectOnConflict"`
}

// truthy decodes any JSON value by truthiness: false, null, 0, "" and empty
// arrays or objects are false, everything else is true.
type truthy bool

func (b *truthy) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*b = truthy(x)
	case float64:
		*b = x != 0
	case string:
		*b = x != ""
	case []any:
		*b = len(x) > 0
	case map[string]any:
		*b = len(x) > 0
	default:
		*b = false
	}
	return nil
}

func (a *API) createEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequest(w, "invalid request body")
		return
	}

	res, err := a.events.CreateEvent(r.Context(), event.Draft{
		RoommateID:       req.RoommateID,
		Title:            req.Title,
		Start:            req.Start,
		End:              req.End,
		Location:         req.Location,
		Notes:            req.Notes,
		RejectOnConflict: bool(req.RejectOnConflict),
	})
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusCreated, res)
}

func (a *API) updateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.badRequest(w, "invalid event ID")
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		a.badRequest(w, "invalid request body")
		return
	}
	if _, err := a.events.GetEvent(r.Context(), id); err != nil {
		a.Fail(w, r, err)
		return
	}
	patch, err := eventPatch(fields)
	if err != nil {
		a.badRequest(w, err.Error())
		return
	}

	res, err := a.events.UpdateEvent(r.Context(), id, patch)
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, res)
}

func (a *API) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.badRequest(w, "invalid event ID")
		return
	}

	if err := a.events.DeleteEvent(r.Context(), id); err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, map[string]bool{"ok": true})
}

func rangeFromQuery(r *http.Request) event.Range {
	q := r.URL.Query()
	return event.Range{Start: q.Get("start"), End: q.Get("end")}
}

// eventPatch maps a decoded body onto a Patch. A key that is present with a
// null value counts as supplied with the zero value.
func eventPatch(fields map[string]json.RawMessage) (event.Patch, error) {
	var (
		patch event.Patch
		err   error
	)
	if patch.RoommateID, err = field[int64](fields, "roommate_id"); err != nil {
		return event.Patch{}, err
	}
	for key, dst := range map[string]*mo.Option[string]{
		"title":    &patch.Title,
		"start":    &patch.Start,
		"end":      &patch.End,
		"location": &patch.Location,
		"notes":    &patch.Notes,
	} {
		if *dst, err = field[string](fields, key); err != nil {
			return event.Patch{}, err
		}
	}
	return patch, nil
}

func decodeFields(r *http.Request) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	return fields, nil
}

func field[T any](fields map[string]json.RawMessage, key string) (mo.Option[T], error) {
	raw, ok := fields[key]
	if !ok {
		return mo.None[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return mo.None[T](), fmt.Errorf("invalid %s", key)
	}
	return mo.Some(v), nil
}
