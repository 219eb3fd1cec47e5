package api

import (
	"encoding/json"
	"net/http"

	"interview-scheduler/roommate"
)

func (a *API) getRoommates(w http.ResponseWriter, r *http.Request) {
	roommates, err := a.roommates.GetRoommates(r.Context())
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, roommates)
}

type createRoommateRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (a *API) createRoommate(w http.ResponseWriter, r *http.Request) {
	var req createRoommateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequest(w, "invalid request body")
		return
	}

	created, err := a.roommates.CreateRoommate(r.Context(), roommate.Roommate{Name: req.Name, Color: req.Color})
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusCreated, created)
}

func (a *API) updateRoommate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.badRequest(w, "invalid roommate ID")
		return
	}

	fields, err := decodeFields(r)
	if err != nil {
		a.badRequest(w, "invalid request body")
		return
	}
	if _, err := a.roommates.GetRoommate(r.Context(), id); err != nil {
		a.Fail(w, r, err)
		return
	}
	// A null name or color means "leave unchanged" for roommates.
	for key, raw := range fields {
		if string(raw) == "null" {
			delete(fields, key)
		}
	}

	var patch roommate.Patch
	if patch.Name, err = field[string](fields, "name"); err != nil {
		a.badRequest(w, err.Error())
		return
	}
	if patch.Color, err = field[string](fields, "color"); err != nil {
		a.badRequest(w, err.Error())
		return
	}

	updated, err := a.roommates.UpdateRoommate(r.Context(), id, patch)
	if err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, updated)
}

func (a *API) deleteRoommate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		a.badRequest(w, "invalid roommate ID")
		return
	}

	if err := a.roommates.DeleteRoommate(r.Context(), id); err != nil {
		a.Fail(w, r, err)
		return
	}
	a.Response(w, http.StatusOK, map[string]bool{"ok": true})
}
