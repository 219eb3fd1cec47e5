package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"interview-scheduler/apperr"
	"interview-scheduler/database"
	"interview-scheduler/event"
	"interview-scheduler/logging"
	"interview-scheduler/roommate"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type Options struct {
	Logger *slog.Logger
	// StaticDir, when set, is served at "/" for paths outside /api.
	StaticDir string
	Now       func() time.Time
}

type API struct {
	db        *database.DB
	router    *mux.Router
	api       *mux.Router
	roommates *roommate.Accessor
	events    *event.Accessor
	logger    *slog.Logger
	staticDir string
	now       func() time.Time
}

func NewAPI(db *database.DB, opts Options) *API {
	r := mux.NewRouter()
	roommates := roommate.NewAccessor(db)

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &API{
		db:        db,
		router:    r,
		api:       r.PathPrefix("/api").Subrouter(),
		roommates: roommates,
		events:    event.NewAccessor(db, roommates),
		logger:    logger,
		staticDir: opts.StaticDir,
		now:       now,
	}
}

// Router exposes the bare router without the outer access log, recovery and
// compression layers.
func (a *API) Router() http.Handler {
	return a.router
}

func (a *API) Handler() http.Handler {
	h := handlers.CompressHandler(a.router)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{a.logger}))(h)
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, h)
}

func (a *API) RegisterRoutes() {
	a.router.Use(requestContext(a.logger))

	a.api.HandleFunc("/health", a.health).Methods(http.MethodGet)

	a.api.HandleFunc("/roommates", a.getRoommates).Methods(http.MethodGet)
	a.api.HandleFunc("/roommates", a.createRoommate).Methods(http.MethodPost)
	a.api.HandleFunc("/roommates/{id:[0-9]+}", a.updateRoommate).Methods(http.MethodPut)
	a.api.HandleFunc("/roommates/{id:[0-9]+}", a.deleteRoommate).Methods(http.MethodDelete)

	a.api.HandleFunc("/events", a.getEvents).Methods(http.MethodGet)
	a.api.HandleFunc("/events.ics", a.getEventsCalendar).Methods(http.MethodGet)
	a.api.HandleFunc("/events", a.createEvent).Methods(http.MethodPost)
	a.api.HandleFunc("/events/{id:[0-9]+}", a.getEvent).Methods(http.MethodGet)
	a.api.HandleFunc("/events/{id:[0-9]+}", a.updateEvent).Methods(http.MethodPut)
	a.api.HandleFunc("/events/{id:[0-9]+}", a.deleteEvent).Methods(http.MethodDelete)

	if a.staticDir != "" {
		a.router.PathPrefix("/").Handler(http.FileServer(http.Dir(a.staticDir))).Methods(http.MethodGet, http.MethodHead)
	}
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error     string        `json:"error"`
	Conflicts []event.Event `json:"conflicts,omitempty"`
}

// Fail writes err as a structured error. Classified errors carry their own
// message; anything else is logged and reported as a server fault.
func (a *API) Fail(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr *event.ConflictError
	if errors.As(err, &conflictErr) {
		a.Response(w, http.StatusConflict, errorResponse{Error: "conflict", Conflicts: conflictErr.Conflicts})
		return
	}

	status := statusFor(apperr.KindOf(err))
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		a.Response(w, status, errorResponse{Error: "internal server error"})
		return
	}
	a.Response(w, status, errorResponse{Error: err.Error()})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindMissingField, apperr.KindInvalidReference, apperr.KindInvalidTimestamp,
		apperr.KindInvalidInterval, apperr.KindNoFields:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateName, apperr.KindConflictDetected:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) badRequest(w http.ResponseWriter, message string) {
	a.Response(w, http.StatusBadRequest, errorResponse{Error: message})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}
