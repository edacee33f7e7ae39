package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/gym/exercises"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/metrics"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type workoutService interface {
	StartSession(ctx context.Context, userID int, startTime time.Time, notes string) (*WorkoutSession, bool, error)
	ActiveSession(ctx context.Context, userID int) (*WorkoutSession, error)
	FinishSession(ctx context.Context, userID int, endTime time.Time, notes string) (*WorkoutSession, error)
	CancelSession(ctx context.Context, userID int) error
	AddSet(ctx context.Context, userID int, params AddSetParams) (*SetEntry, bool, error)
	ListSets(ctx context.Context, userID, sessionID int) ([]SetEntry, error)
	ListSessions(ctx context.Context, userID int) ([]WorkoutSession, error)
}

type StartSessionRequest struct {
	Notes string `json:"notes"`
}

type FinishSessionRequest struct {
	Notes string `json:"notes"`
}

type AddSetResponse struct {
	Set       SetEntry `json:"set"`
	NewRecord bool     `json:"newRecord"`
}

type ListSessionsResponse struct {
	Sessions []WorkoutSession `json:"sessions"`
	Total    int              `json:"total"`
}

type ListSetsResponse struct {
	Sets  []SetEntry `json:"sets"`
	Total int        `json:"total"`
}

type Handler struct {
	service        workoutService
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(service workoutService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var startRequest StartSessionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&startRequest); err != nil {
			http.Error(w, "start session failed", http.StatusBadRequest)
			return
		}
	}

	session, created, err := handler.service.StartSession(ctx, userID, handler.now(), startRequest.Notes)
	if err != nil {
		log.Errorf("failed to start session for user %d: %s", userID, err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal started session: %s", err)
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		return
	}

	// a repeated start hands back the session already in progress
	if !created {
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
		return
	}

	handler.metricsManager.CounterSessionsStarted.Inc()

	log.Debugf("user %d started workout session %d", userID, session.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.active")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	session, err := handler.service.ActiveSession(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNoOpenSession) {
			http.Error(w, "no active workout session", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get active session for user %d: %s", userID, err)
		http.Error(w, "failed to get active session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal active session: %s", err)
		http.Error(w, "failed to get active session", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
}

func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.finish")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	var finishRequest FinishSessionRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&finishRequest); err != nil {
			http.Error(w, "finish session failed", http.StatusBadRequest)
			return
		}
	}

	session, err := handler.service.FinishSession(ctx, userID, handler.now(), finishRequest.Notes)
	if err != nil {
		if errors.Is(err, ErrNoOpenSession) {
			// nothing to finish, not an error
			pkg.WriteTextResponseOK(w, "no open workout session")
			return
		}
		log.Errorf("failed to finish session for user %d: %s", userID, err)
		http.Error(w, "failed to finish session", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSessionsFinished.Inc()

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal finished session: %s", err)
		http.Error(w, "failed to finish session", http.StatusInternalServerError)
		return
	}

	log.Debugf("user %d finished workout session %d", userID, session.ID)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, sessionJson)
}

func (handler *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.cancel")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if err := handler.service.CancelSession(ctx, userID); err != nil {
		if errors.Is(err, ErrNoOpenSession) {
			// nothing to cancel, not an error
			pkg.WriteTextResponseOK(w, "no open workout session")
			return
		}
		log.Errorf("failed to cancel session for user %d: %s", userID, err)
		http.Error(w, "failed to cancel session", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSessionsCanceled.Inc()

	log.Debugf("user %d canceled workout session", userID)
	pkg.WriteTextResponseOK(w, "session canceled")
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.addSet")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var addSetParams AddSetParams
	if err := json.NewDecoder(r.Body).Decode(&addSetParams); err != nil {
		log.Tracef("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}

	entry, newRecord, err := handler.service.AddSet(ctx, userID, addSetParams)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoOpenSession):
			http.Error(w, "no active workout session", http.StatusBadRequest)
		case errors.Is(err, ErrInvalidSetType), errors.Is(err, ErrOutOfRange):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, exercises.ErrExerciseNotFound):
			http.Error(w, "exercise not found", http.StatusBadRequest)
		default:
			log.Errorf("failed to add set for user %d: %s", userID, err)
			http.Error(w, "failed to add set", http.StatusInternalServerError)
		}
		return
	}

	handler.metricsManager.CounterSetsLogged.Inc()
	if newRecord {
		handler.metricsManager.CounterPersonalRecords.Inc()
	}

	respJson, err := json.Marshal(AddSetResponse{
		Set:       *entry,
		NewRecord: newRecord,
	})
	if err != nil {
		log.Errorf("failed to marshal added set: %s", err)
		http.Error(w, "failed to add set", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	workoutSessions, err := handler.service.ListSessions(ctx, userID)
	if err != nil {
		log.Errorf("failed to list sessions for user %d: %s", userID, err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListSessionsResponse{
		Sessions: workoutSessions,
		Total:    len(workoutSessions),
	})
	if err != nil {
		log.Errorf("failed to marshal sessions: %s", err)
		http.Error(w, "failed to list sessions", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

func (handler *Handler) HandleListSets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.listSets")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, session id NaN", http.StatusBadRequest)
		return
	}

	sets, err := handler.service.ListSets(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to list sets of session %d: %s", sessionID, err)
		http.Error(w, "failed to list sets", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListSetsResponse{
		Sets:  sets,
		Total: len(sets),
	})
	if err != nil {
		log.Errorf("failed to marshal sets: %s", err)
		http.Error(w, "failed to list sets", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}
