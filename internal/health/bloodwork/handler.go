package bloodwork

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/metrics"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=bloodwork_test

type bloodworkRepo interface {
	Add(ctx context.Context, bloodworkLog Log) (*Log, error)
	List(ctx context.Context, userID int) ([]Log, error)
}

// LogWithInsights pairs a stored log with its per-field reference-range
// classification, for charting.
type LogWithInsights struct {
	Log      Log                `json:"log"`
	Insights map[string]Insight `json:"insights"`
}

type ListResponse struct {
	Logs  []LogWithInsights `json:"logs"`
	Total int               `json:"total"`
}

type Handler struct {
	repo           bloodworkRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo bloodworkRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bloodwork.add")
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

	var bloodworkLog Log
	if err := json.NewDecoder(r.Body).Decode(&bloodworkLog); err != nil {
		log.Tracef("new bloodwork log, unmarshal json params: %s", err)
		http.Error(w, "add bloodwork log failed", http.StatusBadRequest)
		return
	}

	bloodworkLog.UserID = userID
	if err := bloodworkLog.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	bloodworkLog.DeriveHomaIndex()

	addedLog, err := handler.repo.Add(ctx, bloodworkLog)
	if err != nil {
		log.Errorf("failed to add bloodwork log for user %d: %s", userID, err)
		http.Error(w, "failed to add bloodwork log", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterMeasurementsLogged.Inc()

	logJson, err := json.Marshal(addedLog)
	if err != nil {
		log.Errorf("failed to marshal bloodwork log: %s", err)
		http.Error(w, "failed to add bloodwork log", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bloodwork.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	bloodworkLogs, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list bloodwork logs for user %d: %s", userID, err)
		http.Error(w, "failed to list bloodwork logs", http.StatusInternalServerError)
		return
	}

	logsWithInsights := make([]LogWithInsights, 0, len(bloodworkLogs))
	for _, bloodworkLog := range bloodworkLogs {
		logsWithInsights = append(logsWithInsights, LogWithInsights{
			Log:      bloodworkLog,
			Insights: bloodworkLog.Insights(),
		})
	}

	listJson, err := json.Marshal(ListResponse{
		Logs:  logsWithInsights,
		Total: len(logsWithInsights),
	})
	if err != nil {
		log.Errorf("failed to marshal bloodwork logs: %s", err)
		http.Error(w, "failed to list bloodwork logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

// HandleReferenceRanges serves the static clinical bands, the frontend
// renders them next to the charts.
func (handler *Handler) HandleReferenceRanges(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.bloodwork.referenceRanges")
	defer span.End()

	rangesJson, err := json.Marshal(ReferenceRanges)
	if err != nil {
		log.Errorf("failed to marshal reference ranges: %s", err)
		http.Error(w, "failed to get reference ranges", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, rangesJson)
}
