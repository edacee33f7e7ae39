package weight

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=weight_test

type weightRepo interface {
	Add(ctx context.Context, weightLog Log) (*Log, error)
	List(ctx context.Context, userID int) ([]Log, error)
}

type ListResponse struct {
	Logs  []Log `json:"logs"`
	Total int   `json:"total"`
}

type Handler struct {
	repo           weightRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo weightRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.add")
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

	var weightLog Log
	if err := json.NewDecoder(r.Body).Decode(&weightLog); err != nil {
		log.Tracef("new weight log, unmarshal json params: %s", err)
		http.Error(w, "add weight log failed", http.StatusBadRequest)
		return
	}

	weightLog.UserID = userID
	if err := weightLog.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	addedLog, err := handler.repo.Add(ctx, weightLog)
	if err != nil {
		log.Errorf("failed to add weight log for user %d: %s", userID, err)
		http.Error(w, "failed to add weight log", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterMeasurementsLogged.Inc()

	logJson, err := json.Marshal(addedLog)
	if err != nil {
		log.Errorf("failed to marshal weight log: %s", err)
		http.Error(w, "failed to add weight log", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	weightLogs, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list weight logs for user %d: %s", userID, err)
		http.Error(w, "failed to list weight logs", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{
		Logs:  weightLogs,
		Total: len(weightLogs),
	})
	if err != nil {
		log.Errorf("failed to marshal weight logs: %s", err)
		http.Error(w, "failed to list weight logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

// HandleChartData serves per-index aligned arrays for the weight chart.
func (handler *Handler) HandleChartData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.weight.chartData")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	weightLogs, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list weight logs for user %d: %s", userID, err)
		http.Error(w, "failed to get chart data", http.StatusInternalServerError)
		return
	}

	chartData := ChartData{
		Dates:       make([]string, 0, len(weightLogs)),
		Weights:     make([]float64, 0, len(weightLogs)),
		BodyFat:     make([]*float64, 0, len(weightLogs)),
		VisceralFat: make([]*float64, 0, len(weightLogs)),
	}
	for _, weightLog := range weightLogs {
		chartData.Dates = append(chartData.Dates, weightLog.LoggedAt.Format("2006-01-02"))
		chartData.Weights = append(chartData.Weights, weightLog.Weight)
		chartData.BodyFat = append(chartData.BodyFat, weightLog.BodyFatPercentage)
		chartData.VisceralFat = append(chartData.VisceralFat, weightLog.VisceralFat)
	}

	chartJson, err := json.Marshal(chartData)
	if err != nil {
		log.Errorf("failed to marshal chart data: %s", err)
		http.Error(w, "failed to get chart data", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, chartJson)
}
