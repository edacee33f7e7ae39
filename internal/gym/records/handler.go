package records

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type recordsRepo interface {
	List(ctx context.Context, userID int) ([]PersonalRecord, error)
}

type ListResponse struct {
	Records []PersonalRecord `json:"records"`
	Total   int              `json:"total"`
}

type Handler struct {
	repo recordsRepo
}

func NewHandler(repo recordsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	personalRecords, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list personal records for user %d: %s", userID, err)
		http.Error(w, "failed to list personal records", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{
		Records: personalRecords,
		Total:   len(personalRecords),
	})
	if err != nil {
		log.Errorf("failed to marshal personal records: %s", err)
		http.Error(w, "failed to list personal records", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}
