package programs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Arashi20/Workout-Logging-App/internal/auth"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=programs_test

type programsRepo interface {
	Add(ctx context.Context, program Program) (*Program, error)
	List(ctx context.Context, userID int) ([]Program, error)
	Delete(ctx context.Context, userID, programID int) error
}

type ListResponse struct {
	Programs []Program `json:"programs"`
	Total    int       `json:"total"`
}

type DeleteProgramResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo programsRepo
}

func NewHandler(repo programsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.add")
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

	var program Program
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		log.Tracef("new program, unmarshal json params: %s", err)
		http.Error(w, "add program failed", http.StatusBadRequest)
		return
	}

	if program.Name == "" {
		http.Error(w, "error, program name empty", http.StatusBadRequest)
		return
	}
	program.UserID = userID

	addedProgram, err := handler.repo.Add(ctx, program)
	if err != nil {
		log.Errorf("failed to add program for user %d: %s", userID, err)
		http.Error(w, "error, failed to add program", http.StatusInternalServerError)
		return
	}

	programJson, err := json.Marshal(addedProgram)
	if err != nil {
		log.Errorf("failed to marshal new program: %s", err)
		http.Error(w, "error, failed to add program", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, programJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	userPrograms, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list programs for user %d: %s", userID, err)
		http.Error(w, "failed to list programs", http.StatusInternalServerError)
		return
	}

	listJson, err := json.Marshal(ListResponse{
		Programs: userPrograms,
		Total:    len(userPrograms),
	})
	if err != nil {
		log.Errorf("failed to marshal programs: %s", err)
		http.Error(w, "failed to list programs", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, listJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no user", http.StatusUnauthorized)
		return
	}

	programID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, userID, programID); err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "program not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete program %d: %s", programID, err)
		http.Error(w, "failed to delete program", http.StatusInternalServerError)
		return
	}

	deletedJson, err := json.Marshal(DeleteProgramResponse{DeletedID: programID})
	if err != nil {
		log.Errorf("failed to marshal delete program response: %s", err)
		http.Error(w, "failed to delete program", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, deletedJson)
}
