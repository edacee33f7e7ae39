package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/gym/exercises"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
)

var (
	ErrInvalidSetType = errors.New("invalid set type")
	ErrOutOfRange     = errors.New("value out of range")
)

// Magnitude bounds for a single set. Strength bounds follow the usual
// gym reality, cardio bounds cap calories at an implausible burn and
// time at a full day.
const (
	minReps        = 1
	maxReps        = 1000
	maxWeight      = float64(10000)
	maxCalories    = 10000
	minTimeMinutes = 1
	maxTimeMinutes = 24 * 60
)

type sessionsRepo interface {
	StartSession(ctx context.Context, userID int, startTime time.Time, notes string) (*WorkoutSession, bool, error)
	GetOpenSession(ctx context.Context, userID int) (*WorkoutSession, error)
	FinishSession(ctx context.Context, userID int, endTime time.Time, notes string) (*WorkoutSession, error)
	CancelSession(ctx context.Context, userID int) error
	AddSet(ctx context.Context, userID int, params AddSetParams, trackRecord bool) (*SetEntry, bool, error)
	ListSets(ctx context.Context, sessionID int) ([]SetEntry, error)
	Get(ctx context.Context, userID, sessionID int) (*WorkoutSession, error)
	List(ctx context.Context, userID int) ([]WorkoutSession, error)
}

type exercisesGetter interface {
	Get(ctx context.Context, id int) (*exercises.Exercise, error)
}

// Service enforces set validation on top of the repo. All range checks
// live here so that every entry point shares the same bounds.
type Service struct {
	repo      sessionsRepo
	exercises exercisesGetter
}

func NewService(repo sessionsRepo, exercisesRepo exercisesGetter) *Service {
	return &Service{
		repo:      repo,
		exercises: exercisesRepo,
	}
}

// StartSession opens a session for the user, or hands back the one that
// is already open. Starting twice is not an error.
func (s *Service) StartSession(
	ctx context.Context,
	userID int,
	startTime time.Time,
	notes string,
) (*WorkoutSession, bool, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.start")
	defer span.End()
	return s.repo.StartSession(ctx, userID, startTime, notes)
}

func (s *Service) ActiveSession(ctx context.Context, userID int) (*WorkoutSession, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.active")
	defer span.End()
	return s.repo.GetOpenSession(ctx, userID)
}

func (s *Service) FinishSession(
	ctx context.Context,
	userID int,
	endTime time.Time,
	notes string,
) (*WorkoutSession, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.finish")
	defer span.End()
	return s.repo.FinishSession(ctx, userID, endTime, notes)
}

func (s *Service) CancelSession(ctx context.Context, userID int) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.cancel")
	defer span.End()
	return s.repo.CancelSession(ctx, userID)
}

// AddSet validates and logs a set in the user's open session. A working
// set with weight on a non-cardio exercise also feeds the personal
// record of that exercise. The returned flag reports whether a new
// personal record was set.
func (s *Service) AddSet(ctx context.Context, userID int, params AddSetParams) (_ *SetEntry, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !params.SetType.IsValid() {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidSetType, params.SetType)
	}

	exercise, err := s.exercises.Get(ctx, params.ExerciseID)
	if err != nil {
		return nil, false, err
	}

	if err := validateSet(exercise, params); err != nil {
		return nil, false, err
	}

	trackRecord := !exercise.IsCardio &&
		params.SetType == SetTypeWorking &&
		params.Weight > 0

	return s.repo.AddSet(ctx, userID, params, trackRecord)
}

func (s *Service) ListSets(ctx context.Context, userID, sessionID int) (_ []SetEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.listSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// scope check, sets of other users' sessions stay hidden
	session, err := s.repo.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListSets(ctx, session.ID)
}

func (s *Service) ListSessions(ctx context.Context, userID int) ([]WorkoutSession, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.service.list")
	defer span.End()
	return s.repo.List(ctx, userID)
}

func validateSet(exercise *exercises.Exercise, params AddSetParams) error {
	if exercise.IsCardio {
		if params.Reps != 0 || params.Weight != 0 {
			return fmt.Errorf("%w: cardio set cannot carry reps or weight", ErrOutOfRange)
		}
		if params.Calories < 0 || params.Calories > maxCalories {
			return fmt.Errorf("%w: calories %d not in [0, %d]", ErrOutOfRange, params.Calories, maxCalories)
		}
		if params.TimeMinutes < minTimeMinutes || params.TimeMinutes > maxTimeMinutes {
			return fmt.Errorf(
				"%w: time %d not in [%d, %d] minutes",
				ErrOutOfRange, params.TimeMinutes, minTimeMinutes, maxTimeMinutes,
			)
		}
		return nil
	}

	if params.Calories != 0 || params.TimeMinutes != 0 {
		return fmt.Errorf("%w: strength set cannot carry calories or time", ErrOutOfRange)
	}
	if params.Reps < minReps || params.Reps > maxReps {
		return fmt.Errorf("%w: reps %d not in [%d, %d]", ErrOutOfRange, params.Reps, minReps, maxReps)
	}
	if params.Weight < 0 || params.Weight > maxWeight {
		return fmt.Errorf("%w: weight %.2f not in [0, %.0f]", ErrOutOfRange, params.Weight, maxWeight)
	}
	return nil
}
