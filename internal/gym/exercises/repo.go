package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("duplicate exercise")
)

const (
	listCacheKey        = "exercise-list"
	listCacheTTLSeconds = 60
	listCacheSizeBytes  = 512 * 1024
)

type Repo struct {
	db *pgxpool.Pool
	// the catalog is read-heavy and rarely mutated, so the full list is
	// kept in a small in-process cache, dropped on every mutation
	cache *freecache.Cache
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db:    db,
		cache: freecache.NewCache(listCacheSizeBytes),
	}
}

// Add inserts a new catalog entry. The name is normalized first; a clash
// with an existing name (case-insensitive) yields ErrDuplicateExercise.
func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise.Name = NormalizeName(exercise.Name)
	if exercise.Name == "" {
		return nil, errors.New("exercise name empty")
	}
	if exercise.CreatedAt.IsZero() {
		exercise.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise
				(name, description, exercise_type, is_bodyweight, is_cardio, created_at)
				VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;`,
		exercise.Name, exercise.Description, exercise.ExerciseType,
		exercise.IsBodyweight, exercise.IsCardio, exercise.CreatedAt,
	).Scan(&exercise.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrDuplicateExercise
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))

	r.cache.Del([]byte(listCacheKey))
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	exercise := &Exercise{}
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, description, exercise_type, is_bodyweight, is_cardio, created_at
			FROM exercise WHERE id = $1;`,
		id,
	).Scan(
		&exercise.ID, &exercise.Name, &exercise.Description, &exercise.ExerciseType,
		&exercise.IsBodyweight, &exercise.IsCardio, &exercise.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("query exercise: %w", err)
	}

	return exercise, nil
}

// List returns the whole catalog ordered by name.
func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if cached, cacheErr := r.cache.Get([]byte(listCacheKey)); cacheErr == nil {
		var exercises []Exercise
		if err := json.Unmarshal(cached, &exercises); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return exercises, nil
		}
		// corrupted entry, fall through to the db
		r.cache.Del([]byte(listCacheKey))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, exercise_type, is_bodyweight, is_cardio, created_at
			FROM exercise ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.ExerciseType,
			&e.IsBodyweight, &e.IsCardio, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	if listJson, marshalErr := json.Marshal(exercises); marshalErr == nil {
		if cacheErr := r.cache.Set([]byte(listCacheKey), listJson, listCacheTTLSeconds); cacheErr != nil {
			log.Tracef("exercise list cache set: %s", cacheErr)
		}
	}

	return exercises, nil
}

// Delete removes the exercise together with every set and personal record
// referencing it, across all users, in a single transaction. The cascade is
// intentionally global: the catalog is shared, and a removed movement must
// not leave dangling history behind for anyone.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM workout_set WHERE exercise_id = $1;`, id); err != nil {
		return fmt.Errorf("delete sets: %w", err)
	}
	if _, err = tx.Exec(ctx, `DELETE FROM personal_record WHERE exercise_id = $1;`, id); err != nil {
		return fmt.Errorf("delete personal records: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM exercise WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	r.cache.Del([]byte(listCacheKey))
	return nil
}
