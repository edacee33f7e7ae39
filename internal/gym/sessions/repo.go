package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/gym/records"
	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"
	"github.com/Arashi20/Workout-Logging-App/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSessionNotFound = errors.New("workout session not found")
	ErrNoOpenSession   = errors.New("no open workout session")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// StartSession opens a workout session, or returns the already open one.
// The partial unique index on open sessions guarantees at most one per
// user. The returned flag reports whether a new session was created.
func (r *Repo) StartSession(
	ctx context.Context,
	userID int,
	startTime time.Time,
	notes string,
) (_ *WorkoutSession, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// two attempts cover the race where the conflicting open session
	// gets closed between the insert and the read-back
	for attempt := 0; attempt < 2; attempt++ {
		var session WorkoutSession
		err = r.db.QueryRow(ctx,
			`INSERT INTO workout_session (user_id, start_time, notes)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id) WHERE end_time IS NULL DO NOTHING
				RETURNING id, user_id, start_time, notes`,
			userID, startTime, notes,
		).Scan(&session.ID, &session.UserID, &session.StartTime, &session.Notes)
		if err == nil {
			return &session, true, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, false, err
		}

		openSession, getErr := r.GetOpenSession(ctx, userID)
		if getErr == nil {
			return openSession, false, nil
		}
		if !errors.Is(getErr, ErrNoOpenSession) {
			return nil, false, getErr
		}
	}

	return nil, false, errors.New("could not open nor find a workout session")
}

// GetOpenSession returns the user's currently open session, or
// ErrNoOpenSession.
func (r *Repo) GetOpenSession(ctx context.Context, userID int) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.getOpen")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var session WorkoutSession
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, start_time, end_time, duration_minutes, notes
			FROM workout_session
			WHERE user_id = $1 AND end_time IS NULL`,
		userID,
	).Scan(
		&session.ID, &session.UserID, &session.StartTime,
		&session.EndTime, &session.DurationMinutes, &session.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoOpenSession
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// FinishSession closes the open session of a user. Duration is stored
// in whole minutes, seconds are dropped.
func (r *Repo) FinishSession(
	ctx context.Context,
	userID int,
	endTime time.Time,
	notes string,
) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	openSession, err := r.GetOpenSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	durationMinutes := int(endTime.Sub(openSession.StartTime).Minutes())
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	if notes == "" {
		notes = openSession.Notes
	}

	var session WorkoutSession
	err = r.db.QueryRow(ctx,
		`UPDATE workout_session
			SET end_time = $1, duration_minutes = $2, notes = $3
			WHERE id = $4 AND end_time IS NULL
			RETURNING id, user_id, start_time, end_time, duration_minutes, notes`,
		endTime, durationMinutes, notes, openSession.ID,
	).Scan(
		&session.ID, &session.UserID, &session.StartTime,
		&session.EndTime, &session.DurationMinutes, &session.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// closed by a concurrent request in the meantime
		return nil, ErrNoOpenSession
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// CancelSession discards the open session of a user together with all
// sets logged in it. Personal records achieved in the session survive.
func (r *Repo) CancelSession(ctx context.Context, userID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.cancel")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	openSession, err := r.GetOpenSession(ctx, userID)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			log.Errorf("cancel session %d, rollback: %s", openSession.ID, rollbackErr)
		}
	}()

	if _, err = tx.Exec(ctx,
		`DELETE FROM workout_set WHERE session_id = $1`, openSession.ID,
	); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx,
		`DELETE FROM workout_session WHERE id = $1`, openSession.ID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// AddSet logs a set in the user's open session and reports whether it
// set a new personal record. The set number is assigned inside the
// insert as one past the highest number already logged for that
// exercise in the session. A concurrent insert can collide on the
// (session, exercise, set_number) unique constraint, in which case the
// insert is retried once. When trackRecord is set and the weight beats
// the stored personal record, the record is replaced in the same
// transaction.
func (r *Repo) AddSet(
	ctx context.Context,
	userID int,
	params AddSetParams,
	trackRecord bool,
) (_ *SetEntry, _ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	openSession, err := r.GetOpenSession(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if err == nil {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			log.Errorf("add set, session %d, rollback: %s", openSession.ID, rollbackErr)
		}
	}()

	entry, err := insertSetWithRetry(ctx, tx, openSession.ID, params)
	if err != nil {
		return nil, false, err
	}

	var newRecord bool
	if trackRecord && params.Weight > 0 {
		newRecord, err = records.UpsertTx(
			ctx, tx,
			userID, params.ExerciseID,
			params.Weight, params.Reps, entry.CreatedAt,
		)
		if err != nil {
			return nil, false, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, false, err
	}

	return entry, newRecord, nil
}

// insertSetWithRetry runs insertSet inside a savepoint, so a set number
// collision with a concurrent insert does not abort the surrounding
// transaction. After rolling back to the savepoint the insert is tried
// once more with a freshly computed set number.
func insertSetWithRetry(ctx context.Context, tx pgx.Tx, sessionID int, params AddSetParams) (*SetEntry, error) {
	entry, err := insertSetScoped(ctx, tx, sessionID, params)
	if pkg.IsUniqueViolationError(err) {
		entry, err = insertSetScoped(ctx, tx, sessionID, params)
	}
	return entry, err
}

func insertSetScoped(ctx context.Context, tx pgx.Tx, sessionID int, params AddSetParams) (*SetEntry, error) {
	// a nested pgx transaction is a savepoint on the caller's transaction
	savepoint, err := tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := insertSet(ctx, savepoint, sessionID, params)
	if err != nil {
		if rollbackErr := savepoint.Rollback(ctx); rollbackErr != nil {
			return nil, fmt.Errorf("rollback to savepoint: %s: %w", rollbackErr, err)
		}
		return nil, err
	}
	if err := savepoint.Commit(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func insertSet(ctx context.Context, tx pgx.Tx, sessionID int, params AddSetParams) (*SetEntry, error) {
	entry := SetEntry{
		SessionID:   sessionID,
		ExerciseID:  params.ExerciseID,
		SetType:     params.SetType,
		Reps:        params.Reps,
		Weight:      params.Weight,
		Calories:    params.Calories,
		TimeMinutes: params.TimeMinutes,
	}
	err := tx.QueryRow(ctx,
		`INSERT INTO workout_set
			(session_id, exercise_id, set_number, set_type, reps, weight, calories, time_minutes)
			VALUES (
				$1, $2,
				(SELECT COALESCE(MAX(set_number), 0) + 1
					FROM workout_set
					WHERE session_id = $1 AND exercise_id = $2),
				$3, $4, $5, $6, $7
			)
			RETURNING id, set_number, created_at`,
		sessionID, params.ExerciseID,
		params.SetType, params.Reps, params.Weight, params.Calories, params.TimeMinutes,
	).Scan(&entry.ID, &entry.SetNumber, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListSets returns all sets of a session in the order they were logged.
func (r *Repo) ListSets(ctx context.Context, sessionID int) (_ []SetEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.listSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, session_id, exercise_id, set_number, set_type,
				reps, weight, calories, time_minutes, created_at
			FROM workout_set
			WHERE session_id = $1
			ORDER BY created_at, id`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []SetEntry
	for rows.Next() {
		var entry SetEntry
		if err := rows.Scan(
			&entry.ID, &entry.SessionID, &entry.ExerciseID, &entry.SetNumber, &entry.SetType,
			&entry.Reps, &entry.Weight, &entry.Calories, &entry.TimeMinutes, &entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		sets = append(sets, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sets, nil
}

// Get returns one finished or open session of a user.
func (r *Repo) Get(ctx context.Context, userID, sessionID int) (_ *WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var session WorkoutSession
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, start_time, end_time, duration_minutes, notes
			FROM workout_session
			WHERE id = $1 AND user_id = $2`,
		sessionID, userID,
	).Scan(
		&session.ID, &session.UserID, &session.StartTime,
		&session.EndTime, &session.DurationMinutes, &session.Notes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// List returns the user's sessions, newest first.
func (r *Repo) List(ctx context.Context, userID int) (_ []WorkoutSession, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "sessions.repo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, start_time, end_time, duration_minutes, notes
			FROM workout_session
			WHERE user_id = $1
			ORDER BY start_time DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workoutSessions []WorkoutSession
	for rows.Next() {
		var session WorkoutSession
		if err := rows.Scan(
			&session.ID, &session.UserID, &session.StartTime,
			&session.EndTime, &session.DurationMinutes, &session.Notes,
		); err != nil {
			return nil, err
		}
		workoutSessions = append(workoutSessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workoutSessions, nil
}
