package records

import (
	"context"
	"errors"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRecordNotFound = errors.New("personal record not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// List returns all personal records of a user, joined with the exercise
// name, heaviest first.
func (r *Repo) List(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.repo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT pr.id, pr.user_id, pr.exercise_id, e.name, pr.weight, pr.reps, pr.achieved_at
			FROM personal_record pr
			JOIN exercise e ON e.id = pr.exercise_id
			WHERE pr.user_id = $1
			ORDER BY pr.weight DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var personalRecords []PersonalRecord
	for rows.Next() {
		var pr PersonalRecord
		if err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.ExerciseID, &pr.ExerciseName,
			&pr.Weight, &pr.Reps, &pr.AchievedAt,
		); err != nil {
			return nil, err
		}
		personalRecords = append(personalRecords, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return personalRecords, nil
}

// Get returns the personal record of a user for one exercise, or
// ErrRecordNotFound when the user has none yet.
func (r *Repo) Get(ctx context.Context, userID, exerciseID int) (_ *PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.repo.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var pr PersonalRecord
	if err := r.db.QueryRow(ctx,
		`SELECT id, user_id, exercise_id, weight, reps, achieved_at
			FROM personal_record
			WHERE user_id = $1 AND exercise_id = $2`,
		userID, exerciseID,
	).Scan(&pr.ID, &pr.UserID, &pr.ExerciseID, &pr.Weight, &pr.Reps, &pr.AchievedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &pr, nil
}

// UpsertTx records a new personal best inside the caller's transaction
// and reports whether the stored record changed. The update clause
// fires only when the incoming weight is strictly greater than the
// stored one, so ties keep the earlier record.
func UpsertTx(
	ctx context.Context,
	tx pgx.Tx,
	userID, exerciseID int,
	weight float64,
	reps int,
	achievedAt time.Time,
) (bool, error) {
	commandTag, err := tx.Exec(ctx,
		`INSERT INTO personal_record (user_id, exercise_id, weight, reps, achieved_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, exercise_id) DO UPDATE
				SET weight = EXCLUDED.weight,
					reps = EXCLUDED.reps,
					achieved_at = EXCLUDED.achieved_at
				WHERE personal_record.weight < EXCLUDED.weight`,
		userID, exerciseID, weight, reps, achievedAt,
	)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() > 0, nil
}
