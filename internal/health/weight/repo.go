package weight

import (
	"context"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, weightLog Log) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "weight.repo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if weightLog.LoggedAt.IsZero() {
		weightLog.LoggedAt = time.Now()
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO weight_log
			(user_id, weight, body_fat_percentage, visceral_fat, notes, logged_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
		weightLog.UserID, weightLog.Weight, weightLog.BodyFatPercentage,
		weightLog.VisceralFat, weightLog.Notes, weightLog.LoggedAt,
	).Scan(&weightLog.ID)
	if err != nil {
		return nil, err
	}

	return &weightLog, nil
}

// List returns the user's weight logs, oldest first, ready for charting.
func (r *Repo) List(ctx context.Context, userID int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "weight.repo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, weight, body_fat_percentage, visceral_fat, notes, logged_at
			FROM weight_log
			WHERE user_id = $1
			ORDER BY logged_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weightLogs []Log
	for rows.Next() {
		var weightLog Log
		if err := rows.Scan(
			&weightLog.ID, &weightLog.UserID, &weightLog.Weight,
			&weightLog.BodyFatPercentage, &weightLog.VisceralFat,
			&weightLog.Notes, &weightLog.LoggedAt,
		); err != nil {
			return nil, err
		}
		weightLogs = append(weightLogs, weightLog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return weightLogs, nil
}
