package bloodwork

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

func (r *Repo) Add(ctx context.Context, bloodworkLog Log) (_ *Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bloodwork.repo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := time.Now()
	if bloodworkLog.TestDate.IsZero() {
		bloodworkLog.TestDate = now
	}
	if bloodworkLog.CreatedAt.IsZero() {
		bloodworkLog.CreatedAt = now
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO bloodwork_log
			(user_id, test_date,
				testosterone_total, testosterone_free, shbg, oestradiol, prolactin,
				hba1c, glucose_fasting, insulin_fasting, homa_index,
				notes, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id`,
		bloodworkLog.UserID, bloodworkLog.TestDate,
		bloodworkLog.TestosteroneTotal, bloodworkLog.TestosteroneFree,
		bloodworkLog.SHBG, bloodworkLog.Oestradiol, bloodworkLog.Prolactin,
		bloodworkLog.HbA1c, bloodworkLog.GlucoseFasting,
		bloodworkLog.InsulinFasting, bloodworkLog.HomaIndex,
		bloodworkLog.Notes, bloodworkLog.CreatedAt,
	).Scan(&bloodworkLog.ID)
	if err != nil {
		return nil, err
	}

	return &bloodworkLog, nil
}

// List returns the user's bloodwork logs, newest test first.
func (r *Repo) List(ctx context.Context, userID int) (_ []Log, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "bloodwork.repo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, test_date,
				testosterone_total, testosterone_free, shbg, oestradiol, prolactin,
				hba1c, glucose_fasting, insulin_fasting, homa_index,
				notes, created_at
			FROM bloodwork_log
			WHERE user_id = $1
			ORDER BY test_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bloodworkLogs []Log
	for rows.Next() {
		var bloodworkLog Log
		if err := rows.Scan(
			&bloodworkLog.ID, &bloodworkLog.UserID, &bloodworkLog.TestDate,
			&bloodworkLog.TestosteroneTotal, &bloodworkLog.TestosteroneFree,
			&bloodworkLog.SHBG, &bloodworkLog.Oestradiol, &bloodworkLog.Prolactin,
			&bloodworkLog.HbA1c, &bloodworkLog.GlucoseFasting,
			&bloodworkLog.InsulinFasting, &bloodworkLog.HomaIndex,
			&bloodworkLog.Notes, &bloodworkLog.CreatedAt,
		); err != nil {
			return nil, err
		}
		bloodworkLogs = append(bloodworkLogs, bloodworkLog)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bloodworkLogs, nil
}
