package programs

import (
	"context"
	"errors"
	"time"

	"github.com/Arashi20/Workout-Logging-App/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProgramNotFound = errors.New("program not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, program Program) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.repo.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if program.CreatedAt.IsZero() {
		program.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO workout_program (user_id, name, description, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
		program.UserID, program.Name, program.Description, program.CreatedAt,
	).Scan(&program.ID)
	if err != nil {
		return nil, err
	}

	return &program, nil
}

// List returns the user's programs, newest first.
func (r *Repo) List(ctx context.Context, userID int) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.repo.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, description, created_at
			FROM workout_program
			WHERE user_id = $1
			ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userPrograms []Program
	for rows.Next() {
		var program Program
		if err := rows.Scan(
			&program.ID, &program.UserID, &program.Name,
			&program.Description, &program.CreatedAt,
		); err != nil {
			return nil, err
		}
		userPrograms = append(userPrograms, program)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return userPrograms, nil
}

// Delete removes a program owned by the user. Deleting an absent or
// foreign program fails with ErrProgramNotFound.
func (r *Repo) Delete(ctx context.Context, userID, programID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "programs.repo.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx,
		`DELETE FROM workout_program WHERE id = $1 AND user_id = $2`,
		programID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}

	return nil
}
