package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fitplan/internal/domain"

	"github.com/lib/pq"
)

const planColumns = "id, user_id, day, exercises, meals, completed_status, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (domain.DailyPlan, error) {
	var (
		p                        domain.DailyPlan
		exercises, meals, status []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Day, &exercises, &meals, &status, &p.UpdatedAt); err != nil {
		return p, err
	}
	if err := decodePlanJSON(&p, exercises, meals, status); err != nil {
		return p, fmt.Errorf("plan %d: %w", p.ID, err)
	}
	return p, nil
}

func decodePlanJSON(p *domain.DailyPlan, exercises, meals, status []byte) error {
	p.Exercises = []domain.Exercise{}
	p.Meals = []domain.Meal{}
	p.CompletedStatus = domain.NewCompletionStatus()
	if err := json.Unmarshal(exercises, &p.Exercises); err != nil {
		return fmt.Errorf("decode exercises: %w", err)
	}
	if err := json.Unmarshal(meals, &p.Meals); err != nil {
		return fmt.Errorf("decode meals: %w", err)
	}
	if len(status) > 0 {
		if err := json.Unmarshal(status, &p.CompletedStatus); err != nil {
			return fmt.Errorf("decode completed_status: %w", err)
		}
	}
	if p.CompletedStatus.Exercises == nil {
		p.CompletedStatus.Exercises = []string{}
	}
	if p.CompletedStatus.Meals == nil {
		p.CompletedStatus.Meals = []string{}
	}
	return nil
}

// encodePlanJSON returns the JSONB column values as text; lib/pq would send
// a []byte parameter as bytea.
func encodePlanJSON(p domain.DailyPlan) (exercises, meals, status string, err error) {
	if p.Exercises == nil {
		p.Exercises = []domain.Exercise{}
	}
	if p.Meals == nil {
		p.Meals = []domain.Meal{}
	}
	if p.CompletedStatus.Exercises == nil {
		p.CompletedStatus.Exercises = []string{}
	}
	if p.CompletedStatus.Meals == nil {
		p.CompletedStatus.Meals = []string{}
	}
	e, err := json.Marshal(p.Exercises)
	if err != nil {
		return "", "", "", err
	}
	m, err := json.Marshal(p.Meals)
	if err != nil {
		return "", "", "", err
	}
	st, err := json.Marshal(p.CompletedStatus)
	if err != nil {
		return "", "", "", err
	}
	return string(e), string(m), string(st), nil
}

// ListPlans returns the user's plans ordered Monday to Sunday.
func (d *DB) ListPlans(ctx context.Context, userID int64) ([]domain.DailyPlan, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+planColumns+" FROM daily_plans WHERE user_id = $1 ORDER BY array_position($2::text[], day), id",
		userID, pq.Array(domain.Weekdays),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.DailyPlan, 0, len(domain.Weekdays))
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetPlan returns the plan of userID for day, or nil when there is none.
func (d *DB) GetPlan(ctx context.Context, userID int64, day string) (*domain.DailyPlan, error) {
	p, err := scanPlan(d.sql.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM daily_plans WHERE user_id = $1 AND day = $2", userID, day))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePlan overwrites the items and completion status of an existing plan.
func (d *DB) UpdatePlan(ctx context.Context, plan *domain.DailyPlan) error {
	exercises, meals, status, err := encodePlanJSON(*plan)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	res, err := d.sql.ExecContext(ctx,
		`UPDATE daily_plans SET exercises = $1, meals = $2, completed_status = $3, updated_at = $4
		 WHERE user_id = $5 AND day = $6`,
		exercises, meals, status, now, plan.UserID, plan.Day,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	plan.UpdatedAt = now
	return nil
}

// ReplaceWeek deletes every plan of userID and inserts plans in one transaction.
func (d *DB) ReplaceWeek(ctx context.Context, userID int64, plans []domain.DailyPlan) error {
	now := time.Now().UTC()
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM daily_plans WHERE user_id = $1", userID); err != nil {
			return err
		}
		for _, p := range plans {
			exercises, meals, status, err := encodePlanJSON(p)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO daily_plans (user_id, day, exercises, meals, completed_status, updated_at)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				userID, p.Day, exercises, meals, status, now,
			); err != nil {
				return fmt.Errorf("insert %s: %w", p.Day, err)
			}
		}
		return nil
	})
}
