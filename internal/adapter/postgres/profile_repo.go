package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitplan/internal/domain"
)

// GetProfile returns the profile of userID, or nil when there is none.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	var (
		p        domain.Profile
		age      sql.NullInt64
		gender   sql.NullString
		height   sql.NullFloat64
		weight   sql.NullFloat64
		goal     string
		activity string
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT user_id, name, age, gender, height_cm, weight_kg, goal, activity_level, updated_at
		 FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.Name, &age, &gender, &height, &weight, &goal, &activity, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if gender.Valid {
		p.Gender = &gender.String
	}
	if height.Valid {
		p.HeightCm = &height.Float64
	}
	if weight.Valid {
		p.WeightKg = &weight.Float64
	}
	p.Goal = domain.Goal(goal)
	p.ActivityLevel = domain.ActivityLevel(activity)
	return &p, nil
}

// UpsertProfile inserts or replaces the profile of p.UserID.
func (d *DB) UpsertProfile(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	p.UpdatedAt = time.Now().UTC()
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO profiles (user_id, name, age, gender, height_cm, weight_kg, goal, activity_level, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		   name = EXCLUDED.name, age = EXCLUDED.age, gender = EXCLUDED.gender,
		   height_cm = EXCLUDED.height_cm, weight_kg = EXCLUDED.weight_kg, goal = EXCLUDED.goal,
		   activity_level = EXCLUDED.activity_level, updated_at = EXCLUDED.updated_at`,
		p.UserID, p.Name, p.Age, p.Gender, p.HeightCm, p.WeightKg, string(p.Goal), string(p.ActivityLevel), p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
