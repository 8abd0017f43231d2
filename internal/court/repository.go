package court

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCourtNotFound = errors.New("court not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCourt(ctx context.Context, c Court) (*Court, error) {
	query := `
		INSERT INTO courts (name, type, location, capacity, price_per_hour, status, open_time, close_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, type, location, capacity, price_per_hour, status, open_time, close_time, created_at
	`

	var created Court
	err := r.db.GetContext(ctx, &created, query,
		c.Name, c.Type, c.Location, c.Capacity, c.PricePerHour, c.Status, c.OpenTime, c.CloseTime)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListCourts(ctx context.Context, filter Filter) ([]Court, error) {
	query := `
		SELECT id, name, type, location, capacity, price_per_hour, status, open_time, close_time, created_at
		FROM courts
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND type = $1`
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		if len(args) == 1 {
			query += ` AND status = $1`
		} else {
			query += ` AND status = $2`
		}
	}

	query += ` ORDER BY name ASC, id ASC`

	courts := []Court{}
	err := r.db.SelectContext(ctx, &courts, query, args...)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *repository) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	query := `
		SELECT id, name, type, location, capacity, price_per_hour, status, open_time, close_time, created_at
		FROM courts
		WHERE id = $1
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) UpdateCourt(ctx context.Context, c Court) (*Court, error) {
	query := `
		UPDATE courts
		SET name = $1, type = $2, location = $3, capacity = $4, price_per_hour = $5,
		    status = $6, open_time = $7, close_time = $8
		WHERE id = $9
		RETURNING id, name, type, location, capacity, price_per_hour, status, open_time, close_time, created_at
	`

	var updated Court
	err := r.db.GetContext(ctx, &updated, query,
		c.Name, c.Type, c.Location, c.Capacity, c.PricePerHour, c.Status, c.OpenTime, c.CloseTime, c.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) SetStatus(ctx context.Context, id int, status string) error {
	query := `UPDATE courts SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCourtNotFound
	}

	return nil
}
