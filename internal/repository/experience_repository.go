package repository

import (
	"context"

	"bookit/internal/model"
	apperrors "bookit/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExperienceRepository interface {
	List(ctx context.Context) ([]*model.Experience, error)
	FindByID(ctx context.Context, id int) (*model.Experience, error)

	// Transaction methods
	FindByIDWithTx(ctx context.Context, tx pgx.Tx, id int) (*model.Experience, error)
}

type ExperienceRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewExperienceRepository(pool *pgxpool.Pool) ExperienceRepository {
	return &ExperienceRepositoryImpl{
		pool: pool,
	}
}

const experienceColumns = `
	id, title, description, location, price, duration,
	image_url, category, rating, created_at, updated_at
`

func scanExperience(row pgx.Row) (*model.Experience, error) {
	var experience model.Experience
	err := row.Scan(
		&experience.ID,
		&experience.Title,
		&experience.Description,
		&experience.Location,
		&experience.Price,
		&experience.Duration,
		&experience.ImageURL,
		&experience.Category,
		&experience.Rating,
		&experience.CreatedAt,
		&experience.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (r *ExperienceRepositoryImpl) List(ctx context.Context) ([]*model.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM experiences
		ORDER BY rating DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := make([]*model.Experience, 0)

	for rows.Next() {
		experience, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, experience)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return experiences, nil
}

func (r *ExperienceRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM experiences
		WHERE id = $1
	`

	experience, err := scanExperience(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrExperienceNotFound
		}
		return nil, err
	}

	return experience, nil
}

func (r *ExperienceRepositoryImpl) FindByIDWithTx(ctx context.Context, tx pgx.Tx, id int) (*model.Experience, error) {
	query := `
		SELECT ` + experienceColumns + `
		FROM experiences
		WHERE id = $1
	`

	experience, err := scanExperience(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrExperienceNotFound
		}
		return nil, err
	}

	return experience, nil
}
