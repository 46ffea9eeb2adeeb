package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"canteen-orders/models"
)

type TeamStore struct {
	pool *pgxpool.Pool
}

func NewTeamStore(pool *pgxpool.Pool) *TeamStore {
	return &TeamStore{pool: pool}
}

func (s *TeamStore) CreateTeam(ctx context.Context, name string) (*models.Team, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	team := &models.Team{Name: name}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO teams (name) VALUES ($1)
		RETURNING id, activated_from`,
		name,
	).Scan(&team.ID, &team.ActivatedFrom)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamStore) GetTeam(ctx context.Context, id int64) (*models.Team, error) {
	var team models.Team
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, activated_from FROM teams WHERE id = $1`,
		id,
	).Scan(&team.ID, &team.Name, &team.ActivatedFrom)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &team, nil
}

func (s *TeamStore) ListTeams(ctx context.Context, offset, limit int) ([]models.Team, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, activated_from FROM teams ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.ActivatedFrom); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}
