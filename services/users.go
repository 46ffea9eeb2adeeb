package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"canteen-orders/models"
)

type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// CreateUser stores the user with a bcrypt hash of the password. The
// plaintext never reaches the database or the logs.
func (s *UserStore) CreateUser(ctx context.Context, email, password, role string, teamID *int64) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: email, Role: role, TeamID: teamID, IsActive: true}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, role, team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, is_active`,
		email, string(hash), role, teamID,
	).Scan(&user.ID, &user.CreatedAt, &user.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user %s: %w", email, ErrEmailTaken)
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("team %v: %w", teamID, ErrInvalidReference)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, role, team_id, created_at, is_active
		FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.Role, &user.TeamID, &user.CreatedAt, &user.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, email, role, team_id, created_at, is_active
		FROM users ORDER BY id OFFSET $1 LIMIT $2`,
		offset, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.TeamID, &user.CreatedAt, &user.IsActive); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
