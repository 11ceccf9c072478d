package postgres

import (
	"context"
	"errors"

	"github.com/AbhishekDL36/LMS/internal/domain"
	"github.com/AbhishekDL36/LMS/internal/utils"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (name, email, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at;
    `

	err := s.pool.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, created_at
        FROM users WHERE email = $1;
    `

	var user domain.User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	const query = `
        SELECT id, name, email, role, created_at
        FROM users WHERE id = $1;
    `

	var user domain.User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.User, error) {
	const query = `
        SELECT id, name, email, role, created_at
        FROM users
        ORDER BY id;
    `

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var users []domain.User
	for rows.Next() {
		var u domain.User
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, nil
}

func (s *Storage) UpdateUserRole(ctx context.Context, id int, role string) (*domain.User, error) {
	const query = `
        UPDATE users SET role = $2
        WHERE id = $1
        RETURNING id, name, email, role, created_at;
    `

	var user domain.User
	err := s.pool.QueryRow(ctx, query, id, role).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, id int) error {
	const query = `DELETE FROM users WHERE id = $1;`

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}

	return nil
}
