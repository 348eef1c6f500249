package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_reservation/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a user row does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateUsername is returned when an insert/update collides on the username column.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateEmail is returned when an insert/update collides on the email column.
	ErrDuplicateEmail = errors.New("email already in use")
)

// Postgres constraint names for the unique columns of tb_users.
const (
	usernameConstraint = "tb_users_username_key"
	emailConstraint    = "tb_users_email_key"
)

// DB is the subset of pgxpool.Pool the repository needs. Declared as an
// interface so tests can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, username string, changes model.ProfileChanges) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

// mapUniqueViolation translates a unique-constraint rejection into the
// sentinel naming the colliding column. Uniqueness is enforced by the
// store only; concurrent inserts of the same username resolve here.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return ErrDuplicateUsername
		case emailConstraint:
			return ErrDuplicateEmail
		}
	}
	return nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO tb_users (username, password, name_full, role, email)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, date_creation`
	err := r.db.QueryRow(ctx, sql, user.Username, user.PasswordHash, user.NameFull, user.Role, user.Email).
		Scan(&user.ID, &user.DateCreation)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername retrieves a user by exact username match
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT id, username, password, name_full, role, date_creation, email, last_code, code_expiration
            FROM tb_users WHERE username = $1`
	err := r.db.QueryRow(ctx, sql, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.NameFull,
		&user.Role, &user.DateCreation, &user.Email, &user.LastCode, &user.CodeExp,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	return user, nil
}

// UpdateProfile applies a partial update to a user's mutable profile
// columns inside a single transaction: either every supplied column is
// committed or none are.
func (r *userRepository) UpdateProfile(ctx context.Context, username string, changes model.ProfileChanges) error {
	var setClauses []string
	args := []any{}
	argCount := 1

	if changes.NameFull != nil {
		setClauses = append(setClauses, fmt.Sprintf("name_full = $%d", argCount))
		args = append(args, *changes.NameFull)
		argCount++
	}
	if changes.Email != nil {
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argCount))
		args = append(args, *changes.Email)
		argCount++
	}
	if changes.PasswordHash != nil {
		setClauses = append(setClauses, fmt.Sprintf("password = $%d", argCount))
		args = append(args, *changes.PasswordHash)
		argCount++
	}
	if len(setClauses) == 0 {
		return nil
	}

	sql := fmt.Sprintf("UPDATE tb_users SET %s WHERE username = $%d",
		strings.Join(setClauses, ", "), argCount)
	args = append(args, username)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin profile update: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, sql, args...)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}
	return nil
}
