package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/teamfinder/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrPlayerNotFound = errors.New("player not found")
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (*models.Player, error)
	// GetByUserID returns ErrPlayerNotFound for accounts without a player profile.
	GetByUserID(ctx context.Context, userID int) (*models.Player, error)
}

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_staff, created_at`

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

type postgresPlayerRepository struct {
	db *sqlx.DB
}

func NewPostgresPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	return r.getOne(ctx, `SELECT id, user_id, username, created_at FROM players WHERE id = $1`, id)
}

func (r *postgresPlayerRepository) GetByUserID(ctx context.Context, userID int) (*models.Player, error) {
	return r.getOne(ctx, `SELECT id, user_id, username, created_at FROM players WHERE user_id = $1`, userID)
}

func (r *postgresPlayerRepository) getOne(ctx context.Context, query string, arg int) (*models.Player, error) {
	var player models.Player
	if err := r.db.GetContext(ctx, &player, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}
