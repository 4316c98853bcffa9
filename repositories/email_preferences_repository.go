package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/teamfinder/models"
)

var ErrEmailPreferencesNotFound = errors.New("email preferences not found")

type EmailPreferencesRepository interface {
	// List returns every record when userID is nil, otherwise only that user's.
	List(ctx context.Context, userID *int) ([]models.UserEmailPreferences, error)
	GetByID(ctx context.Context, id int, userID *int) (*models.UserEmailPreferences, error)
	GetByUserID(ctx context.Context, userID int) (*models.UserEmailPreferences, error)
	Update(ctx context.Context, prefs *models.UserEmailPreferences) error
}

type postgresEmailPreferencesRepository struct {
	db *sqlx.DB
}

func NewPostgresEmailPreferencesRepository(db *sqlx.DB) EmailPreferencesRepository {
	return &postgresEmailPreferencesRepository{db: db}
}

func emailPreferencesSelect() *selectBuilder {
	return selectColumns(
		"id", "user_id", "receive_application_emails", "receive_invitation_emails",
		"receive_membership_emails", "digest_frequency",
	).From("user_email_preferences")
}

func (r *postgresEmailPreferencesRepository) List(ctx context.Context, userID *int) ([]models.UserEmailPreferences, error) {
	b := emailPreferencesSelect()
	if userID != nil {
		b.Where(eq("user_id", *userID))
	}
	query, args, err := b.OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select email preferences query: %w", err)
	}

	prefs := []models.UserEmailPreferences{}
	if err := r.db.SelectContext(ctx, &prefs, query, args...); err != nil {
		return nil, fmt.Errorf("select email preferences: %w", err)
	}
	return prefs, nil
}

func (r *postgresEmailPreferencesRepository) GetByID(ctx context.Context, id int, userID *int) (*models.UserEmailPreferences, error) {
	b := emailPreferencesSelect().Where(eq("id", id))
	if userID != nil {
		b.Where(eq("user_id", *userID))
	}
	return r.getOne(ctx, b)
}

func (r *postgresEmailPreferencesRepository) GetByUserID(ctx context.Context, userID int) (*models.UserEmailPreferences, error) {
	return r.getOne(ctx, emailPreferencesSelect().Where(eq("user_id", userID)))
}

func (r *postgresEmailPreferencesRepository) getOne(ctx context.Context, b *selectBuilder) (*models.UserEmailPreferences, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select email preferences query: %w", err)
	}

	var prefs models.UserEmailPreferences
	if err := r.db.GetContext(ctx, &prefs, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEmailPreferencesNotFound
		}
		return nil, fmt.Errorf("select email preferences: %w", err)
	}
	return &prefs, nil
}

func (r *postgresEmailPreferencesRepository) Update(ctx context.Context, prefs *models.UserEmailPreferences) error {
	result, err := r.db.NamedExecContext(ctx, `
		UPDATE user_email_preferences
		SET receive_application_emails = :receive_application_emails,
			receive_invitation_emails = :receive_invitation_emails,
			receive_membership_emails = :receive_membership_emails,
			digest_frequency = :digest_frequency
		WHERE id = :id`, prefs)
	if err != nil {
		return fmt.Errorf("update email preferences %d: %w", prefs.ID, err)
	}
	return checkAffectedRows(result, ErrEmailPreferencesNotFound)
}
