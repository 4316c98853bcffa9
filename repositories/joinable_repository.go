package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/teamfinder/models"
)

var (
	ErrJoinableNotFound         = errors.New("joinable event not found")
	ErrJoinableConflict         = errors.New("a pending event already exists for this player and team")
	ErrJoinableReferenceInvalid = errors.New("joinable event references a missing player or team")
)

// JoinableRepository stores one kind of joinable event (applications or invitations).
type JoinableRepository interface {
	// List returns the events visible under filter, with player and team summaries loaded.
	List(ctx context.Context, filter models.JoinableFilter) ([]models.JoinableEvent, error)
	// GetByID looks id up inside the set visible under filter.
	GetByID(ctx context.Context, id int, filter models.JoinableFilter) (*models.JoinableEvent, error)
	// Create fills ID, Status, CreatedAt and UpdatedAt.
	Create(ctx context.Context, event *models.JoinableEvent) error
	// UpdateStatus stores event.Status and refreshes event.UpdatedAt.
	UpdateStatus(ctx context.Context, event *models.JoinableEvent) error
}

type postgresJoinableRepository struct {
	db   *sqlx.DB
	kind models.JoinableKind
}

func NewPostgresApplicationRepository(db *sqlx.DB) JoinableRepository {
	return &postgresJoinableRepository{db: db, kind: models.KindApplication}
}

func NewPostgresInvitationRepository(db *sqlx.DB) JoinableRepository {
	return &postgresJoinableRepository{db: db, kind: models.KindInvitation}
}

type joinableRow struct {
	models.JoinableEvent
	PlayerUsername string `db:"player_username"`
	TeamName       string `db:"team_name"`
	TeamCaptainID  int    `db:"team_captain_id"`
}

func (row joinableRow) toModel(kind models.JoinableKind) models.JoinableEvent {
	event := row.JoinableEvent
	event.Kind = kind
	event.Player = &models.PlayerSummary{ID: event.PlayerID, Username: row.PlayerUsername}
	event.Team = &models.TeamSummary{ID: event.TeamID, Name: row.TeamName, Captain: row.TeamCaptainID}
	return event
}

func (r *postgresJoinableRepository) table() string {
	if r.kind == models.KindInvitation {
		return "invitations"
	}
	return "applications"
}

func (r *postgresJoinableRepository) selectBuilder() *selectBuilder {
	createdBy := "NULL::integer AS created_by_id"
	if r.kind == models.KindInvitation {
		createdBy = "e.created_by_id"
	}
	return selectColumns(
		"e.id", "e.player_id", "e.team_id", createdBy, "e.status", "e.created_at", "e.updated_at",
		"p.username AS player_username", "t.name AS team_name", "t.captain_id AS team_captain_id",
	).
		From(r.table() + " e").
		Join("JOIN players p ON p.id = e.player_id").
		Join("JOIN teams t ON t.id = e.team_id")
}

func joinableConditions(filter models.JoinableFilter) []condition {
	if filter.MatchNone {
		return []condition{expr("1 = 0")}
	}
	var conds []condition
	if filter.TeamID != nil {
		conds = append(conds, eq("e.team_id", *filter.TeamID))
	}
	if filter.PlayerID != nil {
		conds = append(conds, eq("e.player_id", *filter.PlayerID))
	}
	return conds
}

func (r *postgresJoinableRepository) List(ctx context.Context, filter models.JoinableFilter) ([]models.JoinableEvent, error) {
	query, args, err := r.selectBuilder().Where(joinableConditions(filter)...).OrderBy("e.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", r.table(), err)
	}

	var rows []joinableRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.table(), err)
	}

	events := make([]models.JoinableEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.toModel(r.kind))
	}
	return events, nil
}

func (r *postgresJoinableRepository) GetByID(ctx context.Context, id int, filter models.JoinableFilter) (*models.JoinableEvent, error) {
	query, args, err := r.selectBuilder().
		Where(append([]condition{eq("e.id", id)}, joinableConditions(filter)...)...).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s by id query: %w", r.table(), err)
	}

	var row joinableRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJoinableNotFound
		}
		return nil, fmt.Errorf("select %s by id: %w", r.table(), err)
	}

	event := row.toModel(r.kind)
	return &event, nil
}

func (r *postgresJoinableRepository) Create(ctx context.Context, event *models.JoinableEvent) error {
	var row *sqlx.Row
	if r.kind == models.KindInvitation {
		row = r.db.QueryRowxContext(ctx, `
			INSERT INTO invitations (player_id, team_id, created_by_id)
			VALUES ($1, $2, $3)
			RETURNING id, status, created_at, updated_at`,
			event.PlayerID, event.TeamID, event.CreatedByID)
	} else {
		row = r.db.QueryRowxContext(ctx, `
			INSERT INTO applications (player_id, team_id)
			VALUES ($1, $2)
			RETURNING id, status, created_at, updated_at`,
			event.PlayerID, event.TeamID)
	}

	err := row.Scan(&event.ID, &event.Status, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		switch pqErrorCode(err) {
		case pqUniqueViolation:
			return ErrJoinableConflict
		case pqForeignKeyViolation:
			return ErrJoinableReferenceInvalid
		}
		return fmt.Errorf("insert %s: %w", r.table(), err)
	}
	event.Kind = r.kind
	return nil
}

func (r *postgresJoinableRepository) UpdateStatus(ctx context.Context, event *models.JoinableEvent) error {
	query := `UPDATE ` + r.table() + ` SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query, event.Status, event.ID).Scan(&event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrJoinableNotFound
		}
		if pqErrorCode(err) == pqUniqueViolation {
			return ErrJoinableConflict
		}
		return fmt.Errorf("update %s status: %w", r.table(), err)
	}
	return nil
}
