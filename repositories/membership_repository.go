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
	ErrMembershipNotFound         = errors.New("membership not found")
	ErrMembershipReferenceInvalid = errors.New("membership references a missing position")
)

type MembershipRepository interface {
	List(ctx context.Context, filter models.MembershipFilter) ([]models.TeamMember, error)
	// GetByID loads the membership together with its team.
	GetByID(ctx context.Context, id int) (*models.TeamMember, error)
	Exists(ctx context.Context, teamID, playerID int) (bool, error)
	UpdatePosition(ctx context.Context, member *models.TeamMember) error
	// Delete removes member and records removedByPlayerID in the removal log,
	// both in one transaction. removedByPlayerID is nil for staff accounts
	// without a player profile.
	Delete(ctx context.Context, member *models.TeamMember, removedByPlayerID *int) error
}

type postgresMembershipRepository struct {
	db *sqlx.DB
}

func NewPostgresMembershipRepository(db *sqlx.DB) MembershipRepository {
	return &postgresMembershipRepository{db: db}
}

type membershipRow struct {
	models.TeamMember
	TeamName      string `db:"team_name"`
	TeamCaptainID int    `db:"team_captain_id"`
}

func (row membershipRow) toModel() models.TeamMember {
	member := row.TeamMember
	member.Team = &models.Team{ID: member.TeamID, Name: row.TeamName, CaptainID: row.TeamCaptainID}
	return member
}

func membershipSelect() *selectBuilder {
	return selectColumns(
		"m.id", "m.player_id", "m.team_id", "m.position_id", "m.created_at",
		"t.name AS team_name", "t.captain_id AS team_captain_id",
	).
		From("team_members m").
		Join("JOIN teams t ON t.id = m.team_id")
}

func (r *postgresMembershipRepository) List(ctx context.Context, filter models.MembershipFilter) ([]models.TeamMember, error) {
	b := membershipSelect()
	if filter.PlayerID != nil {
		b.Where(eq("m.player_id", *filter.PlayerID))
	}
	if filter.TeamID != nil {
		b.Where(eq("m.team_id", *filter.TeamID))
	}
	query, args, err := b.OrderBy("m.id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select memberships query: %w", err)
	}

	var rows []membershipRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}

	members := make([]models.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.toModel())
	}
	return members, nil
}

func (r *postgresMembershipRepository) GetByID(ctx context.Context, id int) (*models.TeamMember, error) {
	query, args, err := membershipSelect().Where(eq("m.id", id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select membership query: %w", err)
	}

	var row membershipRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("select membership %d: %w", id, err)
	}

	member := row.toModel()
	return &member, nil
}

func (r *postgresMembershipRepository) Exists(ctx context.Context, teamID, playerID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND player_id = $2)`,
		teamID, playerID)
	if err != nil {
		return false, fmt.Errorf("check membership of player %d in team %d: %w", playerID, teamID, err)
	}
	return exists, nil
}

func (r *postgresMembershipRepository) UpdatePosition(ctx context.Context, member *models.TeamMember) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET position_id = $1 WHERE id = $2`,
		member.PositionID, member.ID)
	if err != nil {
		if pqErrorCode(err) == pqForeignKeyViolation {
			return ErrMembershipReferenceInvalid
		}
		return fmt.Errorf("update membership %d: %w", member.ID, err)
	}
	return checkAffectedRows(result, ErrMembershipNotFound)
}

func (r *postgresMembershipRepository) Delete(ctx context.Context, member *models.TeamMember, removedByPlayerID *int) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin membership delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO membership_removals (membership_id, team_id, player_id, removed_by_player_id)
		VALUES ($1, $2, $3, $4)`,
		member.ID, member.TeamID, member.PlayerID, removedByPlayerID)
	if err != nil {
		return fmt.Errorf("record removal of membership %d: %w", member.ID, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM team_members WHERE id = $1`, member.ID)
	if err != nil {
		return fmt.Errorf("delete membership %d: %w", member.ID, err)
	}
	if err = checkAffectedRows(result, ErrMembershipNotFound); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit membership delete: %w", err)
	}
	return nil
}
