package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

type CreateJoinableInput struct {
	PlayerID int `json:"player" validate:"omitempty,gt=0"`
	TeamID   int `json:"team" validate:"required,gt=0"`
}

// JoinableService serves one kind of joinable event (applications or invitations).
type JoinableService interface {
	List(ctx context.Context, actor models.Actor, params ListParams) ([]models.JoinableEvent, error)
	Get(ctx context.Context, actor models.Actor, id int, params ListParams) (*models.JoinableEvent, error)
	Create(ctx context.Context, actor models.Actor, input CreateJoinableInput) (*models.JoinableEvent, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id int, params ListParams, status models.JoinableStatus) (*models.JoinableEvent, error)
}

type joinableService struct {
	kind       models.JoinableKind
	eventRepo  repositories.JoinableRepository
	teamRepo   repositories.TeamRepository
	memberRepo repositories.MembershipRepository
}

func NewApplicationService(
	eventRepo repositories.JoinableRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MembershipRepository,
) JoinableService {
	return &joinableService{kind: models.KindApplication, eventRepo: eventRepo, teamRepo: teamRepo, memberRepo: memberRepo}
}

func NewInvitationService(
	eventRepo repositories.JoinableRepository,
	teamRepo repositories.TeamRepository,
	memberRepo repositories.MembershipRepository,
) JoinableService {
	return &joinableService{kind: models.KindInvitation, eventRepo: eventRepo, teamRepo: teamRepo, memberRepo: memberRepo}
}

func (s *joinableService) scope(ctx context.Context, actor models.Actor, params ListParams) (models.JoinableFilter, error) {
	team, err := lookupTeamParam(ctx, s.teamRepo, params.Team)
	if err != nil {
		return models.JoinableFilter{}, err
	}

	var playerID *int
	if actor.IsStaff && !actor.Captains(team) {
		playerID, err = parseID("player", params.Player)
		if err != nil {
			return models.JoinableFilter{}, err
		}
	}

	return JoinableScope(actor, team, playerID), nil
}

func (s *joinableService) List(ctx context.Context, actor models.Actor, params ListParams) ([]models.JoinableEvent, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}
	filter, err := s.scope(ctx, actor, params)
	if err != nil {
		return nil, err
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.kind, err)
	}
	return events, nil
}

func (s *joinableService) Get(ctx context.Context, actor models.Actor, id int, params ListParams) (*models.JoinableEvent, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}
	filter, err := s.scope(ctx, actor, params)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, id, filter)
	if err != nil {
		if errors.Is(err, repositories.ErrJoinableNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", s.kind, id, err)
	}
	return event, nil
}

func (s *joinableService) Create(ctx context.Context, actor models.Actor, input CreateJoinableInput) (*models.JoinableEvent, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}

	event := &models.JoinableEvent{Kind: s.kind, PlayerID: input.PlayerID, TeamID: input.TeamID}

	switch s.kind {
	case models.KindApplication:
		if !actor.IsStaff {
			if actor.PlayerID == nil {
				return nil, ErrForbiddenOperation
			}
			if event.PlayerID == 0 {
				event.PlayerID = *actor.PlayerID
			}
			if !actor.IsPlayer(event.PlayerID) {
				return nil, ErrForbiddenOperation
			}
		}
	case models.KindInvitation:
		team, err := s.teamRepo.GetByID(ctx, input.TeamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrInvalidReference
			}
			return nil, fmt.Errorf("failed to get team %d: %w", input.TeamID, err)
		}
		if !actor.IsStaff && !actor.Captains(team) {
			return nil, ErrCaptainActionForbidden
		}
		event.CreatedByID = actor.PlayerID
	}

	if event.PlayerID == 0 {
		return nil, fmt.Errorf("%w: player is required", ErrValidationFailed)
	}

	isMember, err := s.memberRepo.Exists(ctx, event.TeamID, event.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team membership: %w", err)
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrJoinableConflict):
			return nil, ErrJoinableConflict
		case errors.Is(err, repositories.ErrJoinableReferenceInvalid):
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to create %s: %w", s.kind, err)
	}

	created, err := s.eventRepo.GetByID(ctx, event.ID, models.JoinableFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to reload %s %d: %w", s.kind, event.ID, err)
	}
	return created, nil
}

func (s *joinableService) UpdateStatus(ctx context.Context, actor models.Actor, id int, params ListParams, status models.JoinableStatus) (*models.JoinableEvent, error) {
	event, err := s.Get(ctx, actor, id, params)
	if err != nil {
		return nil, err
	}

	if !canEditJoinable(actor, event) {
		return nil, ErrForbiddenOperation
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: status %q is not one of pending, accepted, declined", ErrValidationFailed, status)
	}

	event.Status = status
	if err := s.eventRepo.UpdateStatus(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrJoinableNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrJoinableConflict):
			return nil, ErrJoinableConflict
		}
		return nil, fmt.Errorf("failed to update %s %d: %w", s.kind, id, err)
	}
	return event, nil
}

// canEditJoinable: staff, the event's player, or the captain of the event's team.
func canEditJoinable(actor models.Actor, event *models.JoinableEvent) bool {
	if actor.IsStaff || actor.IsPlayer(event.PlayerID) {
		return true
	}
	return event.Team != nil && actor.IsPlayer(event.Team.Captain)
}
