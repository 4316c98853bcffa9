package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

// UpdateMembershipInput is the captain-edit payload.
type UpdateMembershipInput struct {
	PositionID *int `json:"position" validate:"omitempty,gt=0"`
}

type MembershipService interface {
	List(ctx context.Context, params ListParams) ([]models.TeamMember, error)
	// Get resolves id inside the set narrowed by params.
	Get(ctx context.Context, id int, params ListParams) (*models.TeamMember, error)
	UpdatePosition(ctx context.Context, actor models.Actor, member *models.TeamMember, input UpdateMembershipInput) (*models.TeamMember, error)
	// Authorize checks that actor may edit or delete member.
	Authorize(actor models.Actor, member *models.TeamMember) error
	Delete(ctx context.Context, actor models.Actor, member *models.TeamMember) error
}

type membershipService struct {
	memberRepo repositories.MembershipRepository
}

func NewMembershipService(memberRepo repositories.MembershipRepository) MembershipService {
	return &membershipService{memberRepo: memberRepo}
}

func membershipFilter(params ListParams) (models.MembershipFilter, error) {
	playerID, err := parseID("player", params.Player)
	if err != nil {
		return models.MembershipFilter{}, err
	}
	teamID, err := parseID("team", params.Team)
	if err != nil {
		return models.MembershipFilter{}, err
	}
	return models.MembershipFilter{PlayerID: playerID, TeamID: teamID}, nil
}

func (s *membershipService) List(ctx context.Context, params ListParams) ([]models.TeamMember, error) {
	filter, err := membershipFilter(params)
	if err != nil {
		return nil, err
	}

	members, err := s.memberRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return members, nil
}

func (s *membershipService) Get(ctx context.Context, id int, params ListParams) (*models.TeamMember, error) {
	filter, err := membershipFilter(params)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership %d: %w", id, err)
	}
	if !filter.Matches(*member) {
		return nil, ErrNotFound
	}
	return member, nil
}

func (s *membershipService) Authorize(actor models.Actor, member *models.TeamMember) error {
	if !actor.IsAuthenticated() {
		return ErrAuthenticationRequired
	}
	if actor.IsStaff || actor.IsPlayer(member.PlayerID) || actor.Captains(member.Team) {
		return nil
	}
	return ErrForbiddenOperation
}

func (s *membershipService) UpdatePosition(ctx context.Context, actor models.Actor, member *models.TeamMember, input UpdateMembershipInput) (*models.TeamMember, error) {
	if err := s.Authorize(actor, member); err != nil {
		return nil, err
	}
	if !actor.Captains(member.Team) {
		return nil, ErrCaptainActionForbidden
	}

	member.PositionID = input.PositionID
	if err := s.memberRepo.UpdatePosition(ctx, member); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMembershipNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrMembershipReferenceInvalid):
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to update membership %d: %w", member.ID, err)
	}
	return member, nil
}

func (s *membershipService) Delete(ctx context.Context, actor models.Actor, member *models.TeamMember) error {
	if err := s.Authorize(actor, member); err != nil {
		return err
	}
	if actor.IsPlayer(member.PlayerID) && actor.Captains(member.Team) {
		return ErrCannotRemoveSelfAsCaptain
	}

	if err := s.memberRepo.Delete(ctx, member, actor.PlayerID); err != nil {
		if errors.Is(err, repositories.ErrMembershipNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete membership %d: %w", member.ID, err)
	}
	return nil
}
