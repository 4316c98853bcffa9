package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

// EmailPreferencesInput carries the editable flags. Nil fields are left
// unchanged, so the same type serves PUT (all fields required by the
// handler) and PATCH.
type EmailPreferencesInput struct {
	ReceiveApplicationEmails *bool                   `json:"receive_application_emails"`
	ReceiveInvitationEmails  *bool                   `json:"receive_invitation_emails"`
	ReceiveMembershipEmails  *bool                   `json:"receive_membership_emails"`
	DigestFrequency          *models.DigestFrequency `json:"digest_frequency" validate:"omitempty,oneof=never daily weekly"`
}

func (in EmailPreferencesInput) apply(p *models.UserEmailPreferences) {
	if in.ReceiveApplicationEmails != nil {
		p.ReceiveApplicationEmails = *in.ReceiveApplicationEmails
	}
	if in.ReceiveInvitationEmails != nil {
		p.ReceiveInvitationEmails = *in.ReceiveInvitationEmails
	}
	if in.ReceiveMembershipEmails != nil {
		p.ReceiveMembershipEmails = *in.ReceiveMembershipEmails
	}
	if in.DigestFrequency != nil {
		p.DigestFrequency = *in.DigestFrequency
	}
}

type EmailPreferencesService interface {
	List(ctx context.Context, actor models.Actor) ([]models.UserEmailPreferences, error)
	Get(ctx context.Context, actor models.Actor, id int) (*models.UserEmailPreferences, error)
	Self(ctx context.Context, actor models.Actor) (*models.UserEmailPreferences, error)
	Update(ctx context.Context, actor models.Actor, id int, input EmailPreferencesInput) (*models.UserEmailPreferences, error)
}

type emailPreferencesService struct {
	prefsRepo repositories.EmailPreferencesRepository
}

func NewEmailPreferencesService(prefsRepo repositories.EmailPreferencesRepository) EmailPreferencesService {
	return &emailPreferencesService{prefsRepo: prefsRepo}
}

func (s *emailPreferencesService) List(ctx context.Context, actor models.Actor) ([]models.UserEmailPreferences, error) {
	prefs, err := s.prefsRepo.List(ctx, EmailPreferencesScope(actor))
	if err != nil {
		return nil, fmt.Errorf("failed to list email preferences: %w", err)
	}
	return prefs, nil
}

func (s *emailPreferencesService) Get(ctx context.Context, actor models.Actor, id int) (*models.UserEmailPreferences, error) {
	prefs, err := s.prefsRepo.GetByID(ctx, id, EmailPreferencesScope(actor))
	if err != nil {
		if errors.Is(err, repositories.ErrEmailPreferencesNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email preferences %d: %w", id, err)
	}
	return prefs, nil
}

func (s *emailPreferencesService) Self(ctx context.Context, actor models.Actor) (*models.UserEmailPreferences, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}

	prefs, err := s.prefsRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailPreferencesNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get email preferences of user %d: %w", actor.UserID, err)
	}
	return prefs, nil
}

func (s *emailPreferencesService) Update(ctx context.Context, actor models.Actor, id int, input EmailPreferencesInput) (*models.UserEmailPreferences, error) {
	if !actor.IsAuthenticated() {
		return nil, ErrAuthenticationRequired
	}
	if input.DigestFrequency != nil && !input.DigestFrequency.Valid() {
		return nil, fmt.Errorf("%w: digest_frequency %q is not one of never, daily, weekly", ErrValidationFailed, *input.DigestFrequency)
	}

	prefs, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	input.apply(prefs)
	if err := s.prefsRepo.Update(ctx, prefs); err != nil {
		if errors.Is(err, repositories.ErrEmailPreferencesNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update email preferences %d: %w", id, err)
	}
	return prefs, nil
}
