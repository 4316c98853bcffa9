package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/teamfinder/models"
)

func boolPtr(v bool) *bool { return &v }

func TestEmailPreferencesVisibility(t *testing.T) {
	f := newFixture(t)
	svc := NewEmailPreferencesService(f.store.EmailPreferences())
	ctx := context.Background()

	mine := f.store.AddEmailPreferences(models.UserEmailPreferences{UserID: f.member.UserID, ReceiveApplicationEmails: true})
	theirs := f.store.AddEmailPreferences(models.UserEmailPreferences{UserID: f.outsider.UserID})

	all, err := svc.List(ctx, f.anonymous)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = svc.List(ctx, f.staff)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, f.member)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, mine.ID, own[0].ID)

	_, err = svc.Get(ctx, f.member, theirs.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Get(ctx, f.anonymous, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, theirs.UserID, got.UserID)
}

func TestEmailPreferencesSelf(t *testing.T) {
	f := newFixture(t)
	svc := NewEmailPreferencesService(f.store.EmailPreferences())
	ctx := context.Background()
	mine := f.store.AddEmailPreferences(models.UserEmailPreferences{UserID: f.member.UserID})

	got, err := svc.Self(ctx, f.member)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = svc.Self(ctx, f.anonymous)
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	_, err = svc.Self(ctx, f.outsider)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmailPreferencesUpdate(t *testing.T) {
	f := newFixture(t)
	svc := NewEmailPreferencesService(f.store.EmailPreferences())
	ctx := context.Background()
	mine := f.store.AddEmailPreferences(models.UserEmailPreferences{
		UserID:                   f.member.UserID,
		ReceiveApplicationEmails: true,
		ReceiveInvitationEmails:  true,
		ReceiveMembershipEmails:  true,
		DigestFrequency:          models.DigestWeekly,
	})
	theirs := f.store.AddEmailPreferences(models.UserEmailPreferences{UserID: f.outsider.UserID})

	daily := models.DigestDaily
	updated, err := svc.Update(ctx, f.member, mine.ID, EmailPreferencesInput{
		ReceiveInvitationEmails: boolPtr(false),
		DigestFrequency:         &daily,
	})
	require.NoError(t, err)
	assert.True(t, updated.ReceiveApplicationEmails)
	assert.False(t, updated.ReceiveInvitationEmails)
	assert.True(t, updated.ReceiveMembershipEmails)
	assert.Equal(t, models.DigestDaily, updated.DigestFrequency)

	stored, err := svc.Self(ctx, f.member)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)

	_, err = svc.Update(ctx, f.member, theirs.ID, EmailPreferencesInput{ReceiveInvitationEmails: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, f.anonymous, mine.ID, EmailPreferencesInput{})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	hourly := models.DigestFrequency("hourly")
	_, err = svc.Update(ctx, f.member, mine.ID, EmailPreferencesInput{DigestFrequency: &hourly})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Update(ctx, f.staff, theirs.ID, EmailPreferencesInput{ReceiveMembershipEmails: boolPtr(true)})
	require.NoError(t, err)
}
