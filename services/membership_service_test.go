package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/teamfinder/models"
)

func memberIDs(members []models.TeamMember) []int {
	ids := make([]int, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestMembershipList(t *testing.T) {
	f := newFixture(t)
	svc := NewMembershipService(f.store.Memberships())
	ctx := context.Background()
	other := f.store.AddMember(models.TeamMember{PlayerID: f.outsiderPlayer.ID, TeamID: f.otherTeam.ID})

	all, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []int{f.captainMembership.ID, f.memberMembership.ID, other.ID}, memberIDs(all))

	byTeam, err := svc.List(ctx, ListParams{Team: strconv.Itoa(f.team.ID)})
	require.NoError(t, err)
	assert.Equal(t, []int{f.captainMembership.ID, f.memberMembership.ID}, memberIDs(byTeam))

	both, err := svc.List(ctx, ListParams{Team: strconv.Itoa(f.team.ID), Player: strconv.Itoa(f.outsiderPlayer.ID)})
	require.NoError(t, err)
	assert.Empty(t, both)

	_, err = svc.List(ctx, ListParams{Player: "x"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
	_, err = svc.List(ctx, ListParams{Team: "-1"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestMembershipGet(t *testing.T) {
	f := newFixture(t)
	svc := NewMembershipService(f.store.Memberships())
	ctx := context.Background()

	m, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
	require.NoError(t, err)
	require.NotNil(t, m.Team)
	assert.Equal(t, f.captainPlayer.ID, m.Team.CaptainID)

	_, err = svc.Get(ctx, f.memberMembership.ID, ListParams{Team: strconv.Itoa(f.otherTeam.ID)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, 9999, ListParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMembershipAuthorize(t *testing.T) {
	f := newFixture(t)
	svc := NewMembershipService(f.store.Memberships())
	m, err := svc.Get(context.Background(), f.memberMembership.ID, ListParams{})
	require.NoError(t, err)

	assert.NoError(t, svc.Authorize(f.staff, m))
	assert.NoError(t, svc.Authorize(f.member, m))
	assert.NoError(t, svc.Authorize(f.captain, m))
	assert.ErrorIs(t, svc.Authorize(f.outsider, m), ErrForbiddenOperation)
	assert.ErrorIs(t, svc.Authorize(f.noPlayer, m), ErrForbiddenOperation)
	assert.ErrorIs(t, svc.Authorize(f.anonymous, m), ErrAuthenticationRequired)
}

func TestMembershipUpdatePosition(t *testing.T) {
	f := newFixture(t)
	svc := NewMembershipService(f.store.Memberships())
	ctx := context.Background()
	position := 2

	m, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
	require.NoError(t, err)

	updated, err := svc.UpdatePosition(ctx, f.captain, m, UpdateMembershipInput{PositionID: &position})
	require.NoError(t, err)
	require.NotNil(t, updated.PositionID)
	assert.Equal(t, 2, *updated.PositionID)

	stored, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, &position, stored.PositionID)

	_, err = svc.UpdatePosition(ctx, f.member, stored, UpdateMembershipInput{PositionID: &position})
	assert.ErrorIs(t, err, ErrCaptainActionForbidden)

	missing := 42
	_, err = svc.UpdatePosition(ctx, f.captain, stored, UpdateMembershipInput{PositionID: &missing})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestMembershipDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("captain cannot remove themselves", func(t *testing.T) {
		f := newFixture(t)
		svc := NewMembershipService(f.store.Memberships())
		m, err := svc.Get(ctx, f.captainMembership.ID, ListParams{})
		require.NoError(t, err)

		err = svc.Delete(ctx, f.captain, m)
		require.ErrorIs(t, err, ErrCannotRemoveSelfAsCaptain)
		assert.Equal(t, "You cannot remove yourself from the team if you are the captain.", err.Error())

		_, err = svc.Get(ctx, f.captainMembership.ID, ListParams{})
		assert.NoError(t, err)
		assert.Empty(t, f.store.Removals())
	})

	t.Run("captain removes a member", func(t *testing.T) {
		f := newFixture(t)
		svc := NewMembershipService(f.store.Memberships())
		m, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, f.captain, m))

		_, err = svc.Get(ctx, f.memberMembership.ID, ListParams{})
		assert.ErrorIs(t, err, ErrNotFound)

		removals := f.store.Removals()
		require.Len(t, removals, 1)
		assert.Equal(t, f.memberMembership.ID, removals[0].MembershipID)
		require.NotNil(t, removals[0].RemovedByPlayerID)
		assert.Equal(t, f.captainPlayer.ID, *removals[0].RemovedByPlayerID)
	})

	t.Run("member leaves", func(t *testing.T) {
		f := newFixture(t)
		svc := NewMembershipService(f.store.Memberships())
		m, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, f.member, m))
		require.Len(t, f.store.Removals(), 1)
		assert.Equal(t, f.memberPlayer.ID, *f.store.Removals()[0].RemovedByPlayerID)
	})

	t.Run("staff without player removes the captain", func(t *testing.T) {
		f := newFixture(t)
		svc := NewMembershipService(f.store.Memberships())
		m, err := svc.Get(ctx, f.captainMembership.ID, ListParams{})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, f.staff, m))
		require.Len(t, f.store.Removals(), 1)
		assert.Nil(t, f.store.Removals()[0].RemovedByPlayerID)
	})

	t.Run("outsider is forbidden", func(t *testing.T) {
		f := newFixture(t)
		svc := NewMembershipService(f.store.Memberships())
		m, err := svc.Get(ctx, f.memberMembership.ID, ListParams{})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Delete(ctx, f.outsider, m), ErrForbiddenOperation)
		assert.ErrorIs(t, svc.Delete(ctx, f.anonymous, m), ErrAuthenticationRequired)
	})
}
