package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/teamfinder/models"
)

type joinableFixture struct {
	*fixture
	apps        JoinableService
	invites     JoinableService
	outsiderApp models.JoinableEvent // outsider -> team
	memberApp   models.JoinableEvent // member -> otherTeam
	captainApp  models.JoinableEvent // captain -> otherTeam
}

func newJoinableFixture(t *testing.T) *joinableFixture {
	f := newFixture(t)
	s := f.store
	jf := &joinableFixture{
		fixture: f,
		apps:    NewApplicationService(s.Applications(), s.Teams(), s.Memberships()),
		invites: NewInvitationService(s.Invitations(), s.Teams(), s.Memberships()),
	}
	jf.outsiderApp = s.AddEvent(models.JoinableEvent{Kind: models.KindApplication, PlayerID: f.outsiderPlayer.ID, TeamID: f.team.ID})
	jf.memberApp = s.AddEvent(models.JoinableEvent{Kind: models.KindApplication, PlayerID: f.memberPlayer.ID, TeamID: f.otherTeam.ID})
	jf.captainApp = s.AddEvent(models.JoinableEvent{Kind: models.KindApplication, PlayerID: f.captainPlayer.ID, TeamID: f.otherTeam.ID})
	return jf
}

func TestJoinableListVisibility(t *testing.T) {
	f := newJoinableFixture(t)
	ctx := context.Background()
	teamParam := strconv.Itoa(f.team.ID)
	otherParam := strconv.Itoa(f.otherTeam.ID)

	tests := []struct {
		name   string
		actor  models.Actor
		params ListParams
		want   []int
	}{
		{"captain with own team", f.captain, ListParams{Team: teamParam}, []int{f.outsiderApp.ID}},
		{"captain without team", f.captain, ListParams{}, []int{f.captainApp.ID}},
		{"captain with malformed team", f.captain, ListParams{Team: "abc"}, []int{f.captainApp.ID}},
		{"captain with unknown team", f.captain, ListParams{Team: "9999"}, []int{f.captainApp.ID}},
		{"player with foreign team", f.member, ListParams{Team: teamParam}, []int{f.memberApp.ID}},
		{"outsider captains other team", f.outsider, ListParams{Team: otherParam}, []int{f.memberApp.ID, f.captainApp.ID}},
		{"player param ignored for non-staff", f.member, ListParams{Player: strconv.Itoa(f.outsiderPlayer.ID)}, []int{f.memberApp.ID}},
		{"staff sees all", f.staff, ListParams{}, []int{f.outsiderApp.ID, f.memberApp.ID, f.captainApp.ID}},
		{"staff narrowed by player", f.staff, ListParams{Player: strconv.Itoa(f.memberPlayer.ID)}, []int{f.memberApp.ID}},
		{"staff with foreign team", f.staff, ListParams{Team: teamParam}, []int{f.outsiderApp.ID, f.memberApp.ID, f.captainApp.ID}},
		{"no player identity", f.noPlayer, ListParams{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := f.apps.List(ctx, tt.actor, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, eventIDs(events))
		})
	}
}

func TestJoinableListErrors(t *testing.T) {
	f := newJoinableFixture(t)
	ctx := context.Background()

	_, err := f.apps.List(ctx, f.anonymous, ListParams{})
	assert.ErrorIs(t, err, ErrAuthenticationRequired)

	_, err = f.apps.List(ctx, f.staff, ListParams{Player: "abc"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestJoinableListLoadsSummaries(t *testing.T) {
	f := newJoinableFixture(t)

	events, err := f.apps.List(context.Background(), f.outsider, ListParams{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	require.NotNil(t, e.Player)
	require.NotNil(t, e.Team)
	assert.Equal(t, "outsider", e.Player.Username)
	assert.Equal(t, models.TeamSummary{ID: f.team.ID, Name: "Radiant", Captain: f.captainPlayer.ID}, *e.Team)
}

func TestJoinableGetInsideVisibleSet(t *testing.T) {
	f := newJoinableFixture(t)
	ctx := context.Background()

	_, err := f.apps.Get(ctx, f.captain, f.outsiderApp.ID, ListParams{})
	assert.ErrorIs(t, err, ErrNotFound)

	e, err := f.apps.Get(ctx, f.captain, f.outsiderApp.ID, ListParams{Team: strconv.Itoa(f.team.ID)})
	require.NoError(t, err)
	assert.Equal(t, f.outsiderApp.ID, e.ID)

	_, err = f.apps.Get(ctx, f.noPlayer, f.outsiderApp.ID, ListParams{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("own player", func(t *testing.T) {
		f := newJoinableFixture(t)
		e, err := f.apps.Create(ctx, f.captain, CreateJoinableInput{TeamID: f.otherTeam.ID})
		assert.ErrorIs(t, err, ErrJoinableConflict)
		assert.Nil(t, e)

		e, err = f.apps.Create(ctx, f.outsider, CreateJoinableInput{TeamID: f.otherTeam.ID})
		require.NoError(t, err)
		assert.Equal(t, f.outsiderPlayer.ID, e.PlayerID)
		assert.Equal(t, models.JoinableStatusPending, e.Status)
		assert.Nil(t, e.CreatedByID)
		require.NotNil(t, e.Team)
		assert.Equal(t, "Dire", e.Team.Name)
	})

	t.Run("already a member", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.member, CreateJoinableInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("duplicate pending", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.outsider, CreateJoinableInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrJoinableConflict)
	})

	t.Run("for another player", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.outsider, CreateJoinableInput{TeamID: f.otherTeam.ID, PlayerID: f.memberPlayer.ID})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("without player identity", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.noPlayer, CreateJoinableInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("staff for any player", func(t *testing.T) {
		f := newJoinableFixture(t)
		e, err := f.apps.Create(ctx, f.staff, CreateJoinableInput{TeamID: f.team.ID, PlayerID: f.memberPlayer.ID})
		assert.ErrorIs(t, err, ErrAlreadyMember)
		assert.Nil(t, e)

		_, err = f.apps.Create(ctx, f.staff, CreateJoinableInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.outsider, CreateJoinableInput{TeamID: 9999})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.apps.Create(ctx, f.anonymous, CreateJoinableInput{TeamID: f.team.ID})
		assert.ErrorIs(t, err, ErrAuthenticationRequired)
	})
}

func TestCreateInvitation(t *testing.T) {
	ctx := context.Background()

	t.Run("by captain", func(t *testing.T) {
		f := newJoinableFixture(t)
		e, err := f.invites.Create(ctx, f.captain, CreateJoinableInput{TeamID: f.team.ID, PlayerID: f.outsiderPlayer.ID})
		require.NoError(t, err)
		assert.Equal(t, models.KindInvitation, e.Kind)
		require.NotNil(t, e.CreatedByID)
		assert.Equal(t, f.captainPlayer.ID, *e.CreatedByID)

		// the invited player sees it, the captain sees it through ?team=
		events, err := f.invites.List(ctx, f.outsider, ListParams{})
		require.NoError(t, err)
		assert.Equal(t, []int{e.ID}, eventIDs(events))

		events, err = f.invites.List(ctx, f.captain, ListParams{Team: strconv.Itoa(f.team.ID)})
		require.NoError(t, err)
		assert.Equal(t, []int{e.ID}, eventIDs(events))
	})

	t.Run("by non-captain", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.invites.Create(ctx, f.member, CreateJoinableInput{TeamID: f.team.ID, PlayerID: f.outsiderPlayer.ID})
		assert.ErrorIs(t, err, ErrCaptainActionForbidden)
	})

	t.Run("player already on team", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.invites.Create(ctx, f.captain, CreateJoinableInput{TeamID: f.team.ID, PlayerID: f.memberPlayer.ID})
		assert.ErrorIs(t, err, ErrAlreadyMember)
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.invites.Create(ctx, f.captain, CreateJoinableInput{TeamID: 9999, PlayerID: f.outsiderPlayer.ID})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})

	t.Run("unknown player", func(t *testing.T) {
		f := newJoinableFixture(t)
		_, err := f.invites.Create(ctx, f.captain, CreateJoinableInput{TeamID: f.team.ID, PlayerID: 9999})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})
}

func TestUpdateJoinableStatus(t *testing.T) {
	ctx := context.Background()
	f := newJoinableFixture(t)
	teamParam := ListParams{Team: strconv.Itoa(f.team.ID)}

	e, err := f.apps.UpdateStatus(ctx, f.captain, f.outsiderApp.ID, teamParam, models.JoinableStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.JoinableStatusAccepted, e.Status)

	// accepting does not create a membership
	members, err := f.store.Memberships().List(ctx, models.MembershipFilter{TeamID: &f.team.ID})
	require.NoError(t, err)
	assert.Len(t, members, 2)

	e, err = f.apps.UpdateStatus(ctx, f.outsider, f.outsiderApp.ID, ListParams{}, models.JoinableStatusDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.JoinableStatusDeclined, e.Status)

	_, err = f.apps.UpdateStatus(ctx, f.outsider, f.outsiderApp.ID, ListParams{}, "maybe")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = f.apps.UpdateStatus(ctx, f.captain, f.outsiderApp.ID, ListParams{}, models.JoinableStatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.apps.UpdateStatus(ctx, f.staff, f.memberApp.ID, ListParams{}, models.JoinableStatusAccepted)
	require.NoError(t, err)
}

func TestCanEditJoinable(t *testing.T) {
	player, captain, stranger := 1, 2, 3
	event := &models.JoinableEvent{PlayerID: player, Team: &models.TeamSummary{Captain: captain}}

	assert.True(t, canEditJoinable(models.Actor{UserID: 9, IsStaff: true}, event))
	assert.True(t, canEditJoinable(models.Actor{UserID: 1, PlayerID: &player}, event))
	assert.True(t, canEditJoinable(models.Actor{UserID: 2, PlayerID: &captain}, event))
	assert.False(t, canEditJoinable(models.Actor{UserID: 3, PlayerID: &stranger}, event))
	assert.False(t, canEditJoinable(models.Actor{UserID: 4}, event))
}
