package services

import (
	"testing"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories/memory"
)

// fixture is a small world: one team captained by "captain" with "member"
// on it, an "outsider" player, a staff account without a player and a
// plain account without a player.
type fixture struct {
	store *memory.Store

	team      models.Team
	otherTeam models.Team

	captainPlayer  models.Player
	memberPlayer   models.Player
	outsiderPlayer models.Player

	captainMembership models.TeamMember
	memberMembership  models.TeamMember

	staff     models.Actor
	captain   models.Actor
	member    models.Actor
	outsider  models.Actor
	noPlayer  models.Actor
	anonymous models.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s := memory.NewStore()
	f := &fixture{store: s}

	staffUser := s.AddUser(models.User{Username: "admin", IsStaff: true})
	f.staff = models.Actor{UserID: staffUser.ID, IsStaff: true}

	f.captainPlayer, f.captain = addPlayerAccount(s, "captain")
	f.memberPlayer, f.member = addPlayerAccount(s, "member")
	f.outsiderPlayer, f.outsider = addPlayerAccount(s, "outsider")

	plain := s.AddUser(models.User{Username: "plain"})
	f.noPlayer = models.Actor{UserID: plain.ID}

	f.team = s.AddTeam(models.Team{Name: "Radiant", CaptainID: f.captainPlayer.ID})
	f.otherTeam = s.AddTeam(models.Team{Name: "Dire", CaptainID: f.outsiderPlayer.ID})

	f.captainMembership = s.AddMember(models.TeamMember{PlayerID: f.captainPlayer.ID, TeamID: f.team.ID})
	f.memberMembership = s.AddMember(models.TeamMember{PlayerID: f.memberPlayer.ID, TeamID: f.team.ID})

	s.AddCatalogEntry(models.CatalogPositions, "Carry")
	s.AddCatalogEntry(models.CatalogPositions, "Support")

	return f
}

func addPlayerAccount(s *memory.Store, name string) (models.Player, models.Actor) {
	u := s.AddUser(models.User{Username: name})
	p := s.AddPlayer(models.Player{UserID: u.ID, Username: name})
	id := p.ID
	return p, models.Actor{UserID: u.ID, PlayerID: &id}
}

func eventIDs(events []models.JoinableEvent) []int {
	ids := make([]int, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}
