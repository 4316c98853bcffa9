// Package memory holds in-process implementations of the repository
// interfaces. Tests and local tooling use them in place of postgres.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

// Store is the shared state behind every in-memory repository, so that
// joins (event -> team captain, membership -> team) see the same rows.
type Store struct {
	mu     sync.RWMutex
	nextID int
	now    func() time.Time

	users        map[int]models.User
	players      map[int]models.Player
	teams        map[int]models.Team
	members      map[int]models.TeamMember
	removals     []models.MembershipRemoval
	applications map[int]models.JoinableEvent
	invitations  map[int]models.JoinableEvent
	emailPrefs   map[int]models.UserEmailPreferences
	catalogs     map[models.Catalog][]models.CatalogEntry
}

func NewStore() *Store {
	return &Store{
		now:          func() time.Time { return time.Now().UTC() },
		users:        make(map[int]models.User),
		players:      make(map[int]models.Player),
		teams:        make(map[int]models.Team),
		members:      make(map[int]models.TeamMember),
		applications: make(map[int]models.JoinableEvent),
		invitations:  make(map[int]models.JoinableEvent),
		emailPrefs:   make(map[int]models.UserEmailPreferences),
		catalogs:     make(map[models.Catalog][]models.CatalogEntry),
	}
}

func (s *Store) Users() repositories.UserRepository             { return userRepository{s} }
func (s *Store) Players() repositories.PlayerRepository         { return playerRepository{s} }
func (s *Store) Teams() repositories.TeamRepository             { return teamRepository{s} }
func (s *Store) Memberships() repositories.MembershipRepository { return membershipRepository{s} }
func (s *Store) Catalogs() repositories.CatalogRepository       { return catalogRepository{s} }

func (s *Store) Applications() repositories.JoinableRepository {
	return joinableRepository{store: s, kind: models.KindApplication}
}

func (s *Store) Invitations() repositories.JoinableRepository {
	return joinableRepository{store: s, kind: models.KindInvitation}
}

func (s *Store) EmailPreferences() repositories.EmailPreferencesRepository {
	return emailPreferencesRepository{s}
}

// id returns the given id, or the next free one when it is zero.
// Callers hold s.mu.
func (s *Store) id(id int) int {
	if id == 0 {
		s.nextID++
		return s.nextID
	}
	if id > s.nextID {
		s.nextID = id
	}
	return id
}

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.id(u.ID)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) AddPlayer(p models.Player) models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id(p.ID)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	s.players[p.ID] = p
	return p
}

func (s *Store) AddTeam(t models.Team) models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.id(t.ID)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	t.Members = nil
	s.teams[t.ID] = t
	return t
}

func (s *Store) AddMember(m models.TeamMember) models.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.id(m.ID)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.now()
	}
	m.Team = nil
	s.members[m.ID] = m
	return m
}

// AddEvent stores an application or invitation as given, without the
// uniqueness checks Create performs.
func (s *Store) AddEvent(e models.JoinableEvent) models.JoinableEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.id(e.ID)
	if e.Status == "" {
		e.Status = models.JoinableStatusPending
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
		e.UpdatedAt = e.CreatedAt
	}
	e.Player, e.Team = nil, nil
	s.events(e.Kind)[e.ID] = e
	return e
}

func (s *Store) AddEmailPreferences(p models.UserEmailPreferences) models.UserEmailPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id(p.ID)
	if p.DigestFrequency == "" {
		p.DigestFrequency = models.DigestWeekly
	}
	s.emailPrefs[p.ID] = p
	return p
}

func (s *Store) AddCatalogEntry(catalog models.Catalog, name string) models.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := models.CatalogEntry{ID: len(s.catalogs[catalog]) + 1, Name: name}
	s.catalogs[catalog] = append(s.catalogs[catalog], entry)
	return entry
}

// Removals returns the membership removal log in insertion order.
func (s *Store) Removals() []models.MembershipRemoval {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.MembershipRemoval(nil), s.removals...)
}

func (s *Store) events(kind models.JoinableKind) map[int]models.JoinableEvent {
	if kind == models.KindInvitation {
		return s.invitations
	}
	return s.applications
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
