package memory

import (
	"context"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

type userRepository struct{ s *Store }

func (r userRepository) GetByID(_ context.Context, id int) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

type playerRepository struct{ s *Store }

func (r playerRepository) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r playerRepository) GetByUserID(_ context.Context, userID int) (*models.Player, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.players {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrPlayerNotFound
}

type teamRepository struct{ s *Store }

func (r teamRepository) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

type membershipRepository struct{ s *Store }

func (r membershipRepository) withTeam(m models.TeamMember) models.TeamMember {
	if t, ok := r.s.teams[m.TeamID]; ok {
		m.Team = &t
	}
	return m
}

func (r membershipRepository) List(_ context.Context, filter models.MembershipFilter) ([]models.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.TeamMember{}
	for _, id := range sortedKeys(r.s.members) {
		if m := r.s.members[id]; filter.Matches(m) {
			out = append(out, r.withTeam(m))
		}
	}
	return out, nil
}

func (r membershipRepository) GetByID(_ context.Context, id int) (*models.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, repositories.ErrMembershipNotFound
	}
	m = r.withTeam(m)
	return &m, nil
}

func (r membershipRepository) Exists(_ context.Context, teamID, playerID int) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, m := range r.s.members {
		if m.TeamID == teamID && m.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (r membershipRepository) UpdatePosition(_ context.Context, member *models.TeamMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members[member.ID]
	if !ok {
		return repositories.ErrMembershipNotFound
	}
	if member.PositionID != nil && !r.s.hasCatalogEntry(models.CatalogPositions, *member.PositionID) {
		return repositories.ErrMembershipReferenceInvalid
	}
	m.PositionID = member.PositionID
	r.s.members[m.ID] = m
	return nil
}

func (r membershipRepository) Delete(_ context.Context, member *models.TeamMember, removedByPlayerID *int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members[member.ID]
	if !ok {
		return repositories.ErrMembershipNotFound
	}
	r.s.removals = append(r.s.removals, models.MembershipRemoval{
		ID:                len(r.s.removals) + 1,
		MembershipID:      m.ID,
		TeamID:            m.TeamID,
		PlayerID:          m.PlayerID,
		RemovedByPlayerID: removedByPlayerID,
		RemovedAt:         r.s.now(),
	})
	delete(r.s.members, m.ID)
	return nil
}

type joinableRepository struct {
	store *Store
	kind  models.JoinableKind
}

// view fills the nested summaries the postgres repository joins in.
func (r joinableRepository) view(e models.JoinableEvent) models.JoinableEvent {
	e.Kind = r.kind
	if p, ok := r.store.players[e.PlayerID]; ok {
		e.Player = &models.PlayerSummary{ID: p.ID, Username: p.Username}
	}
	if t, ok := r.store.teams[e.TeamID]; ok {
		e.Team = &models.TeamSummary{ID: t.ID, Name: t.Name, Captain: t.CaptainID}
	}
	return e
}

func (r joinableRepository) List(_ context.Context, filter models.JoinableFilter) ([]models.JoinableEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	events := r.store.events(r.kind)
	all := make([]models.JoinableEvent, 0, len(events))
	for _, id := range sortedKeys(events) {
		all = append(all, r.view(events[id]))
	}
	return filter.Apply(all), nil
}

func (r joinableRepository) GetByID(_ context.Context, id int, filter models.JoinableFilter) (*models.JoinableEvent, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.events(r.kind)[id]
	if !ok || !filter.Matches(e) {
		return nil, repositories.ErrJoinableNotFound
	}
	e = r.view(e)
	return &e, nil
}

func (r joinableRepository) Create(_ context.Context, event *models.JoinableEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.players[event.PlayerID]; !ok {
		return repositories.ErrJoinableReferenceInvalid
	}
	if _, ok := r.store.teams[event.TeamID]; !ok {
		return repositories.ErrJoinableReferenceInvalid
	}

	events := r.store.events(r.kind)
	for _, e := range events {
		if e.PlayerID == event.PlayerID && e.TeamID == event.TeamID && e.Status == models.JoinableStatusPending {
			return repositories.ErrJoinableConflict
		}
	}

	now := r.store.now()
	event.ID = r.store.id(0)
	event.Kind = r.kind
	event.Status = models.JoinableStatusPending
	event.CreatedAt, event.UpdatedAt = now, now
	if r.kind == models.KindApplication {
		event.CreatedByID = nil
	}

	stored := *event
	stored.Player, stored.Team = nil, nil
	events[stored.ID] = stored
	return nil
}

func (r joinableRepository) UpdateStatus(_ context.Context, event *models.JoinableEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	events := r.store.events(r.kind)
	e, ok := events[event.ID]
	if !ok {
		return repositories.ErrJoinableNotFound
	}
	if event.Status == models.JoinableStatusPending && e.Status != models.JoinableStatusPending {
		for _, other := range events {
			if other.ID != e.ID && other.PlayerID == e.PlayerID && other.TeamID == e.TeamID &&
				other.Status == models.JoinableStatusPending {
				return repositories.ErrJoinableConflict
			}
		}
	}

	e.Status = event.Status
	e.UpdatedAt = r.store.now()
	events[e.ID] = e
	event.UpdatedAt = e.UpdatedAt
	return nil
}

type emailPreferencesRepository struct{ s *Store }

func (r emailPreferencesRepository) List(_ context.Context, userID *int) ([]models.UserEmailPreferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []models.UserEmailPreferences{}
	for _, id := range sortedKeys(r.s.emailPrefs) {
		p := r.s.emailPrefs[id]
		if userID == nil || p.UserID == *userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r emailPreferencesRepository) GetByID(_ context.Context, id int, userID *int) (*models.UserEmailPreferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.emailPrefs[id]
	if !ok || (userID != nil && p.UserID != *userID) {
		return nil, repositories.ErrEmailPreferencesNotFound
	}
	return &p, nil
}

func (r emailPreferencesRepository) GetByUserID(_ context.Context, userID int) (*models.UserEmailPreferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.emailPrefs {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repositories.ErrEmailPreferencesNotFound
}

func (r emailPreferencesRepository) Update(_ context.Context, prefs *models.UserEmailPreferences) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.emailPrefs[prefs.ID]
	if !ok {
		return repositories.ErrEmailPreferencesNotFound
	}
	p.ReceiveApplicationEmails = prefs.ReceiveApplicationEmails
	p.ReceiveInvitationEmails = prefs.ReceiveInvitationEmails
	p.ReceiveMembershipEmails = prefs.ReceiveMembershipEmails
	p.DigestFrequency = prefs.DigestFrequency
	r.s.emailPrefs[p.ID] = p
	return nil
}

type catalogRepository struct{ s *Store }

func (r catalogRepository) List(_ context.Context, catalog models.Catalog) ([]models.CatalogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if !knownCatalog(catalog) {
		return nil, repositories.ErrUnknownCatalog
	}
	return append([]models.CatalogEntry{}, r.s.catalogs[catalog]...), nil
}

func (r catalogRepository) GetByID(_ context.Context, catalog models.Catalog, id int) (*models.CatalogEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if !knownCatalog(catalog) {
		return nil, repositories.ErrUnknownCatalog
	}
	for _, e := range r.s.catalogs[catalog] {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, repositories.ErrCatalogEntryNotFound
}

func knownCatalog(c models.Catalog) bool {
	switch c {
	case models.CatalogRegions, models.CatalogPositions, models.CatalogInterests, models.CatalogLanguages:
		return true
	}
	return false
}

func (s *Store) hasCatalogEntry(catalog models.Catalog, id int) bool {
	for _, e := range s.catalogs[catalog] {
		if e.ID == id {
			return true
		}
	}
	return false
}
