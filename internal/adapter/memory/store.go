package memory

import (
	"context"
	"slices"
	"sync"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

// Store is a mutex-guarded in-memory implementation of every outbound
// port. One lock covers all entities, so the submit and decide bundles
// are atomic the same way the postgres transactions are. Used by tests
// and for running the service without a database.
type Store struct {
	mu sync.RWMutex

	users      map[string]*domain.User
	emailIndex map[string]string // email -> user id

	campaigns     map[string]*domain.Campaign
	campaignOrder []string // insertion order

	applications map[string]*domain.Application
	appOrder     []string          // insertion order
	appByPair    map[string]string // campaign id \x00 creator id -> app id

	notifications map[string]*domain.Notification
	noteOrder     []string

	messages []domain.Message // global append order is the tie-break
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[string]*domain.User),
		emailIndex:    make(map[string]string),
		campaigns:     make(map[string]*domain.Campaign),
		applications:  make(map[string]*domain.Application),
		appByPair:     make(map[string]string),
		notifications: make(map[string]*domain.Notification),
	}
}

func pairKey(campaignID, creatorID string) string {
	return campaignID + "\x00" + creatorID
}

// SubmitApplication applies the whole apply bundle under one lock:
// either every record lands or none do.
func (s *Store) SubmitApplication(_ context.Context, app *domain.Application, ownerNote *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[app.CampaignID]
	if !ok {
		return domain.ErrCampaignNotFound
	}
	if c.Status != domain.CampaignActive {
		return domain.ErrCampaignClosed
	}
	key := pairKey(app.CampaignID, app.CreatorID)
	if _, exists := s.appByPair[key]; exists {
		return domain.ErrAlreadyApplied
	}

	stored := *app
	s.applications[stored.ID] = &stored
	s.appOrder = append(s.appOrder, stored.ID)
	s.appByPair[key] = stored.ID
	if !slices.Contains(c.Applicants, app.CreatorID) {
		c.Applicants = append(c.Applicants, app.CreatorID)
	}
	note := *ownerNote
	s.notifications[note.ID] = &note
	s.noteOrder = append(s.noteOrder, note.ID)
	return nil
}

func (s *Store) DecideApplication(_ context.Context, id string, decision domain.ApplicationStatus, creatorNote *domain.Notification, systemMsg *domain.Message) (*domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrInvalidTransition
	}

	app.Status = decision
	app.UpdatedAt = creatorNote.CreatedAt
	note := *creatorNote
	s.notifications[note.ID] = &note
	s.noteOrder = append(s.noteOrder, note.ID)
	s.messages = append(s.messages, *systemMsg)

	out := *app
	return &out, nil
}

func (s *Store) GetApplication(_ context.Context, id string) (*domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	app, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	out := *app
	return &out, nil
}

func (s *Store) ListByCampaign(_ context.Context, campaignID string) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Application
	for _, id := range s.appOrder {
		if app := s.applications[id]; app.CampaignID == campaignID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (s *Store) ListByCreator(_ context.Context, creatorID string) ([]domain.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Application
	for _, id := range s.appOrder {
		if app := s.applications[id]; app.CreatorID == creatorID {
			out = append(out, *app)
		}
	}
	return out, nil
}

func (s *Store) HasApplication(_ context.Context, campaignID, creatorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.appByPair[pairKey(campaignID, creatorID)]
	return ok, nil
}

func (s *Store) CreateCampaign(_ context.Context, c *domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *c
	s.campaigns[stored.ID] = &stored
	s.campaignOrder = append(s.campaignOrder, stored.ID)
	return nil
}

func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	out := *c
	out.Applicants = slices.Clone(c.Applicants)
	return &out, nil
}

// ListCampaigns returns campaigns newest first (reverse insertion
// order), optionally filtered by owning business.
func (s *Store) ListCampaigns(_ context.Context, businessID string) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Campaign
	for i := len(s.campaignOrder) - 1; i >= 0; i-- {
		c := s.campaigns[s.campaignOrder[i]]
		if businessID != "" && c.BusinessID != businessID {
			continue
		}
		cp := *c
		cp.Applicants = slices.Clone(c.Applicants)
		out = append(out, cp)
	}
	return out, nil
}

func (s *Store) UpdateCampaign(_ context.Context, id string, upd port.CampaignUpdate) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Budget != nil {
		c.Budget = *upd.Budget
	}
	if upd.Status != nil {
		c.Status = *upd.Status
	}
	out := *c
	out.Applicants = slices.Clone(c.Applicants)
	return &out, nil
}

func (s *Store) DeleteCampaign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return domain.ErrCampaignNotFound
	}
	delete(s.campaigns, id)
	s.campaignOrder = slices.DeleteFunc(s.campaignOrder, func(cid string) bool { return cid == id })
	return nil
}

func (s *Store) CreateNotification(_ context.Context, n *domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *n
	s.notifications[stored.ID] = &stored
	s.noteOrder = append(s.noteOrder, stored.ID)
	return nil
}

func (s *Store) ListForUser(_ context.Context, userID string, limit int) ([]domain.Notification, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Notification
	unread := 0
	for i := len(s.noteOrder) - 1; i >= 0; i-- {
		n := s.notifications[s.noteOrder[i]]
		if n.UserID != userID {
			continue
		}
		if !n.Read {
			unread++
		}
		if limit <= 0 || len(out) < limit {
			out = append(out, *n)
		}
	}
	return out, unread, nil
}

func (s *Store) GetNotification(_ context.Context, id string) (*domain.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}
	out := *n
	return &out, nil
}

func (s *Store) MarkRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	return nil
}

func (s *Store) AppendMessage(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, *m)
	return nil
}

// History filters the append-ordered message log, then sorts by
// creation time keeping append order for ties, so both participants
// observe the identical sequence.
func (s *Store) History(_ context.Context, campaignID, creatorID, businessID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Message
	for _, m := range s.messages {
		if m.CampaignID != campaignID {
			continue
		}
		if (m.SenderID == creatorID && m.ReceiverID == businessID) ||
			(m.SenderID == businessID && m.ReceiverID == creatorID) {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Message) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emailIndex[u.Email]; ok {
		return domain.ErrEmailTaken
	}
	stored := *u
	s.users[stored.ID] = &stored
	s.emailIndex[stored.Email] = stored.ID
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, nil
	}
	out := *s.users[id]
	return &out, nil
}
