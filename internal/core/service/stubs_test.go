package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/sportmeet/backend/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by id
	tokens   map[string]*domain.Token   // keyed by value
	nextID   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{
		accounts: make(map[string]*domain.Account),
		tokens:   make(map[string]*domain.Token),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) CreateWithToken(_ context.Context, account *domain.Account, token *domain.Token) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	r.nextID++
	copy := cloneAccount(account)
	copy.ID = fmt.Sprintf("acc_%d", r.nextID)
	r.accounts[copy.ID] = copy

	t := *token
	t.AccountID = copy.ID
	r.tokens[t.Value] = &t
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Enable(_ context.Context, id string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Enabled = true
	return nil
}

// stubTokenRepo shares the token map with a stubAccountRepo so the
// register-then-confirm flow behaves like the real transactional pair.
type stubTokenRepo struct {
	accounts *stubAccountRepo
}

func (r *stubTokenRepo) FindByAccountEmail(_ context.Context, email string) (*domain.Token, error) {
	for _, t := range r.accounts.tokens {
		if t.AccountEmail == email {
			copy := *t
			return &copy, nil
		}
	}
	return nil, domain.ErrTokenNotFound
}

func (r *stubTokenRepo) Consume(_ context.Context, value string) (*domain.Token, error) {
	t, ok := r.accounts.tokens[value]
	if !ok {
		return nil, domain.ErrTokenNotFound
	}
	delete(r.accounts.tokens, value)
	copy := *t
	return &copy, nil
}

type stubMailer struct {
	sent []string // token values, in send order
	fail bool
}

func (m *stubMailer) SendConfirmation(_ context.Context, _, tokenValue string) error {
	if m.fail {
		return fmt.Errorf("smtp unreachable")
	}
	m.sent = append(m.sent, tokenValue)
	return nil
}

type stubEventRepo struct {
	events map[string]*domain.Event
	photos map[string]*domain.EventPhoto
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{
		events: make(map[string]*domain.Event),
		photos: make(map[string]*domain.EventPhoto),
	}
}

func cloneEvent(e *domain.Event) *domain.Event {
	if e == nil {
		return nil
	}
	clone := *e
	clone.Participants = append([]string(nil), e.Participants...)
	return &clone
}

func (r *stubEventRepo) CreateWithChat(_ context.Context, event *domain.Event, chat *domain.EventChat) (*domain.Event, error) {
	r.nextID++
	copy := cloneEvent(event)
	copy.ID = fmt.Sprintf("evt_%d", r.nextID)
	copy.ChatID = fmt.Sprintf("chat_%d", r.nextID)
	chat.ID = copy.ChatID
	chat.EventID = copy.ID
	r.events[copy.ID] = copy
	return cloneEvent(copy), nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	if e, ok := r.events[id]; ok {
		return cloneEvent(e), nil
	}
	return nil, domain.ErrEventNotFound
}

func (r *stubEventRepo) FindAll(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, cloneEvent(e))
	}
	return out, nil
}

func (r *stubEventRepo) Save(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	r.events[event.ID] = cloneEvent(event)
	return nil
}

func (r *stubEventRepo) DeleteCascade(_ context.Context, eventID string) error {
	if _, ok := r.events[eventID]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, eventID)
	for id, p := range r.photos {
		if p.EventID == eventID {
			delete(r.photos, id)
		}
	}
	return nil
}

func (r *stubEventRepo) AddPhoto(_ context.Context, photo *domain.EventPhoto) error {
	r.nextID++
	photo.ID = fmt.Sprintf("photo_%d", r.nextID)
	copy := *photo
	r.photos[photo.ID] = &copy
	return nil
}

func (r *stubEventRepo) RemovePhoto(_ context.Context, eventID, photoID string) error {
	p, ok := r.photos[photoID]
	if !ok || p.EventID != eventID {
		return domain.ErrPhotoNotFound
	}
	delete(r.photos, photoID)
	return nil
}

func (r *stubEventRepo) FindPhoto(_ context.Context, eventID, photoID string) (*domain.EventPhoto, error) {
	p, ok := r.photos[photoID]
	if !ok || p.EventID != eventID {
		return nil, domain.ErrPhotoNotFound
	}
	copy := *p
	return &copy, nil
}

type stubChatRepo struct {
	eventChats   map[string]*domain.EventChat
	privateChats map[string]*domain.PrivateChat
	messages     []*domain.Message
	nextID       int
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{
		eventChats:   make(map[string]*domain.EventChat),
		privateChats: make(map[string]*domain.PrivateChat),
	}
}

func (r *stubChatRepo) CreatePrivateChat(_ context.Context, chat *domain.PrivateChat) (*domain.PrivateChat, error) {
	r.nextID++
	copy := *chat
	copy.ID = fmt.Sprintf("pchat_%d", r.nextID)
	copy.Participants = append([]string(nil), chat.Participants...)
	r.privateChats[copy.ID] = &copy
	out := copy
	return &out, nil
}

func (r *stubChatRepo) FindEventChatByID(_ context.Context, id string) (*domain.EventChat, error) {
	if c, ok := r.eventChats[id]; ok {
		copy := *c
		return &copy, nil
	}
	return nil, domain.ErrChatNotFound
}

func (r *stubChatRepo) FindPrivateChatByID(_ context.Context, id string) (*domain.PrivateChat, error) {
	if c, ok := r.privateChats[id]; ok {
		copy := *c
		copy.Participants = append([]string(nil), c.Participants...)
		return &copy, nil
	}
	return nil, domain.ErrChatNotFound
}

func (r *stubChatRepo) SavePrivateChat(_ context.Context, chat *domain.PrivateChat) error {
	if _, ok := r.privateChats[chat.ID]; !ok {
		return domain.ErrChatNotFound
	}
	copy := *chat
	copy.Participants = append([]string(nil), chat.Participants...)
	r.privateChats[chat.ID] = &copy
	return nil
}

func (r *stubChatRepo) DeletePrivateChat(_ context.Context, id string) error {
	delete(r.privateChats, id)
	return nil
}

func (r *stubChatRepo) AppendMessage(_ context.Context, msg *domain.Message) error {
	r.nextID++
	msg.ID = fmt.Sprintf("msg_%d", r.nextID)
	copy := *msg
	r.messages = append(r.messages, &copy)
	return nil
}

func (r *stubChatRepo) ListMessages(_ context.Context, chatID string, limit int) ([]*domain.Message, error) {
	out := make([]*domain.Message, 0)
	for _, m := range r.messages {
		if m.ChatID == chatID {
			copy := *m
			out = append(out, &copy)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// capturePublisher records emitted occurrences synchronously so tests can
// assert on the fan-out without racing goroutines.
type capturePublisher struct {
	mu         sync.Mutex
	eventMsgs  []*domain.Message
	privMsgs   []*domain.Message
	recipients [][]string
	logins     []string
}

func (p *capturePublisher) EventChatMessagePosted(msg *domain.Message, _ string, recipients []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.eventMsgs = append(p.eventMsgs, msg)
	p.recipients = append(p.recipients, recipients)
}

func (p *capturePublisher) PrivateChatMessagePosted(msg *domain.Message, _ string, recipients []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.privMsgs = append(p.privMsgs, msg)
	p.recipients = append(p.recipients, recipients)
}

func (p *capturePublisher) UserLoggedIn(accountID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logins = append(p.logins, accountID)
}
