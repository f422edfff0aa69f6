package dialer

import (
	"sync"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/contacts"
)

const (
	MsgNotRunning     = "Dialer not running"
	MsgNoMoreContacts = "No more contacts"
	MsgStopped        = "Dialer stopped"
	MsgCalling        = "Calling"
)

// Result is what the dialer endpoints return: either a contact to call or an
// informational message. End-of-list and stopped-session are not errors.
type Result struct {
	Message    string            `json:"message"`
	Contact    *contacts.Contact `json:"contact,omitempty"`
	HandoffURL string            `json:"handoff_url,omitempty"`
}

// Session holds one operator's contact list and cursor. The cursor always
// points at the next contact to call; Next returns the contact under the
// cursor and then advances it.
type Session struct {
	mu       sync.Mutex
	contacts []contacts.Contact
	current  int
	running  bool
}

// Start replaces the contact list, rewinds the cursor, marks the session
// running, and immediately dials the first contact.
func (s *Session) Start(list []contacts.Contact) Result {
	s.mu.Lock()
	s.contacts = list
	s.current = 0
	s.running = true
	s.mu.Unlock()
	return s.Next()
}

// Stop is idempotent and legal in any state.
func (s *Session) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// Next returns the contact under the cursor and post-increments it. A stopped
// session or an exhausted list returns a message without mutating state.
func (s *Session) Next() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return Result{Message: MsgNotRunning}
	}
	if s.current >= len(s.contacts) {
		return Result{Message: MsgNoMoreContacts}
	}
	c := s.contacts[s.current]
	s.current++
	return Result{Message: MsgCalling, Contact: &c}
}

// Prev steps one contact back by rewinding the cursor two positions and
// delegating to Next. At the first or second position the rewind is skipped,
// so Prev replays the first contact instead of erroring. This mirrors the
// behavior existing operator UIs depend on.
func (s *Session) Prev() Result {
	s.mu.Lock()
	if s.current > 1 {
		s.current -= 2
	}
	s.mu.Unlock()
	return s.Next()
}

// Current reports the last dialed contact without moving the cursor.
func (s *Session) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return Result{Message: MsgNotRunning}
	}
	if s.current == 0 || s.current > len(s.contacts) {
		return Result{Message: MsgNoMoreContacts}
	}
	c := s.contacts[s.current-1]
	return Result{Message: MsgCalling, Contact: &c}
}

// Registry scopes sessions by (tenant, staff) so concurrent operators never
// share a cursor.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

func (r *Registry) Get(tenantID, staffID string) *Session {
	key := tenantID + ":" + staffID
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[key]
	if !ok {
		s = &Session{}
		r.sessions[key] = s
	}
	return s
}
