package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"formwork/internal/plan/mapper"
)

// ============================================================
// Plan Sessions
// ============================================================

type session struct {
	plan    *mapper.Plan
	source  []byte
	expires time.Time
}

// Sessions keeps parsed plans under random tokens so later requests can
// lay out or render a plan without uploading it again.
type Sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	plans map[string]session
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:   ttl,
		now:   time.Now,
		plans: make(map[string]session),
	}
}

// Issue stores plan with the SVG it was parsed from and returns its token.
// Expired entries are dropped on the way.
func (m *Sessions) Issue(plan *mapper.Plan, source []byte) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, s := range m.plans {
		if now.After(s.expires) {
			delete(m.plans, token)
		}
	}

	token := uuid.NewString()
	m.plans[token] = session{plan: plan, source: source, expires: now.Add(m.ttl)}
	return token
}

// Resolve returns the live plan stored under token.
func (m *Sessions) Resolve(token string) (*mapper.Plan, []byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.plans[token]
	if !ok || m.now().After(s.expires) {
		return nil, nil, false
	}
	return s.plan, s.source, true
}

func (m *Sessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.plans)
}
