// Package reward resolves reward identifiers embedded in operation
// payloads and applies them through an external granter. A reward is
// granted only on the finished/success transition of the operation
// that carried it, and at most once per operation instance.
package reward

import (
	"sync"

	"github.com/NovaPlay-Games/social_bridge/pkg/logger"
)

// Reward is an external grantable benefit.
type Reward struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Amount int64  `json:"amount,omitempty"`
}

// Resolver maps a reward identifier to a grantable reward.
type Resolver interface {
	Resolve(id string) (Reward, bool)
}

// Granter applies a resolved reward. The granting mechanism itself is
// outside the core.
type Granter interface {
	Grant(r Reward)
}

// GranterFunc adapts a function to a Granter.
type GranterFunc func(Reward)

// Grant calls f(r).
func (f GranterFunc) Grant(r Reward) { f(r) }

// StaticResolver resolves rewards from a fixed in-memory table.
type StaticResolver struct {
	mu      sync.RWMutex
	rewards map[string]Reward
}

// NewStaticResolver creates a resolver over the given rewards.
func NewStaticResolver(rewards ...Reward) *StaticResolver {
	m := make(map[string]Reward, len(rewards))
	for _, r := range rewards {
		m[r.ID] = r
	}
	return &StaticResolver{rewards: m}
}

// Add inserts or replaces a reward.
func (s *StaticResolver) Add(r Reward) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rewards[r.ID] = r
}

// Resolve returns the reward for id, if known.
func (s *StaticResolver) Resolve(id string) (Reward, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rewards[id]
	return r, ok
}

// Service ties a resolver and granter together.
type Service struct {
	resolver Resolver
	granter  Granter
	log      *logger.Logger
}

// NewService creates a reward service. A nil resolver or granter makes
// GrantByID a no-op that reports false.
func NewService(resolver Resolver, granter Granter, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("reward")
	}
	return &Service{resolver: resolver, granter: granter, log: log}
}

// GrantByID resolves id and grants the reward. Unknown ids are logged
// and skipped; the operation that carried them is unaffected.
func (s *Service) GrantByID(id string) bool {
	if id == "" || s.resolver == nil || s.granter == nil {
		return false
	}

	r, ok := s.resolver.Resolve(id)
	if !ok {
		s.log.Warn("reward id did not resolve", "reward_id", id)
		return false
	}

	s.granter.Grant(r)
	s.log.Info("reward granted", "reward_id", id, "name", r.Name)
	return true
}
