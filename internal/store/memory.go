package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/albapepper/matchday-data/internal/provider"
)

// collection keeps encoded documents in insertion order. Documents are held
// as JSON so callers never share slices with the store.
type collection struct {
	order []string
	docs  map[string][]byte
}

func newCollection() collection {
	return collection{docs: make(map[string][]byte)}
}

func (c *collection) put(id string, doc []byte) {
	if _, ok := c.docs[id]; !ok {
		c.order = append(c.order, id)
	}
	c.docs[id] = doc
}

func (c *collection) reset() int64 {
	n := int64(len(c.order))
	c.order = nil
	c.docs = make(map[string][]byte)
	return n
}

// Memory is an in-memory Store.
type Memory struct {
	mu      sync.RWMutex
	matches collection
	players collection
	version uint64
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		matches: newCollection(),
		players: newCollection(),
	}
}

func (s *Memory) DeleteAllMatches(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return s.matches.reset(), nil
}

func (s *Memory) InsertMatch(_ context.Context, m provider.Match) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches.docs[m.ID]; ok {
		return fmt.Errorf("match %s: %w", m.ID, ErrDuplicateID)
	}
	s.matches.put(m.ID, doc)
	s.version++
	return nil
}

func (s *Memory) UpsertMatch(_ context.Context, m provider.Match) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", m.ID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches.put(m.ID, doc)
	s.version++
	return nil
}

func (s *Memory) ListMatches(_ context.Context) ([]provider.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]provider.Match, 0, len(s.matches.order))
	for _, id := range s.matches.order {
		var m provider.Match
		if err := json.Unmarshal(s.matches.docs[id], &m); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", id, err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Memory) GetMatch(_ context.Context, id string) (provider.Match, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.matches.docs[id]
	if !ok {
		return provider.Match{}, false, nil
	}
	var m provider.Match
	if err := json.Unmarshal(doc, &m); err != nil {
		return provider.Match{}, false, fmt.Errorf("decode match %s: %w", id, err)
	}
	return m, true, nil
}

func (s *Memory) CountMatches(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.matches.order), nil
}

func (s *Memory) DeleteAllPlayers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	return s.players.reset(), nil
}

func (s *Memory) InsertPlayers(_ context.Context, players []provider.PlayerProfile) error {
	encoded := make([][]byte, len(players))
	for i, p := range players {
		doc, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode player %s: %w", p.ID, err)
		}
		encoded[i] = doc
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// All or nothing, like the transactional Postgres batch.
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if _, ok := s.players.docs[p.ID]; ok {
			return fmt.Errorf("player %s: %w", p.ID, ErrDuplicateID)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("player %s: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
	}
	for i, p := range players {
		s.players.put(p.ID, encoded[i])
	}
	s.version++
	return nil
}

func (s *Memory) GetPlayer(_ context.Context, id string) (provider.PlayerProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.players.docs[id]
	if !ok {
		return provider.PlayerProfile{}, false, nil
	}
	var p provider.PlayerProfile
	if err := json.Unmarshal(doc, &p); err != nil {
		return provider.PlayerProfile{}, false, fmt.Errorf("decode player %s: %w", id, err)
	}
	return p, true, nil
}

func (s *Memory) CountPlayers(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players.order), nil
}

// DatasetVersion changes on every write to either collection.
func (s *Memory) DatasetVersion(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strconv.FormatUint(s.version, 10), nil
}
