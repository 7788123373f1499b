package persona

import (
	"fmt"
	"sync"

	"github.com/AlexandrSher/danswer/internal/entity"
	gocache "github.com/patrickmn/go-cache"
)

// Store keeps prompts and personas in memory for the stub backend. Records
// never expire; the mutex only guards id assignment, the cache itself is
// safe for concurrent use.
type Store struct {
	mu            sync.Mutex
	nextPromptID  int
	nextPersonaID int
	records       *gocache.Cache
}

func NewStore() *Store {
	return &Store{
		nextPromptID:  1,
		nextPersonaID: 1,
		records:       gocache.New(gocache.NoExpiration, 0),
	}
}

func promptKey(id int) string {
	return fmt.Sprintf("prompt/%d", id)
}

func personaKey(id int) string {
	return fmt.Sprintf("persona/%d", id)
}

func (s *Store) CreatePrompt(prompt entity.PromptSnapshot) entity.PromptSnapshot {
	s.mu.Lock()
	prompt.ID = s.nextPromptID
	s.nextPromptID++
	s.mu.Unlock()

	s.records.Set(promptKey(prompt.ID), prompt, gocache.NoExpiration)
	return prompt
}

func (s *Store) GetPrompt(id int) (entity.PromptSnapshot, bool) {
	value, found := s.records.Get(promptKey(id))
	if !found {
		return entity.PromptSnapshot{}, false
	}
	return value.(entity.PromptSnapshot), true
}

// UpdatePrompt replaces an existing prompt; it reports false when the id
// is unknown.
func (s *Store) UpdatePrompt(prompt entity.PromptSnapshot) bool {
	if _, found := s.records.Get(promptKey(prompt.ID)); !found {
		return false
	}
	s.records.Set(promptKey(prompt.ID), prompt, gocache.NoExpiration)
	return true
}

func (s *Store) CreatePersona(persona entity.PersonaSnapshot) entity.PersonaSnapshot {
	s.mu.Lock()
	persona.ID = s.nextPersonaID
	s.nextPersonaID++
	s.mu.Unlock()

	s.records.Set(personaKey(persona.ID), persona, gocache.NoExpiration)
	return persona
}

func (s *Store) GetPersona(id int) (entity.PersonaSnapshot, bool) {
	value, found := s.records.Get(personaKey(id))
	if !found {
		return entity.PersonaSnapshot{}, false
	}
	return value.(entity.PersonaSnapshot), true
}

func (s *Store) UpdatePersona(persona entity.PersonaSnapshot) bool {
	if _, found := s.records.Get(personaKey(persona.ID)); !found {
		return false
	}
	s.records.Set(personaKey(persona.ID), persona, gocache.NoExpiration)
	return true
}

// DeletePersona removes a persona; it reports false when the id is
// unknown. The referenced prompt is kept, matching the real backend.
func (s *Store) DeletePersona(id int) bool {
	if _, found := s.records.Get(personaKey(id)); !found {
		return false
	}
	s.records.Delete(personaKey(id))
	return true
}
