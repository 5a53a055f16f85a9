// Package uistate holds the client-side state of the portfolio: the hero
// animation gate, the contact form draft and the submitting flag.
package uistate

import (
	"sync"
)

// Draft is the not yet submitted contact form.
type Draft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// DraftPatch updates only the non-nil fields.
type DraftPatch struct {
	Name    *string
	Email   *string
	Message *string
}

// Store is one tab's state. Only the draft is persisted.
type Store struct {
	mu          sync.RWMutex
	persister   Persister
	animateHero bool
	draft       Draft
	submitting  bool
}

// New restores the draft from p. A nil p keeps everything in memory.
func New(p Persister) (*Store, error) {
	s := &Store{persister: p}
	if p == nil {
		return s, nil
	}
	d, err := p.Load()
	if err != nil {
		return nil, err
	}
	s.draft = d
	return s, nil
}

// AnimateHero reports whether the hero has already played its entrance.
func (s *Store) AnimateHero() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.animateHero
}

// MarkHeroAnimated sets the gate after a render. It reports true only for the
// first render of this store; the gate never resets.
func (s *Store) MarkHeroAnimated() (first bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	first = !s.animateHero
	s.animateHero = true
	return first
}

func (s *Store) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// UpdateDraft applies patch and persists the result.
func (s *Store) UpdateDraft(patch DraftPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Name != nil {
		s.draft.Name = *patch.Name
	}
	if patch.Email != nil {
		s.draft.Email = *patch.Email
	}
	if patch.Message != nil {
		s.draft.Message = *patch.Message
	}
	return s.save()
}

// ResetDraft clears and persists an empty draft.
func (s *Store) ResetDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Draft{}
	return s.save()
}

func (s *Store) Submitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitting
}

func (s *Store) SetSubmitting(v bool) {
	s.mu.Lock()
	s.submitting = v
	s.mu.Unlock()
}

func (s *Store) save() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Save(s.draft)
}

// String returns a pointer to v, for building a DraftPatch.
func String(v string) *string {
	return &v
}
