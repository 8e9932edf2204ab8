package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

// SessionRepository manages persistence for academic sessions.
type SessionRepository struct {
	col *store.Collection
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(s *store.Store) *SessionRepository {
	return &SessionRepository{col: s.Collection("sessions")}
}

// All returns every session, newest start date first.
func (r *SessionRepository) All(ctx context.Context) ([]models.Session, error) {
	var sessions []models.Session
	err := r.col.ForEach(func(_ string, doc []byte) error {
		var s models.Session
		if err := json.Unmarshal(doc, &s); err != nil {
			return fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartDate.After(sessions[j].StartDate) })
	return sessions, nil
}

// FindByID fetches a session by ID.
func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	doc, err := r.col.Get(key(id))
	if err != nil {
		return nil, err
	}
	var s models.Session
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// Insert persists a new session, allocating an ID when unset.
func (r *SessionRepository) Insert(ctx context.Context, s *models.Session) error {
	if s.ID == 0 {
		id, err := r.col.NextID()
		if err != nil {
			return fmt.Errorf("allocate session id: %w", err)
		}
		s.ID = int64(id)
	}
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.col.Insert(key(s.ID), doc)
}

// Update overwrites an existing session.
func (r *SessionRepository) Update(ctx context.Context, s *models.Session) error {
	doc, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.col.Replace(key(s.ID), doc)
}

// Delete removes a session record.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	return r.col.Delete(key(id))
}
