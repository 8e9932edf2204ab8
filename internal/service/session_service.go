package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abuzarban/school-admin/internal/models"
)

type sessionRepository interface {
	All(ctx context.Context) ([]models.Session, error)
	FindByID(ctx context.Context, id int64) (*models.Session, error)
	Insert(ctx context.Context, s *models.Session) error
	Update(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id int64) error
}

// SessionRequest describes session create/update payloads.
type SessionRequest struct {
	Name      string               `json:"name" validate:"required"`
	StartDate time.Time            `json:"start_date"`
	EndDate   time.Time            `json:"end_date"`
	Status    models.SessionStatus `json:"status" validate:"omitempty,oneof=active upcoming completed"`
}

// SessionService orchestrates academic session workflows.
type SessionService struct {
	repo      sessionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs SessionService.
func NewSessionService(repo sessionRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{repo: repo, validator: validate, logger: logger}
}

// List returns every session.
func (s *SessionService) List(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.repo.All(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list sessions")
	}
	return sessions, nil
}

// Get returns one session by ID.
func (s *SessionService) Get(ctx context.Context, id int64) (*models.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "session not found", "failed to load session")
	}
	return session, nil
}

// Create registers a new session. Start date defaults to now, status to
// active.
func (s *SessionService) Create(ctx context.Context, req SessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}
	session := &models.Session{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    req.Status,
	}
	if session.StartDate.IsZero() {
		session.StartDate = time.Now().UTC()
	}
	if session.Status == "" {
		session.Status = models.SessionActive
	}
	if err := s.repo.Insert(ctx, session); err != nil {
		return nil, storeError(err, "session not found", "failed to create session")
	}
	return session, nil
}

// Update edits an existing session.
func (s *SessionService) Update(ctx context.Context, id int64, req SessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid session payload")
	}
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "session not found", "failed to load session")
	}
	session.Name = req.Name
	if !req.StartDate.IsZero() {
		session.StartDate = req.StartDate
	}
	if !req.EndDate.IsZero() {
		session.EndDate = req.EndDate
	}
	if req.Status != "" {
		session.Status = req.Status
	}
	if err := s.repo.Update(ctx, session); err != nil {
		return nil, storeError(err, "session not found", "failed to update session")
	}
	return session, nil
}

// Delete removes a session record.
func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "session not found", "failed to delete session")
	}
	return nil
}
