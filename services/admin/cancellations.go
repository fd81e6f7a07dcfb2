package admin

import (
	"errors"
	"fmt"
	"time"

	cancellationRepo "roamly/database/repository/cancellation"
	"roamly/models"
	"roamly/services/cancel"

	"go.uber.org/zap"
)

// ErrInvalidDecision is returned when a processing decision is not a
// permitted transition out of pending.
var ErrInvalidDecision = errors.New("decision must be approved or rejected")

// ErrAlreadyProcessed is returned when the request is no longer pending.
var ErrAlreadyProcessed = errors.New("cancellation request has already been processed")

// AdminCancellationService is the write surface of the admin-processing
// collaborator: it lists pending requests and records terminal decisions.
// The decision itself (refund math, policy review) is made elsewhere.
type AdminCancellationService interface {
	ListCancellationRequests(status string, limit int64) ([]models.CancellationRequest, error)
	ProcessCancellationRequest(id, decision, adminNotes string) (*models.CancellationRequest, error)
}

// DefaultAdminCancellationService is the production implementation.
type DefaultAdminCancellationService struct {
	RequestRepo cancellationRepo.CancellationRequestRepository
	Logger      *zap.Logger
}

// ListCancellationRequests returns requests in the given status, newest first.
func (s *DefaultAdminCancellationService) ListCancellationRequests(status string, limit int64) ([]models.CancellationRequest, error) {
	if status == "" {
		status = models.CancellationStatusPending
	}
	return s.RequestRepo.ListByStatus(status, limit)
}

// ProcessCancellationRequest moves a pending request to approved or rejected,
// stamping processed-at and the reviewer's notes.
func (s *DefaultAdminCancellationService) ProcessCancellationRequest(id, decision, adminNotes string) (*models.CancellationRequest, error) {
	if !cancel.CanTransition(models.CancellationStatusPending, decision) {
		return nil, ErrInvalidDecision
	}

	req, err := s.RequestRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load cancellation request %s: %w", id, err)
	}
	if req == nil {
		return nil, fmt.Errorf("cancellation request %s not found", id)
	}
	if cancel.IsTerminal(req.Status) {
		return nil, ErrAlreadyProcessed
	}

	processedAt := time.Now()
	if err := s.RequestRepo.UpdateStatus(id, decision, adminNotes, processedAt); err != nil {
		if errors.Is(err, cancellationRepo.ErrNotPending) {
			return nil, ErrAlreadyProcessed
		}
		return nil, fmt.Errorf("failed to process cancellation request %s: %w", id, err)
	}

	s.Logger.Info("cancellation request processed",
		zap.String("requestId", id),
		zap.String("decision", decision))

	req.Status = decision
	req.AdminNotes = adminNotes
	req.ProcessedAt = &processedAt
	return req, nil
}
