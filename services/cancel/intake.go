package cancel

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "roamly/database/repository/booking"
	cancellationRepo "roamly/database/repository/cancellation"
	"roamly/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifier is the slice of the notification service intake depends on.
type notifier interface {
	NotifyCancellationRequested(ctx context.Context, notice models.CancellationNotice) error
}

// DefaultCancellationIntakeService is the production implementation.
type DefaultCancellationIntakeService struct {
	BookingRepo bookingRepo.BookingRepository
	RequestRepo cancellationRepo.CancellationRequestRepository
	Notifier    notifier
	Secret      string
	Logger      *zap.Logger
}

// CreateCancellationRequest validates the claim against the live booking
// record and persists a new pending request. Repeated submissions for a
// booking with a pending request return the existing request instead of
// creating a second row.
func (s *DefaultCancellationIntakeService) CreateCancellationRequest(ctx context.Context, claim models.CancellationClaim) (*models.CancellationResult, *CancelError) {
	var (
		booking *models.Booking
		token   string
		reason  string
		cerr    *CancelError
	)

	switch c := claim.(type) {
	case models.TokenClaim:
		reason = c.Reason
		booking, token, cerr = s.resolveTokenClaim(c)
	case models.ManualClaim:
		reason = c.Reason
		booking, cerr = s.resolveManualClaim(c)
	default:
		return nil, NewCancelError(CodeMissingFields, "a token or order details are required")
	}
	if cerr != nil {
		return nil, cerr
	}

	// Cryptographic validity of the token is permanent; business usability
	// decays with the booking's grace window. Both are checked on every call.
	if IsExpired(booking.BookingDate, booking.TripEndDate, time.Now()) {
		if token != "" {
			return nil, NewCancelError(CodeTokenExpired, "the cancellation window for this booking has passed")
		}
		return nil, NewCancelError(CodeRequestExpired, "the cancellation window for this booking has passed")
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, NewCancelError(CodeAlreadyCancelled, "this booking has already been cancelled")
	}

	if result, cerr := s.checkExistingRequest(booking.ID); result != nil || cerr != nil {
		return result, cerr
	}

	// Manual fallback carries no token; mint one bound to the verified
	// identity so every persisted request holds a usable token.
	if token == "" {
		token = GenerateToken(booking.ID, booking.OrderNumber, booking.CustomerEmail, s.Secret)
	}

	req := &models.CancellationRequest{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		Token:         token,
		OrderNumber:   booking.OrderNumber,
		CustomerEmail: booking.CustomerEmail,
		CustomerName:  booking.CustomerName,
		Reason:        reason,
		Status:        models.CancellationStatusPending,
		RequestedAt:   time.Now(),
	}

	if err := s.RequestRepo.Insert(req); err != nil {
		if errors.Is(err, cancellationRepo.ErrDuplicateActiveRequest) {
			// Lost a concurrent race; the winner's row is authoritative.
			if result, cerr := s.checkExistingRequest(booking.ID); result != nil || cerr != nil {
				return result, cerr
			}
		}
		s.Logger.Error("failed to persist cancellation request",
			zap.String("bookingId", booking.ID), zap.Error(err))
		return nil, NewCancelError(CodeCreationFailed, "could not create the cancellation request")
	}

	s.dispatchNotification(req)

	return &models.CancellationResult{
		RequestID: req.ID,
		Message:   "Your cancellation request has been received and is awaiting review.",
	}, nil
}

// GetCancellationRequest returns a persisted request by id.
func (s *DefaultCancellationIntakeService) GetCancellationRequest(ctx context.Context, id string) (*models.CancellationRequest, *CancelError) {
	req, err := s.RequestRepo.GetByID(id)
	if err != nil {
		s.Logger.Error("failed to fetch cancellation request", zap.String("id", id), zap.Error(err))
		return nil, NewCancelError(CodeInternalError, "could not load the cancellation request")
	}
	if req == nil {
		return nil, NewCancelError(CodeBookingNotFound, "no cancellation request found")
	}
	return req, nil
}

// resolveTokenClaim verifies the magic-link token and cross-checks the
// decoded claim against the live booking record. A token referencing a
// booking whose identifying fields have since changed is rejected.
func (s *DefaultCancellationIntakeService) resolveTokenClaim(c models.TokenClaim) (*models.Booking, string, *CancelError) {
	payload, err := ValidateToken(c.Token, s.Secret)
	if err != nil {
		var cerr *CancelError
		if errors.As(err, &cerr) {
			s.Logger.Debug("token validation failed", zap.String("code", cerr.Code), zap.String("reason", cerr.Message))
			return nil, "", cerr
		}
		return nil, "", NewCancelError(CodeInvalidToken, "token could not be verified")
	}

	booking, lookupErr := s.BookingRepo.GetByID(payload.BookingID)
	if lookupErr != nil {
		s.Logger.Error("booking lookup failed", zap.String("bookingId", payload.BookingID), zap.Error(lookupErr))
		return nil, "", NewCancelError(CodeInternalError, "could not load the booking")
	}
	if booking == nil {
		return nil, "", NewCancelError(CodeBookingNotFound, "no booking matches this cancellation link")
	}

	if booking.OrderNumber != payload.OrderNumber || !strings.EqualFold(booking.CustomerEmail, payload.Email) {
		return nil, "", NewCancelError(CodeTokenMismatch, "this cancellation link no longer matches the booking")
	}

	return booking, c.Token, nil
}

// resolveManualClaim looks the booking up by normalized order details and
// requires the entered name to match the stored one exactly after
// normalization.
func (s *DefaultCancellationIntakeService) resolveManualClaim(c models.ManualClaim) (*models.Booking, *CancelError) {
	orderNumber := normalizeOrderNumber(c.OrderNumber)
	email := strings.ToLower(strings.TrimSpace(c.CustomerEmail))

	booking, err := s.BookingRepo.GetByOrderAndEmail(orderNumber, email)
	if err != nil {
		s.Logger.Error("booking lookup failed", zap.String("orderNumber", orderNumber), zap.Error(err))
		return nil, NewCancelError(CodeInternalError, "could not load the booking")
	}
	if booking == nil {
		return nil, NewCancelError(CodeBookingNotFound, "no booking matches these order details")
	}

	if normalizeName(c.CustomerName) != normalizeName(booking.CustomerName) {
		return nil, NewCancelError(CodeValidationFailed, "the name entered does not match the booking")
	}

	return booking, nil
}

// checkExistingRequest applies the duplicate policy: a pending request makes
// resubmission idempotent, an approved one is a hard stop. Returns
// (nil, nil) when a new request may be created.
func (s *DefaultCancellationIntakeService) checkExistingRequest(bookingID string) (*models.CancellationResult, *CancelError) {
	existing, err := s.RequestRepo.LatestActiveByBookingID(bookingID)
	if err != nil {
		s.Logger.Error("active request lookup failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, NewCancelError(CodeInternalError, "could not check existing requests")
	}
	if existing == nil {
		return nil, nil
	}

	switch existing.Status {
	case models.CancellationStatusPending:
		return &models.CancellationResult{
			RequestID:     existing.ID,
			Message:       "A cancellation request for this booking is already awaiting review.",
			AlreadyExists: true,
		}, nil
	case models.CancellationStatusApproved:
		return nil, NewCancelError(CodeAlreadyApproved, "a cancellation for this booking has already been approved")
	default:
		return nil, nil
	}
}

// dispatchNotification hands the persisted request to the admin-processing
// queue. The request is already durable, so a dispatch failure is logged and
// swallowed, never surfaced to the caller.
func (s *DefaultCancellationIntakeService) dispatchNotification(req *models.CancellationRequest) {
	notice := models.CancellationNotice{
		RequestID:     req.ID,
		BookingID:     req.BookingID,
		OrderNumber:   req.OrderNumber,
		CustomerEmail: req.CustomerEmail,
		CustomerName:  req.CustomerName,
		Reason:        req.Reason,
		RequestedAt:   req.RequestedAt,
	}

	go func() {
		ctx, cancelFn := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelFn()
		if err := s.Notifier.NotifyCancellationRequested(ctx, notice); err != nil {
			s.Logger.Warn("cancellation notification dispatch failed",
				zap.String("requestId", notice.RequestID), zap.Error(err))
		}
	}()
}
