package admin

import (
	"testing"
	"time"

	cancellationRepo "roamly/database/repository/cancellation"
	"roamly/models"

	"go.uber.org/zap"
)

type fakeRequestRepo struct {
	requests []*models.CancellationRequest
}

func (f *fakeRequestRepo) Insert(req *models.CancellationRequest) error {
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakeRequestRepo) GetByID(id string) (*models.CancellationRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRequestRepo) LatestActiveByBookingID(bookingID string) (*models.CancellationRequest, error) {
	return nil, nil
}

func (f *fakeRequestRepo) ListByStatus(status string, limit int64) ([]models.CancellationRequest, error) {
	var out []models.CancellationRequest
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(id, status, adminNotes string, processedAt time.Time) error {
	for _, r := range f.requests {
		if r.ID == id && r.Status == models.CancellationStatusPending {
			r.Status = status
			r.AdminNotes = adminNotes
			r.ProcessedAt = &processedAt
			return nil
		}
	}
	return cancellationRepo.ErrNotPending
}

func newAdminService(requests ...*models.CancellationRequest) (*DefaultAdminCancellationService, *fakeRequestRepo) {
	repo := &fakeRequestRepo{requests: requests}
	return &DefaultAdminCancellationService{RequestRepo: repo, Logger: zap.NewNop()}, repo
}

func pendingRequest(id string) *models.CancellationRequest {
	return &models.CancellationRequest{
		ID:          id,
		BookingID:   "b-123",
		Status:      models.CancellationStatusPending,
		RequestedAt: time.Now(),
	}
}

func TestProcessCancellationRequest_Approve(t *testing.T) {
	svc, repo := newAdminService(pendingRequest("req-1"))

	req, err := svc.ProcessCancellationRequest("req-1", models.CancellationStatusApproved, "refund issued")
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if req.Status != models.CancellationStatusApproved {
		t.Errorf("expected approved, got %q", req.Status)
	}
	if req.AdminNotes != "refund issued" {
		t.Errorf("expected notes to be recorded, got %q", req.AdminNotes)
	}
	if req.ProcessedAt == nil {
		t.Error("expected processed-at to be stamped")
	}
	if repo.requests[0].Status != models.CancellationStatusApproved {
		t.Error("expected the stored row to be updated")
	}
}

func TestProcessCancellationRequest_InvalidDecision(t *testing.T) {
	svc, _ := newAdminService(pendingRequest("req-1"))

	for _, decision := range []string{models.CancellationStatusCancelled, models.CancellationStatusPending, "garbage"} {
		if _, err := svc.ProcessCancellationRequest("req-1", decision, ""); err != ErrInvalidDecision {
			t.Errorf("decision %q: expected ErrInvalidDecision, got %v", decision, err)
		}
	}
}

func TestProcessCancellationRequest_AlreadyProcessed(t *testing.T) {
	done := pendingRequest("req-1")
	done.Status = models.CancellationStatusRejected
	svc, _ := newAdminService(done)

	if _, err := svc.ProcessCancellationRequest("req-1", models.CancellationStatusApproved, ""); err != ErrAlreadyProcessed {
		t.Errorf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestListCancellationRequests_DefaultsToPending(t *testing.T) {
	approved := pendingRequest("req-2")
	approved.Status = models.CancellationStatusApproved
	svc, _ := newAdminService(pendingRequest("req-1"), approved)

	requests, err := svc.ListCancellationRequests("", 0)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(requests) != 1 || requests[0].ID != "req-1" {
		t.Errorf("expected only the pending request, got %+v", requests)
	}
}
