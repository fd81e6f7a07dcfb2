package cancellationRepo

import (
	"context"
	"fmt"
	"time"

	"roamly/database"
	"roamly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCancellationRepo implements CancellationRequestRepository using MongoDB.
type MongoCancellationRepo struct {
	coll *mongo.Collection
}

// NewMongoCancellationRepo creates a new instance of CancellationRequestRepository
// using MongoDB.
func NewMongoCancellationRepo() CancellationRequestRepository {
	coll := database.MongoClient.Database("roamly").Collection("cancellation_requests")
	repo := &MongoCancellationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
// The partial unique index on booking_id enforces at most one request in
// {pending, approved} per booking; a lost check-then-insert race surfaces as
// a duplicate-key error on Insert instead of a second active row.
func (r *MongoCancellationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": []string{
					models.CancellationStatusPending,
					models.CancellationStatusApproved,
				}},
			}),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "requested_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert creates a new cancellation request document.
func (r *MongoCancellationRepo) Insert(req *models.CancellationRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateActiveRequest
		}
		return fmt.Errorf("failed to create cancellation request: %w", err)
	}
	return nil
}

// GetByID retrieves a cancellation request by its unique ID. Returns
// (nil, nil) when no request matches.
func (r *MongoCancellationRepo) GetByID(id string) (*models.CancellationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.CancellationRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch cancellation request with id %s: %w", id, err)
	}
	return &req, nil
}

// LatestActiveByBookingID returns the most recent pending or approved request
// for the booking. The requested_at sort makes the newest non-terminal
// request authoritative when stale rows exist.
func (r *MongoCancellationRepo) LatestActiveByBookingID(bookingID string) (*models.CancellationRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"booking_id": bookingID,
		"status": bson.M{"$in": []string{
			models.CancellationStatusPending,
			models.CancellationStatusApproved,
		}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "requested_at", Value: -1}})

	var req models.CancellationRequest
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch active request for booking %s: %w", bookingID, err)
	}
	return &req, nil
}

// ListByStatus retrieves requests in the given status, newest first.
func (r *MongoCancellationRepo) ListByStatus(status string, limit int64) ([]models.CancellationRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list cancellation requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.CancellationRequest
	for cursor.Next(ctx) {
		var req models.CancellationRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode cancellation request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

// UpdateStatus moves a pending request to a terminal status. The status
// filter makes the transition atomic: a request already processed (or moved
// by a concurrent admin) matches nothing.
func (r *MongoCancellationRepo) UpdateStatus(id, status, adminNotes string, processedAt time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.CancellationStatusPending}
	update := bson.M{"$set": bson.M{
		"status":       status,
		"admin_notes":  adminNotes,
		"processed_at": processedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update cancellation request with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}
