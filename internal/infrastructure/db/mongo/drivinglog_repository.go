package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

const collectionDrivingLogs = "driving_logs"

type DrivingLogRepository struct {
	col *mongo.Collection
}

func NewDrivingLogRepository(db *mongo.Database) *DrivingLogRepository {
	return &DrivingLogRepository{col: db.Collection(collectionDrivingLogs)}
}

func (r *DrivingLogRepository) Create(ctx context.Context, l *domain.DrivingLog) (*domain.DrivingLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *DrivingLogRepository) FindByID(ctx context.Context, id string) (*domain.DrivingLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.DrivingLog
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLogNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *DrivingLogRepository) ListByUser(ctx context.Context, userID string) ([]*domain.DrivingLog, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *DrivingLogRepository) ListByDevice(ctx context.Context, deviceID string) ([]*domain.DrivingLog, error) {
	return r.list(ctx, bson.M{"device_id": deviceID})
}

func (r *DrivingLogRepository) List(ctx context.Context) ([]*domain.DrivingLog, error) {
	return r.list(ctx, bson.M{})
}

func (r *DrivingLogRepository) ListByStatus(ctx context.Context, statuses ...domain.LogStatus) ([]*domain.DrivingLog, error) {
	return r.list(ctx, bson.M{"status": bson.M{"$in": statuses}})
}

// Most recent submissions first so fresh work tops review queues.
func (r *DrivingLogRepository) list(ctx context.Context, filter bson.M) ([]*domain.DrivingLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []*domain.DrivingLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *DrivingLogRepository) Update(ctx context.Context, l *domain.DrivingLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": l.ID}, l)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrLogNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the driving_logs collection.
func (r *DrivingLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "submitted_at", Value: -1}}},
		{Keys: bson.D{{Key: "device_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
