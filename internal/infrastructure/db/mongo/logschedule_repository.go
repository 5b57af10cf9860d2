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

const collectionLogSchedules = "log_schedules"

type LogScheduleRepository struct {
	col *mongo.Collection
}

func NewLogScheduleRepository(db *mongo.Database) *LogScheduleRepository {
	return &LogScheduleRepository{col: db.Collection(collectionLogSchedules)}
}

// Save upserts the schedule keyed by its ID. A subject has at most one
// schedule; the unique user_id index backs that up.
func (r *LogScheduleRepository) Save(ctx context.Context, s *domain.LogSchedule) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	return err
}

func (r *LogScheduleRepository) FindByUser(ctx context.Context, userID string) (*domain.LogSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.LogSchedule
	err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *LogScheduleRepository) List(ctx context.Context) ([]*domain.LogSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "next_due", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []*domain.LogSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// EnsureIndexes creates necessary indexes on the log_schedules collection.
func (r *LogScheduleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "next_due", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
