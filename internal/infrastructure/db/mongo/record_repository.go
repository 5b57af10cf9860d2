package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ddp/interlock-portal/internal/core/domain"
)

const collectionRecords = "service_records"

type RecordRepository struct {
	col *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{col: db.Collection(collectionRecords)}
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *RecordRepository) ListBySubject(ctx context.Context, subjectID string) ([]*domain.ServiceRecord, error) {
	return r.list(ctx, bson.M{"subject_id": subjectID})
}

func (r *RecordRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.ServiceRecord, error) {
	return r.list(ctx, bson.M{"company_id": companyID})
}

func (r *RecordRepository) List(ctx context.Context) ([]*domain.ServiceRecord, error) {
	return r.list(ctx, bson.M{})
}

func (r *RecordRepository) list(ctx context.Context, filter bson.M) ([]*domain.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "performed_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*domain.ServiceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
