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

const collectionReservations = "reservations"

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(collectionReservations)}
}

func (r *ReservationRepository) Create(ctx context.Context, rsv *domain.Reservation) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rsv); err != nil {
		return nil, err
	}
	return rsv, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rsv domain.Reservation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rsv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, err
	}
	return &rsv, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Reservation, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *ReservationRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Reservation, error) {
	return r.list(ctx, bson.M{"company_id": companyID})
}

func (r *ReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	return r.list(ctx, bson.M{})
}

// Newest requests first so pending work surfaces at the top of listings.
func (r *ReservationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reservations []*domain.Reservation
	if err := cursor.All(ctx, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (r *ReservationRepository) Update(ctx context.Context, rsv *domain.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rsv.ID}, rsv)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the reservations collection.
func (r *ReservationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "requested_at", Value: -1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
