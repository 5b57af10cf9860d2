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

const collectionDevices = "devices"

type DeviceRepository struct {
	col *mongo.Collection
}

func NewDeviceRepository(db *mongo.Database) *DeviceRepository {
	return &DeviceRepository{col: db.Collection(collectionDevices)}
}

// Create inserts a new device document.
func (r *DeviceRepository) Create(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDeviceExists
		}
		return nil, err
	}
	return d, nil
}

func (r *DeviceRepository) FindByID(ctx context.Context, id string) (*domain.Device, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *DeviceRepository) FindBySerial(ctx context.Context, serial string) (*domain.Device, error) {
	return r.findOne(ctx, bson.M{"serial_number": serial})
}

// FindByUser retrieves the device currently assigned to a user.
func (r *DeviceRepository) FindByUser(ctx context.Context, userID string) (*domain.Device, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *DeviceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Device
	err := r.col.FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDeviceNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DeviceRepository) ListByCompany(ctx context.Context, companyID string) ([]*domain.Device, error) {
	return r.list(ctx, bson.M{"company_id": companyID})
}

func (r *DeviceRepository) List(ctx context.Context) ([]*domain.Device, error) {
	return r.list(ctx, bson.M{})
}

func (r *DeviceRepository) list(ctx context.Context, filter bson.M) ([]*domain.Device, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var devices []*domain.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *DeviceRepository) Update(ctx context.Context, d *domain.Device) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrDeviceNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the devices collection.
func (r *DeviceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "serial_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
