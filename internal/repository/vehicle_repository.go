package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// VehicleRepo encapsulates access to the `vehicles` collection.
type VehicleRepo struct{ coll *mongo.Collection }

func NewVehicleRepo(db *mongo.Database) *VehicleRepo {
	return &VehicleRepo{coll: db.Collection("vehicles")}
}

// Create inserts a vehicle document.
func (r *VehicleRepo) Create(ctx context.Context, v *model.Vehicle) error {
	_, err := r.coll.InsertOne(ctx, v)
	return err
}

// List returns vehicles, optionally narrowed to one customer via an
// equality filter on customer_id.
func (r *VehicleRepo) List(ctx context.Context, customerID string) ([]model.Vehicle, error) {
	filter := bson.M{}
	if customerID != "" {
		filter["customer_id"] = customerID
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	vehicles := []model.Vehicle{}
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// GetByID fetches a vehicle by generated id.
func (r *VehicleRepo) GetByID(ctx context.Context, id string) (*model.Vehicle, error) {
	var v model.Vehicle
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// Update replaces the mutable fields and returns the updated document.
func (r *VehicleRepo) Update(ctx context.Context, id string, in model.VehicleInput) (*model.Vehicle, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": in})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a vehicle by id.
func (r *VehicleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByCustomer removes every vehicle owned by the given customer and
// reports how many were deleted. Used by the customer cascade, by the
// customer.deleted queue consumer and by crmctl sweep-vehicles.
func (r *VehicleRepo) DeleteByCustomer(ctx context.Context, customerID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CustomerIDs returns the distinct customer_id values present in the
// collection. The orphan sweep checks each against the customers
// collection.
func (r *VehicleRepo) CustomerIDs(ctx context.Context) ([]string, error) {
	raw, err := r.coll.Distinct(ctx, "customer_id", bson.M{})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
