package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// CustomerRepo encapsulates access to the `customers` collection, including
// the two append-only logs nested in each document.
type CustomerRepo struct{ coll *mongo.Collection }

func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{coll: db.Collection("customers")}
}

// Create inserts a customer document. Callers assign id, created_at and the
// empty log slices before calling.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

// List returns all customers in natural storage order.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	customers := []model.Customer{}
	if err := cur.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByID fetches a customer by generated id.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetByKundenNr fetches a customer by the external business key. The CSV
// vehicle importer uses it to resolve ownership.
func (r *CustomerRepo) GetByKundenNr(ctx context.Context, kundenNr string) (*model.Customer, error) {
	var c model.Customer
	if err := r.coll.FindOne(ctx, bson.M{"kunden_nr": kundenNr}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update replaces the mutable business fields with a single $set and
// returns the updated document. id, created_at and the logs are untouched.
func (r *CustomerRepo) Update(ctx context.Context, id string, in model.CustomerInput) (*model.Customer, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": in})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a customer by id. Cascading the vehicles is the handler's
// job; this method touches exactly one document.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendRemark pushes one entry onto the customer's Bemerkungen log. The
// $push is a single atomic document update, so concurrent appends interleave
// without corrupting the array; their relative order is arrival order.
func (r *CustomerRepo) AppendRemark(ctx context.Context, id string, remark model.Remark) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$push": bson.M{"bemerkungen": remark}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendCorrespondence pushes one entry onto the Korrespondenz log.
func (r *CustomerRepo) AppendCorrespondence(ctx context.Context, id string, entry model.Correspondence) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$push": bson.M{"korrespondenz": entry}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
