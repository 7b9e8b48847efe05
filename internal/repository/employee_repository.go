package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// EmployeeRepo encapsulates access to the `employees` collection.
type EmployeeRepo struct{ coll *mongo.Collection }

func NewEmployeeRepo(db *mongo.Database) *EmployeeRepo {
	return &EmployeeRepo{coll: db.Collection("employees")}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	_, err := r.coll.InsertOne(ctx, e)
	return err
}

func (r *EmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	employees := []model.Employee{}
	if err := cur.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var e model.Employee
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, id string, in model.EmployeeInput) (*model.Employee, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": in})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
