package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// ExperienceRepo encapsulates access to the `client_experience` collection.
type ExperienceRepo struct{ coll *mongo.Collection }

func NewExperienceRepo(db *mongo.Database) *ExperienceRepo {
	return &ExperienceRepo{coll: db.Collection("client_experience")}
}

func (r *ExperienceRepo) Create(ctx context.Context, ce *model.ClientExperience) error {
	_, err := r.coll.InsertOne(ctx, ce)
	return err
}

func (r *ExperienceRepo) List(ctx context.Context) ([]model.ClientExperience, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	cases := []model.ClientExperience{}
	if err := cur.All(ctx, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *ExperienceRepo) GetByID(ctx context.Context, id string) (*model.ClientExperience, error) {
	var ce model.ClientExperience
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&ce); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ce, nil
}

func (r *ExperienceRepo) Update(ctx context.Context, id string, in model.ClientExperienceInput) (*model.ClientExperience, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": in})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// AppendSolution pushes one entry onto the case's action log. A single
// atomic $push per append; prior entries and their order are preserved.
func (r *ExperienceRepo) AppendSolution(ctx context.Context, id string, s model.Solution) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$push": bson.M{"loesungen": s}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExperienceRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExperienceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
