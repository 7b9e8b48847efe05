package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/model"
)

// TaskRepo encapsulates access to the `tasks` collection.
type TaskRepo struct{ coll *mongo.Collection }

func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{coll: db.Collection("tasks")}
}

func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	_, err := r.coll.InsertOne(ctx, t)
	return err
}

// List returns tasks, optionally narrowed to one assignee via an equality
// filter on assigned_to. The /tasks/my endpoint passes the caller's id.
func (r *TaskRepo) List(ctx context.Context, assignedTo string) ([]model.Task, error) {
	filter := bson.M{}
	if assignedTo != "" {
		filter["assigned_to"] = assignedTo
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	tasks := []model.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Update replaces the mutable fields; status, created_by and created_at
// are preserved.
func (r *TaskRepo) Update(ctx context.Context, id string, in model.TaskInput) (*model.Task, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": in})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus sets the task status. Validation of the value happens at the
// handler boundary.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
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

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
