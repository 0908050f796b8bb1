package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

type AnalyticsRepository struct {
	views   *mongo.Collection
	actions *mongo.Collection
	goals   *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) repository.AnalyticsRepository {
	return &AnalyticsRepository{
		views:   db.Collection("views"),
		actions: db.Collection("actions"),
		goals:   db.Collection("goals"),
	}
}

func (r *AnalyticsRepository) InsertView(ctx context.Context, view *domain.View) error {
	res, err := r.views.InsertOne(ctx, view)
	if err != nil {
		return fmt.Errorf("insert view: %w", err)
	}
	view.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AnalyticsRepository) ListViews(ctx context.Context) ([]domain.View, error) {
	return r.findViews(ctx, bson.M{})
}

func (r *AnalyticsRepository) ListViewsByVisitor(ctx context.Context, visitor string) ([]domain.View, error) {
	return r.findViews(ctx, bson.M{"visitor": visitor})
}

func (r *AnalyticsRepository) findViews(ctx context.Context, filter bson.M) ([]domain.View, error) {
	cursor, err := r.views.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query views: %w", err)
	}
	defer cursor.Close(ctx)

	var views []domain.View
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode views: %w", err)
	}
	return views, nil
}

func (r *AnalyticsRepository) InsertAction(ctx context.Context, action *domain.Action) error {
	res, err := r.actions.InsertOne(ctx, action)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	action.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AnalyticsRepository) ListActions(ctx context.Context) ([]domain.Action, error) {
	return r.findActions(ctx, bson.M{})
}

func (r *AnalyticsRepository) ListActionsByVisitor(ctx context.Context, visitor string) ([]domain.Action, error) {
	return r.findActions(ctx, bson.M{"visitor": visitor})
}

func (r *AnalyticsRepository) findActions(ctx context.Context, filter bson.M) ([]domain.Action, error) {
	cursor, err := r.actions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer cursor.Close(ctx)

	var actions []domain.Action
	if err := cursor.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}
	return actions, nil
}

func (r *AnalyticsRepository) InsertGoal(ctx context.Context, goal *domain.Goal) error {
	res, err := r.goals.InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	goal.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *AnalyticsRepository) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	cursor, err := r.goals.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []domain.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	return goals, nil
}

func (r *AnalyticsRepository) GetGoal(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error) {
	var goal domain.Goal
	if err := r.goals.FindOne(ctx, bson.M{"_id": id}).Decode(&goal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}
	return &goal, nil
}
