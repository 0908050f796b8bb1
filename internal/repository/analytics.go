package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/domain"
)

// AnalyticsRepository stores view, action and goal events.
type AnalyticsRepository interface {
	InsertView(ctx context.Context, view *domain.View) error
	ListViews(ctx context.Context) ([]domain.View, error)
	ListViewsByVisitor(ctx context.Context, visitor string) ([]domain.View, error)
	InsertAction(ctx context.Context, action *domain.Action) error
	ListActions(ctx context.Context) ([]domain.Action, error)
	ListActionsByVisitor(ctx context.Context, visitor string) ([]domain.Action, error)
	InsertGoal(ctx context.Context, goal *domain.Goal) error
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	GetGoal(ctx context.Context, id primitive.ObjectID) (*domain.Goal, error)
}
