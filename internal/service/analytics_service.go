package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// AnalyticsService records visitor events and resolves goal details by
// joining events through visitor identity.
type AnalyticsService interface {
	RecordView(ctx context.Context, view domain.View) (*domain.View, error)
	ListViews(ctx context.Context) ([]domain.View, error)
	RecordAction(ctx context.Context, action domain.Action) (*domain.Action, error)
	ListActions(ctx context.Context) ([]domain.Action, error)
	RecordGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	GoalDetails(ctx context.Context, goalID string) (*domain.GoalDetails, error)
}

type analyticsService struct {
	events repository.AnalyticsRepository
}

func NewAnalyticsService(events repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{events: events}
}

func (s *analyticsService) RecordView(ctx context.Context, view domain.View) (*domain.View, error) {
	if view.Meta == nil {
		view.Meta = map[string]any{}
	}
	if err := s.events.InsertView(ctx, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *analyticsService) ListViews(ctx context.Context) ([]domain.View, error) {
	return s.events.ListViews(ctx)
}

func (s *analyticsService) RecordAction(ctx context.Context, action domain.Action) (*domain.Action, error) {
	if action.Meta == nil {
		action.Meta = map[string]any{}
	}
	if err := s.events.InsertAction(ctx, &action); err != nil {
		return nil, err
	}
	return &action, nil
}

func (s *analyticsService) ListActions(ctx context.Context) ([]domain.Action, error) {
	return s.events.ListActions(ctx)
}

// RecordGoal stamps the goal server-side; conversions are dated at
// ingestion, not by the client.
func (s *analyticsService) RecordGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	goal.CreatedAt = time.Now().UTC()
	if goal.Meta == nil {
		goal.Meta = map[string]any{}
	}
	if err := s.events.InsertGoal(ctx, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *analyticsService) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	return s.events.ListGoals(ctx)
}

func (s *analyticsService) GoalDetails(ctx context.Context, goalID string) (*domain.GoalDetails, error) {
	objectID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, ErrInvalidObjectID
	}

	goal, err := s.events.GetGoal(ctx, objectID)
	if err != nil {
		return nil, err
	}

	details := &domain.GoalDetails{Goal: *goal}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		views, err := s.events.ListViewsByVisitor(gctx, goal.Visitor)
		if err != nil {
			return err
		}
		details.Views = views
		return nil
	})
	g.Go(func() error {
		actions, err := s.events.ListActionsByVisitor(gctx, goal.Visitor)
		if err != nil {
			return err
		}
		details.Actions = actions
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}
