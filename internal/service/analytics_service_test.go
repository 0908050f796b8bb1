package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func TestRecordGoalStampsServerSide(t *testing.T) {
	ctx := context.Background()
	svc := NewAnalyticsService(newFakeAnalyticsRepo())

	before := time.Now().UTC()
	goal, err := svc.RecordGoal(ctx, domain.Goal{
		Source:  "newsletter",
		URL:     "https://shop.example.com/checkout",
		Goal:    "purchase",
		Visitor: "v-1",
	})
	require.NoError(t, err)

	assert.False(t, goal.CreatedAt.Before(before))
	assert.NotNil(t, goal.Meta)
	assert.False(t, goal.ID.IsZero())
}

func TestGoalDetailsJoinsByVisitor(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAnalyticsRepo()
	svc := NewAnalyticsService(repo)

	now := time.Now().UTC()
	_, err := svc.RecordView(ctx, domain.View{Source: "ads", URL: "https://shop.example.com/", Visitor: "v-1", CreatedAt: now})
	require.NoError(t, err)
	_, err = svc.RecordView(ctx, domain.View{Source: "ads", URL: "https://shop.example.com/", Visitor: "v-2", CreatedAt: now})
	require.NoError(t, err)
	_, err = svc.RecordAction(ctx, domain.Action{Source: "ads", URL: "https://shop.example.com/cart", Action: "add-to-cart", Visitor: "v-1", CreatedAt: now})
	require.NoError(t, err)

	goal, err := svc.RecordGoal(ctx, domain.Goal{Source: "ads", URL: "https://shop.example.com/checkout", Goal: "purchase", Visitor: "v-1"})
	require.NoError(t, err)

	details, err := svc.GoalDetails(ctx, goal.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, goal.ID, details.Goal.ID)
	require.Len(t, details.Views, 1, "only the goal visitor's views are joined")
	assert.Equal(t, "v-1", details.Views[0].Visitor)
	require.Len(t, details.Actions, 1)
	assert.Equal(t, "add-to-cart", details.Actions[0].Action)
}

func TestGoalDetailsErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewAnalyticsService(newFakeAnalyticsRepo())

	_, err := svc.GoalDetails(ctx, "not-hex")
	assert.ErrorIs(t, err, ErrInvalidObjectID)

	_, err = svc.GoalDetails(ctx, "0123456789abcdef01234567")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordViewDefaultsMeta(t *testing.T) {
	ctx := context.Background()
	svc := NewAnalyticsService(newFakeAnalyticsRepo())

	view, err := svc.RecordView(ctx, domain.View{Source: "ads", URL: "https://shop.example.com/", Visitor: "v-1", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NotNil(t, view.Meta)
}
