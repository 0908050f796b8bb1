package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// View is a page view event recorded by the analytics service.
type View struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Source    string             `bson:"source" json:"source"`
	URL       string             `bson:"url" json:"url"`
	Visitor   string             `bson:"visitor" json:"visitor"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Meta      map[string]any     `bson:"meta" json:"meta"`
}

// Action is a user interaction event, a view with an action label.
type Action struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Source    string             `bson:"source" json:"source"`
	URL       string             `bson:"url" json:"url"`
	Action    string             `bson:"action" json:"action"`
	Visitor   string             `bson:"visitor" json:"visitor"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Meta      map[string]any     `bson:"meta" json:"meta"`
}

// Goal marks a conversion for a visitor.
type Goal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Source    string             `bson:"source" json:"source"`
	URL       string             `bson:"url" json:"url"`
	Goal      string             `bson:"goal" json:"goal"`
	Visitor   string             `bson:"visitor" json:"visitor"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Meta      map[string]any     `bson:"meta" json:"meta"`
}

// GoalDetails is a goal joined with every view and action recorded for
// the same visitor.
type GoalDetails struct {
	Goal    Goal     `json:"goal"`
	Views   []View   `json:"views"`
	Actions []Action `json:"actions"`
}
