package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	CompetitionPast     = "past"
	CompetitionUpcoming = "upcoming"
)

// CompetitionResults lists the accepted results; "pending" is the default.
var CompetitionResults = []string{"gold", "silver", "bronze", "participation", "pending"}

// Competition is a past or planned tournament entry.
type Competition struct {
	ID          string                      `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID      string                      `json:"userId" gorm:"type:varchar(36);not null;index:idx_competitions_owner_date,priority:1" bson:"user_id"`
	Name        string                      `json:"name" gorm:"type:varchar(255);not null" bson:"name" validate:"required,max=255"`
	Date        time.Time                   `json:"date" gorm:"not null;index:idx_competitions_owner_date,priority:2,sort:desc" bson:"date" validate:"required"`
	Type        string                      `json:"type" gorm:"type:varchar(16)" bson:"type" validate:"required,oneof=past upcoming"`
	Division    string                      `json:"division" bson:"division"`
	WeightClass string                      `json:"weightClass" bson:"weight_class"`
	Result      string                      `json:"result" gorm:"type:varchar(16)" bson:"result" validate:"required,oneof=gold silver bronze participation pending"`
	Opponents   datatypes.JSONSlice[string] `json:"opponents" bson:"opponents"`
	GamePlan    string                      `json:"gamePlan" bson:"game_plan"`
	Notes       string                      `json:"notes" bson:"notes"`
	CreatedAt   time.Time                   `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time                   `json:"updatedAt" bson:"updated_at"`
}

// NewCompetition returns a competition awaiting its result.
func NewCompetition() *Competition {
	return &Competition{
		Result:    "pending",
		Opponents: datatypes.JSONSlice[string]{},
	}
}

// CompetitionType buckets a date relative to now; the boundary counts as upcoming.
func CompetitionType(date, now time.Time) string {
	if date.Before(now) {
		return CompetitionPast
	}
	return CompetitionUpcoming
}

func (c *Competition) GetID() string       { return c.ID }
func (c *Competition) SetID(id string)     { c.ID = id }
func (c *Competition) GetUserID() string   { return c.UserID }
func (c *Competition) SetUserID(id string) { c.UserID = id }

// Touch stamps a write; CreatedAt is only set once.
func (c *Competition) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}
