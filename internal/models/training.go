package models

import (
	"time"

	"gorm.io/datatypes"
)

// TrainingTypes lists the accepted session types.
var TrainingTypes = []string{"gi", "no-gi", "drilling", "sparring", "open-mat", "competition-prep"}

// Training is a single logged mat session.
type Training struct {
	ID                  string                      `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID              string                      `json:"userId" gorm:"type:varchar(36);not null;index:idx_trainings_owner_date,priority:1" bson:"user_id"`
	Date                time.Time                   `json:"date" gorm:"not null;index:idx_trainings_owner_date,priority:2,sort:desc" bson:"date" validate:"required"`
	Duration            int                         `json:"duration" bson:"duration" validate:"min=1"`
	Type                string                      `json:"type" gorm:"type:varchar(32)" bson:"type" validate:"required,oneof=gi no-gi drilling sparring open-mat competition-prep"`
	TechniquesPracticed datatypes.JSONSlice[string] `json:"techniquesPracticed" bson:"techniques_practiced"`
	Partners            datatypes.JSONSlice[string] `json:"partners" bson:"partners"`
	PhysicalFeeling     int                         `json:"physicalFeeling" bson:"physical_feeling" validate:"min=1,max=10"`
	MentalFeeling       int                         `json:"mentalFeeling" bson:"mental_feeling" validate:"min=1,max=10"`
	Notes               string                      `json:"notes" bson:"notes"`
	SubmissionsGiven    int                         `json:"submissionsGiven" bson:"submissions_given" validate:"min=0"`
	SubmissionsReceived int                         `json:"submissionsReceived" bson:"submissions_received" validate:"min=0"`
	CreatedAt           time.Time                   `json:"createdAt" bson:"created_at"`
	UpdatedAt           time.Time                   `json:"updatedAt" bson:"updated_at"`
}

// NewTraining returns a session carrying the default ratings.
func NewTraining(now time.Time) *Training {
	return &Training{
		Date:                now,
		PhysicalFeeling:     5,
		MentalFeeling:       5,
		TechniquesPracticed: datatypes.JSONSlice[string]{},
		Partners:            datatypes.JSONSlice[string]{},
	}
}

func (t *Training) GetID() string       { return t.ID }
func (t *Training) SetID(id string)     { t.ID = id }
func (t *Training) GetUserID() string   { return t.UserID }
func (t *Training) SetUserID(id string) { t.UserID = id }

// Touch stamps a write; CreatedAt is only set once.
func (t *Training) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
