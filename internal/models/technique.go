package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TechniqueCategories is the canonical category order.
var TechniqueCategories = []string{
	"guard", "pass", "mount", "back", "side-control",
	"submission", "transition", "sweep", "takedown", "escape",
}

// Technique is an entry of the personal technique library.
type Technique struct {
	ID           string                      `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID       string                      `json:"userId" gorm:"type:varchar(36);not null;index:idx_techniques_owner_category,priority:1" bson:"user_id"`
	Name         string                      `json:"name" gorm:"type:varchar(255);not null" bson:"name" validate:"required,max=255"`
	Category     string                      `json:"category" gorm:"type:varchar(32);index:idx_techniques_owner_category,priority:2" bson:"category" validate:"required,oneof=guard pass mount back side-control submission transition sweep takedown escape"`
	Subcategory  string                      `json:"subcategory" bson:"subcategory"`
	MasteryLevel int                         `json:"masteryLevel" bson:"mastery_level" validate:"min=1,max=5"`
	Notes        string                      `json:"notes" bson:"notes"`
	VideoLinks   datatypes.JSONSlice[string] `json:"videoLinks" bson:"video_links"`
	Tags         datatypes.JSONSlice[string] `json:"tags" bson:"tags"`
	SuccessCount int                         `json:"successCount" bson:"success_count" validate:"min=0"`
	AttemptCount int                         `json:"attemptCount" bson:"attempt_count" validate:"min=0"`
	CreatedAt    time.Time                   `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time                   `json:"updatedAt" bson:"updated_at"`
}

// NewTechnique returns a technique at the lowest mastery level.
func NewTechnique() *Technique {
	return &Technique{
		MasteryLevel: 1,
		VideoLinks:   datatypes.JSONSlice[string]{},
		Tags:         datatypes.JSONSlice[string]{},
	}
}

// SuccessRate is the rounded percentage of successful attempts, 0 without attempts.
func (t Technique) SuccessRate() int {
	if t.AttemptCount <= 0 {
		return 0
	}
	// round half-up of 100*s/a in integer arithmetic
	return (200*t.SuccessCount + t.AttemptCount) / (2 * t.AttemptCount)
}

// MarshalJSON adds the derived successRate to the stored fields.
func (t Technique) MarshalJSON() ([]byte, error) {
	type stored Technique
	return json.Marshal(struct {
		stored
		SuccessRate int `json:"successRate"`
	}{stored(t), t.SuccessRate()})
}

func (t *Technique) GetID() string       { return t.ID }
func (t *Technique) SetID(id string)     { t.ID = id }
func (t *Technique) GetUserID() string   { return t.UserID }
func (t *Technique) SetUserID(id string) { t.UserID = id }

// Touch stamps a write; CreatedAt is only set once.
func (t *Technique) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
