package models

import (
	"time"

	"gorm.io/datatypes"
)

// Belt ranks in promotion order.
var Belts = []string{"white", "blue", "purple", "brown", "black"}

// Profile holds the public, user-editable part of an account.
type Profile struct {
	Name           string                      `json:"name" gorm:"type:varchar(100)" bson:"name" validate:"max=100"`
	Belt           string                      `json:"belt" gorm:"type:varchar(16)" bson:"belt" validate:"required,oneof=white blue purple brown black"`
	Stripes        int                         `json:"stripes" bson:"stripes" validate:"min=0,max=4"`
	Academy        string                      `json:"academy" gorm:"type:varchar(255)" bson:"academy"`
	ShortTermGoals datatypes.JSONSlice[string] `json:"shortTermGoals" bson:"short_term_goals"`
	LongTermGoals  datatypes.JSONSlice[string] `json:"longTermGoals" bson:"long_term_goals"`
}

// User represents a practitioner account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" bson:"email" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" bson:"password"` // bcrypt hash, never serialized
	Profile   Profile   `json:"profile" gorm:"embedded;embeddedPrefix:profile_" bson:"profile"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}
