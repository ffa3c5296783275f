package domain

import "time"

// UserPreference holds per-user UI settings. One row per user (PK: user_id).
type UserPreference struct {
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Language  string    `json:"language,omitempty" dynamodbav:"language"`
	Theme     string    `json:"theme,omitempty" dynamodbav:"theme"`
	Timezone  string    `json:"timezone,omitempty" dynamodbav:"timezone"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type UserPreferenceInput struct {
	Language *string `json:"language"`
	Theme    *string `json:"theme"`
	Timezone *string `json:"timezone"`
}
