package domain

import "time"

type User struct {
	PublicID     string     `json:"public_id" dynamodbav:"public_id"`
	Username     *string    `json:"username" dynamodbav:"username"`
	Email        *string    `json:"email" dynamodbav:"email"`
	Phone        *string    `json:"phone" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	RoleIDs      []string   `json:"role_ids,omitempty" dynamodbav:"role_ids"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	AuthProvider string     `json:"auth_provider,omitempty" dynamodbav:"auth_provider"` // "otp" | "password" | "google"
	FullName     string     `json:"full_name,omitempty" dynamodbav:"full_name"`
	AvatarURL    string     `json:"avatar_url,omitempty" dynamodbav:"avatar_url"`
	Enable       bool       `json:"enable" dynamodbav:"enable"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" dynamodbav:"deleted_at"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`

	// Roles is resolved at read time from RoleIDs; never persisted.
	Roles []Role `json:"roles,omitempty" dynamodbav:"-"`
}

type CreateUserRequest struct {
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Username *string  `json:"username"`
	Password *string  `json:"password" validate:"omitempty,min=6,max=72"`
	RoleIDs  []string `json:"roles"`
}

type UpdateUserRequest struct {
	Phone    *string   `json:"phone"`
	Email    *string   `json:"email" validate:"omitempty,email"`
	Username *string   `json:"username"`
	FullName *string   `json:"full_name"`
	RoleIDs  *[]string `json:"roles"`
	Enable   *bool     `json:"enable"`
}
