package domain

// RoleAdmin is the key of the built-in administrator role.
const RoleAdmin = "admin"

type Role struct {
	RoleID        string   `json:"id" dynamodbav:"role_id"`
	Name          string   `json:"name" dynamodbav:"name"`
	Key           string   `json:"key" dynamodbav:"key"`
	PermissionIDs []string `json:"permission_ids,omitempty" dynamodbav:"permission_ids"`

	// Permissions is resolved at read time from PermissionIDs; never persisted.
	Permissions []Permission `json:"permissions,omitempty" dynamodbav:"-"`
}

type RoleInput struct {
	Name          string   `json:"name" validate:"required"`
	Key           string   `json:"key" validate:"required"`
	PermissionIDs []string `json:"permission_ids"`
}

type Permission struct {
	PermissionID string `json:"id" dynamodbav:"permission_id"`
	Resource     string `json:"resource" dynamodbav:"resource"`
	Action       string `json:"action" dynamodbav:"action"`
}

type PermissionInput struct {
	Resource string `json:"resource" validate:"required"`
	Action   string `json:"action" validate:"required"`
}
