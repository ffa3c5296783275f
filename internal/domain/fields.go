package domain

// Attribute names used in partial-update maps. Keeping them here avoids
// stringly-typed drift between services and the storage layer.
const (
	FieldUserPasswordHash = "password_hash"
	FieldUserUsername     = "username"
	FieldUserEmail        = "email"
	FieldUserPhone        = "phone"
	FieldUserFullName     = "full_name"
	FieldUserAvatarURL    = "avatar_url"
	FieldUserRoleIDs      = "role_ids"
	FieldUserVerified     = "verified"
	FieldUserEnable       = "enable"
)
