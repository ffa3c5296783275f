package http

import (
	"context"

	"github.com/go-cms-api/internal/application/role"
	"github.com/go-cms-api/internal/infrastructure/dynamo"
	"github.com/go-cms-api/internal/infrastructure/google"
	jwtinfra "github.com/go-cms-api/internal/infrastructure/jwt"
	"github.com/go-cms-api/internal/infrastructure/notify"
	redisinfra "github.com/go-cms-api/internal/infrastructure/redis"
	s3infra "github.com/go-cms-api/internal/infrastructure/s3"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo       *dynamo.UserRepo
	RoleRepo       *dynamo.RoleRepo
	PermissionRepo *dynamo.PermissionRepo
	PageRepo       *dynamo.PageRepo
	SectionRepo    *dynamo.SectionRepo
	ContentRepo    *dynamo.ContentRepo
	LanguageRepo   *dynamo.LanguageRepo
	FolderRepo     *dynamo.FolderRepo
	FileRepo       *dynamo.FileRepo
	PreferenceRepo *dynamo.PreferenceRepo

	OtpStore    *redisinfra.OtpStore
	S3Store     *s3infra.Store
	Notifier    *notify.Notifier
	JWTProvider *jwtinfra.Provider
	GoogleOAuth *google.OAuth
}

// tokenSigner wraps the JWT provider so access tokens carry role keys rather
// than the opaque role ids stored on the user record. The role gate in the
// middleware matches against keys.
type tokenSigner struct {
	provider *jwtinfra.Provider
	roles    role.Service
}

func (t *tokenSigner) SignAccess(userID string, roleIDs []string) (string, error) {
	keys := make([]string, 0, len(roleIDs))
	if len(roleIDs) > 0 {
		resolved, err := t.roles.Resolve(context.Background(), roleIDs)
		if err != nil {
			return "", err
		}
		for _, r := range resolved {
			keys = append(keys, r.Key)
		}
	}
	return t.provider.SignAccess(userID, keys)
}

func (t *tokenSigner) SignRefresh(userID string) (string, error) {
	return t.provider.SignRefresh(userID)
}

func (t *tokenSigner) VerifyRefresh(token string) (string, error) {
	claims, err := t.provider.VerifyRefresh(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
