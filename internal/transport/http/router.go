package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-cms-api/internal/application/auth"
	"github.com/go-cms-api/internal/application/language"
	"github.com/go-cms-api/internal/application/media"
	"github.com/go-cms-api/internal/application/otp"
	"github.com/go-cms-api/internal/application/page"
	"github.com/go-cms-api/internal/application/role"
	"github.com/go-cms-api/internal/application/user"
	"github.com/go-cms-api/internal/config"
	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/transport/http/handler"
	appmiddleware "github.com/go-cms-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	roleSvc := role.NewService(role.ServiceDeps{
		Roles:       deps.RoleRepo,
		Permissions: deps.PermissionRepo,
	})
	signer := &tokenSigner{provider: deps.JWTProvider, roles: roleSvc}

	otpSvc := otp.NewService(otp.ServiceDeps{
		Store:    deps.OtpStore,
		Notifier: deps.Notifier,
		Users:    deps.UserRepo,
		Tokens:   signer,
		Config: otp.Config{
			CodeLength:   cfg.OTPCodeLength,
			CodeTTL:      cfg.OTPCodeTTL,
			ResendWindow: cfg.OTPResendWindow,
			EchoCode:     cfg.OTPEchoCode,
		},
	})
	authDeps := auth.ServiceDeps{Users: deps.UserRepo, Tokens: signer}
	if deps.GoogleOAuth != nil {
		authDeps.Google = deps.GoogleOAuth
	}
	authSvc := auth.NewService(authDeps)
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:        deps.UserRepo,
		PreferenceRepo:  deps.PreferenceRepo,
		Roles:           roleSvc,
		DefaultLanguage: cfg.DefaultLanguage,
	})
	pageSvc := page.NewService(page.ServiceDeps{
		Pages:    deps.PageRepo,
		Sections: deps.SectionRepo,
		Contents: deps.ContentRepo,
	})
	languageSvc := language.NewService(deps.LanguageRepo)
	mediaSvc := media.NewService(media.ServiceDeps{
		Folders: deps.FolderRepo,
		Files:   deps.FileRepo,
		Blobs:   deps.S3Store,
	})

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOtpHandler(otpSvc, cfg.RefreshTokenTTL)
	authH := handler.NewAuthHandler(authSvc, cfg.RefreshTokenTTL)
	userH := handler.NewUserHandler(userSvc)
	roleH := handler.NewRoleHandler(roleSvc)
	pageH := handler.NewPageHandler(pageSvc, cfg.DefaultLanguage)
	languageH := handler.NewLanguageHandler(languageSvc)
	folderH := handler.NewFolderHandler(mediaSvc)
	fileH := handler.NewFileHandler(mediaSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/otp/send", otpH.Send)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/user-existence", authH.UserExistence)
		r.Post("/auth/refresh", authH.Refresh)
		r.Get("/auth/google", authH.GoogleRedirect)
		r.Get("/auth/google/callback", authH.GoogleCallback)

		r.Get("/public/pages", pageH.PublicList)
		r.Get("/public/pages/{key}", pageH.PublicGetByKey)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/settings/change-password", authH.ChangePassword)
			r.Get("/users/me", userH.Me)
			r.Get("/settings/preferences", userH.GetPreferences)
			r.Put("/settings/preferences", userH.SetPreferences)

			r.Get("/users/{publicID}", userH.Get)
			r.Put("/users/{publicID}", userH.Update)

			r.Get("/pages", pageH.List)
			r.Get("/pages/{pageID}", pageH.Get)
			r.Post("/pages", pageH.Create)
			r.Put("/pages/{pageID}", pageH.Update)
			r.Delete("/pages/{pageID}", pageH.Delete)

			r.Get("/pages/{pageID}/sections", pageH.ListSections)
			r.Post("/sections", pageH.CreateSection)
			r.Put("/sections/{sectionID}", pageH.UpdateSection)
			r.Delete("/sections/{sectionID}", pageH.DeleteSection)

			r.Get("/sections/{sectionID}/contents", pageH.ListContents)
			r.Post("/contents", pageH.CreateContent)
			r.Put("/contents/{contentID}", pageH.UpdateContent)
			r.Delete("/contents/{contentID}", pageH.DeleteContent)

			r.Get("/folders", folderH.Tree)
			r.Post("/folders", folderH.Create)
			r.Put("/folders/{folderID}", folderH.Update)
			r.Delete("/folders/{folderID}", folderH.Delete)

			r.Get("/files", fileH.List)
			r.Post("/files", fileH.Upload)
			r.Post("/files/base64", fileH.UploadBase64)
			r.Get("/files/{fileID}", fileH.Download)
			r.Get("/files/{fileID}/url", fileH.URL)
			r.Delete("/files/{fileID}", fileH.Delete)

			r.Get("/languages", languageH.List)
			r.Get("/languages/{languageID}", languageH.Get)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Post("/users", userH.Create)
				r.Delete("/users/{publicID}", userH.Delete)

				r.Get("/roles", roleH.List)
				r.Get("/roles/{roleID}", roleH.Get)
				r.Post("/roles", roleH.Create)
				r.Put("/roles/{roleID}", roleH.Update)
				r.Delete("/roles/{roleID}", roleH.Delete)

				r.Get("/permissions", roleH.ListPermissions)
				r.Post("/permissions", roleH.CreatePermission)
				r.Delete("/permissions/{permissionID}", roleH.DeletePermission)

				r.Post("/languages", languageH.Create)
				r.Put("/languages/{languageID}", languageH.Update)
				r.Delete("/languages/{languageID}", languageH.Delete)
			})
		})
	})

	return r
}
