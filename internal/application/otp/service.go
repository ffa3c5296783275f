package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/go-cms-api/internal/pkg/id"
	"github.com/go-cms-api/internal/pkg/validate"
	"golang.org/x/crypto/bcrypt"
)

type RequestCodeRequest struct {
	Identifier string         `json:"identifier" validate:"required"`
	Channel    domain.Channel `json:"method" validate:"required"`
	Purpose    domain.Purpose `json:"type" validate:"required"`
}

type VerifyCodeRequest struct {
	Identifier string         `json:"identifier" validate:"required"`
	Code       string         `json:"code" validate:"required"`
	Channel    domain.Channel `json:"method" validate:"required"`
}

// RequestCodeResult reports issuance outcome. Delivered is false when the
// notifier failed; the stored code stays valid either way. Code is populated
// only when the debug echo is enabled in config.
type RequestCodeResult struct {
	TTL       int    `json:"ttl"`
	Delivered bool   `json:"-"`
	Code      string `json:"code,omitempty"`
}

// VerifyCodeResult carries tokens for an existing identity, or just the
// public id of a freshly created minimal identity that still needs setup.
type VerifyCodeResult struct {
	PublicID     string `json:"publicId"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	NewUser      bool   `json:"-"`
}

// Store is the ephemeral key-value store holding code records and resend
// markers. Expiry is the store's responsibility; an expired entry reads as
// domain.ErrNotFound.
type Store interface {
	GetRecord(ctx context.Context, identifier string) (*domain.OtpRecord, error)
	PutRecord(ctx context.Context, identifier string, rec *domain.OtpRecord, ttl time.Duration) error
	DeleteRecord(ctx context.Context, identifier string) error
	RateMarkerExists(ctx context.Context, identifier string) (bool, error)
	PutRateMarker(ctx context.Context, identifier string, ttl time.Duration) error
}

// Notifier delivers the plaintext code to the identifier over a channel.
type Notifier interface {
	SendCode(ctx context.Context, identifier string, channel domain.Channel, code string) error
}

// UserDirectory resolves and creates identity records.
type UserDirectory interface {
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
}

// TokenSigner issues access and refresh credentials.
type TokenSigner interface {
	SignAccess(userID string, roles []string) (string, error)
	SignRefresh(userID string) (string, error)
}

// Config holds the issuance policy knobs.
type Config struct {
	CodeLength   int
	CodeTTL      time.Duration
	ResendWindow time.Duration
	EchoCode     bool
}

type Service interface {
	RequestCode(ctx context.Context, req RequestCodeRequest) (*RequestCodeResult, error)
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error)
}

type ServiceDeps struct {
	Store    Store
	Notifier Notifier
	Users    UserDirectory
	Tokens   TokenSigner
	Config   Config
}

type service struct {
	store    Store
	notifier Notifier
	users    UserDirectory
	tokens   TokenSigner
	cfg      Config
}

func NewService(deps ServiceDeps) Service {
	return &service{
		store:    deps.Store,
		notifier: deps.Notifier,
		users:    deps.Users,
		tokens:   deps.Tokens,
		cfg:      deps.Config,
	}
}

func (s *service) RequestCode(ctx context.Context, req RequestCodeRequest) (*RequestCodeResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !req.Channel.Valid() {
		return nil, fmt.Errorf("unsupported method %q: %w", req.Channel, domain.ErrBadRequest)
	}
	if !req.Purpose.Valid() {
		return nil, fmt.Errorf("unsupported type %q: %w", req.Purpose, domain.ErrBadRequest)
	}

	// A still-redeemable code blocks re-issuance so the one the user already
	// received is not invalidated. Checked before the velocity guard.
	_, err := s.store.GetRecord(ctx, req.Identifier)
	if err == nil {
		return nil, fmt.Errorf("code already active: %w", domain.ErrTooManyRequests)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	limited, err := s.store.RateMarkerExists(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if limited {
		return nil, fmt.Errorf("too many requests: %w", domain.ErrTooManyRequests)
	}

	code, err := generateCode(s.cfg.CodeLength)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &domain.OtpRecord{
		CodeHash:  string(hash),
		Channel:   req.Channel,
		CreatedAt: time.Now().UTC(),
	}
	// Record first, marker second: a crash in between weakens rate limiting
	// but never issues a duplicate code.
	if err := s.store.PutRecord(ctx, req.Identifier, rec, s.cfg.CodeTTL); err != nil {
		return nil, err
	}
	if err := s.store.PutRateMarker(ctx, req.Identifier, s.cfg.ResendWindow); err != nil {
		return nil, err
	}

	result := &RequestCodeResult{TTL: int(s.cfg.CodeTTL.Seconds()), Delivered: true}
	if err := s.notifier.SendCode(ctx, req.Identifier, req.Channel, code); err != nil {
		slog.Warn("code delivery failed", "channel", req.Channel, "err", err)
		result.Delivered = false
	}
	if s.cfg.EchoCode {
		result.Code = code
	}
	return result, nil
}

func (s *service) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*VerifyCodeResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrBadRequest)
	}
	if !req.Channel.Valid() {
		return nil, fmt.Errorf("unsupported method %q: %w", req.Channel, domain.ErrBadRequest)
	}

	rec, err := s.store.GetRecord(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("code expired or missing: %w", domain.ErrBadRequest)
		}
		return nil, err
	}
	// Wrong code keeps the record so the holder of the real one can retry
	// until the TTL runs out.
	if bcrypt.CompareHashAndPassword([]byte(rec.CodeHash), []byte(req.Code)) != nil {
		return nil, fmt.Errorf("invalid code: %w", domain.ErrBadRequest)
	}
	// Single use: the record must be gone before anyone can read it again.
	if err := s.store.DeleteRecord(ctx, req.Identifier); err != nil {
		return nil, err
	}

	u, err := s.lookupUser(ctx, req.Identifier, req.Channel)
	if errors.Is(err, domain.ErrNotFound) {
		created, err := s.createMinimalUser(ctx, req.Identifier, req.Channel)
		if err != nil {
			return nil, err
		}
		return &VerifyCodeResult{PublicID: created.PublicID, NewUser: true}, nil
	}
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.SignAccess(u.PublicID, u.RoleIDs)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.SignRefresh(u.PublicID)
	if err != nil {
		return nil, err
	}
	return &VerifyCodeResult{PublicID: u.PublicID, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *service) lookupUser(ctx context.Context, identifier string, channel domain.Channel) (*domain.User, error) {
	if channel == domain.ChannelEmail {
		return s.users.GetByEmail(ctx, identifier)
	}
	return s.users.GetByPhone(ctx, identifier)
}

func (s *service) createMinimalUser(ctx context.Context, identifier string, channel domain.Channel) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		PublicID:     id.New(),
		Verified:     true,
		Enable:       true,
		AuthProvider: "otp",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if channel == domain.ChannelEmail {
		u.Email = &identifier
	} else {
		u.Phone = &identifier
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// generateCode draws a uniformly random numeric code of the given length,
// zero-padded so leading zeros are as likely as any other digit.
func generateCode(length int) (string, error) {
	bound := big.NewInt(1)
	for i := 0; i < length; i++ {
		bound.Mul(bound, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
