package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-cms-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	otpKeyPrefix  = "otp:"
	rateKeyPrefix = "otp-rate:"
)

// OtpStore keeps one-time-code records and their resend markers in Redis.
// Expiry is delegated to Redis TTLs; a key that is gone counts as expired.
type OtpStore struct {
	client *redis.Client
}

func NewOtpStore(client *redis.Client) *OtpStore {
	return &OtpStore{client: client}
}

func (s *OtpStore) GetRecord(ctx context.Context, identifier string) (*domain.OtpRecord, error) {
	raw, err := s.client.Get(ctx, otpKeyPrefix+identifier).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("otp record for %q: %w", identifier, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get otp record: %w", err)
	}
	var rec domain.OtpRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("decode otp record: %w", err)
	}
	return &rec, nil
}

func (s *OtpStore) PutRecord(ctx context.Context, identifier string, rec *domain.OtpRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode otp record: %w", err)
	}
	if err := s.client.Set(ctx, otpKeyPrefix+identifier, raw, ttl).Err(); err != nil {
		return fmt.Errorf("put otp record: %w", err)
	}
	return nil
}

func (s *OtpStore) DeleteRecord(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, otpKeyPrefix+identifier).Err(); err != nil {
		return fmt.Errorf("delete otp record: %w", err)
	}
	return nil
}

func (s *OtpStore) RateMarkerExists(ctx context.Context, identifier string) (bool, error) {
	n, err := s.client.Exists(ctx, rateKeyPrefix+identifier).Result()
	if err != nil {
		return false, fmt.Errorf("check rate marker: %w", err)
	}
	return n > 0, nil
}

func (s *OtpStore) PutRateMarker(ctx context.Context, identifier string, ttl time.Duration) error {
	if err := s.client.Set(ctx, rateKeyPrefix+identifier, "1", ttl).Err(); err != nil {
		return fmt.Errorf("put rate marker: %w", err)
	}
	return nil
}
