package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_ledger/internal/apperrors"
	"github.com/SscSPs/money_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/money_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/money_ledger/internal/core/ports/services"
	"github.com/SscSPs/money_ledger/internal/utils"
	"github.com/google/uuid"
)

type apiKeyService struct {
	BaseService
	apiKeyRepo   portsrepo.APIKeyRepository
	businessRepo portsrepo.BusinessRepository
	hmacSecret   string
	now          func() time.Time
}

// NewAPIKeyService creates the API key authenticator and manager.
// hmacSecret keys the hash stored for every API key.
func NewAPIKeyService(apiKeyRepo portsrepo.APIKeyRepository, businessRepo portsrepo.BusinessRepository, hmacSecret string) portssvc.APIKeySvcFacade {
	return &apiKeyService{
		apiKeyRepo:   apiKeyRepo,
		businessRepo: businessRepo,
		hmacSecret:   hmacSecret,
		now:          time.Now,
	}
}

var _ portssvc.APIKeySvcFacade = (*apiKeyService)(nil)

func unauthorized(msg string) error {
	return apperrors.NewAppError(apperrors.KindUnauthorized, msg, nil)
}

// Authenticate resolves a raw key to the business that owns it.
func (s *apiKeyService) Authenticate(ctx context.Context, rawKey string) (*domain.BusinessContext, error) {
	key := strings.TrimSpace(rawKey)
	if key == "" {
		return nil, unauthorized("missing api key")
	}

	found, err := s.apiKeyRepo.FindActiveByHash(ctx, utils.HashAPIKey(s.hmacSecret, key))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, unauthorized("invalid api key")
		}
		s.LogError(ctx, err, "Failed to look up api key")
		return nil, apperrors.Internal("failed to authenticate", err)
	}
	return &domain.BusinessContext{BusinessID: found.BusinessID, APIKeyID: found.APIKeyID}, nil
}

// CreateAPIKey issues a new key for an existing business.
func (s *apiKeyService) CreateAPIKey(ctx context.Context, businessID string) (string, *domain.APIKey, error) {
	id, err := parseID(businessID, "business id")
	if err != nil {
		return "", nil, err
	}
	if _, err := s.businessRepo.FindBusinessByID(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.NotFound("business")
		}
		return "", nil, apperrors.Internal("failed to find business", err)
	}

	raw, err := utils.GenerateAPIKey()
	if err != nil {
		return "", nil, apperrors.Internal("failed to generate api key", err)
	}
	key := &domain.APIKey{
		APIKeyID:   uuid.NewString(),
		BusinessID: id,
		KeyHash:    utils.HashAPIKey(s.hmacSecret, raw),
	}
	if err := s.apiKeyRepo.Create(ctx, key); err != nil {
		return "", nil, asInternal("failed to store api key", err)
	}

	s.LogInfo(ctx, "API key created", slog.String("business_id", id), slog.String("api_key_id", key.APIKeyID))
	return raw, key, nil
}

// RevokeAPIKey disables a key permanently.
func (s *apiKeyService) RevokeAPIKey(ctx context.Context, apiKeyID string) error {
	id, err := parseID(apiKeyID, "api key id")
	if err != nil {
		return err
	}
	if err := s.apiKeyRepo.Revoke(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("api key")
		}
		return apperrors.Internal("failed to revoke api key", err)
	}
	s.LogInfo(ctx, "API key revoked", slog.String("api_key_id", id))
	return nil
}
