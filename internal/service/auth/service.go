package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"storefront-checkout/internal/domain"
	tokenrepo "storefront-checkout/internal/repository/token"
)

// ErrInvalidToken indicates the provided token could not be validated.
var ErrInvalidToken = errors.New("invalid token")

// Service resolves bearer tokens to buyer identities. Account management and
// token issuance flows live in the identity system outside this service; the
// Issue method exists for seeding and tests.
type Service struct {
	tokens tokenrepo.Repository
}

func New(tokens tokenrepo.Repository) *Service {
	return &Service{tokens: tokens}
}

// BuyerFromToken returns the buyer bound to a valid access token.
func (s *Service) BuyerFromToken(ctx context.Context, token string) (string, error) {
	meta, err := s.tokens.Get(ctx, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if meta.Kind != "access" || meta.BuyerID == "" {
		return "", ErrInvalidToken
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = s.tokens.Delete(ctx, token)
		return "", ErrInvalidToken
	}
	return meta.BuyerID, nil
}

// Issue creates an access token for a buyer.
func (s *Service) Issue(ctx context.Context, buyerID string, ttl time.Duration) (string, error) {
	expiresAt := time.Now().Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = s.tokens.Create(ctx, tokenrepo.Token{
			Token:     token,
			BuyerID:   buyerID,
			Kind:      "access",
			ExpiresAt: expiresAt,
		})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
