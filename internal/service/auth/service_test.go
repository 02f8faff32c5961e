package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-checkout/internal/domain"
	tokenrepo "storefront-checkout/internal/repository/token"
)

type memTokenRepo struct {
	tokens  map[string]tokenrepo.Token
	deleted []string
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: map[string]tokenrepo.Token{}}
}

func (m *memTokenRepo) Create(_ context.Context, token tokenrepo.Token) error {
	if _, ok := m.tokens[token.Token]; ok {
		return domain.ErrAlreadyExists
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, token string) (*tokenrepo.Token, error) {
	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

func (m *memTokenRepo) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	m.deleted = append(m.deleted, token)
	return nil
}

func TestIssueAndResolve(t *testing.T) {
	repo := newMemTokenRepo()
	svc := New(repo)

	token, err := svc.Issue(context.Background(), "buyer-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	buyerID, err := svc.BuyerFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("BuyerFromToken: %v", err)
	}
	if buyerID != "buyer-1" {
		t.Fatalf("unexpected buyer %q", buyerID)
	}
}

func TestUnknownTokenRejected(t *testing.T) {
	svc := New(newMemTokenRepo())
	if _, err := svc.BuyerFromToken(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestExpiredTokenRejectedAndDeleted(t *testing.T) {
	repo := newMemTokenRepo()
	repo.tokens["stale"] = tokenrepo.Token{
		Token:     "stale",
		BuyerID:   "buyer-1",
		Kind:      "access",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	svc := New(repo)

	if _, err := svc.BuyerFromToken(context.Background(), "stale"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "stale" {
		t.Fatalf("expired token should be deleted, got %v", repo.deleted)
	}
}

func TestWrongKindRejected(t *testing.T) {
	repo := newMemTokenRepo()
	repo.tokens["refresh"] = tokenrepo.Token{
		Token:     "refresh",
		BuyerID:   "buyer-1",
		Kind:      "refresh",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc := New(repo)

	if _, err := svc.BuyerFromToken(context.Background(), "refresh"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
