package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/khen08/todoapp/internal/auth/domain"
	"github.com/khen08/todoapp/pkg/constant"
)

// Gate decides whether a username/password pair may open a session. It owns
// the failed-attempt counter and the time-boxed lockout; every expected
// failure comes back as a tagged Outcome, and the error return fires only
// when the account store itself is unavailable.
type Gate struct {
	repo     domain.UserRepository
	verifier domain.PasswordVerifier

	maxAttempts     int
	lockoutDuration time.Duration
}

func NewGate(repo domain.UserRepository, verifier domain.PasswordVerifier) *Gate {
	return &Gate{
		repo:            repo,
		verifier:        verifier,
		maxAttempts:     constant.MaxLoginAttempts,
		lockoutDuration: constant.LockoutDuration,
	}
}

func (g *Gate) Authenticate(ctx context.Context, username, password, ip string) (domain.Outcome, error) {
	if username == "" || password == "" {
		return domain.Outcome{Kind: domain.OutcomeInvalidInput}, nil
	}

	user, err := g.repo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("look up account: %w", err)
	}
	if user == nil {
		// Same outcome as a wrong password so the response never reveals
		// whether the username exists.
		g.audit(ctx, username, ip, false)
		return domain.Outcome{Kind: domain.OutcomeInvalidCredentials}, nil
	}

	if user.Locked(time.Now()) {
		// No counter write and no hash comparison while locked: hammering
		// a locked account must not extend the window or leak timing.
		g.audit(ctx, username, ip, false)
		return domain.Outcome{Kind: domain.OutcomeLocked}, nil
	}

	if !g.verifier.Verify(password, user.PasswordHash) {
		attempts, _, err := g.repo.RecordFailedAttempt(ctx, user.ID, g.maxAttempts, g.lockoutDuration)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("record failed attempt: %w", err)
		}
		g.audit(ctx, username, ip, false)
		if attempts >= g.maxAttempts {
			return domain.Outcome{Kind: domain.OutcomeLockedNewly}, nil
		}
		return domain.Outcome{Kind: domain.OutcomeInvalidCredentials}, nil
	}

	if err := g.repo.ResetLoginState(ctx, user.ID); err != nil {
		return domain.Outcome{}, fmt.Errorf("reset login state: %w", err)
	}
	g.audit(ctx, username, ip, true)

	return domain.Outcome{
		Kind:     domain.OutcomeSuccess,
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// audit is best-effort: a failed attempt log write never blocks the login.
func (g *Gate) audit(ctx context.Context, username, ip string, success bool) {
	if err := g.repo.RecordLoginAttempt(ctx, username, ip, success); err != nil {
		log.Printf("warn: failed to record login attempt for %s: %v", username, err)
	}
}
