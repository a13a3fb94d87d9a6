package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// DashboardPath is where a successful sign-in lands.
const DashboardPath = "/dashboard"

type Session struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      db.User   `json:"user"`
	Redirect  string    `json:"redirect"`
}

func (m *Manager) SignIn(ctx context.Context, email, password, ip string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		verr := &ValidationError{Fields: map[string]string{}}
		if email == "" {
			verr.Fields["email"] = "is required"
		}
		if password == "" {
			verr.Fields["password"] = "is required"
		}
		return nil, verr
	}

	user, err := m.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	} else if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		m.log.InfoContext(ctx, "sign in rejected", "email", email, "ip", ip)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := m.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	now := m.now()
	if err := m.store.TouchSignIn(ctx, user.ID, now); err != nil {
		m.log.ErrorContext(ctx, "failed to record sign in time", "error", err, "userId", user.ID)
	}
	user.LastSignInAt = &now

	m.audit(ctx, ActorFromUser(user, ip), ActionSignIn, "users", intPtr(user.ID), nil)

	return &Session{Token: token, ExpiresAt: expiresAt, User: *user, Redirect: DashboardPath}, nil
}

func (m *Manager) SignOut(ctx context.Context, actor Actor) {
	if actor.UserID == 0 {
		return
	}
	m.audit(ctx, actor, ActionSignOut, "users", intPtr(actor.UserID), nil)
}

// CurrentUser resolves a session token to the user row. The role always comes from the row,
// never from the token, so role changes and deletions apply on the next request.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*db.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}

	claims, err := m.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := m.store.UserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	} else if user == nil {
		return nil, fmt.Errorf("%w: user %d no longer exists", ErrUnauthorized, claims.UserID)
	}

	return user, nil
}

func (m *Manager) ChangePassword(ctx context.Context, actor Actor, current, next string) error {
	if actor.UserID == 0 {
		return ErrUnauthorized
	}

	user, err := m.store.UserByID(ctx, actor.UserID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	} else if user == nil {
		return ErrUnauthorized
	}

	if !auth.CheckPassword(user.PasswordHash, current) {
		return newValidationError("currentPassword", "is incorrect")
	}

	hash, err := auth.HashPassword(next)
	if errors.Is(err, auth.ErrWeakPassword) {
		return newValidationError("newPassword", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	} else if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	now := m.now()
	user.PasswordHash = hash
	user.UpdatedAt = &now
	if _, err := m.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	m.audit(ctx, actor, ActionUpdate, "users", intPtr(user.ID), map[string]string{"field": "password"})

	return nil
}
