package cms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/daniilsolovey/municipal-portal/internal/auth"
	"github.com/daniilsolovey/municipal-portal/internal/db"
)

// UserInput is the editable part of a user account. An empty password leaves the stored hash
// untouched on update.
type UserInput struct {
	Email    string `json:"email" validate:"required,email,max=200"`
	FullName string `json:"fullName" validate:"max=200"`
	Role     string `json:"role" validate:"required,oneof=admin editor viewer"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

type UserFilter struct {
	Search string
	Role   string
	Limit  int
	Offset int
}

func (m *Manager) Users(ctx context.Context, actor Actor, f UserFilter) (Page[db.User], error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return Page[db.User]{}, err
	}

	q, err := db.ListQuery{Limit: f.Limit, Offset: f.Offset}.Normalize()
	if err != nil {
		return Page[db.User]{}, newValidationError("limit", err.Error())
	}

	users, total, err := m.store.Users(ctx, f.Search, f.Role, q.Limit, q.Offset)
	if err != nil {
		return Page[db.User]{}, fmt.Errorf("list users: %w", err)
	}

	return Page[db.User]{Items: users, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (m *Manager) User(ctx context.Context, actor Actor, id int) (*db.User, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return nil, err
	}
	return m.userByID(ctx, id)
}

func (m *Manager) userByID(ctx context.Context, id int) (*db.User, error) {
	user, err := m.store.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	} else if user == nil {
		return nil, notFound("user", id)
	}
	return user, nil
}

func (m *Manager) CreateUser(ctx context.Context, actor Actor, in UserInput) (*db.User, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return nil, err
	}

	return m.createUser(ctx, actor, in)
}

func (m *Manager) createUser(ctx context.Context, actor Actor, in UserInput) (*db.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := m.check(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, newValidationError("password", "is required")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Email:        in.Email,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    m.now(),
	}
	if err := m.store.InsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	m.audit(ctx, actor, ActionCreate, "users", intPtr(user.ID), map[string]string{"email": user.Email, "role": user.Role})

	return user, nil
}

// EnsureAdmin creates an administrator account when none exists yet. It reports whether an
// account was created.
func (m *Manager) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	admins, err := m.store.CountUsersByRole(ctx, auth.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	} else if admins > 0 {
		return false, nil
	}

	user, err := m.createUser(ctx, Actor{Email: "system"}, UserInput{Email: email, FullName: "Administrator", Role: auth.RoleAdmin, Password: password})
	if err != nil {
		return false, err
	}

	m.log.InfoContext(ctx, "created initial administrator", "email", user.Email, "userId", user.ID)
	return true, nil
}

// UpdateUser changes the account of id. The last administrator cannot be demoted.
func (m *Manager) UpdateUser(ctx context.Context, actor Actor, id int, in UserInput) (*db.User, error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return nil, err
	}

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := m.check(in); err != nil {
		return nil, err
	}

	user, err := m.userByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == auth.RoleAdmin && in.Role != auth.RoleAdmin {
		if err := m.ensureAnotherAdmin(ctx); err != nil {
			return nil, err
		}
	}

	details := map[string]string{}
	if user.Role != in.Role {
		details["previousRole"] = user.Role
		details["role"] = in.Role
	}

	now := m.now()
	user.Email = in.Email
	user.FullName = strings.TrimSpace(in.FullName)
	user.Role = in.Role
	user.UpdatedAt = &now
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		details["field"] = "password"
	}

	found, err := m.store.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	} else if !found {
		return nil, notFound("user", id)
	}

	m.audit(ctx, actor, ActionUpdate, "users", intPtr(id), details)

	return user, nil
}

// DeleteUser removes an account. Admins cannot delete themselves or the last administrator.
func (m *Manager) DeleteUser(ctx context.Context, actor Actor, id int) error {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return err
	}
	if id == actor.UserID {
		return fmt.Errorf("%w: you cannot delete your own account", ErrForbidden)
	}

	user, err := m.userByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == auth.RoleAdmin {
		if err := m.ensureAnotherAdmin(ctx); err != nil {
			return err
		}
	}

	found, err := m.store.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	} else if !found {
		return notFound("user", id)
	}

	m.audit(ctx, actor, ActionDelete, "users", intPtr(id), map[string]string{"email": user.Email})

	return nil
}

func (m *Manager) ensureAnotherAdmin(ctx context.Context) error {
	admins, err := m.store.CountUsersByRole(ctx, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins <= 1 {
		return fmt.Errorf("%w: the last administrator cannot be removed or demoted", ErrForbidden)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrWeakPassword) {
		return "", newValidationError("password", fmt.Sprintf("must be at least %d characters", auth.MinPasswordLength))
	} else if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// AuditLogs returns audit entries newest first.
func (m *Manager) AuditLogs(ctx context.Context, actor Actor, f db.AuditFilter) (Page[db.AuditLog], error) {
	if err := requireRole(actor, auth.RoleAdmin); err != nil {
		return Page[db.AuditLog]{}, err
	}

	q, err := db.ListQuery{Limit: f.Limit, Offset: f.Offset}.Normalize()
	if err != nil {
		return Page[db.AuditLog]{}, newValidationError("limit", err.Error())
	}
	f.Limit, f.Offset = q.Limit, q.Offset

	logs, total, err := m.store.AuditLogs(ctx, f)
	if err != nil {
		return Page[db.AuditLog]{}, fmt.Errorf("list audit logs: %w", err)
	}

	return Page[db.AuditLog]{Items: logs, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}
