package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

// IdentityUseCase implements port.IdentityService. Passwords are
// bcrypt-hashed; login resolves credentials to an identity without
// issuing any session.
type IdentityUseCase struct {
	users port.IdentityStore
}

// NewIdentityUseCase creates a new usecase over the given store.
func NewIdentityUseCase(users port.IdentityStore) *IdentityUseCase {
	return &IdentityUseCase{users: users}
}

func (u *IdentityUseCase) Register(ctx context.Context, req port.RegisterReq) (*domain.User, error) {
	if !req.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         req.Role,
		Name:         req.Name,
		Industry:     req.Industry,
		Categories:   req.Categories,
		CreatedAt:    time.Now().UTC(),
	}
	if err := withRetry(ctx, func() error {
		return u.users.CreateUser(ctx, user)
	}); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *IdentityUseCase) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	user, err := u.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Identity{UserID: user.ID, Role: user.Role, Name: user.Name}, nil
}

// Resolve maps a user id to its role and display name. This is the
// identity reference the rest of the system consumes; the role is never
// re-derived elsewhere.
func (u *IdentityUseCase) Resolve(ctx context.Context, userID string) (*domain.Identity, error) {
	user, err := u.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &domain.Identity{UserID: user.ID, Role: user.Role, Name: user.Name}, nil
}
