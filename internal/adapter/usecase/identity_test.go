package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"linkfluence/internal/adapter/memory"
	"linkfluence/internal/core/domain"
	"linkfluence/internal/core/port"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewIdentityUseCase(memory.NewStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, port.RegisterReq{
		Email: "  Ana@Example.com ", Password: "hunter2", Role: domain.RoleCreator, Name: "Ana",
	})
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", user.Email)
	require.NotEqual(t, "hunter2", user.PasswordHash)

	id, err := svc.Login(ctx, "ana@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, id.UserID)
	require.Equal(t, domain.RoleCreator, id.Role)
	require.Equal(t, "Ana", id.Name)

	_, err = svc.Login(ctx, "ana@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewIdentityUseCase(memory.NewStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, port.RegisterReq{
		Email: "ana@example.com", Password: "pw", Role: domain.RoleCreator, Name: "Ana",
	})
	require.NoError(t, err)
	_, err = svc.Register(ctx, port.RegisterReq{
		Email: "ana@example.com", Password: "pw2", Role: domain.RoleBusiness, Name: "Other",
	})
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := NewIdentityUseCase(memory.NewStore())
	_, err := svc.Register(context.Background(), port.RegisterReq{
		Email: "a@b.c", Password: "pw", Role: "admin", Name: "A",
	})
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestResolve(t *testing.T) {
	svc := NewIdentityUseCase(memory.NewStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, port.RegisterReq{
		Email: "biz@example.com", Password: "pw", Role: domain.RoleBusiness, Name: "Glow",
	})
	require.NoError(t, err)

	id, err := svc.Resolve(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleBusiness, id.Role)
	require.Equal(t, "Glow", id.Name)

	_, err = svc.Resolve(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
