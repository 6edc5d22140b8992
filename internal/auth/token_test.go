package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/domain"
)

func TestTokenIssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret")

	access, err := m.IssueAccess(42)
	require.NoError(t, err)
	claims, err := m.Parse(access)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, TokenTypeAccess, claims.Type)

	refresh, err := m.IssueRefresh(42)
	require.NoError(t, err)
	claims, err = m.ParseRefresh(refresh)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestParseRefreshRejectsAccessToken(t *testing.T) {
	m := NewTokenManager("test-secret")

	access, err := m.IssueAccess(42)
	require.NoError(t, err)

	_, err = m.ParseRefresh(access)
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))
}

func TestParseRejectsTamperedToken(t *testing.T) {
	m := NewTokenManager("test-secret")

	access, err := m.IssueAccess(42)
	require.NoError(t, err)

	_, err = m.Parse(access + "x")
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))

	_, err = m.Parse("not-a-token")
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	other := NewTokenManager("another-secret")
	token, err := other.IssueAccess(42)
	require.NoError(t, err)

	m := NewTokenManager("test-secret")
	_, err = m.Parse(token)
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))
}

func TestIdentityContext(t *testing.T) {
	_, err := CurrentUser(context.Background())
	require.True(t, domain.IsKind(err, domain.KindUnauthorized))

	ctx := WithIdentity(context.Background(), 7)
	uid, err := CurrentUser(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 7, uid)
}

func TestRequireOwner(t *testing.T) {
	ctx := WithIdentity(context.Background(), 7)

	uid, err := RequireOwner(ctx, func(context.Context) (int64, error) {
		return 7, nil
	})
	require.NoError(t, err)
	require.EqualValues(t, 7, uid)

	_, err = RequireOwner(ctx, func(context.Context) (int64, error) {
		return 8, nil
	})
	require.True(t, domain.IsKind(err, domain.KindForbidden))

	_, err = RequireOwner(ctx, func(context.Context) (int64, error) {
		return 0, domain.NotFound("no such row")
	})
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}
