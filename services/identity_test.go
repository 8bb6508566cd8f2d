package services

import (
	"context"
	"testing"
	"time"

	"go-foodorder/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "erin")

	token, err := f.tokens.Issue(user.ID)
	require.NoError(t, err)

	got, err := f.guard.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.guard.Authenticate(ctx, "")
	requireKind(t, err, KindUnauthenticated)

	_, err = f.guard.Authenticate(ctx, "not.a.token")
	requireKind(t, err, KindUnauthenticated)
}

func TestAuthenticateRejectsUnknownUser(t *testing.T) {
	f := newFixture(t)

	token, err := f.tokens.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = f.guard.Authenticate(context.Background(), token)
	requireKind(t, err, KindUnauthenticated)
}

func TestAuthenticateRejectsForeignAndExpiredTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "frank")

	other := utils.NewTokenManager("another-secret", time.Hour)
	forged, err := other.Issue(user.ID)
	require.NoError(t, err)
	_, err = f.guard.Authenticate(ctx, forged)
	requireKind(t, err, KindUnauthenticated)

	expiredIssuer := utils.NewTokenManager("test-secret", time.Minute)
	expiredIssuer.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiredIssuer.Issue(user.ID)
	require.NoError(t, err)
	_, err = f.guard.Authenticate(ctx, expired)
	requireKind(t, err, KindUnauthenticated)
}

func TestAuthenticateAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.user(t, "gina")
	admin := f.admin(t)

	customerToken, err := f.tokens.Issue(customer.ID)
	require.NoError(t, err)
	_, err = f.guard.AuthenticateAdmin(ctx, customerToken)
	requireKind(t, err, KindUnauthorized)

	adminToken, err := f.tokens.Issue(admin.ID)
	require.NoError(t, err)
	got, err := f.guard.AuthenticateAdmin(ctx, adminToken)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
}
