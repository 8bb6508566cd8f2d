package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesCustomerWithToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.accounts.Register(ctx, RegisterInput{Name: "Ada", Email: " Ada@Example.com ", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.False(t, res.User.IsAdmin)
	assert.NotEqual(t, "secret123", res.User.PasswordHash)

	userID, err := f.tokens.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestRegisterRequiresFields(t *testing.T) {
	cases := map[string]RegisterInput{
		"missing name":     {Email: "a@example.com", Password: "secret123"},
		"missing email":    {Name: "A", Password: "secret123"},
		"missing password": {Name: "A", Email: "a@example.com"},
		"bad email":        {Name: "A", Email: "not-an-email", Password: "secret123"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.accounts.Register(context.Background(), in)
			requireKind(t, err, KindValidation)
		})
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.accounts.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.accounts.Register(ctx, RegisterInput{Name: "Other", Email: "ADA@example.com", Password: "secret456"})
	requireKind(t, err, KindValidation)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.accounts.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := f.accounts.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, res.User.ID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, LoginInput{Email: "ada@example.com", Password: "nope"})
		requireKind(t, err, KindUnauthenticated)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.accounts.Login(ctx, LoginInput{Email: "bob@example.com", Password: "secret123"})
		requireKind(t, err, KindUnauthenticated)
	})
}

func TestUpdateProfileKeepsNameWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "carol")

	updated, err := f.accounts.UpdateProfile(ctx, user, ProfileInput{Address: "1 Main St", Phone: "555-0100"})
	require.NoError(t, err)
	assert.Equal(t, "carol", updated.Name)
	assert.Equal(t, "1 Main St", updated.Address)

	profile, err := f.accounts.Profile(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", profile.Phone)
}

func TestSeedAdminCreatesThenPromotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.accounts.SeedAdmin(ctx, "", "root@example.com", "rootpass")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.Equal(t, "Admin", admin.Name)

	customer := f.user(t, "dave")
	promoted, err := f.accounts.SeedAdmin(ctx, "Dave", customer.Email, "whatever")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, promoted.ID)

	stored, err := f.store.Users.FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsAdmin)
}
