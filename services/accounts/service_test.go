package accounts

import (
	"context"
	"pricewise-backend/lib/testutil"
	"pricewise-backend/services/accounts/db"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setup(t testing.TB) (Service, func()) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/accounts",
		DbSchema: db.Schema,
	})
	return NewService(res.DB, Options{}), cleanup
}

func TestAccountLifecycle(t *testing.T) {
	service, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	user, err := service.CreateUser(ctx, "  Bob ", "Bob@Email.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "bob", user.Username)
	require.Equal(t, "bob@email.com", user.Email)

	_, err = service.CreateUser(ctx, "bob", "other@email.com", "hunter2")
	require.ErrorIs(t, err, ErrUserExists)
	_, err = service.CreateUser(ctx, "alice", "bob@email.com", "hunter2")
	require.ErrorIs(t, err, ErrUserExists)

	_, err = service.Login(ctx, "bob", "wrong password")
	require.ErrorIs(t, err, ErrInvalidLogin)
	_, err = service.Login(ctx, "nobody", "hunter2")
	require.ErrorIs(t, err, ErrInvalidLogin)

	token, err := service.Login(ctx, "bob", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, token)

	verified, err := service.VerifyToken(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, user.ID, verified.ID)
	require.Equal(t, "bob", verified.Username)

	_, err = service.VerifyToken(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	err = service.Logout(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	_, err = service.VerifyToken(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSearchHistory(t *testing.T) {
	service, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	user, err := service.CreateUser(ctx, "carol", "carol@email.com", "secret")
	if err != nil {
		t.Fatal(err)
	}

	for _, query := range []string{"iphone 15", "washing machine", "iphone 15 pro"} {
		err := service.AppendHistory(ctx, user.ID, query)
		if err != nil {
			t.Fatal(err)
		}
	}
	// blank queries are never recorded
	err = service.AppendHistory(ctx, user.ID, "   ")
	if err != nil {
		t.Fatal(err)
	}

	entries, err := service.ListHistory(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, entries, 3)
	// most recent first
	require.Equal(t, "iphone 15 pro", entries[0].Query)
	require.Equal(t, "washing machine", entries[1].Query)
	require.Equal(t, "iphone 15", entries[2].Query)

	other, err := service.CreateUser(ctx, "dave", "dave@email.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	entries, err = service.ListHistory(ctx, other.ID)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, entries)
}

func TestSuggestQueries(t *testing.T) {
	service, cleanup := setup(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	user, err := service.CreateUser(ctx, "erin", "erin@email.com", "secret")
	if err != nil {
		t.Fatal(err)
	}

	for _, query := range []string{"iphone 15", "iphone 15 pro", "lawnmower"} {
		err := service.AppendHistory(ctx, user.ID, query)
		if err != nil {
			t.Fatal(err)
		}
	}

	suggestions, err := service.SuggestQueries(ctx, user.ID, "iphone 15", 5)
	if err != nil {
		t.Fatal(err)
	}
	require.NotEmpty(t, suggestions)
	require.Equal(t, "iphone 15 pro", suggestions[0].Query)
	for _, s := range suggestions {
		require.NotEqual(t, "iphone 15", s.Query)
		require.NotEqual(t, "lawnmower", s.Query)
	}
}
