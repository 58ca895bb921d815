package sessionstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adharshSciPy/DenStack-Superadmin/components/console"
)

type staticAuth struct{ token string }

func (a staticAuth) Login(context.Context, console.Credentials) (console.LoginResult, error) {
	return console.LoginResult{Token: a.token, User: &console.UserRecord{Email: "root@denstack.io"}}, nil
}

func TestDiskvStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(Config{BasePath: filepath.Join(t.TempDir(), "session")})
	require.NoError(t, err)

	_, err = store.Load(ctx)
	require.ErrorIs(t, err, console.ErrNoSession)

	require.NoError(t, store.Save(ctx, console.Session{Token: "tok", IsAuthenticated: true}))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	require.ErrorIs(t, err, console.ErrNoSession)
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "session")

	storage, err := New(Config{BasePath: dir})
	require.NoError(t, err)
	first, err := console.NewSessionStore(ctx, console.SessionOptions{Auth: staticAuth{token: "persisted"}, Storage: storage})
	require.NoError(t, err)
	_, err = first.Login(ctx, console.Credentials{Email: "root@denstack.io", Password: "secret"})
	require.NoError(t, err)

	reopened, err := New(Config{BasePath: dir})
	require.NoError(t, err)
	second, err := console.NewSessionStore(ctx, console.SessionOptions{Auth: staticAuth{}, Storage: reopened})
	require.NoError(t, err)
	assert.Equal(t, "persisted", second.Token())
	assert.Equal(t, "root@denstack.io", second.Session().User.Email)

	require.NoError(t, second.Logout(ctx))
	third, err := console.NewSessionStore(ctx, console.SessionOptions{Auth: staticAuth{}, Storage: reopened})
	require.NoError(t, err)
	assert.False(t, third.Session().IsAuthenticated)
}

func TestNewRequiresBasePath(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
