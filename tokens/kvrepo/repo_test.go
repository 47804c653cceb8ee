package kvrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gearledger/gearledger/internal/errors"
	"github.com/gearledger/gearledger/tokens"
	"github.com/gearledger/gearledger/tokens/kvrepo"
)

func openRepo(t *testing.T) *kvrepo.Repo {
	t.Helper()
	repo, err := kvrepo.New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestKVRoundTrip(t *testing.T) {
	repo := openRepo(t)

	record := tokens.Record{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		ExpiresAt:    1_700_003_600,
	}
	require.NoError(t, repo.Save(record))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, record, loaded)
}

func TestKVLoadEmptyStore(t *testing.T) {
	repo := openRepo(t)

	_, err := repo.Load()
	require.ErrorIs(t, err, errors.ErrNoToken)
}

func TestKVIdentityRoundTrip(t *testing.T) {
	repo := openRepo(t)

	identity := tokens.Identity{ID: 99, FirstName: "Ada", LastName: "Velo", City: "Gent", AvatarURL: "https://example.com/a.png"}
	require.NoError(t, repo.SaveIdentity(identity))

	loaded, err := repo.Identity()
	require.NoError(t, err)
	require.Equal(t, identity, loaded)

	lastAccount, err := repo.LastAccountID()
	require.NoError(t, err)
	require.Equal(t, "99", lastAccount)
}

func TestKVClear(t *testing.T) {
	repo := openRepo(t)

	require.NoError(t, repo.Save(tokens.Record{AccessToken: "at", RefreshToken: "rt", ExpiresAt: 123}))
	require.NoError(t, repo.SaveIdentity(tokens.Identity{ID: 5}))
	require.NoError(t, repo.Clear())

	_, err := repo.Load()
	require.ErrorIs(t, err, errors.ErrNoToken)

	_, err = repo.Identity()
	require.ErrorIs(t, err, errors.ErrNoIdentity)

	// The last account id deliberately survives a clear.
	lastAccount, err := repo.LastAccountID()
	require.NoError(t, err)
	require.Equal(t, "5", lastAccount)
}
