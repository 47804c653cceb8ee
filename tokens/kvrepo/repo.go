package kvrepo

import (
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/starskey-io/starskey"

	"github.com/gearledger/gearledger/internal/errors"
	"github.com/gearledger/gearledger/tokens"
)

// Storage keys. One string value per key, so a partially written record is
// never observable across a Save: the token triple is staged and only the
// access token key decides presence.
const (
	keyAccessToken  = "strava_access_token"
	keyRefreshToken = "strava_refresh_token"
	keyExpiresAt    = "strava_expires_at"
	keyUserInfo     = "strava_user_info"
	keyLastAccount  = "strava_last_account"
)

// Repo is a token repository backed by an embedded starskey key-value store.
type Repo struct {
	db *starskey.Starskey
}

var _ tokens.Repo = (*Repo)(nil)

// New opens (or creates) the key-value store under dir.
func New(dir string) (*Repo, error) {
	db, err := starskey.Open(&starskey.Config{
		Permission:     0755,
		Directory:      dir,
		FlushThreshold: 1024 * 1024,
		MaxLevel:       3,
		SizeFactor:     10,
		BloomFilter:    true,
		SuRF:           false,
		Logging:        false,
		Compression:    false,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kvrepo.New: open %q", dir)
	}
	log.Debug().Str("dir", dir).Msg("opened token store")
	return &Repo{db: db}, nil
}

// Close flushes and closes the underlying store.
func (r *Repo) Close() error {
	return r.db.Close()
}

func (r *Repo) Save(record tokens.Record) error {
	// Access token last: its presence marks the record as complete.
	if err := r.put(keyRefreshToken, record.RefreshToken); err != nil {
		return err
	}
	if err := r.put(keyExpiresAt, strconv.FormatInt(record.ExpiresAt, 10)); err != nil {
		return err
	}
	if err := r.put(keyAccessToken, record.AccessToken); err != nil {
		return err
	}
	return nil
}

func (r *Repo) Load() (tokens.Record, error) {
	access, err := r.get(keyAccessToken)
	if err != nil {
		return tokens.Record{}, err
	}
	if access == "" {
		return tokens.Record{}, errors.ErrNoToken
	}

	refresh, err := r.get(keyRefreshToken)
	if err != nil {
		return tokens.Record{}, err
	}
	expiresStr, err := r.get(keyExpiresAt)
	if err != nil {
		return tokens.Record{}, err
	}
	expiresAt, _ := strconv.ParseInt(expiresStr, 10, 64)

	return tokens.Record{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func (r *Repo) SaveIdentity(identity tokens.Identity) error {
	data, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrapf(err, "kvrepo.SaveIdentity: marshal")
	}
	if err := r.put(keyUserInfo, string(data)); err != nil {
		return err
	}
	return r.put(keyLastAccount, strconv.FormatInt(identity.ID, 10))
}

func (r *Repo) Identity() (tokens.Identity, error) {
	raw, err := r.get(keyUserInfo)
	if err != nil {
		return tokens.Identity{}, err
	}
	if raw == "" {
		return tokens.Identity{}, errors.ErrNoIdentity
	}
	var identity tokens.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return tokens.Identity{}, errors.Wrapf(err, "kvrepo.Identity: unmarshal")
	}
	return identity, nil
}

func (r *Repo) LastAccountID() (string, error) {
	return r.get(keyLastAccount)
}

// Clear removes all persisted auth state. The last account id survives so a
// returning user can be recognized after logout.
func (r *Repo) Clear() error {
	for _, key := range []string{keyAccessToken, keyRefreshToken, keyExpiresAt, keyUserInfo} {
		if err := r.db.Delete([]byte(key)); err != nil {
			return errors.Wrapf(err, "kvrepo.Clear: delete %q", key)
		}
	}
	return nil
}

func (r *Repo) put(key, value string) error {
	if err := r.db.Put([]byte(key), []byte(value)); err != nil {
		return errors.Wrapf(err, "kvrepo: put %q", key)
	}
	return nil
}

func (r *Repo) get(key string) (string, error) {
	value, err := r.db.Get([]byte(key))
	if err != nil {
		return "", errors.Wrapf(err, "kvrepo: get %q", key)
	}
	return string(value), nil
}
