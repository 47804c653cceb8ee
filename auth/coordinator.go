package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/gearledger/gearledger/auth/flowrepo"
	"github.com/gearledger/gearledger/internal/errors"
	"github.com/gearledger/gearledger/strava"
	"github.com/gearledger/gearledger/tokens"
)

// Status is the coordinator's authentication state.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ProfileFetcher supplies the athlete profile once a token pair is held.
// *strava.Client satisfies it.
type ProfileFetcher interface {
	Athlete(ctx context.Context, accessToken string) (*strava.Athlete, error)
}

// CallbackParams are the query parameters the vendor appends to the redirect
// back to this server.
type CallbackParams struct {
	Code       string
	State      string
	ErrorParam string
}

// Coordinator drives the OAuth2 authorization-code lifecycle: redirect out,
// callback in, token persistence, refresh and logout. The client secret only
// ever appears in the server-side exchange it performs.
type Coordinator struct {
	oauth       *oauth2.Config
	tokens      tokens.Repo
	flow        flowrepo.Repo
	profiles    ProfileFetcher
	flowTimeout time.Duration
}

func NewCoordinator(oauthCfg *oauth2.Config, tokenRepo tokens.Repo, flowRepo flowrepo.Repo, profiles ProfileFetcher, flowTimeout time.Duration) *Coordinator {
	return &Coordinator{
		oauth:       oauthCfg,
		tokens:      tokenRepo,
		flow:        flowRepo,
		profiles:    profiles,
		flowTimeout: flowTimeout,
	}
}

// BeginAuthorization mints an anti-forgery state token, records it
// transiently and returns the vendor authorization URL to redirect the user
// agent to. Transition: Unauthenticated -> Authenticating.
func (c *Coordinator) BeginAuthorization() (string, error) {
	state := uuid.NewString()
	if err := c.flow.Upsert(state, &flowrepo.FlowState{CreatedAt: time.Now()}); err != nil {
		return "", errors.Wrapf(err, "BeginAuthorization: store state")
	}
	return c.oauth.AuthCodeURL(state), nil
}

// HandleCallback validates the redirect parameters and redeems the
// authorization code. A state that does not match a stored flow entry fails
// hard before any exchange is attempted. On success the token pair and the
// athlete identity are persisted and the state token is discarded.
func (c *Coordinator) HandleCallback(ctx context.Context, params CallbackParams) (Status, error) {
	if params.ErrorParam != "" {
		return StatusUnauthenticated, errors.Wrapf(errors.ErrAuthorizationDenied, "vendor returned %q", params.ErrorParam)
	}
	if params.Code == "" || params.State == "" {
		return StatusUnauthenticated, errors.Wrapf(errors.ErrValidationFailed, "missing code or state parameter")
	}

	flowState, err := c.flow.Get(params.State)
	if err != nil || flowState == nil {
		return StatusUnauthenticated, errors.Wrapf(errors.ErrStateMismatch, "unknown state parameter")
	}
	if err := c.flow.Delete(params.State); err != nil {
		return StatusUnauthenticated, errors.Wrapf(err, "HandleCallback: discard state")
	}
	if c.flowTimeout > 0 && time.Since(flowState.CreatedAt) > c.flowTimeout {
		return StatusUnauthenticated, errors.Wrapf(errors.ErrStateMismatch, "stale state parameter")
	}

	token, err := c.oauth.Exchange(ctx, params.Code)
	if err != nil {
		log.Err(err).Msg("authorization code exchange failed")
		return StatusUnauthenticated, errors.Wrapf(errors.ErrTokenExchangeFailed, "%v", err)
	}

	if err := c.tokens.Save(recordFromToken(token)); err != nil {
		return StatusUnauthenticated, errors.Wrapf(err, "HandleCallback: persist tokens")
	}

	athlete, err := c.profiles.Athlete(ctx, token.AccessToken)
	if err != nil {
		// Without an identity the session is unusable; roll the tokens back.
		_ = c.tokens.Clear()
		log.Err(err).Msg("athlete profile fetch after exchange failed")
		return StatusUnauthenticated, errors.Wrapf(errors.ErrTokenExchangeFailed, "%v", err)
	}
	if err := c.tokens.SaveIdentity(identityFromAthlete(athlete)); err != nil {
		return StatusUnauthenticated, errors.Wrapf(err, "HandleCallback: persist identity")
	}

	log.Info().Int64("athlete_id", athlete.ID).Msg("authenticated")
	return StatusAuthenticated, nil
}

// Refresh exchanges the stored refresh token for a new token pair. Whatever
// pair the vendor returns is persisted wholesale; some vendors rotate the
// refresh token, some do not. Any failure forces a logout, no retry.
func (c *Coordinator) Refresh(ctx context.Context) error {
	record, err := c.tokens.Load()
	if err != nil || record.RefreshToken == "" {
		_ = c.Logout()
		return errors.Wrapf(errors.ErrNoRefreshToken, "refresh requires a stored refresh token")
	}

	source := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: record.RefreshToken})
	token, err := source.Token()
	if err != nil {
		log.Err(err).Msg("token refresh failed, forcing logout")
		_ = c.Logout()
		return errors.Wrapf(errors.ErrTokenRefreshFailed, "%v", err)
	}

	if err := c.tokens.Save(recordFromToken(token)); err != nil {
		return errors.Wrapf(err, "Refresh: persist tokens")
	}
	log.Debug().Time("expires", token.Expiry).Msg("token refreshed")
	return nil
}

// CheckExisting resolves the startup state: a stored, unexpired token means
// Authenticated with no network access; a stored but expired token triggers a
// refresh; nothing stored means Unauthenticated.
func (c *Coordinator) CheckExisting(ctx context.Context) (Status, error) {
	record, err := c.tokens.Load()
	if err != nil {
		return StatusUnauthenticated, nil
	}
	if !record.Expired(time.Now()) {
		return StatusAuthenticated, nil
	}
	if err := c.Refresh(ctx); err != nil {
		return StatusUnauthenticated, err
	}
	return StatusAuthenticated, nil
}

// AccessToken returns a currently valid access token, refreshing first when
// the stored one has expired.
func (c *Coordinator) AccessToken(ctx context.Context) (string, error) {
	status, err := c.CheckExisting(ctx)
	if err != nil {
		return "", err
	}
	if status != StatusAuthenticated {
		return "", errors.ErrNoToken
	}
	record, err := c.tokens.Load()
	if err != nil {
		return "", err
	}
	return record.AccessToken, nil
}

// Identity returns the cached athlete identity.
func (c *Coordinator) Identity() (tokens.Identity, error) {
	return c.tokens.Identity()
}

// Logout clears all persisted auth state. No revocation call is made to the
// vendor.
func (c *Coordinator) Logout() error {
	return c.tokens.Clear()
}

func recordFromToken(token *oauth2.Token) tokens.Record {
	var expiresAt int64
	if !token.Expiry.IsZero() {
		expiresAt = token.Expiry.Unix()
	}
	return tokens.Record{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    expiresAt,
	}
}

func identityFromAthlete(athlete *strava.Athlete) tokens.Identity {
	return tokens.Identity{
		ID:        athlete.ID,
		FirstName: athlete.FirstName,
		LastName:  athlete.LastName,
		City:      athlete.City,
		AvatarURL: athlete.Profile,
	}
}
