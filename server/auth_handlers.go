package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/gearledger/gearledger/auth"
	"github.com/gearledger/gearledger/internal/errors"
)

const contentTypeHTML = "text/html; charset=utf-8"

// LoginHandler starts the authorization-code dance: mint a state token and
// send the user agent to the vendor.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authURL, err := s.coordinator.BeginAuthorization()
		if err != nil {
			log.Err(err).Msg("Failed to begin authorization")
			redirectWithError(w, r, errors.ErrInternal)
			return
		}
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// OAuthCallbackHandler receives the vendor's redirect. Success issues the
// login session cookie and lands on a clean index URL, leaving no code or
// state parameters in the address bar.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := auth.CallbackParams{
			Code:       r.URL.Query().Get("code"),
			State:      r.URL.Query().Get("state"),
			ErrorParam: r.URL.Query().Get("error"),
		}

		status, err := s.coordinator.HandleCallback(r.Context(), params)
		if err != nil || status != auth.StatusAuthenticated {
			log.Err(err).Msg("OAuth callback failed")
			redirectWithError(w, r, err)
			return
		}

		if identity, idErr := s.coordinator.Identity(); idErr == nil {
			if cookieErr := s.SetLoginSessionCookie(w, r, identity.ID); cookieErr != nil {
				log.Err(cookieErr).Msg("Failed to issue session cookie")
			}
		}
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

// LogoutHandler clears all persisted auth state and the session cookie.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.coordinator.Logout(); err != nil {
			log.Err(err).Msg("Failed to clear auth state")
		}
		s.ClearLoginSessionCookie(w)
		http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
	}
}

func redirectWithError(w http.ResponseWriter, r *http.Request, err error) {
	http.Redirect(w, r, RouteIndex+"?error="+url.QueryEscape(errorMessage(err)), http.StatusSeeOther)
}

// errorMessage maps the error taxonomy to the single user-facing banner text.
// No structured codes reach the user.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, errors.ErrAuthorizationDenied):
		return "Authorization failed: access was denied."
	case errors.Is(err, errors.ErrStateMismatch):
		return "Invalid state parameter. Possible CSRF attack."
	case errors.Is(err, errors.ErrTokenExchangeFailed):
		return "Failed to complete authentication. Please try again."
	case errors.Is(err, errors.ErrTokenRefreshFailed), errors.Is(err, errors.ErrNoRefreshToken):
		return "Your session expired. Please connect your Strava account again."
	case errors.Is(err, errors.ErrNoToken):
		return "Please connect your Strava account first."
	case errors.Is(err, errors.ErrFetchFailed):
		return "Failed to fetch data from Strava. Please try again."
	case errors.Is(err, errors.ErrValidationFailed):
		return validationMessage(err)
	default:
		return "Something went wrong. Please try again."
	}
}
