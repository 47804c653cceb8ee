package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// loginSessionCookie names the cookie marking the browser that completed the
// authorization dance. The value is a signed token, not a lookup key.
const loginSessionCookie = "gear_ledger_session"

// SetLoginSessionCookie issues a signed session cookie for the athlete.
func (s *Server) SetLoginSessionCookie(w http.ResponseWriter, r *http.Request, athleteID int64) error {
	ttl := s.config.GetSessionTTL()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(athleteID, 10),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.GetSessionSecret()))
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     loginSessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
	return nil
}

func (s *Server) ClearLoginSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     loginSessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// sessionAthleteID verifies the session cookie and returns the athlete id it
// was issued for.
func (s *Server) sessionAthleteID(r *http.Request) (int64, bool) {
	cookie, err := r.Cookie(loginSessionCookie)
	if err != nil || cookie.Value == "" {
		return 0, false
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.config.GetSessionSecret()), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, false
	}
	athleteID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return athleteID, true
}

// RequireSession gates actions on a valid login session cookie. Browsers
// without one are bounced back to the index page.
func (s *Server) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.sessionAthleteID(r); !ok {
			log.Debug().Str("path", r.URL.Path).Msg("rejected request without valid session")
			http.Redirect(w, r, RouteIndex, http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
