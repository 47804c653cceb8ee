package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gearledger/gearledger/auth"
	"github.com/gearledger/gearledger/tokens"
)

// PageData is the template model for the single UI page.
type PageData struct {
	AppName   string
	LoggedIn  bool
	User      *tokens.Identity
	StartDate string
	EndDate   string
	Units     string
	Error     string
	Report    *ReportView
}

// IndexHandler renders the home page: login prompt or the athlete card with
// the date-range form.
func (s *Server) IndexHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status, authErr := s.coordinator.CheckExisting(r.Context())

		data := s.newPageData(r.URL.Query().Get("units"))
		data.Error = r.URL.Query().Get("error")
		if authErr != nil && data.Error == "" {
			data.Error = errorMessage(authErr)
		}

		if status == auth.StatusAuthenticated {
			data.LoggedIn = true
			if identity, err := s.coordinator.Identity(); err == nil {
				data.User = &identity
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render index template")
		}
	}
}

// newPageData seeds the page with the default date range: the last three
// months, ending today.
func (s *Server) newPageData(units string) PageData {
	now := time.Now()
	return PageData{
		AppName:   s.config.GetAppName(),
		StartDate: now.AddDate(0, -3, 0).Format(dateLayout),
		EndDate:   now.Format(dateLayout),
		Units:     normalizeUnits(units),
	}
}
