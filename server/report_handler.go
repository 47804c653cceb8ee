package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gearledger/gearledger/gear"
	"github.com/gearledger/gearledger/internal/errors"
)

const dateLayout = "2006-01-02"

// ReportView is the rendered aggregation result.
type ReportView struct {
	TotalBikes    int
	TotalDistance string
	TotalRides    int
	Bikes         []BikeView
}

// BikeView is one equipment card, already formatted for display.
type BikeView struct {
	Name       string
	Distance   string
	Rides      int
	Elevation  string
	AvgPerRide string
	MovingTime string
}

// ReportHandler runs one fetch-aggregate-render cycle for the submitted date
// range. Validation happens before any network call; any vendor failure
// aborts the cycle whole and surfaces the error banner.
func (s *Server) ReportHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("index.html")
	if err != nil {
		panic("Failed to parse index template: " + err.Error())
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		data := s.newPageData(r.FormValue("units"))
		data.LoggedIn = true
		if identity, err := s.coordinator.Identity(); err == nil {
			data.User = &identity
		}
		if v := r.FormValue("start_date"); v != "" {
			data.StartDate = v
		}
		if v := r.FormValue("end_date"); v != "" {
			data.EndDate = v
		}

		render := func() {
			w.Header().Set("Content-Type", contentTypeHTML)
			if err := tmpl.Execute(w, data); err != nil {
				log.Err(err).Msg("Failed to render report")
			}
		}

		start, end, err := parseDateRange(r.FormValue("start_date"), r.FormValue("end_date"))
		if err != nil {
			data.Error = errorMessage(err)
			render()
			return
		}

		accessToken, err := s.coordinator.AccessToken(r.Context())
		if err != nil {
			data.LoggedIn = false
			data.Error = errorMessage(err)
			render()
			return
		}

		athlete, err := s.strava.Athlete(r.Context(), accessToken)
		if err != nil {
			log.Err(err).Msg("Athlete profile fetch failed")
			data.Error = errorMessage(err)
			render()
			return
		}

		activities, err := s.strava.Activities(r.Context(), accessToken, start, end)
		if err != nil {
			log.Err(err).Msg("Activity fetch failed")
			data.Error = errorMessage(err)
			render()
			return
		}

		equipment := gear.FromAthlete(athlete.Bikes)
		gear.Aggregate(equipment, activities)
		summary, ridden := gear.Summarize(equipment)

		report := &ReportView{
			TotalBikes:    summary.Bikes,
			TotalDistance: FormatDistance(summary.Distance, data.Units),
			TotalRides:    summary.Rides,
		}
		for _, e := range ridden {
			report.Bikes = append(report.Bikes, BikeView{
				Name:       e.Name,
				Distance:   FormatDistance(e.Distance, data.Units),
				Rides:      e.Rides,
				Elevation:  FormatElevation(e.Elevation, data.Units),
				AvgPerRide: FormatDistance(e.AvgDistance(), data.Units),
				MovingTime: FormatDuration(e.MovingTime),
			})
		}
		data.Report = report

		log.Info().
			Int("bikes", summary.Bikes).
			Int("rides", summary.Rides).
			Time("start", start).
			Time("end", end).
			Msg("report generated")
		render()
	}
}

// parseDateRange validates the submitted range. Both dates are required and
// the start must not be after the end; nothing is fetched otherwise.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrValidationFailed, "missing date")
	}
	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrValidationFailed, "bad start date %q", startStr)
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrValidationFailed, "bad end date %q", endStr)
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, errors.Wrapf(errors.ErrValidationFailed, "inverted range")
	}
	return start, end, nil
}

// validationMessage picks the banner text for a validation failure.
func validationMessage(err error) string {
	if strings.Contains(err.Error(), "inverted") {
		return "Start date must be before end date."
	}
	return "Please select both start and end dates."
}
