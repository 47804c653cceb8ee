package strava_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gearledger/gearledger/internal/errors"
	"github.com/gearledger/gearledger/strava"
)

const testAccessToken = "test-access-token"

func rides(n int, gearID string) []strava.Activity {
	out := make([]strava.Activity, n)
	for i := range out {
		out[i] = strava.Activity{ID: int64(i + 1), Type: "Ride", GearID: gearID, Distance: 1000}
	}
	return out
}

func TestAthlete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/athlete", r.URL.Path)
		require.Equal(t, "Bearer "+testAccessToken, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        42,
			"firstname": "Jo",
			"lastname":  "Rider",
			"city":      "Girona",
			"profile":   "https://example.com/jo.png",
			"bikes": []map[string]any{
				{"id": "b1", "name": "Road Bike"},
				{"id": "b2", "name": "Gravel Bike"},
			},
		})
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	athlete, err := client.Athlete(t.Context(), testAccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(42), athlete.ID)
	require.Equal(t, "Jo", athlete.FirstName)
	require.Len(t, athlete.Bikes, 2)
	require.Equal(t, "Road Bike", athlete.Bikes[0].Name)
}

func TestAthleteHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	_, err := client.Athlete(t.Context(), testAccessToken)
	require.ErrorIs(t, err, errors.ErrFetchFailed)
}

func TestActivitiesStopsAfterShortPage(t *testing.T) {
	var requests int
	var rawServed int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		require.Equal(t, "200", r.URL.Query().Get("per_page"))

		var batch []strava.Activity
		switch page {
		case 1:
			batch = rides(200, "b1")
		case 2:
			batch = rides(50, "b1")
		default:
			t.Fatalf("unexpected page %d", page)
		}
		rawServed += len(batch)
		_ = json.NewEncoder(w).Encode(batch)
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)

	activities, err := client.Activities(t.Context(), testAccessToken, start, end)
	require.NoError(t, err)
	require.Equal(t, 2, requests)
	require.Equal(t, 250, rawServed)
	require.Len(t, activities, 250)
}

func TestActivitiesStopsOnEmptyPage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	activities, err := client.Activities(t.Context(), testAccessToken, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, requests)
	require.Empty(t, activities)
}

func TestActivitiesFiltersToRides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "type": "Ride", "gear_id": "b1", "distance": 1000.0},
			{"id": 2, "type": "Run", "gear_id": "b1", "distance": 5000.0},
			{"id": 3, "type": "Workout", "sport_type": "VirtualRide", "gear_id": "b2", "distance": 2000.0},
			{"id": 4, "sport_type": "Swim", "distance": 800.0},
		})
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	activities, err := client.Activities(t.Context(), testAccessToken, time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	require.Len(t, activities, 2)
	require.Equal(t, int64(1), activities[0].ID)
	require.Equal(t, int64(3), activities[1].ID)
}

func TestActivitiesDateBoundaries(t *testing.T) {
	var gotAfter, gotBefore string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAfter = r.URL.Query().Get("after")
		gotBefore = r.URL.Query().Get("before")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	start := time.Date(2024, 3, 1, 15, 4, 5, 0, time.Local) // time-of-day is ignored
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)

	_, err := client.Activities(t.Context(), testAccessToken, start, end)
	require.NoError(t, err)

	wantAfter := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local).Unix()
	wantBefore := time.Date(2024, 3, 10, 23, 59, 59, 0, time.Local).Unix()
	require.Equal(t, fmt.Sprint(wantAfter), gotAfter)
	require.Equal(t, fmt.Sprint(wantBefore), gotBefore)
}

func TestActivitiesAbortsOnFailedPage(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			_ = json.NewEncoder(w).Encode(rides(200, "b1"))
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := strava.NewClient(server.URL, nil)
	activities, err := client.Activities(t.Context(), testAccessToken, time.Now().AddDate(0, -1, 0), time.Now())
	require.ErrorIs(t, err, errors.ErrFetchFailed)
	require.Nil(t, activities)
	require.Equal(t, 2, requests)
}

func TestIsRideChecksBothTypeFields(t *testing.T) {
	tests := []struct {
		name     string
		activity strava.Activity
		want     bool
	}{
		{"legacy type ride", strava.Activity{Type: "Ride"}, true},
		{"legacy type virtual", strava.Activity{Type: "VirtualRide"}, true},
		{"sport type ride", strava.Activity{SportType: "Ride"}, true},
		{"sport type virtual", strava.Activity{SportType: "VirtualRide"}, true},
		{"run", strava.Activity{Type: "Run", SportType: "Run"}, false},
		{"empty", strava.Activity{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.activity.IsRide())
		})
	}
}
