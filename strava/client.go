package strava

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gearledger/gearledger/internal/errors"
)

// activitiesPageSize is the vendor's maximum page size. Paging stops at the
// first page shorter than this.
const activitiesPageSize = 200

// Client is a thin client for the vendor's REST API. The access token is
// supplied per call; the client itself holds no auth state.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Athlete fetches the authenticated athlete's profile, equipment list
// included.
func (c *Client) Athlete(ctx context.Context, accessToken string) (*Athlete, error) {
	var athlete Athlete
	if err := c.getJSON(ctx, accessToken, c.baseURL+"/athlete", &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Activities pages through the activity listing for [start, end] and returns
// the ride activities. The end boundary covers the entire end day. A failed
// page aborts the whole fetch; no partial results are returned.
func (c *Client) Activities(ctx context.Context, accessToken string, start, end time.Time) ([]Activity, error) {
	after := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local).Unix()
	before := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.Local).Unix()

	var rides []Activity
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("after", strconv.FormatInt(after, 10))
		params.Set("before", strconv.FormatInt(before, 10))
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(activitiesPageSize))

		var activities []Activity
		if err := c.getJSON(ctx, accessToken, c.baseURL+"/athlete/activities?"+params.Encode(), &activities); err != nil {
			return nil, errors.Wrapf(err, "activities page %d", page)
		}

		if len(activities) == 0 {
			break
		}

		for _, activity := range activities {
			if activity.IsRide() {
				rides = append(rides, activity)
			}
		}

		log.Debug().Int("page", page).Int("raw", len(activities)).Int("rides", len(rides)).Msg("fetched activity page")

		if len(activities) < activitiesPageSize {
			break
		}
	}
	return rides, nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrapf(err, "strava: build request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrFetchFailed, "strava: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Wrapf(errors.ErrFetchFailed, "strava: %s returned %s", req.URL.Path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "strava: decode %s", req.URL.Path)
	}
	return nil
}
