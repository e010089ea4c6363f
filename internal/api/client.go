package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Defaults used for Bangladesh: University of Islamic Sciences, Karachi,
// with the Hanafi juristic school for Asr.
const (
	DefaultMethod = 1
	DefaultSchool = 1
)

// ErrUnavailable is wrapped by every error the client returns. Callers treat
// it as "no data for this date" rather than as a fatal condition.
var ErrUnavailable = errors.New("prayer data unavailable")

// Client communicates with the Al Adhan prayer times API.
type Client struct {
	httpClient *http.Client
	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: defaultBaseURL,
	}
}

// FetchByCoordinates fetches prayer times for the given date and coordinates.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	var resp Response
	if err := c.doRequest(ctx, endpoint, coordParams(lat, lon, method, school), &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: API error: code=%d status=%s", ErrUnavailable, resp.Code, resp.Status)
	}
	return &resp, nil
}

// FetchCalendarByCoordinates fetches a whole month of daily prayer times.
func (c *Client) FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*CalendarResponse, error) {
	endpoint := fmt.Sprintf("%s/calendar/%d/%d", c.BaseURL, year, month)

	var resp CalendarResponse
	if err := c.doRequest(ctx, endpoint, coordParams(lat, lon, method, school), &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: API error: code=%d status=%s", ErrUnavailable, resp.Code, resp.Status)
	}
	return &resp, nil
}

func coordParams(lat, lon float64, method, school int) url.Values {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	setCalculation(params, method, school)
	return params
}

// setCalculation adds method and school; negative values let the API choose.
func setCalculation(params url.Values, method, school int) {
	if method >= 0 {
		params.Set("method", fmt.Sprintf("%d", method))
	}
	if school >= 0 {
		params.Set("school", fmt.Sprintf("%d", school))
	}
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: API request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: API returned status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode API response: %v", ErrUnavailable, err)
	}

	return nil
}
