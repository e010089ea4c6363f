package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/api"
)

// Fetcher is the subset of the API client the Provider needs.
type Fetcher interface {
	FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error)
	FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*api.CalendarResponse, error)
}

// Provider serves prayer data from the cache and falls back to the API.
// A nil Cache disables caching. Cache write failures are logged and ignored.
type Provider struct {
	API   Fetcher
	Cache *Cache
}

// FetchByCoordinates returns one day's record, from cache when possible.
func (p *Provider) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error) {
	if p.Cache != nil {
		if entry := p.Cache.LoadTimings(date, lat, lon, method, school); entry != nil {
			log.Debug().Str("date", entry.Date).Msg("timings cache hit")
			return &api.Response{Code: 200, Status: "OK", Data: entry.Day}, nil
		}
	}

	resp, err := p.API.FetchByCoordinates(ctx, date, lat, lon, method, school)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		if err := p.Cache.SaveTimings(date, lat, lon, method, school, resp); err != nil {
			log.Warn().Err(err).Msg("failed to cache timings")
		}
	}
	return resp, nil
}

// FetchCalendarByCoordinates returns one month of records, from cache when
// possible.
func (p *Provider) FetchCalendarByCoordinates(ctx context.Context, year, month int, lat, lon float64, method, school int) (*api.CalendarResponse, error) {
	if p.Cache != nil {
		if entry := p.Cache.LoadCalendar(year, month, lat, lon, method, school); entry != nil {
			log.Debug().Int("year", year).Int("month", month).Msg("calendar cache hit")
			return &api.CalendarResponse{Code: 200, Status: "OK", Data: entry.Days}, nil
		}
	}

	resp, err := p.API.FetchCalendarByCoordinates(ctx, year, month, lat, lon, method, school)
	if err != nil {
		return nil, err
	}

	// An empty month is not cached so that a later run asks again.
	if p.Cache != nil && len(resp.Data) > 0 {
		if err := p.Cache.SaveCalendar(year, month, lat, lon, method, school, resp); err != nil {
			log.Warn().Err(err).Msg("failed to cache calendar")
		}
	}
	return resp, nil
}
