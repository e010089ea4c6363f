package dashboard

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/ramadan-pro/internal/cache"
	"github.com/smokyabdulrahman/ramadan-pro/internal/config"
	"github.com/smokyabdulrahman/ramadan-pro/internal/geo"
)

// LocatedName is stored as the location name after automatic detection.
const LocatedName = "My Location"

// Locator resolves the current position.
type Locator interface {
	Detect(ctx context.Context) (*geo.Location, error)
}

// Locate returns the cached geolocation when it is fresh and otherwise asks
// det, caching the answer. c may be nil.
func Locate(ctx context.Context, c *cache.Cache, det Locator) (*geo.Location, error) {
	if c != nil {
		if loc := c.LoadGeo(); loc != nil {
			log.Debug().Str("city", loc.City).Msg("geolocation cache hit")
			return loc, nil
		}
	}

	loc, err := det.Detect(ctx)
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.SaveGeo(loc); err != nil {
			log.Warn().Err(err).Msg("failed to cache geolocation")
		}
	}
	return loc, nil
}

// AutoLocate replaces the first-run location with the detected one. It only
// acts while s still holds the default coordinates and reports whether s
// changed. Detection failures keep the stored location.
func AutoLocate(ctx context.Context, s *config.Settings, c *cache.Cache, det Locator) bool {
	if !s.IsDefaultLocation() {
		return false
	}

	loc, err := Locate(ctx, c, det)
	if err != nil {
		log.Info().Err(err).Str("location", s.LocationName).Msg("auto-location failed, keeping stored location")
		return false
	}

	s.SetLocation(loc.Latitude, loc.Longitude, LocatedName)
	log.Info().Float64("lat", loc.Latitude).Float64("lon", loc.Longitude).Msg("location detected")
	return true
}
