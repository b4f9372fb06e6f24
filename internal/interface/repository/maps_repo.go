package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/internal/domain/repository"
	"ecomovex-service/pkg/logger"
	"ecomovex-service/pkg/metrics"

	"golang.org/x/time/rate"
)

const (
	mapsMaxAttempts  = 3
	mapsRetryBackoff = 500 * time.Millisecond
)

// HTTPMapsRepository implements the MapsRepository interface against a
// places-style HTTP API. Lookups are rate limited and detail responses are
// cached per destination id for a short TTL.
type HTTPMapsRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	cacheTTL   time.Duration
	logger     logger.Logger
	metrics    *metrics.Metrics

	mu    sync.Mutex
	cache map[string]cachedDetails
}

type cachedDetails struct {
	details   *entity.PlaceDetails
	expiresAt time.Time
}

// NewHTTPMapsRepository creates a new HTTP maps repository
func NewHTTPMapsRepository(baseURL, apiKey string, rateLimit int, cacheTTL time.Duration, logger logger.Logger, metrics *metrics.Metrics) repository.MapsRepository {
	return &HTTPMapsRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		cacheTTL: cacheTTL,
		logger:   logger,
		metrics:  metrics,

		cache: make(map[string]cachedDetails),
	}
}

type placeResult struct {
	PlaceID  string `json:"place_id"`
	Name     string `json:"name"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	PriceLevel   *int `json:"price_level"`
	OpeningHours struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	FormattedAddress string `json:"formatted_address"`
}

type searchResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type detailsResponse struct {
	Status string      `json:"status"`
	Result placeResult `json:"result"`
}

// SearchPlace looks up candidate places for a free-text query. A query that
// matches nothing returns an empty slice with no error.
func (r *HTTPMapsRepository) SearchPlace(ctx context.Context, text string) ([]entity.Place, error) {
	r.metrics.MapsLookups.WithLabelValues("search").Inc()

	endpoint := fmt.Sprintf("%s/place/textsearch/json?query=%s&key=%s",
		r.baseURL, url.QueryEscape(text), url.QueryEscape(r.apiKey))

	var resp searchResponse
	if err := r.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", entity.ErrMapsUnavailable, text, err)
	}

	if resp.Status == "ZERO_RESULTS" {
		return []entity.Place{}, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("%w: search %q: status %s", entity.ErrMapsUnavailable, text, resp.Status)
	}

	places := make([]entity.Place, 0, len(resp.Results))
	for _, res := range resp.Results {
		places = append(places, entity.Place{
			DestinationID: res.PlaceID,
			Name:          res.Name,
			Latitude:      res.Geometry.Location.Lat,
			Longitude:     res.Geometry.Location.Lng,
			PriceLevel:    res.PriceLevel,
			OpeningHours:  strings.Join(res.OpeningHours.WeekdayText, "; "),
		})
	}
	return places, nil
}

// GetPlaceDetails returns the detail record for a destination id, serving from
// the cache while the entry is fresh.
func (r *HTTPMapsRepository) GetPlaceDetails(ctx context.Context, destinationID string) (*entity.PlaceDetails, error) {
	if details := r.cachedLookup(destinationID); details != nil {
		return details, nil
	}

	r.metrics.MapsLookups.WithLabelValues("details").Inc()

	endpoint := fmt.Sprintf("%s/place/details/json?place_id=%s&key=%s",
		r.baseURL, url.QueryEscape(destinationID), url.QueryEscape(r.apiKey))

	var resp detailsResponse
	if err := r.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("%w: details %s: %v", entity.ErrMapsUnavailable, destinationID, err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("%w: details %s: status %s", entity.ErrMapsUnavailable, destinationID, resp.Status)
	}

	details := &entity.PlaceDetails{
		DestinationID:    resp.Result.PlaceID,
		Name:             resp.Result.Name,
		Latitude:         resp.Result.Geometry.Location.Lat,
		Longitude:        resp.Result.Geometry.Location.Lng,
		PriceLevel:       resp.Result.PriceLevel,
		OpeningHours:     strings.Join(resp.Result.OpeningHours.WeekdayText, "; "),
		FormattedAddress: resp.Result.FormattedAddress,
	}
	if details.DestinationID == "" {
		details.DestinationID = destinationID
	}

	r.mu.Lock()
	r.cache[destinationID] = cachedDetails{details: details, expiresAt: time.Now().Add(r.cacheTTL)}
	r.mu.Unlock()

	return details, nil
}

func (r *HTTPMapsRepository) cachedLookup(destinationID string) *entity.PlaceDetails {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.cache[destinationID]
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(r.cache, destinationID)
		return nil
	}
	return entry.details
}

// getJSON performs a rate-limited GET with bounded retries and decodes the
// response body into out.
func (r *HTTPMapsRepository) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < mapsMaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(mapsRetryBackoff * time.Duration(1<<(attempt-1))):
			}
		}

		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			lastErr = err
			r.logger.Warn("Maps request failed", "attempt", attempt+1, "error", err)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("maps API returned status %d", resp.StatusCode)
			r.logger.Warn("Maps request rejected", "attempt", attempt+1, "status", resp.StatusCode)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return fmt.Errorf("maps API returned status %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
