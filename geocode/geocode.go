package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"travelguide/models"
)

// ErrNoResults means the geocoder returned nothing for the query
var ErrNoResults = errors.New("no geocoding results")

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"

	// The geocoding service is rate limited, so batches are bounded and
	// individual lookups are staggered.
	batchConcurrency = 5
	batchStagger     = 200 * time.Millisecond
)

// Client talks to a Nominatim-compatible geocoding service. Every request
// carries the identifying User-Agent the service requires.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	stagger   time.Duration
}

func New(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
		stagger:   batchStagger,
	}
}

type searchRecord struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseRecord struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		County  string `json:"county"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Search resolves a place name to coordinates, taking the first result
func (c *Client) Search(ctx context.Context, name string) (*models.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(name))

	var records []searchRecord
	if err := c.get(ctx, endpoint, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoResults
	}

	lat, err := strconv.ParseFloat(records[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("bad latitude %q: %w", records[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(records[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("bad longitude %q: %w", records[0].Lon, err)
	}
	return &models.Coordinates{Lat: lat, Lon: lon}, nil
}

// Reverse resolves coordinates to the most specific locality name available
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	endpoint := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", c.baseURL, lat, lon)

	var record reverseRecord
	if err := c.get(ctx, endpoint, &record); err != nil {
		return "", err
	}

	addr := record.Address
	for _, candidate := range []string{addr.City, addr.Town, addr.Village, addr.County, addr.State, addr.Country} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", ErrNoResults
}

// Batch geocodes a set of mentioned place names with bounded concurrency and
// a per-lookup stagger. Individual failures are logged and skipped; the batch
// itself never fails.
func (c *Client) Batch(ctx context.Context, names []string) []models.MentionedPlace {
	var (
		mu  sync.Mutex
		out []models.MentionedPlace
	)

	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for i, name := range names {
		name := name
		delay := time.Duration(i) * c.stagger
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}

			coords, err := c.Search(ctx, name)
			if err != nil {
				log.Debug().Err(err).Str("place", name).Msg("geocoding skipped")
				return nil
			}

			mu.Lock()
			out = append(out, models.MentionedPlace{Name: name, Lat: coords.Lat, Lon: coords.Lon})
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return out
}

func (c *Client) get(ctx context.Context, endpoint string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
