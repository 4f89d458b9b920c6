package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rideconnect/models"
)

// Geocoder resolves a free-text address. A nil coordinate with a nil error means "no result".
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*models.Coordinate, error)
}

// DefaultCenter is used when an address matches no known landmark.
var DefaultCenter = models.Coordinate{Lon: -115.1398, Lat: 36.1699}

type landmark struct {
	name  string
	coord models.Coordinate
}

// Checked in order; the first substring hit wins.
var landmarks = []landmark{
	{"harry reid", models.Coordinate{Lon: -115.1522, Lat: 36.0840}},
	{"mccarran", models.Coordinate{Lon: -115.1522, Lat: 36.0840}},
	{"las vegas airport", models.Coordinate{Lon: -115.1522, Lat: 36.0840}},
	{"henderson executive", models.Coordinate{Lon: -115.1341, Lat: 35.9728}},
	{"north las vegas", models.Coordinate{Lon: -115.1958, Lat: 36.2136}},
	{"las vegas strip", models.Coordinate{Lon: -115.1725, Lat: 36.1147}},
	{"strip", models.Coordinate{Lon: -115.1725, Lat: 36.1147}},
	{"bellagio", models.Coordinate{Lon: -115.1745, Lat: 36.1126}},
	{"caesars", models.Coordinate{Lon: -115.1745, Lat: 36.1162}},
	{"mgm", models.Coordinate{Lon: -115.1677, Lat: 36.1021}},
	{"venetian", models.Coordinate{Lon: -115.1710, Lat: 36.1212}},
	{"luxor", models.Coordinate{Lon: -115.1761, Lat: 36.0955}},
	{"downtown las vegas", models.Coordinate{Lon: -115.1446, Lat: 36.1699}},
	{"fremont street", models.Coordinate{Lon: -115.1446, Lat: 36.1699}},
	{"las vegas", DefaultCenter},
}

// ResolveFallback maps an address onto a known landmark, or the city center. It never fails.
func ResolveFallback(address string) models.Coordinate {
	lower := strings.ToLower(address)
	for _, l := range landmarks {
		if strings.Contains(lower, l.name) {
			return l.coord
		}
	}
	return DefaultCenter
}

const locationIQSearchURL = "https://api.locationiq.com/v1/search"

// LocationIQGeocoder queries the LocationIQ forward-geocoding API.
type LocationIQGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewLocationIQGeocoder(apiKey string, timeout time.Duration) *LocationIQGeocoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LocationIQGeocoder{
		apiKey:     apiKey,
		baseURL:    locationIQSearchURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithBaseURL points the client at another endpoint.
func (g *LocationIQGeocoder) WithBaseURL(u string) *LocationIQGeocoder {
	g.baseURL = u
	return g
}

type locationIQPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *LocationIQGeocoder) Resolve(ctx context.Context, address string) (*models.Coordinate, error) {
	q := url.Values{}
	q.Set("key", g.apiKey)
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call LocationIQ: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LocationIQ returned status %d", resp.StatusCode)
	}

	var places []locationIQPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode LocationIQ response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	lat, errLat := strconv.ParseFloat(places[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(places[0].Lon, 64)
	if errLat != nil || errLon != nil {
		return nil, nil
	}
	return &models.Coordinate{Lon: lon, Lat: lat}, nil
}
