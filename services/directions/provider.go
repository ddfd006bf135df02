package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"hotelsupport/metrics"
	"hotelsupport/models"
)

// Route is one driving route from an origin to the hotel.
type Route struct {
	Distance string
	Duration string
	Steps    []string
}

// Provider is the external wayfinding capability.
type Provider interface {
	Route(ctx context.Context, origin string, destination models.Location) (*Route, error)
	Nearby(ctx context.Context, at models.Location) ([]models.PointOfInterest, error)
}

const (
	googleMapsBaseURL = "https://maps.googleapis.com/maps/api"
	nearbyRadius      = 1500
	maxNearby         = 5
)

// GoogleMapsProvider talks to the Directions API and Places Nearby Search.
type GoogleMapsProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewGoogleMapsProvider(apiKey string, timeout time.Duration) *GoogleMapsProvider {
	return &GoogleMapsProvider{
		APIKey:  apiKey,
		BaseURL: googleMapsBaseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

type directionsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Routes       []struct {
		Legs []struct {
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type placesResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string `json:"name"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location models.Location `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

func (p *GoogleMapsProvider) Route(ctx context.Context, origin string, destination models.Location) (*Route, error) {
	defer metrics.TimeExternalCall("directions")()

	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("key", p.APIKey)

	var resp directionsResponse
	if err := p.getJSON(ctx, "/directions/json", q, &resp); err != nil {
		return nil, err
	}
	switch resp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, models.NewNotFound("No route found from %s", origin)
	default:
		return nil, fmt.Errorf("directions status %s: %s", resp.Status, resp.ErrorMessage)
	}
	if len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, models.NewNotFound("No route found from %s", origin)
	}

	leg := resp.Routes[0].Legs[0]
	route := &Route{Distance: leg.Distance.Text, Duration: leg.Duration.Text}
	for _, step := range leg.Steps {
		text := strings.TrimSpace(htmlTag.ReplaceAllString(step.HTMLInstructions, " "))
		route.Steps = append(route.Steps, strings.Join(strings.Fields(text), " "))
	}
	return route, nil
}

func (p *GoogleMapsProvider) Nearby(ctx context.Context, at models.Location) ([]models.PointOfInterest, error) {
	defer metrics.TimeExternalCall("places")()

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", at.Lat, at.Lng))
	q.Set("radius", fmt.Sprint(nearbyRadius))
	q.Set("type", "tourist_attraction")
	q.Set("key", p.APIKey)

	var resp placesResponse
	if err := p.getJSON(ctx, "/place/nearbysearch/json", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("places status %s: %s", resp.Status, resp.ErrorMessage)
	}

	pois := make([]models.PointOfInterest, 0, maxNearby)
	for _, r := range resp.Results {
		if len(pois) == maxNearby {
			break
		}
		pois = append(pois, models.PointOfInterest{
			Name:     r.Name,
			Vicinity: r.Vicinity,
			Location: r.Geometry.Location,
		})
	}
	return pois, nil
}

func (p *GoogleMapsProvider) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps api returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
