package models

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DirectionsRequest asks the wayfinding handler about reaching the hotel.
type DirectionsRequest struct {
	Topic  Action `json:"topic"`            // route, nearby or location
	Origin string `json:"origin,omitempty"` // free-text address or "lat,lng"
}

// PointOfInterest is a landmark near the hotel.
type PointOfInterest struct {
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity,omitempty"`
	Location Location `json:"location"`
}

// RouteGuide is the wayfinding answer relayed to the guest.
type RouteGuide struct {
	Hotel       string            `json:"hotel"`
	Destination Location          `json:"destination"`
	Origin      string            `json:"origin,omitempty"`
	Distance    string            `json:"distance,omitempty"`
	Duration    string            `json:"duration,omitempty"`
	Steps       []string          `json:"steps,omitempty"`
	Nearby      []PointOfInterest `json:"nearby,omitempty"`
	Summary     string            `json:"summary"`
}
