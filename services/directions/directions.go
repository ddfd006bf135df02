package directions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelsupport/models"

	"go.uber.org/zap"
)

// DirectionsService answers questions about reaching the hotel.
type DirectionsService interface {
	Guide(ctx context.Context, req models.DirectionsRequest) (*models.RouteGuide, error)
}

// Hotel is the fixed destination every guide points at.
type Hotel struct {
	Name     string
	Location models.Location
}

// DefaultDirectionsService never touches session state.
type DefaultDirectionsService struct {
	Hotel    Hotel
	Provider Provider
	Logger   *zap.Logger
}

func NewDirectionsService(hotel Hotel, provider Provider, logger *zap.Logger) *DefaultDirectionsService {
	return &DefaultDirectionsService{Hotel: hotel, Provider: provider, Logger: logger}
}

func (s *DefaultDirectionsService) Guide(ctx context.Context, req models.DirectionsRequest) (*models.RouteGuide, error) {
	guide := &models.RouteGuide{
		Hotel:       s.Hotel.Name,
		Destination: s.Hotel.Location,
		Origin:      strings.TrimSpace(req.Origin),
	}

	switch req.Topic {
	case models.ActionLocation:
		guide.Summary = s.locationSummary()
		return guide, nil

	case models.ActionNearby:
		if err := s.addNearby(ctx, guide); err != nil {
			return nil, err
		}
		guide.Summary = s.nearbySummary(guide.Nearby)
		return guide, nil

	case models.ActionRoute:
		if guide.Origin == "" {
			// Without a starting point the best answer is the address and landmarks.
			if err := s.addNearby(ctx, guide); err != nil {
				return nil, err
			}
			guide.Summary = s.locationSummary() + " " + s.nearbySummary(guide.Nearby)
			return guide, nil
		}
		route, err := s.Provider.Route(ctx, guide.Origin, s.Hotel.Location)
		if err != nil {
			return nil, s.wrap("directions", err)
		}
		guide.Distance = route.Distance
		guide.Duration = route.Duration
		guide.Steps = route.Steps
		if err := s.addNearby(ctx, guide); err != nil {
			s.Logger.Warn("Nearby lookup failed", zap.Error(err))
		}
		guide.Summary = fmt.Sprintf("%s is %s from %s, about %s by car.",
			s.Hotel.Name, route.Distance, guide.Origin, route.Duration)
		return guide, nil

	default:
		return nil, models.NewOutOfDomain("I can only help with directions to %s and the places around it.", s.Hotel.Name)
	}
}

func (s *DefaultDirectionsService) addNearby(ctx context.Context, guide *models.RouteGuide) error {
	pois, err := s.Provider.Nearby(ctx, s.Hotel.Location)
	if err != nil {
		return s.wrap("places", err)
	}
	guide.Nearby = pois
	return nil
}

func (s *DefaultDirectionsService) wrap(call string, err error) error {
	var svcErr *models.ServiceError
	if errors.As(err, &svcErr) {
		return err
	}
	s.Logger.Error("Maps lookup failed", zap.String("call", call), zap.Error(err))
	return models.NewExternalFailure(call, err, isTimeout(err))
}

func (s *DefaultDirectionsService) locationSummary() string {
	return fmt.Sprintf("%s is located at %.6f, %.6f.", s.Hotel.Name, s.Hotel.Location.Lat, s.Hotel.Location.Lng)
}

func (s *DefaultDirectionsService) nearbySummary(pois []models.PointOfInterest) string {
	if len(pois) == 0 {
		return "I could not find any landmarks close to the hotel."
	}
	names := make([]string, 0, len(pois))
	for _, p := range pois {
		names = append(names, p.Name)
	}
	return "Nearby landmarks: " + strings.Join(names, ", ") + "."
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
