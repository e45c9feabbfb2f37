package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// HighValueDistanceKm is the distance above which a ride counts as high value
// regardless of fare.
const HighValueDistanceKm = 10.0

// RideQueryService runs the read-only ride queries. Every query excludes
// soft-deleted rides and issues a single filtered read.
type RideQueryService struct {
	rideRepo repository.RideRepository
	loc      *time.Location
	now      func() time.Time
	logger   logrus.FieldLogger
}

// NewRideQueryService creates a new RideQueryService.
func NewRideQueryService(rideRepo repository.RideRepository, loc *time.Location, logger logrus.FieldLogger) *RideQueryService {
	return &RideQueryService{
		rideRepo: rideRepo,
		loc:      loc,
		now:      time.Now,
		logger:   logger,
	}
}

// RidesByCreationDate returns rides created on the calendar day of date.
// A zero date means today.
func (s *RideQueryService) RidesByCreationDate(ctx context.Context, date time.Time) ([]*domain.Ride, error) {
	w := DayWindow(s.orToday(date), s.loc)
	rides, err := s.rideRepo.ListCreatedBetween(ctx, w.Start, w.Next())
	return s.result("by_creation_date", w, rides, err)
}

// CompletedForWeek returns COMPLETED rides whose end time falls in the
// Monday-starting week containing date. A zero date means today.
func (s *RideQueryService) CompletedForWeek(ctx context.Context, date time.Time) ([]*domain.Ride, error) {
	w := WeekWindow(s.orToday(date), s.loc)
	rides, err := s.rideRepo.ListByStatusEndedBetween(ctx, domain.RideStatusCompleted, w.Start, w.Next())
	return s.result("completed_for_week", w, rides, err)
}

// InProgressToday returns ACCEPTED and ONGOING rides created today.
func (s *RideQueryService) InProgressToday(ctx context.Context) ([]*domain.Ride, error) {
	w := DayWindow(s.now(), s.loc)
	statuses := []domain.RideStatus{domain.RideStatusAccepted, domain.RideStatusOngoing}
	rides, err := s.rideRepo.ListByStatusesCreatedBetween(ctx, statuses, w.Start, w.Next())
	return s.result("in_progress_today", w, rides, err)
}

// HighValueForWeek returns rides created in the week containing date that
// travelled more than HighValueDistanceKm or cost more than minFare.
// A nil minFare means zero.
func (s *RideQueryService) HighValueForWeek(ctx context.Context, date time.Time, minFare *float64) ([]*domain.Ride, error) {
	threshold := 0.0
	if minFare != nil {
		if *minFare < 0 {
			return nil, ErrInvalidMinFare
		}
		threshold = *minFare
	}

	w := WeekWindow(s.orToday(date), s.loc)
	rides, err := s.rideRepo.ListHighValueCreatedBetween(ctx, w.Start, w.Next(), HighValueDistanceKm, threshold)
	return s.result("high_value_for_week", w, rides, err)
}

// RidesByDiscountCode returns every ride that used the discount code, no
// matter whether the discount is still valid.
func (s *RideQueryService) RidesByDiscountCode(ctx context.Context, code string) ([]*domain.Ride, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return []*domain.Ride{}, nil
	}

	rides, err := s.rideRepo.ListByDiscountCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rides == nil {
		rides = []*domain.Ride{}
	}
	s.logger.WithFields(logrus.Fields{"query": "by_discount_code", "code": code, "count": len(rides)}).Debug("ride query")
	return rides, nil
}

func (s *RideQueryService) orToday(date time.Time) time.Time {
	if date.IsZero() {
		return s.now()
	}
	return date
}

func (s *RideQueryService) result(query string, w TimeWindow, rides []*domain.Ride, err error) ([]*domain.Ride, error) {
	if err != nil {
		return nil, err
	}
	if rides == nil {
		rides = []*domain.Ride{}
	}
	s.logger.WithFields(logrus.Fields{
		"query": query,
		"from":  w.Start,
		"to":    w.End,
		"count": len(rides),
	}).Debug("ride query")
	return rides, nil
}
