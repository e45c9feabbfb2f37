package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

// ──────────────────────────────────────────────
// IN-MEMORY STORE
// ──────────────────────────────────────────────

// memStore is an in-memory Entity Store honouring soft delete.
type memStore struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	drivers   map[string]*domain.Driver
	vehicles  map[string]*domain.Vehicle
	locations map[string]*domain.Location
	discounts map[string]*domain.Discount
	rides     map[string]*domain.Ride
	payments  map[string]*domain.Payment // by ride id
	ratings   []domain.Rating

	// Counters for verification
	LocationCreateCount int32
	RideCreateCount     int32

	// Error injection
	RideCreateError error
	ListError       error
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]*domain.User),
		drivers:   make(map[string]*domain.Driver),
		vehicles:  make(map[string]*domain.Vehicle),
		locations: make(map[string]*domain.Location),
		discounts: make(map[string]*domain.Discount),
		rides:     make(map[string]*domain.Ride),
		payments:  make(map[string]*domain.Payment),
	}
}

func (s *memStore) clone() *memStore {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := newMemStore()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.drivers {
		c.drivers[k] = v
	}
	for k, v := range s.vehicles {
		c.vehicles[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.discounts {
		c.discounts[k] = v
	}
	for k, v := range s.rides {
		c.rides[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	c.ratings = append(c.ratings, s.ratings...)
	c.RideCreateError = s.RideCreateError
	c.ListError = s.ListError
	return c
}

func (s *memStore) commit(staged *memStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = staged.users
	s.drivers = staged.drivers
	s.vehicles = staged.vehicles
	s.locations = staged.locations
	s.discounts = staged.discounts
	s.rides = staged.rides
	s.payments = staged.payments
	s.ratings = staged.ratings
	atomic.AddInt32(&s.LocationCreateCount, atomic.LoadInt32(&staged.LocationCreateCount))
	atomic.AddInt32(&s.RideCreateCount, atomic.LoadInt32(&staged.RideCreateCount))
}

func (s *memStore) repos() repository.TxRepositories {
	return repository.TxRepositories{
		Users:     &memUserRepo{s},
		Drivers:   &memDriverRepo{s},
		Vehicles:  &memVehicleRepo{s},
		Locations: &memLocationRepo{s},
		Discounts: &memDiscountRepo{s: s},
		Rides:     &memRideRepo{s},
	}
}

func (s *memStore) locationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.locations)
}

func (s *memStore) rideCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rides)
}

func (s *memStore) addUser(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *memStore) addDriver(d *domain.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers[d.ID] = d
}

func (s *memStore) addVehicle(v *domain.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vehicles[v.ID] = v
}

func (s *memStore) addLocation(l *domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = l
}

func (s *memStore) addDiscount(d *domain.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discounts[d.ID] = d
}

func (s *memStore) addRide(r *domain.Ride) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rides[r.ID] = r
}

// ──────────────────────────────────────────────
// MOCK TRANSACTOR
// ──────────────────────────────────────────────

// mockTransactor stages every write on a copy of the store and only
// publishes it when fn succeeds.
type mockTransactor struct {
	store *memStore

	CommitCount   int32
	RollbackCount int32
}

func (m *mockTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepositories) error) error {
	staged := m.store.clone()
	if err := fn(ctx, staged.repos()); err != nil {
		atomic.AddInt32(&m.RollbackCount, 1)
		return err
	}
	m.store.commit(staged)
	atomic.AddInt32(&m.CommitCount, 1)
	return nil
}

// ──────────────────────────────────────────────
// MOCK REPOSITORIES
// ──────────────────────────────────────────────

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Phone == user.Phone || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok || u.Deleted {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

type memDriverRepo struct{ s *memStore }

func (r *memDriverRepo) Create(ctx context.Context, driver *domain.Driver) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.drivers {
		if d.Phone == driver.Phone || d.Email == driver.Email || d.LicenseNumber == driver.LicenseNumber {
			return repository.ErrDuplicate
		}
	}
	r.s.drivers[driver.ID] = driver
	return nil
}

func (r *memDriverRepo) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.drivers[id]
	if !ok || d.Deleted {
		return nil, repository.ErrNotFound
	}
	copy := *d
	return &copy, nil
}

type memVehicleRepo struct{ s *memStore }

func (r *memVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.vehicles {
		if v.VehicleNumber == vehicle.VehicleNumber {
			return repository.ErrDuplicate
		}
	}
	r.s.vehicles[vehicle.ID] = vehicle
	return nil
}

func (r *memVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.vehicles[id]
	if !ok || v.Deleted {
		return nil, repository.ErrNotFound
	}
	copy := *v
	return &copy, nil
}

type memLocationRepo struct{ s *memStore }

func (r *memLocationRepo) Create(ctx context.Context, location *domain.Location) error {
	atomic.AddInt32(&r.s.LocationCreateCount, 1)
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.locations[location.ID] = location
	return nil
}

func (r *memLocationRepo) GetByID(ctx context.Context, id string) (*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok || l.Deleted {
		return nil, repository.ErrNotFound
	}
	copy := *l
	return &copy, nil
}

type memDiscountRepo struct {
	s *memStore

	ListActiveCallCount int32
}

func (r *memDiscountRepo) ListActive(ctx context.Context, asOf time.Time) ([]domain.Discount, error) {
	atomic.AddInt32(&r.ListActiveCallCount, 1)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Discount
	for _, d := range r.s.discounts {
		if d.ActiveOn(asOf) {
			out = append(out, *d)
		}
	}
	sortDiscounts(out)
	return out, nil
}

func (r *memDiscountRepo) ListByCodes(ctx context.Context, codes []string) ([]domain.Discount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	want := make(map[string]bool, len(codes))
	for _, c := range codes {
		want[c] = true
	}
	var out []domain.Discount
	for _, d := range r.s.discounts {
		if !d.Deleted && want[d.Code] {
			out = append(out, *d)
		}
	}
	sortDiscounts(out)
	return out, nil
}

func (r *memDiscountRepo) GetByCode(ctx context.Context, code string) (*domain.Discount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, d := range r.s.discounts {
		if !d.Deleted && d.Code == code {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func sortDiscounts(ds []domain.Discount) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].Code < ds[j].Code })
}

type memRideRepo struct{ s *memStore }

func (r *memRideRepo) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&r.s.RideCreateCount, 1)
	if r.s.RideCreateError != nil {
		return r.s.RideCreateError
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.rides[ride.ID] = ride
	return nil
}

func (r *memRideRepo) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ride, ok := r.s.rides[id]
	if !ok || ride.Deleted {
		return nil, repository.ErrNotFound
	}
	return r.hydrate(ride), nil
}

func (r *memRideRepo) ListCreatedBetween(ctx context.Context, start, end time.Time) ([]*domain.Ride, error) {
	return r.filter(func(ride *domain.Ride) bool {
		return within(ride.CreatedAt, start, end)
	})
}

func (r *memRideRepo) ListByStatusEndedBetween(ctx context.Context, status domain.RideStatus, start, end time.Time) ([]*domain.Ride, error) {
	return r.filter(func(ride *domain.Ride) bool {
		return ride.Status == status && ride.EndTime != nil && within(*ride.EndTime, start, end)
	})
}

func (r *memRideRepo) ListByStatusesCreatedBetween(ctx context.Context, statuses []domain.RideStatus, start, end time.Time) ([]*domain.Ride, error) {
	return r.filter(func(ride *domain.Ride) bool {
		if !within(ride.CreatedAt, start, end) {
			return false
		}
		for _, st := range statuses {
			if ride.Status == st {
				return true
			}
		}
		return false
	})
}

func (r *memRideRepo) ListHighValueCreatedBetween(ctx context.Context, start, end time.Time, minDistanceKm, minFare float64) ([]*domain.Ride, error) {
	return r.filter(func(ride *domain.Ride) bool {
		if !within(ride.CreatedAt, start, end) {
			return false
		}
		return (ride.DistanceKm != nil && *ride.DistanceKm > minDistanceKm) ||
			(ride.Fare != nil && *ride.Fare > minFare)
	})
}

func (r *memRideRepo) ListByDiscountCode(ctx context.Context, code string) ([]*domain.Ride, error) {
	return r.filter(func(ride *domain.Ride) bool {
		for _, d := range ride.Discounts {
			if cur, ok := r.s.discounts[d.ID]; ok && !cur.Deleted && cur.Code == code {
				return true
			}
		}
		return false
	})
}

func (r *memRideRepo) filter(match func(*domain.Ride) bool) ([]*domain.Ride, error) {
	if r.s.ListError != nil {
		return nil, r.s.ListError
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Ride
	for _, ride := range r.s.rides {
		if !ride.Deleted && match(ride) {
			out = append(out, r.hydrate(ride))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// hydrate returns a copy of ride whose discounts reflect the current,
// non-deleted discount rows. Caller holds the read lock.
func (r *memRideRepo) hydrate(ride *domain.Ride) *domain.Ride {
	copy := *ride
	copy.Discounts = nil
	for _, d := range ride.Discounts {
		if cur, ok := r.s.discounts[d.ID]; ok && !cur.Deleted {
			copy.Discounts = append(copy.Discounts, *cur)
		}
	}
	return &copy
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) GetByRideID(ctx context.Context, rideID string) (*domain.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[rideID]
	if !ok || p.Deleted {
		return nil, nil
	}
	copy := *p
	return &copy, nil
}

type memRatingRepo struct{ s *memStore }

func (r *memRatingRepo) ListByRideID(ctx context.Context, rideID string) ([]domain.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Rating
	for _, rt := range r.s.ratings {
		if rt.RideID == rideID && !rt.Deleted {
			out = append(out, rt)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────
// MOCK DISCOUNT CACHE
// ──────────────────────────────────────────────

type mockDiscountCache struct {
	mu      sync.Mutex
	entries map[string][]domain.Discount

	GetError error
	SetCount int32
}

func newMockDiscountCache() *mockDiscountCache {
	return &mockDiscountCache{entries: make(map[string][]domain.Discount)}
}

func (c *mockDiscountCache) GetActive(ctx context.Context, day string) ([]domain.Discount, bool, error) {
	if c.GetError != nil {
		return nil, false, c.GetError
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ds, ok := c.entries[day]
	return ds, ok, nil
}

func (c *mockDiscountCache) SetActive(ctx context.Context, day string, discounts []domain.Discount) error {
	atomic.AddInt32(&c.SetCount, 1)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[day] = discounts
	return nil
}

// ──────────────────────────────────────────────
// HELPERS
// ──────────────────────────────────────────────

var kolkata = mustLoad("Asia/Kolkata")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

func ptr[T any](v T) *T {
	return &v
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}
