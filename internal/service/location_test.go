package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cabbooking/internal/domain"
	"cabbooking/internal/repository"
)

func TestLocationResolver_ByID(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.addLocation(&domain.Location{ID: "loc-5", Latitude: 30.3165, Longitude: 78.0322})
	resolver := NewLocationResolver(&memLocationRepo{store})

	// Coordinates are ignored when an ID is present.
	got, err := resolver.Resolve(context.Background(), LocationSpec{
		ID:        "loc-5",
		Latitude:  ptr(1.0),
		Longitude: ptr(2.0),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.ID != "loc-5" || got.Latitude != 30.3165 {
		t.Errorf("expected stored location, got %+v", got)
	}
	if store.LocationCreateCount != 0 {
		t.Errorf("expected no location writes, got %d", store.LocationCreateCount)
	}
}

func TestLocationResolver_DeletedOrMissingID(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.addLocation(&domain.Location{ID: "loc-gone", Deleted: true})
	resolver := NewLocationResolver(&memLocationRepo{store})

	for _, id := range []string{"loc-gone", "loc-missing"} {
		_, err := resolver.Resolve(context.Background(), LocationSpec{ID: id})
		if !errors.Is(err, ErrLocationNotFound) {
			t.Errorf("%s: expected ErrLocationNotFound, got %v", id, err)
		}
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("%s: expected error to match repository.ErrNotFound", id)
		}
	}
}

func TestLocationResolver_CreatesFromCoordinates(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	resolver := NewLocationResolver(&memLocationRepo{store})
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, kolkata)
	resolver.now = fixedClock(now)

	got, err := resolver.Resolve(context.Background(), LocationSpec{
		Latitude:  ptr(30.32000049),
		Longitude: ptr(78.0299999),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got.ID == "" {
		t.Error("expected location ID to be set")
	}
	if got.Latitude != 30.32 || got.Longitude != 78.03 {
		t.Errorf("expected rounded coordinates 30.32/78.03, got %v/%v", got.Latitude, got.Longitude)
	}
	if !got.RecordedAt.Equal(now) {
		t.Errorf("expected recordedAt %s, got %s", now, got.RecordedAt)
	}
	if got.Deleted {
		t.Error("expected new location not to be deleted")
	}
	if store.locationCount() != 1 {
		t.Errorf("expected one stored location, got %d", store.locationCount())
	}
}

func TestLocationResolver_InvalidSpecs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		spec    LocationSpec
		wantErr error
	}{
		{"empty", LocationSpec{}, ErrLocationCoordinatesMissing},
		{"latitude only", LocationSpec{Latitude: ptr(30.0)}, ErrLocationCoordinatesMissing},
		{"longitude only", LocationSpec{Longitude: ptr(78.0)}, ErrLocationCoordinatesMissing},
		{"latitude out of range", LocationSpec{Latitude: ptr(91.0), Longitude: ptr(78.0)}, ErrInvalidCoordinates},
		{"longitude out of range", LocationSpec{Latitude: ptr(30.0), Longitude: ptr(-181.0)}, ErrInvalidCoordinates},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore()
			resolver := NewLocationResolver(&memLocationRepo{store})

			_, err := resolver.Resolve(context.Background(), tc.spec)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected error to match ErrInvalidArgument")
			}
			if store.LocationCreateCount != 0 {
				t.Error("expected no location writes")
			}
		})
	}
}

func TestLocationResolver_ZeroCoordinatesAreValid(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	resolver := NewLocationResolver(&memLocationRepo{store})

	got, err := resolver.Resolve(context.Background(), LocationSpec{Latitude: ptr(0.0), Longitude: ptr(0.0)})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got.Latitude != 0 || got.Longitude != 0 {
		t.Errorf("expected origin, got %+v", got)
	}
}
