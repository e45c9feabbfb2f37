package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cabbooking/internal/domain"
)

func seedDiscounts(store *memStore) {
	store.addDiscount(&domain.Discount{ID: "d-welcome", Code: "WELCOME10", Percentage: 10,
		ValidFrom: date(2026, 1, 1), ValidTo: date(2026, 12, 31)})
	store.addDiscount(&domain.Discount{ID: "d-open", Code: "DOON5", Percentage: 5})
	store.addDiscount(&domain.Discount{ID: "d-expired", Code: "MONSOON", Percentage: 15,
		ValidFrom: date(2026, 7, 1), ValidTo: date(2026, 9, 30)})
	store.addDiscount(&domain.Discount{ID: "d-future", Code: "DIWALI", Percentage: 25,
		ValidFrom: date(2026, 11, 1)})
	store.addDiscount(&domain.Discount{ID: "d-deleted", Code: "OLD50", Percentage: 50, Deleted: true})
}

func newTestDiscountService(store *memStore, cache *mockDiscountCache, now time.Time) (*DiscountService, *memDiscountRepo) {
	repo := &memDiscountRepo{s: store}
	var svc *DiscountService
	if cache != nil {
		svc = NewDiscountService(repo, cache, kolkata, newTestLogger())
	} else {
		svc = NewDiscountService(repo, nil, kolkata, newTestLogger())
	}
	svc.now = fixedClock(now)
	return svc, repo
}

func codesOf(ds []domain.Discount) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

func equalCodes(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestActiveDiscounts_ValidityWindow(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seedDiscounts(store)
	svc, _ := newTestDiscountService(store, nil, time.Date(2026, 10, 19, 10, 0, 0, 0, kolkata))

	testCases := []struct {
		name string
		asOf time.Time
		want []string
	}{
		{"today by default", time.Time{}, []string{"DOON5", "WELCOME10"}},
		{"inside monsoon", time.Date(2026, 8, 15, 0, 0, 0, 0, kolkata), []string{"DOON5", "MONSOON", "WELCOME10"}},
		{"last day of monsoon inclusive", time.Date(2026, 9, 30, 23, 0, 0, 0, kolkata), []string{"DOON5", "MONSOON", "WELCOME10"}},
		{"first day of diwali inclusive", time.Date(2026, 11, 1, 0, 0, 0, 0, kolkata), []string{"DIWALI", "DOON5", "WELCOME10"}},
		{"next year", time.Date(2027, 1, 1, 0, 0, 0, 0, kolkata), []string{"DIWALI", "DOON5"}},
	}

	for _, tc := range testCases {
		got, err := svc.ActiveDiscounts(context.Background(), tc.asOf)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if codes := codesOf(got); !equalCodes(codes, tc.want...) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, codes)
		}
	}
}

func TestActiveDiscounts_UsesCache(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seedDiscounts(store)
	cache := newMockDiscountCache()
	svc, repo := newTestDiscountService(store, cache, time.Date(2026, 10, 19, 10, 0, 0, 0, kolkata))

	for i := 0; i < 3; i++ {
		if _, err := svc.ActiveDiscounts(context.Background(), time.Time{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if repo.ListActiveCallCount != 1 {
		t.Errorf("expected one store read, got %d", repo.ListActiveCallCount)
	}
	if _, ok := cache.entries["2026-10-19"]; !ok {
		t.Error("expected cache entry keyed by city-local date")
	}
}

func TestActiveDiscounts_CacheErrorFallsThrough(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seedDiscounts(store)
	cache := newMockDiscountCache()
	cache.GetError = errors.New("redis down")
	svc, repo := newTestDiscountService(store, cache, time.Date(2026, 10, 19, 10, 0, 0, 0, kolkata))

	got, err := svc.ActiveDiscounts(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("expected cache failure to be ignored, got: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 discounts, got %d", len(got))
	}
	if repo.ListActiveCallCount != 1 {
		t.Errorf("expected store read, got %d", repo.ListActiveCallCount)
	}
}

func TestDiscountsByCodes(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seedDiscounts(store)
	svc, _ := newTestDiscountService(store, nil, time.Date(2026, 10, 19, 10, 0, 0, 0, kolkata))

	testCases := []struct {
		name  string
		codes []string
		want  []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, nil},
		{"unknown", []string{"UNKNOWN"}, nil},
		{"mixed", []string{"BOGUS", "WELCOME10"}, []string{"WELCOME10"}},
		{"order insensitive", []string{"WELCOME10", "DOON5"}, []string{"DOON5", "WELCOME10"}},
		{"duplicates and blanks", []string{" WELCOME10 ", "WELCOME10", "", "  "}, []string{"WELCOME10"}},
		{"deleted absent", []string{"OLD50"}, nil},
		{"validity ignored", []string{"MONSOON"}, []string{"MONSOON"}},
		{"overlong dropped", []string{strings.Repeat("W", 51), "WELCOME10"}, []string{"WELCOME10"}},
	}

	for _, tc := range testCases {
		got, err := svc.DiscountsByCodes(context.Background(), tc.codes)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got == nil {
			t.Errorf("%s: expected non-nil empty set", tc.name)
		}
		if codes := codesOf(got); !equalCodes(codes, tc.want...) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, codes)
		}
	}
}

func TestDiscountByCode(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	seedDiscounts(store)
	svc, _ := newTestDiscountService(store, nil, time.Date(2026, 10, 19, 10, 0, 0, 0, kolkata))

	testCases := []struct {
		code string
		want string
	}{
		{"WELCOME10", "WELCOME10"},
		{" DOON5 ", "DOON5"},
		{"", ""},
		{"   ", ""},
		{"UNKNOWN", ""},
		{"MONSOON", ""},
		{"DIWALI", ""},
		{"OLD50", ""},
	}

	for _, tc := range testCases {
		got, err := svc.DiscountByCode(context.Background(), tc.code)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.code, err)
		}
		if tc.want == "" {
			if got != nil {
				t.Errorf("%q: expected absent, got %s", tc.code, got.Code)
			}
			continue
		}
		if got == nil || got.Code != tc.want {
			t.Errorf("%q: expected %s, got %+v", tc.code, tc.want, got)
		}
	}
}
