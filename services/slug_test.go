package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"menuhub-backend/models"

	"gorm.io/gorm"
)

func TestReserveSlugUnused(t *testing.T) {
	db := freshDB()
	slug, err := ReserveSlug(ctx, db, "Pizza Place")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "pizza-place" {
		t.Errorf("expected pizza-place, got %s", slug)
	}
}

func TestReserveSlugSkipsInactive(t *testing.T) {
	db := freshDB()
	seedRestaurant(t, db, "pizza-place", false)

	slug, err := ReserveSlug(ctx, db, "pizza-place")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "pizza-place-1" {
		t.Errorf("inactive restaurants keep their slug; expected pizza-place-1, got %s", slug)
	}
}

func TestReserveSlugEmptyCandidate(t *testing.T) {
	db := freshDB()
	slug, err := ReserveSlug(ctx, db, "  ")
	if err != nil {
		t.Fatal(err)
	}
	if slug != "restaurant" {
		t.Errorf("expected fallback slug, got %s", slug)
	}
}

func TestCreateRestaurantSlugSequence(t *testing.T) {
	svc, _ := newTestService(t)

	const n = 4
	for i := 0; i < n; i++ {
		form := NewForm().Set("slug", "pizza-place").Set("nameEn", "Pizza Place").Set("password", "password123")
		if _, err := svc.CreateRestaurant(ctx, adminScope(), form); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	var slugs []string
	svc.db.Model(&models.Restaurant{}).Order("created_at ASC").Pluck("slug", &slugs)
	if len(slugs) != n {
		t.Fatalf("expected %d restaurants, got %d", n, len(slugs))
	}
	seen := map[string]bool{}
	for i, s := range slugs {
		want := "pizza-place"
		if i > 0 {
			want = fmt.Sprintf("pizza-place-%d", i)
		}
		if s != want {
			t.Errorf("restaurant %d: expected slug %s, got %s", i, want, s)
		}
		if seen[s] {
			t.Errorf("duplicate slug %s", s)
		}
		seen[s] = true
	}
}

func TestCreateRestaurantSlugFromName(t *testing.T) {
	svc, _ := newTestService(t)

	form := NewForm().Set("nameEn", "Café Olé").Set("password", "password123")
	r, err := svc.CreateRestaurant(ctx, adminScope(), form)
	if err != nil {
		t.Fatal(err)
	}
	if r.Slug != "cafe-ole" {
		t.Errorf("expected slug derived from name, got %s", r.Slug)
	}
}

// duplicateSlugFault makes the first failures restaurant inserts fail with a
// duplicate key, as when a concurrent create wins the slug.
type duplicateSlugFault struct {
	failures int32
	attempts int32
}

type duplicateSlugKey struct{}

var registerDuplicateSlug sync.Once

func withDuplicateSlug(t *testing.T, db *gorm.DB, failures int32) (context.Context, *duplicateSlugFault) {
	t.Helper()
	registerDuplicateSlug.Do(func() {
		err := db.Callback().Create().Before("gorm:create").Register("test:duplicate_slug", func(tx *gorm.DB) {
			fault, ok := tx.Statement.Context.Value(duplicateSlugKey{}).(*duplicateSlugFault)
			if !ok || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "restaurants" {
				return
			}
			if atomic.AddInt32(&fault.attempts, 1) <= fault.failures {
				tx.AddError(gorm.ErrDuplicatedKey)
			}
		})
		if err != nil {
			t.Fatalf("register callback: %v", err)
		}
	})
	fault := &duplicateSlugFault{failures: failures}
	return context.WithValue(ctx, duplicateSlugKey{}, fault), fault
}

func TestCreateRestaurantRetriesLostSlugRace(t *testing.T) {
	svc, _ := newTestService(t)
	raceCtx, fault := withDuplicateSlug(t, svc.db, 1)

	form := NewForm().Set("nameEn", "Pizza Place").Set("password", "password123")
	r, err := svc.CreateRestaurant(raceCtx, adminScope(), form)
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if fault.attempts != 2 {
		t.Errorf("expected one retry (2 attempts), got %d", fault.attempts)
	}
	if r.Slug != "pizza-place" {
		t.Errorf("expected pizza-place, got %s", r.Slug)
	}

	var count int64
	svc.db.Model(&models.Restaurant{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly one restaurant, got %d", count)
	}
}

func TestCreateRestaurantSlugExhausted(t *testing.T) {
	svc, _ := newTestService(t)
	raceCtx, fault := withDuplicateSlug(t, svc.db, 100)

	form := NewForm().Set("nameEn", "Pizza Place").Set("password", "password123")
	_, err := svc.CreateRestaurant(raceCtx, adminScope(), form)
	assertIntegrity(t, err)
	if !errors.Is(err, ErrSlugExhausted) {
		t.Errorf("expected ErrSlugExhausted, got %v", err)
	}
	if fault.attempts != slugReserveAttempts {
		t.Errorf("expected %d attempts, got %d", slugReserveAttempts, fault.attempts)
	}

	var count int64
	svc.db.Model(&models.Restaurant{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no restaurant written, got %d", count)
	}
}

func TestSignupSlugExhaustedLeavesNoOwner(t *testing.T) {
	svc, _ := newTestService(t)
	raceCtx, _ := withDuplicateSlug(t, svc.db, 100)

	form := NewForm().Set("email", "owner@example.com").Set("password", "password123").Set("nameEn", "Grill")
	_, _, err := svc.Signup(raceCtx, form)
	if !errors.Is(err, ErrSlugExhausted) {
		t.Fatalf("expected ErrSlugExhausted, got %v", err)
	}

	var users int64
	svc.db.Model(&models.User{}).Count(&users)
	if users != 0 {
		t.Errorf("rolled back signups must not leave owners behind, got %d users", users)
	}
}

func TestSignupRetriesLostSlugRace(t *testing.T) {
	svc, _ := newTestService(t)
	raceCtx, _ := withDuplicateSlug(t, svc.db, 2)

	form := NewForm().Set("email", "owner@example.com").Set("password", "password123").Set("nameEn", "Grill")
	r, owner, err := svc.Signup(raceCtx, form)
	if err != nil {
		t.Fatalf("expected the retry to succeed, got %v", err)
	}
	if r.AdminID == nil || *r.AdminID != owner.ID {
		t.Error("expected restaurant to reference the owner of the final attempt")
	}

	var users int64
	svc.db.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("expected exactly one owner, got %d", users)
	}
}
