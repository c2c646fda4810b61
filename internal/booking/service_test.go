package booking

import (
	"context"
	"fmt"
	"testing"

	"github.com/CarShareLink/CarShareLink/internal/car"
	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
	"github.com/CarShareLink/CarShareLink/internal/trip"
)

type fakeFleet struct {
	cars map[uint]*car.Car
}

func (f *fakeFleet) Get(_ context.Context, id uint) (*car.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, apperror.NewNotFound(fmt.Sprintf("car not found with id=%d", id), nil)
	}
	return c, nil
}

type fakeLedger struct {
	trips map[uint][]trip.Trip
}

func (f *fakeLedger) Append(_ context.Context, carID uint, in trip.TripInput) (*trip.Trip, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	next := uint(len(f.trips[carID]) + 1)
	tr := trip.FromInput(carID, next, in)
	f.trips[carID] = append(f.trips[carID], tr)
	return &tr, nil
}

func newFixture() (*Service, *fakeFleet, *fakeLedger) {
	fleet := &fakeFleet{cars: map[uint]*car.Car{
		1: {ID: 1, Size: "m", Fuel: car.FuelHybrid, Doors: 5, Transmission: car.TransmissionAuto},
	}}
	ledger := &fakeLedger{trips: map[uint][]trip.Trip{}}
	return NewService(fleet, ledger), fleet, ledger
}

func TestBookTrip(t *testing.T) {
	svc, _, ledger := newFixture()
	ctx := context.Background()

	tr, err := svc.BookTrip(ctx, 1, trip.TripInput{Start: 0, End: 10, Description: "errand"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.ID != 1 || tr.CarID != 1 {
		t.Fatalf("expected first trip id=1 on car 1, got %+v", tr)
	}
	if tr.Start != 0 || tr.End != 10 || tr.Description != "errand" {
		t.Fatalf("trip fields not echoed: %+v", tr)
	}

	tr, err = svc.BookTrip(ctx, 1, trip.TripInput{Start: 10, End: 20, Description: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.ID != 2 {
		t.Fatalf("expected second trip id=2, got %d", tr.ID)
	}
	if got := len(ledger.trips[1]); got != 2 {
		t.Fatalf("expected 2 trips persisted, got %d", got)
	}
}

func TestBookTripInvalidWindow(t *testing.T) {
	svc, _, ledger := newFixture()
	ctx := context.Background()

	if _, err := svc.BookTrip(ctx, 1, trip.TripInput{Start: 0, End: 10, Description: "errand"}); err != nil {
		t.Fatalf("setup booking failed: %v", err)
	}

	_, err := svc.BookTrip(ctx, 1, trip.TripInput{Start: 20, End: 5, Description: "bad"})
	if !apperror.IsInvalidTrip(err) {
		t.Fatalf("expected InvalidTrip, got %v", err)
	}
	if apperror.IsNotFound(err) {
		t.Fatalf("invalid window must not surface as NotFound")
	}
	if got := len(ledger.trips[1]); got != 1 {
		t.Fatalf("failed booking must not persist: %d trips", got)
	}
}

func TestBookTripUnknownCar(t *testing.T) {
	svc, _, ledger := newFixture()

	_, err := svc.BookTrip(context.Background(), 42, trip.TripInput{Start: 0, End: 10})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if len(ledger.trips) != 0 {
		t.Fatalf("nothing should persist for unknown car")
	}
}
