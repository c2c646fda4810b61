package car

import (
	"testing"

	"github.com/CarShareLink/CarShareLink/internal/common/apperror"
)

func TestCarInputDefaults(t *testing.T) {
	c := FromInput(CarInput{Size: "m", Doors: 5})
	if c.Fuel != FuelElectric {
		t.Fatalf("expected default fuel electric, got %s", c.Fuel)
	}
	if c.Transmission != TransmissionAuto {
		t.Fatalf("expected default transmission auto, got %s", c.Transmission)
	}

	c = FromInput(CarInput{Size: "m", Doors: 5, Fuel: FuelHybrid, Transmission: TransmissionManual})
	if c.Fuel != FuelHybrid || c.Transmission != TransmissionManual {
		t.Fatalf("explicit values overridden: %+v", c)
	}
}

func TestCarInputValidate(t *testing.T) {
	if err := (CarInput{Size: "m", Doors: 5}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (CarInput{Doors: 5}).Validate(); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for missing size, got %v", err)
	}
	if err := (CarInput{Size: "m", Doors: 0}).Validate(); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error for zero doors, got %v", err)
	}
}

func TestApplyKeepsID(t *testing.T) {
	c := Car{ID: 7, Size: "s", Fuel: FuelDiesel, Doors: 3, Transmission: TransmissionManual}
	in := CarInput{Size: "l", Doors: 5, Fuel: FuelHybrid, Transmission: TransmissionAuto}
	in.apply(&c)
	if c.ID != 7 {
		t.Fatalf("id must not change on update, got %d", c.ID)
	}
	if c.Size != "l" || c.Doors != 5 || c.Fuel != FuelHybrid || c.Transmission != TransmissionAuto {
		t.Fatalf("mutable fields not replaced: %+v", c)
	}
}

func TestToOutput(t *testing.T) {
	c := Car{ID: 1, Size: "m", Fuel: FuelHybrid, Doors: 5, Transmission: TransmissionAuto}
	out := ToOutput(&c)
	if out.ID != 1 || out.Size != "m" || out.Fuel != FuelHybrid || out.Doors != 5 || out.Transmission != TransmissionAuto {
		t.Fatalf("unexpected output: %+v", out)
	}
}
