package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"washpro-backend/models"
	"washpro-backend/store"
)

func TestCreateCustomerNormalisesInput(t *testing.T) {
	f := newFixture(t)

	c, err := f.customers.Create(f.ctx, CustomerInput{
		Name:     "  Ana Lima ",
		Phone:    "+1 (555) 000-1111",
		Email:    "Ana@Example.com",
		Vehicles: []VehicleInput{{LicensePlate: "ab 123 cd"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Name != "Ana Lima" || c.Phone != "+15550001111" || c.Email != "ana@example.com" {
		t.Fatalf("unexpected customer %+v", c)
	}
	if len(c.Vehicles) != 1 || c.Vehicles[0].LicensePlate != "AB123CD" || c.Vehicles[0].VehicleType != "car" {
		t.Fatalf("unexpected vehicles %+v", c.Vehicles)
	}

	if _, err := f.customers.Create(f.ctx, CustomerInput{Name: "Dup", Phone: "+15550001111"}); !store.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation for repeated phone, got %v", err)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		in   CustomerInput
	}{
		{"blank name", CustomerInput{Name: " ", Phone: "+15550001111"}},
		{"bad phone", CustomerInput{Name: "Ana", Phone: "call me"}},
		{"blank plate", CustomerInput{Name: "Ana", Phone: "+15550001111", Vehicles: []VehicleInput{{LicensePlate: "  "}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.customers.Create(f.ctx, tt.in); !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCustomerSearch(t *testing.T) {
	f := newFixture(t)
	ana := f.customer(t, "Ana", "+15550001111")
	f.customer(t, "Ben", "+15550002222")

	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"ana", 1},
		{"2222", 1},
		{"1111 ab", 1},
		{"zzz", 0},
	}
	for _, tt := range tests {
		got, err := f.customers.List(f.ctx, tt.search)
		if err != nil {
			t.Fatalf("search %q: %v", tt.search, err)
		}
		if len(got) != tt.want {
			t.Fatalf("search %q: got %d customers, want %d", tt.search, len(got), tt.want)
		}
	}

	found, _ := f.customers.List(f.ctx, "1111 ab")
	if found[0].ID != ana.ID {
		t.Fatalf("plate search matched the wrong customer")
	}
}

func TestCustomerUpdateAndVehicles(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Ana", "+15550001111")

	name := "Ana Maria"
	updated, err := f.customers.Update(f.ctx, c.ID, CustomerUpdate{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || len(updated.Vehicles) != 1 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	bad := "nope"
	if _, err := f.customers.Update(f.ctx, c.ID, CustomerUpdate{Phone: &bad}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := f.customers.AddVehicle(f.ctx, c.ID, VehicleInput{LicensePlate: "xy 99"}); err != nil {
		t.Fatalf("add vehicle: %v", err)
	}
	if _, err := f.customers.AddVehicle(f.ctx, uuid.New(), VehicleInput{LicensePlate: "zz 11"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown customer, got %v", err)
	}
	if n := f.count(t, &models.Vehicle{}); n != 2 {
		t.Fatalf("expected 2 vehicles, got %d", n)
	}

	if err := f.customers.Delete(f.ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.customers.Get(f.ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted customer to be gone, got %v", err)
	}
}
