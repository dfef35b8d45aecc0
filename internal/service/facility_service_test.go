package service

import (
	"testing"
)

func TestFacilityCreateDefaultsAndDuplicates(t *testing.T) {
	facilities := newMemFacilityRepo()
	svc := NewFacilityService(facilities, nil)

	f, err := svc.Create("General Hospital", "", "", "off the ring road")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if f.Country != "Unknown" || f.City != "Unknown" {
		t.Fatalf("defaults not applied: %+v", f)
	}
	if f.LocationDetail != "off the ring road" {
		t.Fatalf("location detail = %q", f.LocationDetail)
	}

	_, err = svc.Create("General Hospital", "", "", "")
	if ve, ok := AsValidationError(err); !ok || ve.Fields["facility_name"] == "" {
		t.Fatalf("duplicate: err = %v, want facility_name validation error", err)
	}

	// Same name in a different city is a distinct facility.
	if _, err := svc.Create("General Hospital", "Kenya", "Nairobi", ""); err != nil {
		t.Fatalf("distinct triple rejected: %v", err)
	}

	if _, err := svc.Create("", "Kenya", "Nairobi", ""); err == nil {
		t.Fatal("blank name accepted")
	}
}

func TestFacilityListOrderedByName(t *testing.T) {
	facilities := newMemFacilityRepo()
	svc := NewFacilityService(facilities, nil)

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := svc.Create(name, "Kenya", "Nairobi", ""); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	list, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Alpha", "Mid", "Zeta"}
	for i, f := range list {
		if f.Name != want[i] {
			t.Fatalf("list[%d] = %q, want %q", i, f.Name, want[i])
		}
	}
	if len(list) != len(want) {
		t.Fatalf("list length = %d", len(list))
	}
}
