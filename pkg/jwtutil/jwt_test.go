package jwtutil

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	facilityID := uint(12)
	token, err := GenerateToken(3, "reporter1", "REPORTER", &facilityID, false, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 3 || claims.Username != "reporter1" || claims.Role != "REPORTER" {
		t.Fatalf("claims = %+v", claims)
	}
	if claims.FacilityID == nil || *claims.FacilityID != facilityID {
		t.Fatalf("facility claim = %v, want %d", claims.FacilityID, facilityID)
	}
	if claims.IsStaff || claims.IsSuperuser {
		t.Fatalf("unexpected staff flags in %+v", claims)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestAdminTokenCarriesNoFacility(t *testing.T) {
	token, err := GenerateToken(1, "root", "ADMIN", nil, true, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.FacilityID != nil {
		t.Fatalf("facility claim = %d, want absent", *claims.FacilityID)
	}
	if !claims.IsStaff || !claims.IsSuperuser {
		t.Fatalf("staff flags lost: %+v", claims)
	}
}
