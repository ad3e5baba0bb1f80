package profile

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidateUsername(t *testing.T) {
	ok := []string{"alice1", "alice_01", "a1234", "john-doe", "alice.dev"}
	for _, v := range ok {
		if err := ValidateUsername(v); err != nil {
			t.Fatalf("expected valid username %q: %v", v, err)
		}
	}
	bad := []string{"", "1alice", "a", "ab", "a_", "a..", "a*", "toolongusername_over_32_chars_abc"}
	for _, v := range bad {
		if err := ValidateUsername(v); err == nil {
			t.Fatalf("expected invalid username %q", v)
		}
	}
}

func TestValidateRole(t *testing.T) {
	for _, r := range []Role{RoleLandlord, RoleTenant, RoleBuyer, RoleSeller} {
		if err := ValidateRole(r); err != nil {
			t.Fatalf("expected valid role %q: %v", r, err)
		}
	}
	if err := ValidateRole("ADMIN"); err == nil {
		t.Fatalf("expected invalid role")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Fatalf("expected password to verify")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatalf("expected wrong password to fail")
	}
	if err := ValidatePassword("short"); err == nil {
		t.Fatalf("expected error for short password")
	}
}

func TestHasSale(t *testing.T) {
	id := uuid.New()
	p := &Profile{Sales: []uuid.UUID{uuid.New(), id}}
	if !p.HasSale(id) {
		t.Fatalf("expected sale %s in set", id)
	}
	if p.HasSale(uuid.New()) {
		t.Fatalf("unexpected sale in set")
	}
	if (&Profile{Role: RoleTenant}).IsLandlord() {
		t.Fatalf("tenant is not a landlord")
	}
}
