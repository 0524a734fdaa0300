package account

import (
	"testing"
	"time"
)

// TestValidate covers account invariants.
func TestValidate(t *testing.T) {
	ok := Account{ID: "a1", Email: "coach@club.example", Role: RoleCoach}
	if err := ok.Validate(); err != nil {
		t.Errorf("expected valid account, got %v", err)
	}

	tests := []struct {
		name string
		a    Account
		want error
	}{
		{"empty email", Account{Role: RoleAdmin}, ErrEmptyEmail},
		{"no at sign", Account{Email: "nope", Role: RoleAdmin}, ErrInvalidEmail},
		{"bad role", Account{Email: "x@y.z", Role: "owner"}, ErrInvalidRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.a.Validate(); err != tt.want {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

// TestPasswordRoundTrip verifies hashing and verification.
func TestPasswordRoundTrip(t *testing.T) {
	var a Account
	if err := a.SetPassword("short"); err != ErrPasswordTooShort {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
	if err := a.SetPassword(""); err != ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
	if err := a.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if err := a.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("expected matching password, got %v", err)
	}
	if err := a.CheckPassword("wrong password!!"); err != ErrWrongPassword {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestLockout verifies the failed-login lockout policy.
func TestLockout(t *testing.T) {
	var a Account
	for i := 0; i < MaxFailedLogins-1; i++ {
		a.RecordFailedLogin()
	}
	if a.IsLocked() {
		t.Fatal("account locked before threshold")
	}
	a.RecordFailedLogin()
	if !a.IsLocked() {
		t.Fatal("account not locked at threshold")
	}
	a.ResetFailedLogins()
	if a.IsLocked() || a.FailedLogins != 0 {
		t.Error("reset did not clear lockout")
	}
}

// TestLockExpiry verifies a past LockedUntil no longer locks.
func TestLockExpiry(t *testing.T) {
	a := Account{LockedUntil: time.Now().Add(-time.Minute)}
	if a.IsLocked() {
		t.Error("expired lock should not count as locked")
	}
}

// TestRolePredicates verifies role helpers.
func TestRolePredicates(t *testing.T) {
	admin := Account{Role: RoleAdmin}
	coach := Account{Role: RoleCoach}
	player := Account{Role: RolePlayer}

	if !admin.IsAdmin() || !admin.IsStaff() {
		t.Error("admin predicates wrong")
	}
	if coach.IsAdmin() || !coach.IsStaff() {
		t.Error("coach predicates wrong")
	}
	if player.IsAdmin() || player.IsStaff() {
		t.Error("player predicates wrong")
	}
}
