package identity

import "testing"

func TestPasswordVerifierRoundTrip(t *testing.T) {
	_, verifier, err := NewPasswordVerifier("a correct horse battery staple!")
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}
	ok, err := VerifyPassword(verifier, "a correct horse battery staple!")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("expected the correct password to verify")
	}
}

func TestPasswordVerifierRejectsWrongPassword(t *testing.T) {
	_, verifier, err := NewPasswordVerifier("a correct horse battery staple!")
	if err != nil {
		t.Fatalf("NewPasswordVerifier: %v", err)
	}
	ok, err := VerifyPassword(verifier, "a wrong horse battery staple!!!")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("expected the wrong password to fail verification")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"short1!", true},
		{"alllowercaseandlong", true},
		{"ALLUPPERCASEANDLONG", true},
		{"NoSpecialChar12345", true},
		{"Valid-Password123!", false},
	}
	for _, c := range cases {
		err := ValidatePassword(c.password)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidatePassword(%q): err = %v, wantErr = %v", c.password, err, c.wantErr)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	if err := ValidateUsername("ab"); err == nil {
		t.Error("expected a too-short username to be rejected")
	}
	if err := ValidateUsername("valid_user-1"); err != nil {
		t.Errorf("expected a valid username to pass: %v", err)
	}
	if err := ValidateUsername("has space"); err == nil {
		t.Error("expected a username with whitespace to be rejected")
	}
}

func TestCanonicalUsernameFoldsCase(t *testing.T) {
	if got := CanonicalUsername("AliceBob"); got != "alicebob" {
		t.Errorf("CanonicalUsername = %s, want alicebob", got)
	}
}
