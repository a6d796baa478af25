package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		verify   string
		want     bool
	}{
		{"correct password", "longenough1", "longenough1", true},
		{"wrong password", "longenough1", "longenough2", false},
		{"empty attempt", "longenough1", "", false},
		{"unicode password", "pässwörd-ø", "pässwörd-ø", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := svc.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Fatal("Hash() returned the plaintext")
			}
			if got := svc.Verify(hash, tt.verify); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordService_VerifyMutatedDigest(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("longenough1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// Flip one character of the digest; verification must fail.
	last := hash[len(hash)-1]
	replacement := byte('a')
	if last == 'a' {
		replacement = 'b'
	}
	mutated := hash[:len(hash)-1] + string(replacement)
	if svc.Verify(mutated, "longenough1") {
		t.Error("Verify() accepted a mutated digest")
	}
}

func TestPasswordService_VerifyMalformedDigest(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-bcrypt-hash", strings.Repeat("x", 60)} {
		if svc.Verify(digest, "anything") {
			t.Errorf("Verify(%q) accepted a malformed digest", digest)
		}
	}
}

func TestNewPasswordService_CostClamping(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum", 1, bcrypt.DefaultCost},
		{"above maximum", 99, bcrypt.DefaultCost},
		{"valid cost", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewPasswordService(tt.cost).(*PasswordServiceImpl)
			if svc.cost != tt.want {
				t.Errorf("cost = %d, want %d", svc.cost, tt.want)
			}
		})
	}
}
