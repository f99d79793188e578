package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("p")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "p" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "p") {
		t.Fatalf("expected match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected mismatch")
	}
}
