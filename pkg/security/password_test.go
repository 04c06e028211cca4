package security

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if hash == "hunter2" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !VerifyPassword(hash, "hunter2") {
		t.Error("correct password should verify")
	}

	if VerifyPassword(hash, "hunter3") {
		t.Error("wrong password should not verify")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	b, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if a == b {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-hash", "hunter2") {
		t.Error("malformed hash should fail verification")
	}

	if VerifyPassword("", "hunter2") {
		t.Error("empty hash should fail verification")
	}
}
