package auth

import "testing"

func TestKeyHashingLifecycle(t *testing.T) {
	key := "S3cureAdminKey!"
	hash, err := HashKey(key)
	if err != nil {
		t.Fatalf("unexpected error hashing key: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}

	if err := VerifyKey(hash, key); err != nil {
		t.Fatalf("expected key to verify, got error: %v", err)
	}

	if err := VerifyKey(hash, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong key")
	}
}

func TestVerifyKeyRejectsEmptyHash(t *testing.T) {
	if err := VerifyKey("  ", "anything"); err == nil {
		t.Fatal("expected error for empty stored hash")
	}
}
