package auth

import (
	"strings"
	"testing"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id encoding, got %s", hash)
	}
	if hash == "Str0ng!pass" {
		t.Error("hash must not equal the password")
	}

	if !svc.Verify(hash, "Str0ng!pass") {
		t.Error("correct password must verify")
	}
	if svc.Verify(hash, "wrong-password") {
		t.Error("wrong password must not verify")
	}
}

func TestPasswordServiceImpl_HashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestPasswordServiceImpl_Verify_Malformed(t *testing.T) {
	svc := NewPasswordService()

	for _, bad := range []string{"", "plaintext", "$bcrypt$whatever", "$argon2id$v=19$m=bad$x$y"} {
		if svc.Verify(bad, "anything") {
			t.Errorf("malformed hash %q must not verify", bad)
		}
	}
}
