package password

import "testing"

func TestHashVerify_RoundTrip(t *testing.T) {
	t.Parallel()
	phc, err := Hash(Default, "Password1!")
	if err != nil {
		t.Fatalf("Hash err: %v", err)
	}
	if !Verify("Password1!", phc) {
		t.Fatal("expected verify to succeed")
	}
	if Verify("Password2!", phc) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestHash_EmptyRejected(t *testing.T) {
	t.Parallel()
	if _, err := Hash(Default, ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerify_MalformedPHC(t *testing.T) {
	t.Parallel()
	if Verify("whatever", "$argon2id$garbage") {
		t.Fatal("malformed PHC must never verify")
	}
	if Verify("whatever", "") {
		t.Fatal("empty PHC must never verify")
	}
}
