package crypto

import "testing"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewEncryptor([]byte("card-data-test-key"))
	if err != nil {
		t.Fatalf("new encryptor: %v", err)
	}

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "card number", plaintext: "9430-1234-5678-0011"},
		{name: "cvc", plaintext: "942"},
		{name: "empty", plaintext: ""},
		{name: "unicode", plaintext: "현대카드"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := enc.Encrypt(tt.plaintext)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}
			if tt.plaintext != "" && ct == tt.plaintext {
				t.Fatal("ciphertext equals plaintext")
			}
			pt, err := enc.Decrypt(ct)
			if err != nil {
				t.Fatalf("decrypt: %v", err)
			}
			if pt != tt.plaintext {
				t.Errorf("expected %q, got %q", tt.plaintext, pt)
			}
		})
	}
}

func TestEncryptNonDeterministic(t *testing.T) {
	enc, err := NewEncryptor([]byte("card-data-test-key"))
	if err != nil {
		t.Fatalf("new encryptor: %v", err)
	}

	a, _ := enc.Encrypt("9430-1234-5678-0011")
	b, _ := enc.Encrypt("9430-1234-5678-0011")
	if a == b {
		t.Error("expected distinct ciphertexts for same plaintext (random nonce)")
	}
}

func TestDecryptGarbage(t *testing.T) {
	enc, err := NewEncryptor([]byte("card-data-test-key"))
	if err != nil {
		t.Fatalf("new encryptor: %v", err)
	}

	if _, err := enc.Decrypt("!!!not-base64!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := enc.Decrypt("c2hvcnQ="); err == nil {
		t.Error("expected error for too-short ciphertext")
	}
}

func TestNewEncryptorEmptyKey(t *testing.T) {
	if _, err := NewEncryptor(nil); err == nil {
		t.Error("expected error for empty key")
	}
}
