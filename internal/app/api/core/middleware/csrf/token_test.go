package csrf

import (
	"bytes"
	"testing"
)

func Test_generateToken_length(t *testing.T) {
	token := generateToken(32)
	if len(token) != 32 {
		t.Errorf("expected 32 bytes, got %d", len(token))
	}
}

func Test_generateToken_unique(t *testing.T) {
	a := generateToken(32)
	b := generateToken(32)
	if bytes.Equal(a, b) {
		t.Error("expected two generated tokens to differ")
	}
}

func Test_encodeToken_roundTrip(t *testing.T) {
	token := generateToken(32)

	decoded, err := decodeToken(encodeToken(token))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(token, decoded) {
		t.Error("decoded token does not match original")
	}
}

func Test_decodeToken_invalid(t *testing.T) {
	if _, err := decodeToken("not base64 !!"); err == nil {
		t.Error("expected error for invalid base64 input")
	}
}

func Test_maskToken_roundTrip(t *testing.T) {
	token := generateToken(32)
	key := generateToken(32)

	masked := maskToken(token, key)
	if len(masked) != 64 {
		t.Errorf("expected 64 bytes, got %d", len(masked))
	}
	if !bytes.Equal(unmaskToken(masked), token) {
		t.Error("unmasked token does not match original")
	}
}

func Test_maskToken_keyLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched key length")
		}
	}()

	maskToken(generateToken(32), generateToken(16))
}

func Test_tokenEqual(t *testing.T) {
	token := generateToken(32)

	// the same token masked with different keys must still compare equal
	a := encodeToken(maskToken(token, generateToken(32)))
	b := encodeToken(maskToken(token, generateToken(32)))
	if !tokenEqual(a, b) {
		t.Error("expected masked variants of the same token to be equal")
	}

	c := encodeToken(maskToken(generateToken(32), generateToken(32)))
	if tokenEqual(a, c) {
		t.Error("expected different tokens to be unequal")
	}

	if tokenEqual("%%%", a) {
		t.Error("expected invalid token encoding to be unequal")
	}
}
