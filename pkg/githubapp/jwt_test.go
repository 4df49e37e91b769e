package githubapp

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// generateTestKeyPair generates an RSA key pair for testing.
func generateTestKeyPair(t *testing.T) (*rsa.PrivateKey, []byte) {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	pemData := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	return privateKey, pemData
}

func TestNewJWTGenerator(t *testing.T) {
	_, pemData := generateTestKeyPair(t)

	tests := []struct {
		name    string
		appID   string
		pemData []byte
		wantErr bool
	}{
		{
			name:    "valid key",
			appID:   "12345",
			pemData: pemData,
			wantErr: false,
		},
		{
			name:    "empty app id",
			appID:   "",
			pemData: pemData,
			wantErr: true,
		},
		{
			name:    "invalid PEM data",
			appID:   "12345",
			pemData: []byte("not a valid pem"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewJWTGenerator(tt.appID, tt.pemData)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if gen == nil {
				t.Error("expected generator, got nil")
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	privateKey, pemData := generateTestKeyPair(t)

	gen, err := NewJWTGenerator("12345", pemData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signed, err := gen.GenerateToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := jwt.ParseWithClaims(signed, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return &privateKey.PublicKey, nil
	})
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		t.Fatal("expected valid RegisteredClaims token")
	}
	if claims.Issuer != "12345" {
		t.Errorf("expected issuer 12345, got %q", claims.Issuer)
	}
	if until := time.Until(claims.ExpiresAt.Time); until > MaxJWTDuration {
		t.Errorf("token lives too long: %v", until)
	}
}

func TestGenerateTokenWithDuration(t *testing.T) {
	_, pemData := generateTestKeyPair(t)

	gen, err := NewJWTGenerator("12345", pemData)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := gen.GenerateTokenWithDuration(0); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := gen.GenerateTokenWithDuration(MaxJWTDuration + time.Minute); err == nil {
		t.Error("expected error for duration above the cap")
	}
	if _, err := gen.GenerateTokenWithDuration(time.Minute); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
