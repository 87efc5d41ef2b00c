package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tnqbao/gau-bucketlist-service/config"
)

func testEnvConfig(secret string, expire int) *config.EnvConfig {
	cfg := &config.EnvConfig{}
	cfg.JWT.SecretKey = secret
	cfg.JWT.Expire = expire
	return cfg
}

func TestGenerateAndParseToken_Success(t *testing.T) {
	t.Parallel()

	cfg := testEnvConfig("super-secret", 600)

	token, err := GenerateToken("admin", cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	username, err := ParseToken(token, cfg)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if username != "admin" {
		t.Fatalf("username mismatch: got %q want %q", username, "admin")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	// Negative lifetime puts the expiry in the past; a token exactly at
	// its expiry instant is also rejected.
	cfg := testEnvConfig("secret", -1)

	token, err := GenerateToken("admin", cfg)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(token, cfg)
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken("admin", testEnvConfig("right-secret", 600))
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(token, testEnvConfig("wrong-secret", 600))
	if err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	for _, token := range []string{"", "garbage", "not.a.jwt"} {
		if _, err := ParseToken(token, testEnvConfig("k", 600)); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestExtractToken(t *testing.T) {
	t.Parallel()

	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"token header", map[string]string{"token": "abc123"}, "abc123"},
		{"bearer fallback", map[string]string{"Authorization": "Bearer xyz"}, "xyz"},
		{"token header wins", map[string]string{"token": "abc", "Authorization": "Bearer xyz"}, "abc"},
		{"non-bearer authorization ignored", map[string]string{"Authorization": "Basic abc"}, ""},
		{"no headers", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}
			if got := ExtractToken(c); got != tt.want {
				t.Fatalf("ExtractToken = %q, want %q", got, tt.want)
			}
		})
	}
}
