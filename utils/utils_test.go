package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("s3cret!", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatalf("expected mismatch")
	}
	if _, err := HashPassword(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("secret", time.Hour, "user-1", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatalf("expected signature error")
	}
	if _, err := GenerateToken("", time.Hour, "user-1", "admin"); err == nil {
		t.Fatalf("expected missing secret error")
	}
}

func TestAuthMiddlewareRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AuthMiddleware("secret", "admin"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextUserID))
	})

	adminToken, _ := GenerateToken("secret", time.Hour, "a-1", "admin")
	washerToken, _ := GenerateToken("secret", time.Hour, "w-1", "washer")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + washerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	start, end, err := ParseDateRange("", "", now)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if !start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected default range %v - %v", start, end)
	}

	start, end, err = ParseDateRange("2024-01-10", "2024-01-12", now)
	if err != nil {
		t.Fatalf("explicit: %v", err)
	}
	if DaysBetween(start, end) != 3 {
		t.Fatalf("expected inclusive 3 day range, got %d", DaysBetween(start, end))
	}

	if _, _, err := ParseDateRange("2024-02-01", "2024-01-01", now); err == nil {
		t.Fatalf("expected inverted range error")
	}
	if _, _, err := ParseDateRange("01/02/2024", "", now); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestParseDateRangeCapsLength(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	start, end, err := ParseDateRange("2024-01-01", "2024-12-31", now)
	if err != nil {
		t.Fatalf("a full leap year must be accepted: %v", err)
	}
	if DaysBetween(start, end) != MaxRangeDays {
		t.Fatalf("expected %d days, got %d", MaxRangeDays, DaysBetween(start, end))
	}

	if _, _, err := ParseDateRange("2024-01-01", "2025-01-01", now); err == nil {
		t.Fatalf("expected error for a 367 day range")
	}
	if _, _, err := ParseDateRange("0001-01-01", "", now); err == nil {
		t.Fatalf("expected error for an unbounded range")
	}
}

func TestValidationHelpers(t *testing.T) {
	if !ValidatePhone("+1 (555) 123-4567") {
		t.Fatalf("expected phone to validate")
	}
	if ValidatePhone("abc") {
		t.Fatalf("expected invalid phone")
	}
	if !ValidateEmail("owner@washpro.example") || ValidateEmail("owner@localhost") || ValidateEmail("no at sign") {
		t.Fatalf("unexpected email validation")
	}
	if got := NormalizePlate(" ab 12 cd "); got != "AB12CD" {
		t.Fatalf("unexpected plate %q", got)
	}
}

func TestTemporaryPassword(t *testing.T) {
	a, b := GenerateTemporaryPassword(), GenerateTemporaryPassword()
	if len(a) != 12 || a == b {
		t.Fatalf("unexpected passwords %q %q", a, b)
	}
}
