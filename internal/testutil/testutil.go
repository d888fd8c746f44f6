package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"time"

	"mylib/internal/auth"
	"mylib/internal/inventory"
	"mylib/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

// TestUser is a fixture user for handler and middleware tests.
var TestUser = user.User{
	ID:        42,
	Username:  "alice",
	Role:      "USER",
	CreatedAt: time.Now(),
}

// TestAdminUser is a fixture admin for tests.
var TestAdminUser = user.User{
	ID:        1,
	Username:  "admin",
	Role:      "ADMIN",
	CreatedAt: time.Now(),
}

// TestBook is a fixture book with copies available.
var TestBook = inventory.Book{
	ID:     7,
	ISBN:   "9780134190440",
	Title:  "The Go Programming Language",
	Author: "Donovan & Kernighan",
	Qty:    2,
}

// GenerateTestToken issues a short-lived token for a test user.
func GenerateTestToken(secret string, userID int64, role string) string {
	token, _ := auth.GenerateToken(secret, userID, role, time.Hour)
	return token
}

// GenerateExpiredToken issues a token that is already expired.
func GenerateExpiredToken(secret string, userID int64, role string) string {
	c := auth.Claims{
		Sub:  strconv.FormatInt(userID, 10),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest builds a JSON request for handler tests.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth builds a JSON request carrying a bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}
