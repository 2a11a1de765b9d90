// Package blob issues and verifies signed download URLs for project blobs.
package blob

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ragfront/ragfront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.BlobSigner = (*Signer)(nil)

// blobClaims bind a token to one blob in one container.
type blobClaims struct {
	Container string `json:"container"`
	Blob      string `json:"blob"`
	jwt.RegisteredClaims
}

// Signer issues HMAC-signed time-limited URLs served by the download
// handler.
type Signer struct {
	secret  []byte
	baseURL string
}

// NewSigner creates a Signer. baseURL is the externally reachable server
// address the links point at.
func NewSigner(secret, baseURL string) *Signer {
	return &Signer{secret: []byte(secret), baseURL: strings.TrimRight(baseURL, "/")}
}

// ContainerName derives the blob container of a project: the project name
// with separators stripped, wrapped in the fixed prefix and suffix.
func ContainerName(projectName string) string {
	clean := strings.NewReplacer("-", "", "_", "").Replace(projectName)
	return "graphrag" + strings.ToLower(clean) + "cache"
}

func (s *Signer) SignedURL(projectName, blobName string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := blobClaims{
		Container: ContainerName(projectName),
		Blob:      blobName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing blob token: %w", err)
	}
	return fmt.Sprintf("%s/download/%s/%s?token=%s",
		s.baseURL, ContainerName(projectName), url.PathEscape(blobName), token), nil
}

// Verify checks a download token and returns the (container, blob) pair it
// grants access to.
func (s *Signer) Verify(tokenString string) (container, blob string, err error) {
	var claims blobClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("parsing blob token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid blob token")
	}
	return claims.Container, claims.Blob, nil
}
