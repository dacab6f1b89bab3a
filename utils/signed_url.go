package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"time"
)

// SignURL appends HMAC-SHA256 token and expiration query parameters to a URL.
// The result can be validated by ValidateSignedURL without authentication
// headers, so uploaded images can be fetched by external platform servers.
func SignURL(rawURL string, key []byte, validFor time.Duration) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL // return unchanged on malformed input
	}

	expires := strconv.FormatInt(time.Now().Add(validFor).Unix(), 10)
	token := generateHMAC(parsed.Path, expires, key)

	q := parsed.Query()
	q.Set("expires", expires)
	q.Set("token", token)
	parsed.RawQuery = q.Encode()

	return parsed.String()
}

// ValidateSignedURL checks the HMAC token and expiration against the request
// path. Returns false if the token is missing, expired, or does not match.
func ValidateSignedURL(path, token, expires string, key []byte) bool {
	if token == "" || expires == "" {
		return false
	}

	expiresUnix, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return false
	}

	if time.Now().Unix() > expiresUnix {
		return false
	}

	expected := generateHMAC(path, expires, key)
	return hmac.Equal([]byte(token), []byte(expected))
}

// generateHMAC produces a hex-encoded HMAC-SHA256 over "path\nexpires".
func generateHMAC(path, expires string, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(path + "\n" + expires))
	return hex.EncodeToString(mac.Sum(nil))
}
