package cancel

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// TokenPayload is the decoded content of a cancellation magic-link token.
// It only ever exists in memory; what gets stored and mailed is the encoded
// token string.
type TokenPayload struct {
	BookingID   string
	OrderNumber string
	Email       string
	IssuedAt    int64 // milliseconds since epoch
}

// Token wire format:
//
//	base64url( bookingId:orderNumber:email:issuedAtMillis:base64url(HMAC-SHA256(secret, payload)) )
//
// where payload is the first four segments joined by ":". base64url is the
// unpadded URL-safe alphabet. The issued-at timestamp is part of the signed
// message, so two tokens minted at different milliseconds always differ.
// No expiry is embedded; usability is decided against live booking state by
// the expiry policy.

// GenerateToken mints a signed cancellation token bound to the given booking
// identity, issued at the current time.
func GenerateToken(bookingID, orderNumber, email, secret string) string {
	return generateTokenAt(bookingID, orderNumber, email, secret, time.Now())
}

func generateTokenAt(bookingID, orderNumber, email, secret string, at time.Time) string {
	payload := strings.Join([]string{
		bookingID,
		orderNumber,
		email,
		strconv.FormatInt(at.UnixMilli(), 10),
	}, ":")
	signed := payload + ":" + signPayload(payload, secret)
	return base64.RawURLEncoding.EncodeToString([]byte(signed))
}

// ValidateToken decodes and verifies a token. It returns the payload on
// success, or one of ErrTokenFormat, ErrTokenTimestamp, ErrTokenSignature.
// Cryptographic validity says nothing about business usability; callers must
// still run the expiry policy against the live booking.
func ValidateToken(token, secret string) (*TokenPayload, error) {
	// Tolerate padded input; the canonical encoding is unpadded.
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, ErrTokenFormat
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 5 {
		return nil, ErrTokenFormat
	}

	issuedAt, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return nil, ErrTokenTimestamp
	}

	expected := signPayload(strings.Join(parts[:4], ":"), secret)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(parts[4])) != 1 {
		return nil, ErrTokenSignature
	}

	return &TokenPayload{
		BookingID:   parts[0],
		OrderNumber: parts[1],
		Email:       parts[2],
		IssuedAt:    issuedAt,
	}, nil
}

// BuildCancellationLink returns the magic-link URL placed in customer email.
func BuildCancellationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "?token=" + token
}

func signPayload(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
