package paymongo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries "t=<timestamp>,v1=<hex hmac>".
const SignatureHeader = "paymongo-signature-v1"

var (
	ErrMissingSignature       = errors.New("webhook signature or secret key is missing")
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
	ErrSignatureMismatch      = errors.New("webhook signature mismatch, request is not from paymongo")
	ErrSignatureExpired       = errors.New("webhook signature timestamp outside allowed tolerance")
)

type Signature struct {
	Timestamp string
	V1        string
}

// ParseSignature extracts the t and v1 elements. Element order does not
// matter and unknown elements are ignored.
func ParseSignature(header string) (Signature, error) {
	var sig Signature
	for _, element := range strings.Split(header, ",") {
		element = strings.TrimSpace(element)
		if value, ok := strings.CutPrefix(element, "t="); ok && sig.Timestamp == "" {
			sig.Timestamp = strings.TrimSpace(value)
			continue
		}
		if value, ok := strings.CutPrefix(element, "v1="); ok && sig.V1 == "" {
			sig.V1 = strings.TrimSpace(value)
		}
	}
	if sig.Timestamp == "" || sig.V1 == "" {
		return Signature{}, ErrInvalidSignatureFormat
	}
	return sig, nil
}

// ComputeSignature returns hex(HMAC-SHA256(secret, timestamp + "." + body)).
func ComputeSignature(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(timestamp))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignHeader builds a header value the way PayMongo does. Used by tests and
// local tooling to replay deliveries.
func SignHeader(secret string, at time.Time, body []byte) string {
	timestamp := strconv.FormatInt(at.Unix(), 10)
	return fmt.Sprintf("t=%s,v1=%s", timestamp, ComputeSignature(secret, timestamp, body))
}

type Verifier struct {
	Secret string
	// Tolerance bounds the distance between the signed timestamp and now.
	// Zero disables the check.
	Tolerance time.Duration
	Now       func() time.Time
}

func (v Verifier) Verify(header string, body []byte) error {
	if strings.TrimSpace(header) == "" || v.Secret == "" {
		return ErrMissingSignature
	}

	sig, err := ParseSignature(header)
	if err != nil {
		return err
	}

	if v.Tolerance > 0 {
		if err := v.checkTimestamp(sig.Timestamp); err != nil {
			return err
		}
	}

	provided, err := hex.DecodeString(sig.V1)
	if err != nil {
		return ErrSignatureMismatch
	}
	expected, _ := hex.DecodeString(ComputeSignature(v.Secret, sig.Timestamp, body))
	if !hmac.Equal(provided, expected) {
		return ErrSignatureMismatch
	}

	return nil
}

func (v Verifier) checkTimestamp(raw string) error {
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ErrInvalidSignatureFormat
	}

	now := time.Now()
	if v.Now != nil {
		now = v.Now()
	}

	skew := now.Sub(time.Unix(seconds, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > v.Tolerance {
		return ErrSignatureExpired
	}
	return nil
}
