package paymongo

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "whsk_test_secret"

func TestComputeSignature_KnownVector(t *testing.T) {
	// echo -n '1700000000.{}' | openssl dgst -sha256 -hmac whsk_test_secret
	got := ComputeSignature(testSecret, "1700000000", []byte("{}"))
	require.Equal(t, "2769f00f486e4d4ba9138a464c07a350f8c32ac5137cdeae66852527ee88ff36", got)
	require.NotEqual(t, got, ComputeSignature(testSecret, "1700000001", []byte("{}")))
}

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature("v1=abcdef, t=1700000000,te=ignored")
	require.NoError(t, err)
	require.Equal(t, "1700000000", sig.Timestamp)
	require.Equal(t, "abcdef", sig.V1)
}

func TestParseSignature_MissingElements(t *testing.T) {
	for _, header := range []string{"t=1700000000", "v1=abcdef", "garbage", "t=,v1="} {
		_, err := ParseSignature(header)
		require.ErrorIs(t, err, ErrInvalidSignatureFormat, header)
	}
}

func TestVerifier_AcceptsValidSignature(t *testing.T) {
	body := []byte(`{"data":{"id":"evt_1"}}`)
	header := SignHeader(testSecret, time.Unix(1700000000, 0), body)

	err := Verifier{Secret: testSecret}.Verify(header, body)
	require.NoError(t, err)
}

func TestVerifier_AcceptsUppercaseHex(t *testing.T) {
	body := []byte(`{}`)
	sig := ComputeSignature(testSecret, "1700000000", body)

	err := Verifier{Secret: testSecret}.Verify("t=1700000000,v1="+strings.ToUpper(sig), body)
	require.NoError(t, err)
}

func TestVerifier_RejectsMissingHeaderOrSecret(t *testing.T) {
	body := []byte(`{}`)
	header := SignHeader(testSecret, time.Unix(1700000000, 0), body)

	require.ErrorIs(t, Verifier{Secret: testSecret}.Verify("", body), ErrMissingSignature)
	require.ErrorIs(t, Verifier{}.Verify(header, body), ErrMissingSignature)
}

func TestVerifier_RejectsTamperedBody(t *testing.T) {
	header := SignHeader(testSecret, time.Unix(1700000000, 0), []byte(`{"amount":100}`))

	err := Verifier{Secret: testSecret}.Verify(header, []byte(`{"amount":999}`))
	require.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifier_RejectsWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	header := SignHeader("another-secret", time.Unix(1700000000, 0), body)

	err := Verifier{Secret: testSecret}.Verify(header, body)
	require.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifier_RejectsNonHexSignature(t *testing.T) {
	err := Verifier{Secret: testSecret}.Verify("t=1700000000,v1=not-hex", []byte(`{}`))
	require.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestVerifier_Tolerance(t *testing.T) {
	body := []byte(`{}`)
	signedAt := time.Unix(1700000000, 0)
	header := SignHeader(testSecret, signedAt, body)

	v := Verifier{
		Secret:    testSecret,
		Tolerance: 5 * time.Minute,
		Now:       func() time.Time { return signedAt.Add(4 * time.Minute) },
	}
	require.NoError(t, v.Verify(header, body))

	v.Now = func() time.Time { return signedAt.Add(6 * time.Minute) }
	require.ErrorIs(t, v.Verify(header, body), ErrSignatureExpired)

	v.Now = func() time.Time { return signedAt.Add(-6 * time.Minute) }
	require.ErrorIs(t, v.Verify(header, body), ErrSignatureExpired)
}

func TestVerifier_ToleranceRejectsNonNumericTimestamp(t *testing.T) {
	body := []byte(`{}`)
	header := "t=yesterday,v1=" + ComputeSignature(testSecret, "yesterday", body)

	require.NoError(t, Verifier{Secret: testSecret}.Verify(header, body))

	v := Verifier{Secret: testSecret, Tolerance: time.Minute}
	require.ErrorIs(t, v.Verify(header, body), ErrInvalidSignatureFormat)
}
