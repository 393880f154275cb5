package otp

import (
	"fmt"
	"testing"

	libotp "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

func TestParse_TOTPFull(t *testing.T) {
	uri := "otpauth://totp/Label?secret=BASE32SECRET3232&issuer=Issuer&algorithm=SHA1&period=30"

	entry, err := Parse(uri)
	require.NoError(t, err)

	totp, ok := entry.(*Totp)
	require.True(t, ok, "expected *Totp, got %T", entry)
	assert.Equal(t, "BASE32SECRET3232", totp.Secret)
	assert.Equal(t, "Label", totp.Label)
	assert.Equal(t, "Issuer", totp.Issuer)
	assert.Equal(t, SHA1, totp.Algorithm)
	assert.Equal(t, uint32(30), totp.Step)
	assert.Equal(t, uri, totp.SourceURI)
	assert.Equal(t, KindTOTP, entry.Kind())
}

func TestParse_HOTPDefaults(t *testing.T) {
	entry, err := Parse("otpauth://hotp/Label?secret=ABC&counter=5")
	require.NoError(t, err)

	hotp, ok := entry.(*Hotp)
	require.True(t, ok, "expected *Hotp, got %T", entry)
	assert.Equal(t, "ABC", hotp.Secret)
	assert.Equal(t, "Label", hotp.Label)
	assert.Equal(t, "Label", hotp.Issuer)
	assert.Equal(t, SHA1, hotp.Algorithm)
	assert.Equal(t, uint64(5), hotp.Counter)
}

func TestParse_UnknownAlgorithmFallsBackToSHA1(t *testing.T) {
	entry, err := Parse("otpauth://totp/Label?secret=ABC&algorithm=MD5")
	require.NoError(t, err)
	assert.Equal(t, SHA1, entry.Base().Algorithm)
}

func TestParse_AlgorithmIsCaseSensitive(t *testing.T) {
	entry, err := Parse("otpauth://totp/Label?secret=ABC&algorithm=sha256")
	require.NoError(t, err)
	assert.Equal(t, SHA1, entry.Base().Algorithm)

	entry, err = Parse("otpauth://totp/Label?secret=ABC&algorithm=SHA512")
	require.NoError(t, err)
	assert.Equal(t, SHA512, entry.Base().Algorithm)
}

func TestParse_PeriodFallback(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want uint32
	}{
		{"absent", "otpauth://totp/L?secret=ABC", 30},
		{"non numeric", "otpauth://totp/L?secret=ABC&period=soon", 30},
		{"negative", "otpauth://totp/L?secret=ABC&period=-5", 30},
		{"zero", "otpauth://totp/L?secret=ABC&period=0", 30},
		{"explicit", "otpauth://totp/L?secret=ABC&period=60", 60},
		{"step alias", "otpauth://totp/L?secret=ABC&step=45", 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Parse(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.(*Totp).Step)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want error
	}{
		{"https link", "https://example.com", rerrors.ErrNotAnOtpLink},
		{"plain text", "hello world", rerrors.ErrNotAnOtpLink},
		{"unknown type", "otpauth://motp/Label?secret=ABC", rerrors.ErrUnknownOtpType},
		{"no label", "otpauth://totp/?secret=ABC", rerrors.ErrLabelMissing},
		{"no path", "otpauth://totp?secret=ABC", rerrors.ErrLabelMissing},
		{"no secret", "otpauth://totp/Label?issuer=X", rerrors.ErrSecretMissing},
		{"empty secret", "otpauth://totp/Label?secret=", rerrors.ErrSecretMissing},
		{"hotp no counter", "otpauth://hotp/Label?secret=ABC", rerrors.ErrCounterMissing},
		{"hotp bad counter", "otpauth://hotp/Label?secret=ABC&counter=five", rerrors.ErrMalformedCounter},
		{"hotp negative counter", "otpauth://hotp/Label?secret=ABC&counter=-1", rerrors.ErrMalformedCounter},
		{"malformed query", "otpauth://totp/Label?secret=%zz", rerrors.ErrNotAnOtpLink},
		{"non utf8 label", "otpauth://totp/%FF?secret=ABC", rerrors.ErrNotAnOtpLink},
		{"non utf8 issuer", "otpauth://totp/Label?secret=ABC&issuer=%FF", rerrors.ErrNotAnOtpLink},
		{"non utf8 secret", "otpauth://totp/Label?secret=%FF", rerrors.ErrNotAnOtpLink},
		{"non utf8 raw input", "otpauth://totp/Label\xff?secret=ABC", rerrors.ErrNotAnOtpLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Parse(tt.uri)
			assert.Nil(t, entry)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_LastDuplicateWins(t *testing.T) {
	entry, err := Parse("otpauth://totp/Label?secret=FIRST&secret=SECOND")
	require.NoError(t, err)
	assert.Equal(t, "SECOND", entry.Base().Secret)
}

func TestParse_EscapedLabel(t *testing.T) {
	entry, err := Parse("otpauth://totp/ACME%20Co:john%40example.com?secret=ABC&issuer=ACME%20Co")
	require.NoError(t, err)
	assert.Equal(t, "ACME Co:john@example.com", entry.Base().Label)
	assert.Equal(t, "ACME Co", entry.Base().Issuer)
}

func TestParse_IsDeterministic(t *testing.T) {
	uri := "otpauth://hotp/L?secret=ABC&counter=7&issuer=I&algorithm=SHA256"
	first, err := Parse(uri)
	require.NoError(t, err)
	second, err := Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEntry_FormatRedactsSecret(t *testing.T) {
	entry, err := Parse("otpauth://totp/Label?secret=TOPSECRETVALUE")
	require.NoError(t, err)

	for _, verb := range []string{"%v", "%+v", "%#v", "%s"} {
		assert.NotContains(t, fmt.Sprintf(verb, entry), "TOPSECRETVALUE", verb)
	}
}

func TestEntry_FormatRedactsValuesAndCommon(t *testing.T) {
	hotp := &Hotp{Common: Common{Secret: "TOPSECRETVALUE", Label: "L"}, Counter: 1}
	totp := &Totp{Common: Common{Secret: "TOPSECRETVALUE", Label: "L"}, Step: 30}

	values := []any{*hotp, *totp, hotp.Common, &totp.Common, hotp.Base()}
	for _, v := range values {
		for _, verb := range []string{"%v", "%+v", "%#v", "%s"} {
			assert.NotContains(t, fmt.Sprintf(verb, v), "TOPSECRETVALUE", "%s of %T", verb, v)
		}
	}
	assert.Contains(t, fmt.Sprintf("%v", hotp.Common), `label="L"`)
}

func TestEntry_Key(t *testing.T) {
	entry, err := Parse("otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP&issuer=GitHub&algorithm=SHA256&period=60&digits=8")
	require.NoError(t, err)

	key, err := entry.Key()
	require.NoError(t, err)
	assert.Equal(t, "totp", key.Type())
	assert.Equal(t, "GitHub", key.Issuer())
	assert.Equal(t, "alice", key.AccountName())
	assert.Equal(t, "JBSWY3DPEHPK3PXP", key.Secret())
	assert.Equal(t, uint64(60), key.Period())
	assert.Equal(t, libotp.AlgorithmSHA256, key.Algorithm())
	assert.Equal(t, libotp.DigitsEight, key.Digits())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&Totp{Common: Common{Label: "L", Secret: "S"}, Step: 30}))
	assert.ErrorIs(t, Validate(&Totp{Common: Common{Label: "L"}}), rerrors.ErrSecretMissing)
	assert.ErrorIs(t, Validate(&Hotp{Common: Common{Secret: "S"}}), rerrors.ErrLabelMissing)
	assert.ErrorIs(t, Validate(nil), rerrors.ErrSecretMissing)
}

func TestValidate_TypedNil(t *testing.T) {
	var hotp *Hotp
	var totp *Totp

	assert.NotPanics(t, func() {
		assert.ErrorIs(t, Validate(hotp), rerrors.ErrSecretMissing)
		assert.ErrorIs(t, Validate(totp), rerrors.ErrSecretMissing)
	})
}
