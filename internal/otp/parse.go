package otp

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// Parse builds an Entry from an otpauth:// URI such as
//
//	otpauth://totp/GitHub:alice?secret=JBSWY3DPEHPK3PXP&issuer=GitHub&period=30
//
// Unrecognized algorithm names resolve to SHA1 and a missing or unparsable
// TOTP period resolves to 30 seconds. Every other problem is an error from
// internal/errors; Parse never guesses a secret, label or counter.
func Parse(uri string) (Entry, error) {
	if !utf8.ValidString(uri) {
		return nil, fmt.Errorf("%w: invalid UTF-8", rerrors.ErrNotAnOtpLink)
	}
	u, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrNotAnOtpLink, err)
	}
	if !strings.EqualFold(u.Scheme, "otpauth") {
		return nil, rerrors.ErrNotAnOtpLink
	}

	kind := Kind(strings.ToLower(u.Host))
	if kind != KindHOTP && kind != KindTOTP {
		return nil, fmt.Errorf("%w: %q", rerrors.ErrUnknownOtpType, u.Host)
	}

	label, err := firstSegment(u)
	if err != nil {
		return nil, err
	}

	params, err := flatQuery(u.RawQuery)
	if err != nil {
		return nil, err
	}

	secret := params["secret"]
	if secret == "" {
		return nil, rerrors.ErrSecretMissing
	}

	issuer, ok := params["issuer"]
	if !ok || issuer == "" {
		issuer = label
	}

	// Percent-decoding can produce bytes TOML cannot store.
	for _, f := range [...]struct{ name, value string }{{"label", label}, {"issuer", issuer}, {"secret", secret}} {
		if !utf8.ValidString(f.value) {
			return nil, fmt.Errorf("%w: %s is not valid UTF-8", rerrors.ErrNotAnOtpLink, f.name)
		}
	}

	common := Common{
		Secret:    secret,
		Label:     label,
		Issuer:    issuer,
		Algorithm: algorithmOrDefault(params["algorithm"]),
		SourceURI: uri,
	}

	switch kind {
	case KindHOTP:
		raw, ok := params["counter"]
		if !ok {
			return nil, rerrors.ErrCounterMissing
		}
		counter, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", rerrors.ErrMalformedCounter, raw)
		}
		return &Hotp{Common: common, Counter: counter}, nil
	default:
		return &Totp{Common: common, Step: stepOrDefault(params)}, nil
	}
}

// firstSegment returns the unescaped first path segment after the type.
func firstSegment(u *url.URL) (string, error) {
	escaped := strings.TrimPrefix(u.EscapedPath(), "/")
	first, _, _ := strings.Cut(escaped, "/")
	if first == "" {
		return "", rerrors.ErrLabelMissing
	}
	label, err := url.PathUnescape(first)
	if err != nil {
		return "", fmt.Errorf("%w: %v", rerrors.ErrNotAnOtpLink, err)
	}
	if strings.TrimSpace(label) == "" {
		return "", rerrors.ErrLabelMissing
	}
	return label, nil
}

// flatQuery collapses the query into one value per key; the last duplicate wins.
func flatQuery(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed query: %v", rerrors.ErrNotAnOtpLink, err)
	}
	flat := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			flat[k] = v[len(v)-1]
		}
	}
	return flat, nil
}

func stepOrDefault(params map[string]string) uint32 {
	raw, ok := params["period"]
	if !ok {
		raw, ok = params["step"]
	}
	if !ok {
		return DefaultStep
	}
	step, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || step == 0 {
		return DefaultStep
	}
	return uint32(step)
}
