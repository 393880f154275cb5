package otp

import (
	"fmt"
	"net/url"
	"strconv"

	libotp "github.com/pquerna/otp"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// Kind names an Entry variant.
type Kind string

const (
	KindHOTP Kind = "hotp"
	KindTOTP Kind = "totp"
)

// Entry is a single OTP credential. The only implementations are *Hotp and
// *Totp; switch over both when consuming one:
//
//	switch e := entry.(type) {
//	case *otp.Hotp:
//	case *otp.Totp:
//	}
type Entry interface {
	// Base returns the fields shared by every variant.
	Base() *Common
	// Kind reports the variant.
	Kind() Kind
	// Key converts the entry into a github.com/pquerna/otp key.
	Key() (*libotp.Key, error)

	sealed()
}

// Common holds the fields shared by HOTP and TOTP credentials.
type Common struct {
	Secret    string
	Label     string
	Issuer    string
	Algorithm Algorithm
	SourceURI string
}

// Hotp is a counter based credential.
type Hotp struct {
	Common
	Counter uint64
}

// Totp is a time-step based credential.
type Totp struct {
	Common
	Step uint32
}

func (h *Hotp) Base() *Common { return &h.Common }
func (t *Totp) Base() *Common { return &t.Common }

func (*Hotp) Kind() Kind { return KindHOTP }
func (*Totp) Kind() Kind { return KindTOTP }

func (*Hotp) sealed() {}
func (*Totp) sealed() {}

// Format prints the shared fields without the secret.
func (c Common) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Common{label=%q issuer=%q algorithm=%s secret=[REDACTED]}",
		c.Label, c.Issuer, c.Algorithm)
}

// Format prints the entry without its secret. Value receivers keep copies
// such as *h redacted too.
func (h Hotp) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Hotp{label=%q issuer=%q algorithm=%s counter=%d secret=[REDACTED]}",
		h.Label, h.Issuer, h.Algorithm, h.Counter)
}

func (t Totp) Format(f fmt.State, _ rune) {
	fmt.Fprintf(f, "Totp{label=%q issuer=%q algorithm=%s step=%d secret=[REDACTED]}",
		t.Label, t.Issuer, t.Algorithm, t.Step)
}

// Validate checks the invariants every stored entry must hold.
func Validate(e Entry) error {
	switch v := e.(type) {
	case nil:
		return fmt.Errorf("nil entry: %w", rerrors.ErrSecretMissing)
	case *Hotp:
		if v == nil {
			return fmt.Errorf("nil hotp entry: %w", rerrors.ErrSecretMissing)
		}
	case *Totp:
		if v == nil {
			return fmt.Errorf("nil totp entry: %w", rerrors.ErrSecretMissing)
		}
	}
	c := e.Base()
	if c.Label == "" {
		return rerrors.ErrLabelMissing
	}
	if c.Secret == "" {
		return fmt.Errorf("%s: %w", c.Label, rerrors.ErrSecretMissing)
	}
	return nil
}

func (h *Hotp) Key() (*libotp.Key, error) {
	q := canonicalQuery(&h.Common)
	q.Set("counter", strconv.FormatUint(h.Counter, 10))
	return keyFromQuery(KindHOTP, &h.Common, q)
}

func (t *Totp) Key() (*libotp.Key, error) {
	q := canonicalQuery(&t.Common)
	q.Set("period", strconv.FormatUint(uint64(t.Step), 10))
	return keyFromQuery(KindTOTP, &t.Common, q)
}

func canonicalQuery(c *Common) url.Values {
	q := url.Values{}
	q.Set("secret", c.Secret)
	q.Set("issuer", c.Issuer)
	q.Set("algorithm", c.Algorithm.String())
	// digits is not modelled, but a code generator needs it.
	if src, err := url.Parse(c.SourceURI); err == nil {
		if d := src.Query().Get("digits"); d == "6" || d == "8" {
			q.Set("digits", d)
		}
	}
	return q
}

func keyFromQuery(kind Kind, c *Common, q url.Values) (*libotp.Key, error) {
	u := url.URL{
		Scheme:   "otpauth",
		Host:     string(kind),
		Path:     "/" + c.Label,
		RawQuery: q.Encode(),
	}
	return libotp.NewKeyFromURL(u.String())
}
