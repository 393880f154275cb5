package table

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/otp"
)

// Namespace is the top-level TOML table holding one sub-table per label.
const Namespace = "secrets"

// record is the on-disk shape of one credential section.
type record struct {
	Secret    string  `toml:"secret" validate:"required"`
	Issuer    string  `toml:"issuer"`
	Algorithm string  `toml:"algorithm" validate:"omitempty,oneof=SHA1 SHA256 SHA512"`
	Counter   *uint64 `toml:"counter,omitempty"`
	Step      *uint32 `toml:"step,omitempty"`
	FullURI   string  `toml:"full_uri"`
}

type document struct {
	Secrets map[string]record `toml:"secrets"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Encode renders the table as TOML, one [secrets."<label>"] section per entry
// in insertion order.
func Encode(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("[" + Namespace + "]\n")

	for _, e := range t.Entries() {
		rec, err := toRecord(e)
		if err != nil {
			return nil, err
		}
		label := e.Base().Label
		buf.WriteString("\n[" + toml.Key{Namespace, label}.String() + "]\n")
		if err := toml.NewEncoder(&buf).Encode(rec); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", label, err)
		}
	}

	return buf.Bytes(), nil
}

// Decode parses TOML produced by Encode. Empty input and a missing or empty
// [secrets] table both yield an empty table. Labels keep their document order;
// labels defined only through dotted keys follow in sorted order.
func Decode(data []byte) (*Table, error) {
	var doc document
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrTableCorrupt, err)
	}

	var labels []string
	seen := make(map[string]bool, len(doc.Secrets))
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != Namespace {
			continue
		}
		if _, ok := doc.Secrets[key[1]]; ok && !seen[key[1]] {
			seen[key[1]] = true
			labels = append(labels, key[1])
		}
	}
	for _, label := range slices.Sorted(maps.Keys(doc.Secrets)) {
		if !seen[label] {
			labels = append(labels, label)
		}
	}

	t := New()
	for _, label := range labels {
		e, err := fromRecord(label, doc.Secrets[label])
		if err != nil {
			return nil, err
		}
		if err := t.Put(e); err != nil {
			return nil, fmt.Errorf("%w: %v", rerrors.ErrTableCorrupt, err)
		}
	}

	return t, nil
}

func toRecord(e otp.Entry) (record, error) {
	c := e.Base()
	// TOML strings must be UTF-8.
	for _, f := range [...]struct{ name, value string }{
		{"label", c.Label}, {"secret", c.Secret}, {"issuer", c.Issuer}, {"full_uri", c.SourceURI},
	} {
		if !utf8.ValidString(f.value) {
			return record{}, fmt.Errorf("%w: %s of %q is not valid UTF-8", rerrors.ErrTableCorrupt, f.name, c.Label)
		}
	}
	rec := record{
		Secret:    c.Secret,
		Issuer:    c.Issuer,
		Algorithm: c.Algorithm.String(),
		FullURI:   c.SourceURI,
	}

	switch v := e.(type) {
	case *otp.Hotp:
		// TOML integers are signed 64-bit.
		if v.Counter > math.MaxInt64 {
			return record{}, fmt.Errorf("%w: counter of %q exceeds %d", rerrors.ErrTableCorrupt, c.Label, int64(math.MaxInt64))
		}
		counter := v.Counter
		rec.Counter = &counter
	case *otp.Totp:
		step := v.Step
		rec.Step = &step
	}

	return rec, nil
}

func fromRecord(label string, rec record) (otp.Entry, error) {
	if label == "" {
		return nil, fmt.Errorf("%w: empty label", rerrors.ErrTableCorrupt)
	}
	if err := validate.Struct(rec); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", rerrors.ErrTableCorrupt, label, err)
	}
	if (rec.Counter == nil) == (rec.Step == nil) {
		return nil, fmt.Errorf("%w: %q must have exactly one of counter or step", rerrors.ErrTableCorrupt, label)
	}

	algorithm, _ := otp.ParseAlgorithm(rec.Algorithm)
	issuer := rec.Issuer
	if issuer == "" {
		issuer = label
	}
	common := otp.Common{
		Secret:    rec.Secret,
		Label:     label,
		Issuer:    issuer,
		Algorithm: algorithm,
		SourceURI: rec.FullURI,
	}

	if rec.Counter != nil {
		return &otp.Hotp{Common: common, Counter: *rec.Counter}, nil
	}
	if *rec.Step == 0 {
		return nil, fmt.Errorf("%w: %q has a zero step", rerrors.ErrTableCorrupt, label)
	}
	return &otp.Totp{Common: common, Step: *rec.Step}, nil
}
