// Package secret holds sensitive byte strings such as the archive passphrase.
//
// A Passphrase keeps its bytes in a memguard LockedBuffer: guarded pages that
// are locked out of swap and read-only once created. It never prints its
// contents; every fmt verb, text and JSON marshalling render a fixed
// placeholder. Callers acquire a Passphrase and defer Destroy on the same line.
package secret

import (
	"crypto/subtle"
	"fmt"

	"github.com/awnumar/memguard"
)

const redacted = "[REDACTED]"

// Passphrase owns secret material held in locked memory.
type Passphrase struct {
	buf *memguard.LockedBuffer
}

// New moves b into locked memory and wipes b.
func New(b []byte) *Passphrase {
	return &Passphrase{buf: memguard.NewBufferFromBytes(b)}
}

// FromString copies s into a new Passphrase. The string itself cannot be
// wiped, so prefer New with bytes read from the terminal.
func FromString(s string) *Passphrase {
	return New([]byte(s))
}

func (p *Passphrase) bytes() []byte {
	if p == nil || p.buf == nil || !p.buf.IsAlive() {
		return nil
	}
	return p.buf.Bytes()
}

// Use calls fn with the raw bytes. fn must not retain or modify the slice.
func (p *Passphrase) Use(fn func([]byte) error) error {
	return fn(p.bytes())
}

// Len returns the length in bytes, or 0 after Destroy.
func (p *Passphrase) Len() int {
	return len(p.bytes())
}

// Empty reports whether there is no secret material left.
func (p *Passphrase) Empty() bool {
	return p.Len() == 0
}

// Equal compares two passphrases in constant time.
func (p *Passphrase) Equal(other *Passphrase) bool {
	return subtle.ConstantTimeCompare(p.bytes(), other.bytes()) == 1
}

// Clone returns an independent copy that must be destroyed separately.
func (p *Passphrase) Clone() *Passphrase {
	if p == nil {
		return nil
	}
	raw := p.bytes()
	b := make([]byte, len(raw))
	copy(b, raw)
	return New(b)
}

// Destroy wipes and unmaps the locked memory. Safe to call more than once.
func (p *Passphrase) Destroy() {
	if p == nil || p.buf == nil {
		return
	}
	p.buf.Destroy()
}

// String implements fmt.Stringer.
func (p *Passphrase) String() string { return redacted }

// GoString implements fmt.GoStringer.
func (p *Passphrase) GoString() string { return redacted }

// Format covers every verb, including %+v and %x.
func (p *Passphrase) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(redacted))
}

// MarshalText implements encoding.TextMarshaler.
func (p *Passphrase) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// MarshalJSON implements json.Marshaler.
func (p *Passphrase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + redacted + `"`), nil
}

// Wipe overwrites b with zeros.
func Wipe(b []byte) {
	memguard.WipeBytes(b)
}

// Purge destroys every live locked buffer. Call it once before the process
// exits.
func Purge() {
	memguard.Purge()
}
