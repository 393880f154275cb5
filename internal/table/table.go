// Package table holds the decrypted secrets table: an ordered mapping from
// credential label to OTP entry, and its TOML encoding inside the archive.
package table

import (
	"fmt"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/otp"
)

// Table maps unique labels to entries and remembers insertion order.
type Table struct {
	order   []string
	entries map[string]otp.Entry
}

// New returns an empty table.
func New() *Table {
	return &Table{entries: make(map[string]otp.Entry)}
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.order)
}

// Put stores e under its label. Replacing an existing label keeps its position.
func (t *Table) Put(e otp.Entry) error {
	if err := otp.Validate(e); err != nil {
		return err
	}
	label := e.Base().Label
	if _, exists := t.entries[label]; !exists {
		t.order = append(t.order, label)
	}
	t.entries[label] = e
	return nil
}

// Insert stores e only if its label is free.
func (t *Table) Insert(e otp.Entry) error {
	if err := otp.Validate(e); err != nil {
		return err
	}
	if t.Has(e.Base().Label) {
		return fmt.Errorf("%q: %w", e.Base().Label, rerrors.ErrEntryExists)
	}
	return t.Put(e)
}

// Get returns the entry stored under label.
func (t *Table) Get(label string) (otp.Entry, bool) {
	e, ok := t.entries[label]
	return e, ok
}

// Has reports whether label is present.
func (t *Table) Has(label string) bool {
	_, ok := t.entries[label]
	return ok
}

// Delete removes label, returning ErrEntryNotFound if it is absent.
func (t *Table) Delete(label string) error {
	if _, ok := t.entries[label]; !ok {
		return fmt.Errorf("%q: %w", label, rerrors.ErrEntryNotFound)
	}
	delete(t.entries, label)
	for i, l := range t.order {
		if l == label {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// Labels returns the labels in insertion order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns the entries in insertion order.
func (t *Table) Entries() []otp.Entry {
	out := make([]otp.Entry, 0, len(t.order))
	for _, l := range t.order {
		out = append(out, t.entries[l])
	}
	return out
}

// Equal compares the tables as mappings; order is not significant.
func (t *Table) Equal(other *Table) bool {
	if t.Len() != other.Len() {
		return false
	}
	for label, e := range t.entries {
		o, ok := other.entries[label]
		if !ok || !entriesEqual(e, o) {
			return false
		}
	}
	return true
}

// Clear drops every entry so the decrypted secrets can be collected.
func (t *Table) Clear() {
	clear(t.entries)
	t.order = nil
}

func entriesEqual(a, b otp.Entry) bool {
	switch x := a.(type) {
	case *otp.Hotp:
		y, ok := b.(*otp.Hotp)
		return ok && *x == *y
	case *otp.Totp:
		y, ok := b.(*otp.Totp)
		return ok && *x == *y
	}
	return false
}
