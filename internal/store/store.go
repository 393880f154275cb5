// Package store is the credential store: it opens an encrypted archive into
// an in-memory secrets table, saves it back, and forgets everything on Close.
//
// On disk an archive is Seal(Pack(EntryName, Encode(table))). Nothing
// decrypted is ever written to disk.
//
// A Store is not safe for concurrent use, and two processes working on the
// same archive path at once is unsupported: the last Save wins. Callers that
// need more must serialize access themselves.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"github.com/PolarWolf314/rotp/internal/archive"
	"github.com/PolarWolf314/rotp/internal/envelope"
	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/secret"
	"github.com/PolarWolf314/rotp/internal/table"
)

// EntryName is the archive entry holding the secrets table.
const EntryName = "secrets.toml"

// State is the lifecycle position of a Store.
type State int

const (
	StateUninitialized State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "uninitialized"
	}
}

// Options configures a Store.
type Options struct {
	// Params are the key derivation costs used when sealing. Zero means
	// envelope.DefaultParams.
	Params envelope.Params
}

// Store holds at most one decrypted session.
type Store struct {
	params envelope.Params

	path  string
	pass  *secret.Passphrase
	table *table.Table
	state State
}

// New returns an uninitialized store.
func New(opts Options) *Store {
	params := opts.Params
	if params == (envelope.Params{}) {
		params = envelope.DefaultParams
	}
	return &Store{params: params}
}

// State reports the lifecycle state.
func (s *Store) State() State { return s.state }

// Path returns the archive path of the current or last session.
func (s *Store) Path() string { return s.path }

// Table returns the decrypted table for in-memory edits. Edits reach disk
// only through Save.
func (s *Store) Table() (*table.Table, error) {
	if s.state != StateOpen {
		return nil, rerrors.ErrStoreNotOpen
	}
	return s.table, nil
}

// Open decrypts the archive at path. On success the store owns pass and
// destroys it in Close. On failure the state is unchanged and pass is left to
// the caller.
func (s *Store) Open(path string, pass *secret.Passphrase) error {
	if s.state == StateOpen {
		return rerrors.ErrStoreAlreadyOpen
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, rerrors.ErrNotFound)
		}
		return fmt.Errorf("reading archive: %w", err)
	}

	t, err := load(pass, blob)
	if err != nil {
		return err
	}

	s.path = path
	s.pass = pass
	s.table = t
	s.state = StateOpen
	return nil
}

func load(pass *secret.Passphrase, blob []byte) (*table.Table, error) {
	tarball, err := envelope.Open(pass, blob)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(tarball)

	entries, err := archive.Unpack(tarball)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, payload := range entries {
			secret.Wipe(payload)
		}
	}()

	payload, ok := entries[EntryName]
	if !ok {
		return nil, fmt.Errorf("%w: looking for %s", rerrors.ErrEntryMissing, EntryName)
	}
	return table.Decode(payload)
}

// Save re-encrypts the table with the session passphrase and atomically
// replaces the archive file.
func (s *Store) Save() error {
	if s.state != StateOpen {
		return rerrors.ErrStoreNotOpen
	}

	blob, err := s.seal(s.pass, s.table)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(s.path, bytes.NewReader(blob)); err != nil {
		return fmt.Errorf("writing archive %s: %w", s.path, err)
	}
	return nil
}

// Create writes a new archive holding an empty table and leaves the store
// open on it. It never replaces an existing file.
func (s *Store) Create(path string, pass *secret.Passphrase) error {
	if s.state == StateOpen {
		return rerrors.ErrStoreAlreadyOpen
	}
	path, err := Resolve(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%s: %w", path, rerrors.ErrAlreadyExists)
	}

	t := table.New()
	blob, err := s.seal(pass, t)
	if err != nil {
		return err
	}

	if err := writeNew(path, blob); err != nil {
		return err
	}

	s.path = path
	s.pass = pass
	s.table = t
	s.state = StateOpen
	return nil
}

func (s *Store) seal(pass *secret.Passphrase, t *table.Table) ([]byte, error) {
	payload, err := table.Encode(t)
	if err != nil {
		return nil, err
	}
	defer secret.Wipe(payload)

	tarball, err := archive.Pack(EntryName, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rerrors.ErrEncryptFailed, err)
	}
	defer secret.Wipe(tarball)

	return envelope.SealWithParams(pass, tarball, s.params)
}

// writeNew creates path exclusively, removing it again if the write fails.
func writeNew(path string, blob []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, rerrors.ErrAlreadyExists)
		}
		return fmt.Errorf("creating archive: %w", err)
	}

	if _, err := f.Write(blob); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("writing archive %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("syncing archive %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("closing archive %s: %w", path, err)
	}
	return nil
}

// Close destroys the passphrase and drops the table. It is safe to call in
// any state and more than once.
func (s *Store) Close() {
	if s.pass != nil {
		s.pass.Destroy()
		s.pass = nil
	}
	if s.table != nil {
		s.table.Clear()
		s.table = nil
	}
	s.state = StateClosed
}
