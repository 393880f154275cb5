package workflows

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/PolarWolf314/rotp/internal/audit"
	"github.com/PolarWolf314/rotp/internal/envelope"
	"github.com/PolarWolf314/rotp/internal/otp"
	"github.com/PolarWolf314/rotp/internal/secret"
	"github.com/PolarWolf314/rotp/internal/store"
)

// ArchiveOptions identifies the archive a workflow works on and how to
// unlock it. Every workflow that touches the archive embeds it.
type ArchiveOptions struct {
	// Location is the configured archive path, before store.Locate.
	Location string

	// Passphrase unlocks the archive. The store destroys it when the
	// workflow returns; callers should still defer Destroy for error paths
	// that never reach the store.
	Passphrase *secret.Passphrase

	// Params overrides the key derivation cost for newly sealed archives.
	// Zero means envelope.DefaultParams.
	Params envelope.Params

	// Audit receives one entry per mutating workflow. May be nil.
	Audit *audit.Log
}

// openStore resolves the location and opens the archive. The caller must
// defer Close on the returned store.
func openStore(ctx context.Context, opts ArchiveOptions) (*store.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := store.Locate(opts.Location)
	if err != nil {
		return nil, err
	}

	st := store.New(store.Options{Params: opts.Params})
	if err := st.Open(path, opts.Passphrase); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return st, nil
}

// Summary describes an entry without its secret.
type Summary struct {
	Label     string
	Kind      otp.Kind
	Issuer    string
	Algorithm string

	// Counter is set for HOTP entries, Step for TOTP entries.
	Counter uint64
	Step    uint32
}

func summarize(e otp.Entry) Summary {
	c := e.Base()
	s := Summary{
		Label:     c.Label,
		Kind:      e.Kind(),
		Issuer:    c.Issuer,
		Algorithm: c.Algorithm.String(),
	}
	switch v := e.(type) {
	case *otp.Hotp:
		s.Counter = v.Counter
	case *otp.Totp:
		s.Step = v.Step
	}
	return s
}

func summarizeAll(entries []otp.Entry) []Summary {
	return lo.Map(entries, func(e otp.Entry, _ int) Summary { return summarize(e) })
}
