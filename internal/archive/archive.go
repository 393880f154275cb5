// Package archive packs named payloads into an uncompressed tar stream and
// reads them back.
//
// The stream is the container that sits inside the encryption envelope. It
// normally holds a single well-known entry, but Unpack returns every regular
// file so callers can report which entry is missing.
package archive

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

// MaxEntrySize bounds a single entry so a hostile archive cannot exhaust memory.
const MaxEntrySize = 16 << 20

// Pack returns a tar stream holding payload under name.
func Pack(name string, payload []byte) ([]byte, error) {
	if name == "" {
		return nil, errors.New("archive entry name is empty")
	}
	if len(payload) > MaxEntrySize {
		return nil, fmt.Errorf("archive entry %s is %d bytes, limit is %d", name, len(payload), MaxEntrySize)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     int64(len(payload)),
		Mode:     0600,
		ModTime:  time.Now().Truncate(time.Second),
		Format:   tar.FormatGNU,
	}
	if err := tw.WriteHeader(header); err != nil {
		return nil, fmt.Errorf("writing tar header: %w", err)
	}
	if _, err := tw.Write(payload); err != nil {
		return nil, fmt.Errorf("writing tar entry: %w", err)
	}
	if err := tw.Close(); err != nil {
		return nil, fmt.Errorf("closing tar stream: %w", err)
	}

	return buf.Bytes(), nil
}

// Unpack reads every regular entry of a tar stream into memory, keyed by
// name. Directories are skipped. Malformed streams, truncated entries,
// oversized entries and duplicate names all report ErrArchiveCorrupt.
func Unpack(data []byte) (map[string][]byte, error) {
	entries := make(map[string][]byte)
	tr := tar.NewReader(bytes.NewReader(data))

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading tar header: %v", rerrors.ErrArchiveCorrupt, err)
		}

		switch header.Typeflag {
		case tar.TypeDir:
			continue
		case tar.TypeReg:
		default:
			return nil, fmt.Errorf("%w: entry %q has unsupported type %q", rerrors.ErrArchiveCorrupt, header.Name, header.Typeflag)
		}

		if header.Size < 0 || header.Size > MaxEntrySize {
			return nil, fmt.Errorf("%w: entry %q is %d bytes", rerrors.ErrArchiveCorrupt, header.Name, header.Size)
		}
		if _, dup := entries[header.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate entry %q", rerrors.ErrArchiveCorrupt, header.Name)
		}

		payload := make([]byte, header.Size)
		if _, err := io.ReadFull(tr, payload); err != nil {
			return nil, fmt.Errorf("%w: reading entry %q: %v", rerrors.ErrArchiveCorrupt, header.Name, err)
		}
		entries[header.Name] = payload
	}

	return entries, nil
}
