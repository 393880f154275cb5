package archive

import (
	"archive/tar"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
)

func rawTar(t *testing.T, headers ...*tar.Header) []byte {
	t.Helper()
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, h := range headers {
		require.NoError(t, tw.WriteHeader(h))
		if h.Size > 0 {
			_, err := tw.Write(bytes.Repeat([]byte("a"), int(h.Size)))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	payload := []byte("[secrets]\n")

	data, err := Pack("secrets.toml", payload)
	require.NoError(t, err)

	entries, err := Unpack(data)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, payload, entries["secrets.toml"])
}

func TestPack_Header(t *testing.T) {
	data, err := Pack("secrets.toml", []byte("abc"))
	require.NoError(t, err)

	tr := tar.NewReader(bytes.NewReader(data))
	h, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "secrets.toml", h.Name)
	assert.Equal(t, int64(3), h.Size)
	assert.Equal(t, int64(0600), h.Mode)
	assert.Equal(t, byte(tar.TypeReg), h.Typeflag)
	assert.False(t, h.ModTime.IsZero())
}

func TestPackUnpack_EmptyPayload(t *testing.T) {
	data, err := Pack("secrets.toml", nil)
	require.NoError(t, err)

	entries, err := Unpack(data)
	require.NoError(t, err)
	assert.Empty(t, entries["secrets.toml"])
	assert.Contains(t, entries, "secrets.toml")
}

func TestPack_Rejects(t *testing.T) {
	_, err := Pack("", []byte("x"))
	assert.Error(t, err)

	_, err = Pack("big", make([]byte, MaxEntrySize+1))
	assert.Error(t, err)
}

func TestUnpack_SkipsDirectories(t *testing.T) {
	data := rawTar(t,
		&tar.Header{Name: "dir/", Typeflag: tar.TypeDir, Mode: 0700},
		&tar.Header{Name: "other.txt", Typeflag: tar.TypeReg, Mode: 0600, Size: 4},
	)

	entries, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"other.txt": []byte("aaaa")}, entries)
}

func TestUnpack_Corrupt(t *testing.T) {
	valid, err := Pack("secrets.toml", bytes.Repeat([]byte("z"), 100))
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"short garbage", []byte("not a tar")},
		{"block of garbage", bytes.Repeat([]byte("x"), 1024)},
		{"truncated payload", valid[:512+5]},
		{"truncated header", valid[:100]},
		{"duplicate names", rawTar(t,
			&tar.Header{Name: "a", Typeflag: tar.TypeReg, Mode: 0600, Size: 1},
			&tar.Header{Name: "a", Typeflag: tar.TypeReg, Mode: 0600, Size: 2},
		)},
		{"symlink", rawTar(t,
			&tar.Header{Name: "secrets.toml", Typeflag: tar.TypeSymlink, Linkname: "/etc/passwd"},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Unpack(tt.data)
			assert.Nil(t, entries)
			assert.ErrorIs(t, err, rerrors.ErrArchiveCorrupt)
		})
	}
}

func TestUnpack_EmptyStream(t *testing.T) {
	entries, err := Unpack(rawTar(t))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
