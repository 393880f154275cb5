// Package envelope encrypts the archive with a key derived from a passphrase.
//
// A sealed blob is laid out as
//
//	"ROTP" | version (1) | time u32 | memory KiB u32 | threads u8 | salt[16] | nonce[24] | secretbox
//
// with big-endian integers. The key is Argon2id(passphrase, salt) and the
// payload is sealed with NaCl secretbox, so the header is authenticated by
// virtue of the key depending on it: editing any header byte makes Open fail.
package envelope

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"

	rerrors "github.com/PolarWolf314/rotp/internal/errors"
	"github.com/PolarWolf314/rotp/internal/secret"
)

const (
	version   = 1
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	// MaxTime, MaxMemory and MaxThreads bound the parameters Open accepts from a
	// header.
	MaxTime    = 16
	MaxMemory  = 1 << 20 // KiB
	MaxThreads = 64
)

var magic = []byte("ROTP")

const headerSize = 4 + 1 + 4 + 4 + 1 + saltSize + nonceSize

// Params are the Argon2id cost parameters stored in each blob.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams is used by Seal.
var DefaultParams = Params{Time: 3, Memory: 64 * 1024, Threads: 4}

func (p Params) valid() bool {
	return p.Time >= 1 && p.Time <= MaxTime &&
		p.Threads >= 1 && p.Threads <= MaxThreads &&
		p.Memory >= 8*uint32(p.Threads) && p.Memory <= MaxMemory
}

// Seal encrypts plaintext under pass using DefaultParams.
func Seal(pass *secret.Passphrase, plaintext []byte) ([]byte, error) {
	return SealWithParams(pass, plaintext, DefaultParams)
}

// SealWithParams encrypts plaintext under pass with a fresh salt and nonce.
func SealWithParams(pass *secret.Passphrase, plaintext []byte, params Params) ([]byte, error) {
	if pass.Empty() {
		return nil, rerrors.ErrEmptyPassphrase
	}
	if !params.valid() {
		return nil, fmt.Errorf("%w: invalid key derivation parameters %+v", rerrors.ErrEncryptFailed, params)
	}

	var salt [saltSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return nil, fmt.Errorf("%w: reading salt: %v", rerrors.ErrEncryptFailed, err)
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: reading nonce: %v", rerrors.ErrEncryptFailed, err)
	}

	key := deriveKey(pass, salt[:], params)
	defer secret.Wipe(key[:])

	out := make([]byte, 0, headerSize+secretbox.Overhead+len(plaintext))
	out = append(out, magic...)
	out = append(out, version)
	out = binary.BigEndian.AppendUint32(out, params.Time)
	out = binary.BigEndian.AppendUint32(out, params.Memory)
	out = append(out, params.Threads)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)

	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

// Open decrypts a blob produced by Seal. Every failure, whether a wrong
// passphrase, a damaged header or a modified ciphertext, is ErrDecryptFailed
// and nothing else.
func Open(pass *secret.Passphrase, blob []byte) ([]byte, error) {
	if pass.Empty() || len(blob) < headerSize+secretbox.Overhead {
		return nil, rerrors.ErrDecryptFailed
	}
	if !bytes.Equal(blob[:4], magic) || blob[4] != version {
		return nil, rerrors.ErrDecryptFailed
	}

	params := Params{
		Time:    binary.BigEndian.Uint32(blob[5:9]),
		Memory:  binary.BigEndian.Uint32(blob[9:13]),
		Threads: blob[13],
	}
	if !params.valid() {
		return nil, rerrors.ErrDecryptFailed
	}

	salt := blob[14 : 14+saltSize]
	var nonce [nonceSize]byte
	copy(nonce[:], blob[14+saltSize:headerSize])

	key := deriveKey(pass, salt, params)
	defer secret.Wipe(key[:])

	plaintext, ok := secretbox.Open(nil, blob[headerSize:], &nonce, key)
	if !ok {
		return nil, rerrors.ErrDecryptFailed
	}
	return plaintext, nil
}

func deriveKey(pass *secret.Passphrase, salt []byte, p Params) *[keySize]byte {
	var key [keySize]byte
	_ = pass.Use(func(b []byte) error {
		derived := argon2.IDKey(b, salt, p.Time, p.Memory, p.Threads, keySize)
		copy(key[:], derived)
		secret.Wipe(derived)
		return nil
	})
	return &key
}
