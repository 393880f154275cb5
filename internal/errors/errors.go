package errors

import "errors"

// Configuration errors indicate the archive location is unresolved or malformed.
var (
	// ErrNotConfigured indicates no archive location was provided.
	ErrNotConfigured = errors.New("archive location is not configured")

	// ErrBadName indicates the archive path does not end in the .tar.rotp suffix.
	ErrBadName = errors.New("archive name must end with .tar.rotp")
)

// Archive I/O errors indicate problems with the archive file itself.
var (
	// ErrNotFound indicates the archive does not exist at the resolved path.
	ErrNotFound = errors.New("archive not found")

	// ErrAlreadyExists indicates onboarding was asked to create an archive over an existing file.
	ErrAlreadyExists = errors.New("archive already exists")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrDecryptFailed covers a wrong passphrase and a tampered or truncated archive alike.
	ErrDecryptFailed = errors.New("cannot decrypt archive: wrong passphrase or corrupt file")

	// ErrEncryptFailed indicates the archive could not be sealed.
	ErrEncryptFailed = errors.New("failed to encrypt archive")

	// ErrEmptyPassphrase indicates an empty passphrase was supplied.
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")

	// ErrPassphraseMismatch indicates the confirmation passphrase did not match.
	ErrPassphraseMismatch = errors.New("passphrases do not match")
)

// Container errors indicate the decrypted archive structure is invalid.
var (
	// ErrArchiveCorrupt indicates the decrypted bytes are not a readable container.
	ErrArchiveCorrupt = errors.New("archive container is corrupt")

	// ErrEntryMissing indicates the container lacks the secrets entry.
	ErrEntryMissing = errors.New("archive has no secrets entry")

	// ErrTableCorrupt indicates the secrets table is not valid.
	ErrTableCorrupt = errors.New("secrets table is corrupt")
)

// URI errors are returned by the otpauth parser.
var (
	// ErrNotAnOtpLink indicates the input is not an otpauth:// URI.
	ErrNotAnOtpLink = errors.New("not an otpauth link")

	// ErrUnknownOtpType indicates the URI type is neither totp nor hotp.
	ErrUnknownOtpType = errors.New("unknown otp type")

	// ErrLabelMissing indicates the URI has no label.
	ErrLabelMissing = errors.New("otp uri has no label")

	// ErrSecretMissing indicates the URI has no secret parameter.
	ErrSecretMissing = errors.New("otp uri has no secret")

	// ErrCounterMissing indicates an HOTP URI has no counter parameter.
	ErrCounterMissing = errors.New("hotp uri has no counter")

	// ErrMalformedCounter indicates an HOTP counter is not an unsigned 64-bit integer.
	ErrMalformedCounter = errors.New("hotp counter is not a valid unsigned integer")
)

// Store errors indicate a misuse of the credential store lifecycle.
var (
	// ErrStoreNotOpen indicates an operation that needs a decrypted table ran on a closed store.
	ErrStoreNotOpen = errors.New("credential store is not open")

	// ErrStoreAlreadyOpen indicates Open or Create was called on a store holding a session.
	ErrStoreAlreadyOpen = errors.New("credential store is already open")

	// ErrEntryNotFound indicates no credential exists under the given label.
	ErrEntryNotFound = errors.New("credential not found")

	// ErrEntryExists indicates a credential already exists under the given label.
	ErrEntryExists = errors.New("credential already exists")
)
