package otp

import (
	libotp "github.com/pquerna/otp"
)

// Algorithm is the HMAC hash an OTP credential uses.
type Algorithm int

const (
	SHA1 Algorithm = iota
	SHA256
	SHA512
)

// DefaultStep is the TOTP time step in seconds used when a URI has none.
const DefaultStep uint32 = 30

func (a Algorithm) String() string {
	switch a {
	case SHA256:
		return "SHA256"
	case SHA512:
		return "SHA512"
	default:
		return "SHA1"
	}
}

// ParseAlgorithm matches name exactly against the three supported names.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch name {
	case "SHA1":
		return SHA1, true
	case "SHA256":
		return SHA256, true
	case "SHA512":
		return SHA512, true
	}
	return SHA1, false
}

// algorithmOrDefault falls back to SHA1 for absent or unrecognized names.
// Existing archives depend on this fallback, so it must not become an error.
func algorithmOrDefault(name string) Algorithm {
	a, _ := ParseAlgorithm(name)
	return a
}

// OTP maps the algorithm onto github.com/pquerna/otp.
func (a Algorithm) OTP() libotp.Algorithm {
	switch a {
	case SHA256:
		return libotp.AlgorithmSHA256
	case SHA512:
		return libotp.AlgorithmSHA512
	default:
		return libotp.AlgorithmSHA1
	}
}
