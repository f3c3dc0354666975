// Package cryptox implements one-way password hashing.
//
// Digests are self-describing strings: bcrypt digests start with "$2",
// argon2id digests use the PHC layout
// "$argon2id$v=19$m=<KiB>,t=<iterations>,p=<threads>$<salt>$<key>".
// Verification picks the algorithm from the digest itself, so records
// written under one configuration stay verifiable after switching.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hotelbook/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm names accepted by NewPasswordHasher.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// bcrypt only keys on the first 72 bytes of its input.
const bcryptMaxPasswordLen = 72

func bcryptInput(password []byte) []byte {
	if len(password) > bcryptMaxPasswordLen {
		return password[:bcryptMaxPasswordLen]
	}
	return password
}

// PasswordHasher hashes and verifies passwords.
//
// Hash embeds a fresh random salt, so hashing the same password twice yields
// different digests. Verify never returns an error: a malformed or foreign
// digest simply does not match.
type PasswordHasher interface {
	Hash(password []byte) (string, error)
	Verify(password []byte, digest string) bool
}

// NewPasswordHasher returns the hasher for algorithm. cost is the bcrypt
// cost factor, or the argon2id iteration count.
func NewPasswordHasher(algorithm string, cost int) (PasswordHasher, error) {
	switch algorithm {
	case "", AlgorithmBcrypt:
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return &BcryptHasher{cost: cost}, nil
	case AlgorithmArgon2id:
		if cost < 1 {
			return nil, fmt.Errorf("argon2id iterations must be positive, got %d", cost)
		}
		p := DefaultArgon2Params
		p.Iterations = uint32(cost)
		return &Argon2Hasher{params: p}, nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
}

// VerifyPassword checks password against a digest produced by any supported hasher.
func VerifyPassword(password []byte, digest string) bool {
	switch {
	case strings.HasPrefix(digest, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(digest), bcryptInput(password)) == nil
	case strings.HasPrefix(digest, "$"+AlgorithmArgon2id+"$"):
		return verifyArgon2(password, digest)
	default:
		return false
	}
}

// BcryptHasher produces bcrypt digests with a fixed cost. Passwords longer
// than 72 bytes are truncated, so two passwords sharing that prefix match.
type BcryptHasher struct {
	cost int
}

func (h *BcryptHasher) Hash(password []byte) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(bcryptInput(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password []byte, digest string) bool {
	return VerifyPassword(password, digest)
}

// Argon2Params are the argon2id tuning knobs stored inside every digest.
type Argon2Params struct {
	Memory     uint32
	Iterations uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultArgon2Params follows the RFC 9106 second recommended option.
var DefaultArgon2Params = Argon2Params{
	Memory:     64 * 1024,
	Iterations: 3,
	Threads:    4,
	SaltLength: 16,
	KeyLength:  32,
}

// Argon2Hasher produces PHC-formatted argon2id digests.
type Argon2Hasher struct {
	params Argon2Params
}

func (h *Argon2Hasher) Hash(password []byte) (string, error) {
	p := h.params
	salt := common.GenerateRandByteArray(int(p.SaltLength))
	key := argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Threads, p.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		AlgorithmArgon2id, argon2.Version, p.Memory, p.Iterations, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *Argon2Hasher) Verify(password []byte, digest string) bool {
	return VerifyPassword(password, digest)
}

var errMalformedDigest = errors.New("malformed argon2id digest")

func parseArgon2(digest string) (Argon2Params, []byte, []byte, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != AlgorithmArgon2id {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}

	var p Argon2Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Threads); err != nil {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Threads == 0 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Argon2Params{}, nil, nil, errMalformedDigest
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}

func verifyArgon2(password []byte, digest string) bool {
	p, salt, key, err := parseArgon2(digest)
	if err != nil {
		return false
	}
	candidate := argon2.IDKey(password, salt, p.Iterations, p.Memory, p.Threads, p.KeyLength)
	return subtle.ConstantTimeCompare(key, candidate) == 1
}
