package token

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/blake2b"

	"baka-api/internal/domain/user"
)

const entropySize = 32

type Generator struct {
	rand io.Reader
	now  func() time.Time
}

func New() *Generator {
	return &Generator{rand: rand.Reader, now: time.Now}
}

// Generate returns an opaque 64-char hex token. Identity and time are mixed
// into the hash alongside fresh entropy, so a token carries no readable structure.
func (g *Generator) Generate(u *user.User) (string, error) {
	entropy := make([]byte, entropySize)
	if _, err := io.ReadFull(g.rand, entropy); err != nil {
		return "", fmt.Errorf("read token entropy: %w", err)
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(u.ID))
	h.Write(buf[:])
	h.Write([]byte(u.Username))
	h.Write([]byte{0})
	h.Write([]byte(u.Email))
	h.Write([]byte{0})
	binary.BigEndian.PutUint64(buf[:], uint64(g.now().UnixNano()))
	h.Write(buf[:])
	h.Write(entropy)

	return hex.EncodeToString(h.Sum(nil)), nil
}
