package token

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/tasknotify/telegram-relay-go/internal/model"
)

// Tokens are uppercase-only so a human retyping one never hits a
// case-sensitivity mismatch.
const (
	tokenChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length is the fixed token length (36^8 keyspace).
	Length = 8

	maxUniqueAttempts = 5
)

// Finder is the slice of the session store needed for collision checks.
type Finder interface {
	FindByToken(ctx context.Context, token string) (*model.Session, error)
}

// Generate returns an 8-character token drawn uniformly from A-Z0-9.
func Generate() (string, error) {
	chars := []byte(tokenChars)
	out := make([]byte, Length)
	for i := 0; i < Length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", fmt.Errorf("read randomness: %w", err)
		}
		out[i] = chars[n.Int64()]
	}
	return string(out), nil
}

// GenerateUnique generates a token that does not collide with a live
// session, retrying a bounded number of times. After exhausting the
// attempts the last candidate is accepted; at 36^8 keyspace the residual
// collision odds are negligible for a convenience token.
func GenerateUnique(ctx context.Context, finder Finder) (string, error) {
	var tok string
	for attempts := 0; attempts < maxUniqueAttempts; attempts++ {
		var err error
		tok, err = Generate()
		if err != nil {
			return "", err
		}
		existing, _ := finder.FindByToken(ctx, tok)
		if existing == nil {
			break
		}
	}
	return tok, nil
}
