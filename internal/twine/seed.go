package twine

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"
	"strings"
)

// SeedTextLength is the length of generated seed texts.
const SeedTextLength = 10

const seedAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Seed is a resolved generation seed.
// Text is what gets persisted; Value seeds the random source.
type Seed struct {
	Text  string
	Value int32
	// Generated is true when Text was produced because none was supplied.
	Generated bool
}

// String returns the seed text and value.
func (s Seed) String() string {
	return fmt.Sprintf("%s (%d)", s.Text, s.Value)
}

// RandomSeedText returns a fresh alphanumeric seed of length n.
// It draws from the process-wide source, never from a run's Rand.
func RandomSeedText(n int) string {
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(seedAlphabet[rand.IntN(len(seedAlphabet))])
	}
	return b.String()
}

// HashSeed hashes a seed text into a seed value (FNV-1a, 32 bit).
func HashSeed(text string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return int32(h.Sum32())
}

// SeedFromText resolves a textual seed. An empty text is replaced by a
// freshly generated one.
func SeedFromText(text string) Seed {
	generated := false
	if text == "" {
		text = RandomSeedText(SeedTextLength)
		generated = true
	}
	return Seed{Text: text, Value: HashSeed(text), Generated: generated}
}

// SeedFromInt uses value directly. Negative values are replaced by a
// generated seed text.
func SeedFromInt(value int32) Seed {
	if value < 0 {
		return SeedFromText("")
	}
	return Seed{Text: strconv.FormatInt(int64(value), 10), Value: value}
}

// ResolveSeed resolves a configured seed. In numeric mode the text must be
// an integer (or empty) and is used directly; otherwise it is hashed.
func ResolveSeed(text string, numeric bool) (Seed, error) {
	if !numeric {
		return SeedFromText(text), nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return SeedFromText(""), nil
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return Seed{}, fmt.Errorf("numeric seed %q: %w", text, err)
	}
	return SeedFromInt(int32(v)), nil
}
