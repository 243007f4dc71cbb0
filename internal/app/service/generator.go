// Package service implements the business rules of the shortener: code
// generation, redirect resolution with click recording, and analytics
// aggregation.
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"
)

// ErrCapacityExhausted is returned when the generator cannot find a free
// code within its attempt and length-growth budget.
var ErrCapacityExhausted = errors.New("short code namespace exhausted")

// ErrValidation marks client input that fails validation. Wrapped errors
// carry the detail.
var ErrValidation = errors.New("validation failed")

const (
	// DefaultCodeLength is the length of generated codes when the caller
	// does not ask for a specific one.
	DefaultCodeLength = 6

	// MinCodeLength and MaxCodeLength bound codes and custom aliases.
	MinCodeLength = 3
	MaxCodeLength = 64

	codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// reservedCodes are aliases that would collide with route names.
var reservedCodes = map[string]struct{}{
	"api":       {},
	"admin":     {},
	"dashboard": {},
	"shorten":   {},
	"preview":   {},
	"stats":     {},
	"ping":      {},
	"static":    {},
	"login":     {},
	"logout":    {},
	"register":  {},
	"www":       {},
}

// ValidateAlias rejects aliases outside the length bounds, outside the
// allowed charset, or matching a reserved route name.
func ValidateAlias(alias string) error {
	if len(alias) < MinCodeLength || len(alias) > MaxCodeLength {
		return fmt.Errorf("%w: alias must be %d-%d characters", ErrValidation, MinCodeLength, MaxCodeLength)
	}
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("%w: alias may only contain letters, digits, '_' and '-'", ErrValidation)
	}
	if _, reserved := reservedCodes[alias]; reserved {
		return fmt.Errorf("%w: alias %q is reserved", ErrValidation, alias)
	}
	return nil
}

// CodeChecker is the store capability the generator needs.
type CodeChecker interface {
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeGenerator produces unique short codes against a uniqueness oracle.
// The caller is responsible for persisting the chosen code atomically;
// the generator only reads the store, so the storage-level unique
// constraint remains the authoritative guard.
type CodeGenerator struct {
	store             CodeChecker
	attemptsPerLength int
	maxGrowth         int
}

func NewCodeGenerator(store CodeChecker) *CodeGenerator {
	return &CodeGenerator{
		store:             store,
		attemptsPerLength: 10,
		maxGrowth:         4,
	}
}

func randomCode(length int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = codeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// withSuffix appends a numeric suffix to code, trimmed so the candidate
// stays within the original length budget.
func withSuffix(code string, length, n int) string {
	suffix := "-" + strconv.Itoa(n)
	keep := length - len(suffix)
	if keep < 1 {
		keep = 1
	}
	if keep > len(code) {
		keep = len(code)
	}
	return code[:keep] + suffix
}

// Generate draws a random code of the requested length and checks it
// against the store. On collision it tries numeric suffix variants, then
// grows the length. The whole process is a bounded loop; exhausting the
// budget yields ErrCapacityExhausted instead of recursing forever.
func (g *CodeGenerator) Generate(ctx context.Context, length int) (string, error) {
	if length < MinCodeLength || length > MaxCodeLength {
		length = DefaultCodeLength
	}

	for growth := 0; growth <= g.maxGrowth; growth++ {
		// grown candidates still honor the identifier length bound
		grown := length + growth
		if grown > MaxCodeLength {
			grown = MaxCodeLength
		}
		code, err := g.tryLength(ctx, grown)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, errLengthExhausted) {
			return "", err
		}
	}

	return "", ErrCapacityExhausted
}

var errLengthExhausted = errors.New("length budget exhausted")

func (g *CodeGenerator) tryLength(ctx context.Context, length int) (string, error) {
	attempts := 0

	for attempts < g.attemptsPerLength {
		code, err := randomCode(length)
		if err != nil {
			return "", err
		}

		attempts++
		taken, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}

		for n := 1; attempts < g.attemptsPerLength; n++ {
			candidate := withSuffix(code, length, n)
			attempts++
			taken, err := g.store.CodeExists(ctx, candidate)
			if err != nil {
				return "", err
			}
			if !taken {
				return candidate, nil
			}
		}
	}

	return "", errLengthExhausted
}

// FromURL derives a code from the target URL: sha256 over the URL plus a
// salt, encoded base62 and truncated. Collisions are resolved by
// re-salting within the same bounded budget.
func (g *CodeGenerator) FromURL(ctx context.Context, longURL string, length int) (string, error) {
	if length < MinCodeLength || length > MaxCodeLength {
		length = DefaultCodeLength
	}

	for attempt := 0; attempt < g.attemptsPerLength; attempt++ {
		salt := strconv.FormatInt(time.Now().UnixNano(), 10) + strconv.Itoa(attempt)
		code := hashToCode(longURL+salt, length)

		taken, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrCapacityExhausted
}

func hashToCode(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	hexHash := hex.EncodeToString(hash[:])

	code := base16ToBase62(hexHash)
	for len(code) < length {
		code = string(codeAlphabet[0]) + code
	}
	return code[:length]
}

func base16ToBase62(hexString string) string {
	var value uint64
	for _, char := range hexString {
		if char >= '0' && char <= '9' {
			value = value*16 + uint64(char-'0')
		} else if char >= 'a' && char <= 'f' {
			value = value*16 + uint64(char-'a'+10)
		}
	}

	var sb []rune
	for value > 0 {
		sb = append([]rune{rune(codeAlphabet[value%62])}, sb...)
		value /= 62
	}

	return string(sb)
}

var wordAdjectives = []string{
	"amber", "brave", "calm", "dizzy", "eager", "fuzzy", "gentle", "happy",
	"icy", "jolly", "kind", "lucky", "mellow", "nimble", "odd", "proud",
	"quick", "rusty", "shiny", "tidy", "vivid", "witty",
}

var wordNouns = []string{
	"otter", "falcon", "maple", "comet", "harbor", "lantern", "meadow",
	"pebble", "quartz", "river", "summit", "thistle", "walnut", "zephyr",
}

// Words generates a human-readable adjective-noun-number code, resolving
// collisions within the same bounded budget as Generate.
func (g *CodeGenerator) Words(ctx context.Context) (string, error) {
	pick := func(list []string) (string, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
		if err != nil {
			return "", err
		}
		return list[n.Int64()], nil
	}

	for attempt := 0; attempt < g.attemptsPerLength; attempt++ {
		adj, err := pick(wordAdjectives)
		if err != nil {
			return "", err
		}
		noun, err := pick(wordNouns)
		if err != nil {
			return "", err
		}
		num, err := rand.Int(rand.Reader, big.NewInt(100))
		if err != nil {
			return "", err
		}

		code := adj + "-" + noun + "-" + num.String()
		taken, err := g.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrCapacityExhausted
}
