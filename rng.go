package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/dgryski/go-wyhash"
)

// Rng is a seeded source of the random draws the category generators make.
// Seeding with the same string produces the same sequence of values, which is
// what makes payloads reproducible across runs. An Rng is not safe for
// concurrent use; give each generator its own.
type Rng struct {
	rng *rand.Rand
}

func NewRng(s string) Rng {
	return Rng{rand.New(rand.NewSource(int64(wyhash.Hash([]byte(s), 2467825690))))}
}

func (r Rng) Intn(n int) int {
	return r.rng.Intn(n)
}

func (r Rng) Choice(a []string) string {
	return a[r.Intn(len(a))]
}

// Int returns a value in [min, max).
func (r Rng) Int(min, max int) int64 {
	return int64(r.rng.Intn(max-min) + min)
}

func (r Rng) Float(min, max float64) float64 {
	return r.rng.Float64()*(max-min) + min
}

func (r Rng) HexString(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		b.WriteByte("0123456789abcdef"[r.Intn(16)])
	}
	return b.String()
}

// BoolWithProb returns true with probability p percent.
func (r Rng) BoolWithProb(p int) bool {
	return r.Int(0, 100) < int64(p)
}

// IPv4 returns a private-looking address for security payloads.
func (r Rng) IPv4() string {
	return fmt.Sprintf("10.%d.%d.%d", r.Intn(256), r.Intn(256), r.Intn(256))
}
