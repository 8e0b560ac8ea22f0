package main

import "testing"

func TestDefaultCatalogValidates(t *testing.T) {
	if err := DefaultCatalog().Validate(); err != nil {
		t.Fatalf("default catalog should validate, got %v", err)
	}
}

func TestValidateRejectsEmptyPool(t *testing.T) {
	c := DefaultCatalog()
	c.Databases = nil
	if err := c.Validate(); err == nil {
		t.Fatal("expected an error for an empty pool, got none")
	}
}

func TestChoiceReturnsPoolMember(t *testing.T) {
	rng := NewRng("hello")
	pool := []string{"a", "b", "c"}
	members := map[string]bool{"a": true, "b": true, "c": true}
	for i := 0; i < 100; i++ {
		if v := rng.Choice(pool); !members[v] {
			t.Fatalf("Choice returned %q, not a pool member", v)
		}
	}
}

func TestRngIsDeterministicForSeed(t *testing.T) {
	a := NewRng("seed")
	b := NewRng("seed")
	for i := 0; i < 100; i++ {
		if av, bv := a.Int(0, 1000), b.Int(0, 1000); av != bv {
			t.Fatalf("same-seed rngs diverged at draw %d: %d vs %d", i, av, bv)
		}
	}
}

func TestHexString(t *testing.T) {
	rng := NewRng("hex")
	s := rng.HexString(8)
	if len(s) != 8 {
		t.Fatalf("expected 8 hex characters, got %q", s)
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("non-hex character %q in %q", c, s)
		}
	}
}
