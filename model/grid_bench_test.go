package model

import (
	"math/rand"
	"testing"
)

func BenchmarkNewGrid(b *testing.B) {
	for range b.N {
		if _, err := NewGrid(100, 100); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStepBlock(b *testing.B) {
	g, err := NewGrid(100, 100)
	if err != nil {
		b.Fatal(err)
	}
	if err = g.SeedFromNamedPattern("block"); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		g.Step()
	}
}

func BenchmarkStepRandom(b *testing.B) {
	g, err := NewGrid(256, 256)
	if err != nil {
		b.Fatal(err)
	}
	if err = g.SeedRandom(rand.New(rand.NewSource(1)), 0.3); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		g.Step()
	}
}

func BenchmarkReferenceNext(b *testing.B) {
	g, err := NewGrid(256, 256)
	if err != nil {
		b.Fatal(err)
	}
	if err = g.SeedRandom(rand.New(rand.NewSource(1)), 0.3); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		g.ReferenceNext()
	}
}
