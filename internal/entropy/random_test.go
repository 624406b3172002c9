package entropy

import "testing"

func TestSameSeedSameSequence(t *testing.T) {
	a := NewSource(42)
	b := NewSource(42)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("draw %d diverged with identical seeds", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := NewSource(1)
	b := NewSource(2)
	same := true
	for i := 0; i < 10; i++ {
		if a.Float() != b.Float() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestFloatRange(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		if f := s.Float(); f < 0 || f >= 1 {
			t.Fatalf("Float() = %v, want [0, 1)", f)
		}
	}
}

func TestIntnRange(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 1000; i++ {
		if n := s.Intn(8); n < 0 || n >= 8 {
			t.Fatalf("Intn(8) = %d", n)
		}
	}
}

func TestChanceExtremes(t *testing.T) {
	s := NewSource(7)
	for i := 0; i < 50; i++ {
		if s.Chance(0) {
			t.Fatal("Chance(0) fired")
		}
		if !s.Chance(1) {
			t.Fatal("Chance(1) did not fire")
		}
	}
}
