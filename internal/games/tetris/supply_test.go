package tetris

import "testing"

// constSource always returns the same draw.
type constSource int

func (c constSource) Intn(n int) int {
	return int(c) % n
}

func TestSupplyNeverEmpties(t *testing.T) {
	s := NewSupply(NewUniform(NewSource(1)), 3)

	for i := 0; i < 1000; i++ {
		s.Next()
		if s.Len() != 3 {
			t.Fatalf("after %d draws Len() = %d, expected 3", i+1, s.Len())
		}
	}
}

func TestSupplyMinimumSize(t *testing.T) {
	s := NewSupply(NewUniform(NewSource(1)), 0)
	if s.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", s.Len())
	}
}

func TestSupplyOrder(t *testing.T) {
	s := NewSupply(&scripted{types: []PieceType{TypeS, TypeZ, TypeL}}, 2)

	if s.Peek() != TypeS {
		t.Errorf("Peek() = %s, expected S", s.Peek())
	}
	for _, want := range []PieceType{TypeS, TypeZ, TypeL, TypeS} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %s, expected %s", got, want)
		}
	}
}

func TestUniformDrawsEveryType(t *testing.T) {
	u := NewUniform(NewSource(42))
	seen := make(map[PieceType]int)
	for i := 0; i < 1000; i++ {
		seen[u.Next()]++
	}
	for _, pt := range AllTypes {
		if seen[pt] == 0 {
			t.Errorf("type %s never drawn in 1000 draws", pt)
		}
	}
}

func TestUniformAllowsRepeats(t *testing.T) {
	u := NewUniform(constSource(0))
	for i := 0; i < 10; i++ {
		if got := u.Next(); got != TypeI {
			t.Fatalf("draw %d = %s, expected I every time", i, got)
		}
	}
}

func TestBagDealsEachTypeOncePerBag(t *testing.T) {
	rnd, err := NewRandomizer(RandomizerBag, NewSource(7))
	if err != nil {
		t.Fatalf("NewRandomizer() failed: %v", err)
	}

	for bag := 0; bag < 5; bag++ {
		seen := make(map[PieceType]bool)
		for i := 0; i < PieceTypeCount; i++ {
			pt := rnd.Next()
			if seen[pt] {
				t.Fatalf("bag %d dealt %s twice", bag, pt)
			}
			seen[pt] = true
		}
	}
}

func TestNewRandomizer(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"", false},
		{RandomizerUniform, false},
		{RandomizerBag, false},
		{"history", true},
	}

	for _, tc := range tests {
		_, err := NewRandomizer(tc.name, NewSource(1))
		if (err != nil) != tc.wantErr {
			t.Errorf("NewRandomizer(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
	}
}
