package handlers

import "testing"

func TestByPiece(t *testing.T) {
	testCases := []struct {
		input string
		sep   string
		array []string
	}{
		{"g", "\n", []string{"g"}},
		{"o 1 2\ng\n", "\n", []string{"o 1 2", "g", ""}},
		{"foo\nbar\nbaz\n\nbazz", "\n", []string{"foo", "bar", "baz", "", "bazz"}},
	}
	for _, test := range testCases {
		n := 0
		for i, p := range byPiece(test.input, test.sep) {
			if i < 0 || i >= len(test.array) {
				t.Fatalf("byPiece returned an invalid index: %d", i)
			}
			if p != test.array[i] {
				t.Errorf("byPiece returned an incorrect piece: have %q, want %q",
					p, test.array[i])
			}
			n++
		}
		if n != len(test.array) {
			t.Errorf("byPiece returned %d pieces, want %d", n, len(test.array))
		}
	}
}

func TestByPieceStopsEarly(t *testing.T) {
	var got []string
	for _, p := range byPiece("a\nb\nc", "\n") {
		got = append(got, p)
		if p == "b" {
			break
		}
	}
	if len(got) != 2 {
		t.Errorf("expected iteration to stop after 2 pieces, got %v", got)
	}
}
