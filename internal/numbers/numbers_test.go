package numbers_test

import (
	"testing"

	"github.com/aoimori/kizunabot/internal/numbers"
)

func TestDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []int
	}{
		{name: "empty", input: "", want: []int{}},
		{name: "no digits", input: "よろしくお願いします", want: []int{}},
		{name: "type notation", input: "1種/複合2-5", want: []int{1, 2, 5}},
		{name: "digits inside words", input: "第3回と第10回に参加", want: []int{3, 10}},
		{name: "sign is not part of the run", input: "-7", want: []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := numbers.Digits(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Digits(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Digits(%q) = %v, want %v", tt.input, got, tt.want)
					break
				}
			}
		})
	}
}

func TestPick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int
		want  []int
	}{
		{
			name:  "odd even odd",
			input: []int{4, 1, 6, 3},
			want:  []int{1, 4, 3},
		},
		{
			name:  "one odd one even",
			input: []int{2, 9},
			want:  []int{9, 2},
		},
		{
			name:  "two odds no even",
			input: []int{5, 7, 9},
			want:  []int{5, 7},
		},
		{
			name:  "all even falls back to first three",
			input: []int{2, 4, 6, 8},
			want:  []int{2, 4, 6},
		},
		{
			name:  "single even falls back",
			input: []int{8},
			want:  []int{8},
		},
		{
			name:  "single odd falls back",
			input: []int{3},
			want:  []int{3},
		},
		{
			name:  "empty input",
			input: []int{},
			want:  []int{},
		},
		{
			name:  "negative parity handled",
			input: []int{-3, -2, -5},
			want:  []int{-3, -2, -5},
		},
		{
			name:  "first occurrence order not sorted",
			input: []int{9, 8, 1, 2, 3},
			want:  []int{9, 8, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := numbers.Pick(tt.input)
			if len(got) > 3 {
				t.Fatalf("Pick returned %d values, max is 3", len(got))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Pick(%v) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Pick(%v) = %v, want %v", tt.input, got, tt.want)
					break
				}
			}
		})
	}
}

func TestPick_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	in := []int{2, 4}
	got := numbers.Pick(in)
	got[0] = 99
	if in[0] != 2 {
		t.Error("Pick must return a copy, not a slice of the input")
	}
}
