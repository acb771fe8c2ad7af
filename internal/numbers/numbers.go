// Package numbers implements digit extraction from free text and the
// odd-even-odd selection policy used to pick the numbers shown on profile
// cards.
package numbers

import (
	"regexp"
	"strconv"
)

var digitRunRegex = regexp.MustCompile(`\d+`)

// Digits returns every unsigned digit run in text as an integer, in order of
// appearance. "1種/複合2-5" yields [1 2 5]. Runs too large for an int are
// skipped.
func Digits(text string) []int {
	runs := digitRunRegex.FindAllString(text, -1)
	out := make([]int, 0, len(runs))
	for _, r := range runs {
		n, err := strconv.Atoi(r)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Pick selects at most three values arranged odd-even-odd. "First" always
// means first occurrence in the input, never sorted order.
//
// Branches, first applicable wins:
//  1. two odds and an even available: [odd1, even1, odd2]
//  2. one odd and one even: [odd1, even1]
//  3. two odds, no even: [odd1, odd2]
//  4. otherwise the pattern is unsatisfiable; fall back to the first three
//     input values unfiltered.
func Pick(nums []int) []int {
	var odds, evens []int
	for _, n := range nums {
		if n%2 == 0 {
			evens = append(evens, n)
		} else {
			odds = append(odds, n)
		}
	}

	switch {
	case len(odds) >= 2 && len(evens) >= 1:
		return []int{odds[0], evens[0], odds[1]}
	case len(odds) >= 1 && len(evens) >= 1:
		return []int{odds[0], evens[0]}
	case len(odds) >= 2:
		return []int{odds[0], odds[1]}
	}

	if len(nums) > 3 {
		nums = nums[:3]
	}
	out := make([]int, len(nums))
	copy(out, nums)
	return out
}
