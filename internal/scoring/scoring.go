// Package scoring compares a submitted selection against a question's
// answer key. Both comparisons are pure and cannot fail on a validated
// bank: malformed keys are rejected at load time, never here.
package scoring

import "github.com/quizdesk/quizdesk/internal/bank"

type strategy func(selection, key []int) bool

var strategies = map[bank.Kind]strategy{
	bank.KindSingle: Single,
	bank.KindMulti:  Multi,
}

// Verdict routes by question kind to the matching comparison.
func Verdict(q bank.Question, selection []int) bool {
	return strategies[q.Kind](selection, q.Answer)
}

// Single is correct iff exactly the one keyed option was selected.
func Single(selection, key []int) bool {
	return len(selection) == 1 && selection[0] == key[0]
}

// Multi is correct iff the selection equals the key as a set. A missing
// correct option or an extra incorrect one is wrong; there is no
// partial credit.
func Multi(selection, key []int) bool {
	return setEqual(toSet(selection), toSet(key))
}

func toSet(nums []int) map[int]struct{} {
	m := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		m[n] = struct{}{}
	}
	return m
}

func setEqual(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
