package match

import "testing"

func TestScoreExactMatch(t *testing.T) {
	if s := Score("iPhone 15", "iPhone 15"); s <= 0 {
		t.Errorf("exact match should score positive, got %d", s)
	}
}

func TestScoreNoMatch(t *testing.T) {
	if s := Score("zzz", "iPhone 15"); s != 0 {
		t.Errorf("expected 0 for non-matching query, got %d", s)
	}
}

func TestScoreEmptyInputs(t *testing.T) {
	if s := Score("", "iPhone"); s != 0 {
		t.Errorf("empty query should score 0, got %d", s)
	}
	if s := Score("iPhone", ""); s != 0 {
		t.Errorf("empty name should score 0, got %d", s)
	}
}

func TestScoreExactAtLeastSuperset(t *testing.T) {
	exact := Score("iPhone 15", "iPhone 15")
	superset := Score("iPhone 15", "iPhone 15 Pro Max")
	if exact < superset {
		t.Errorf("exact match (%d) should score at least as high as superset (%d)", exact, superset)
	}
}

func TestScoreDeterministic(t *testing.T) {
	a := Score("iPad", "iPad Air (5th generation)")
	b := Score("iPad", "iPad Air (5th generation)")
	if a != b {
		t.Errorf("score not deterministic: %d vs %d", a, b)
	}
}
