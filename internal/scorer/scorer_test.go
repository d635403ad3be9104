package scorer

import (
	"math"
	"testing"

	"github.com/verte-zerg/wordler/internal/constraint"
	"github.com/verte-zerg/wordler/internal/feedback"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestNewStats(t *testing.T) {
	st := NewStats([]string{"aab", "abc"}, 3)
	if st.Total[0] != 3 || st.Total[1] != 2 || st.Total[2] != 1 {
		t.Fatalf("unexpected totals: %v", st.Total[:3])
	}
	if st.Unique[0] != 2 || st.Unique[1] != 2 || st.Unique[2] != 1 {
		t.Fatalf("unexpected unique counts: %v", st.Unique[:3])
	}
	if st.PerSlot[0][0] != 2 || st.PerSlot[1][0] != 1 || st.PerSlot[2][2] != 1 {
		t.Fatalf("unexpected per-slot counts: %v", st.PerSlot)
	}
}

func TestScoreMethods(t *testing.T) {
	st := NewStats([]string{"aab", "abc"}, 3)
	cases := []struct {
		w    string
		m    Method
		want float64
	}{
		{"aab", Cumulative, 3.0 / 6 * 3.0 / 6 * 2.0 / 6},
		{"abc", Cumulative, 3.0 / 6 * 2.0 / 6 * 1.0 / 6},
		{"aab", Unique, 2.0 / 5 * 2.0 / 5 * 2.0 / 5},
		{"abc", Unique, 2.0 / 5 * 2.0 / 5 * 1.0 / 5},
		{"aab", PerSlot, 1 * 0.5 * 0.5},
		{"abc", PerSlot, 1 * 0.5 * 0.5},
	}
	for _, tc := range cases {
		if got := st.Score(tc.w, nil, tc.m); !approx(got, tc.want) {
			t.Fatalf("Score(%q, %s) = %v, want %v", tc.w, tc.m, got, tc.want)
		}
	}
	combined := st.Score("aab", nil, Cumulative) * st.Score("aab", nil, Unique) * st.Score("aab", nil, PerSlot)
	if got := st.Score("aab", nil, Combined); !approx(got, combined) {
		t.Fatalf("combined score %v, want %v", got, combined)
	}
}

func TestScoreSkipsConfirmedPositions(t *testing.T) {
	s := constraint.New(3)
	p, err := feedback.Parse("200", 3)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := s.Update("azz", p); err != nil {
		t.Fatalf("update: %v", err)
	}
	st := NewStats([]string{"aab", "abc"}, 3)
	if got := st.Score("aab", s, Cumulative); !approx(got, 3.0/6*2.0/6) {
		t.Fatalf("unexpected score with confirmed slot: %v", got)
	}
}

func TestRankOrderAndTies(t *testing.T) {
	ranked := Rank([]string{"abc", "aab"}, nil, PerSlot)
	if len(ranked) != 2 || ranked[0].Word != "aab" || ranked[1].Word != "abc" {
		t.Fatalf("expected alphabetical tie-break, got %+v", ranked)
	}
	ranked = Rank([]string{"abc", "aab"}, nil, Cumulative)
	if ranked[0].Word != "aab" {
		t.Fatalf("expected aab first under cumulative, got %+v", ranked)
	}
	ranked = Rank([]string{"xyz", "abd", "abc"}, nil, Unique)
	want := []string{"abc", "abd", "xyz"}
	for i, w := range want {
		if ranked[i].Word != w {
			t.Fatalf("unexpected order: %+v", ranked)
		}
	}
}

func TestRankDeterministic(t *testing.T) {
	pool := []string{"stale", "slate", "steal", "least", "tales", "teats", "state", "taste"}
	for _, m := range Methods() {
		a := Rank(pool, nil, m)
		b := Rank(append([]string(nil), pool...), nil, m)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s ranking differs at %d: %v vs %v", m, i, a[i], b[i])
			}
		}
	}
}

func TestRankEmpty(t *testing.T) {
	if got := Rank(nil, nil, Combined); got != nil {
		t.Fatalf("expected nil ranking, got %v", got)
	}
}

func TestParseMethod(t *testing.T) {
	cases := map[string]Method{
		"cum": Cumulative, "cumulative": Cumulative,
		"uni": Unique, "Unique": Unique,
		"slo": PerSlot, "per-slot": PerSlot, "slot": PerSlot,
		"tot": Combined, "combined": Combined,
	}
	for in, want := range cases {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Fatalf("ParseMethod(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMethod("entropy"); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestTopAndBest(t *testing.T) {
	ranked := Rank([]string{"abc", "aab", "xyz"}, nil, Cumulative)
	if len(Top(ranked, 2)) != 2 || len(Top(ranked, 0)) != 3 || len(Top(ranked, 10)) != 3 {
		t.Fatalf("unexpected Top lengths")
	}
	best := Best([]string{"abc", "aab"}, nil)
	if len(best) != 4 || best[Cumulative] != "aab" {
		t.Fatalf("unexpected best map: %v", best)
	}
}
