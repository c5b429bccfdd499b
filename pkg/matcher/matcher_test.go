package matcher

import (
	"testing"

	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/models"
)

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(c.Events())
}

func names(ns ...string) []models.Event {
	out := make([]models.Event, len(ns))
	for i, n := range ns {
		out[i] = models.Event{Name: n}
	}
	return out
}

func assertMatch(t *testing.T, got models.MatchResult, wantName string, wantConf models.Confidence) {
	t.Helper()
	if got.Confidence != wantConf {
		t.Fatalf("got confidence %q, want %q", got.Confidence, wantConf)
	}
	if wantName == "" {
		if got.Event != nil {
			t.Fatalf("expected no event, got %q", got.Event.Name)
		}
		return
	}
	if got.Event == nil {
		t.Fatalf("expected %q, got no event", wantName)
	}
	if got.Event.Name != wantName {
		t.Fatalf("got %q, want %q", got.Event.Name, wantName)
	}
}

func TestMatch_Exact(t *testing.T) {
	m := defaultMatcher(t)
	assertMatch(t, m.Match("2026 ASCO Direct Denver"), "2026 ASCO Direct Denver", models.ConfidenceExact)
	assertMatch(t, m.Match("ASCO Direct Denver"), "2026 ASCO Direct Denver", models.ConfidenceExact)
	assertMatch(t, m.Match("2026 esmo usa east orlando"), "2026 ESMO USA East", models.ConfidenceExact)
}

func TestMatch_FirstMatchWins(t *testing.T) {
	m := defaultMatcher(t)
	// plusieurs événements contiennent "Denver" : le premier du catalogue gagne
	assertMatch(t, m.Match("Denver"), "2025 Cancer Updates Heme and GU, Denver, CO", models.ConfidenceExact)
}

func TestMatch_Normalized(t *testing.T) {
	m := New(names("2026 ASCO Direct Austin", "2026 ASCO Direct Denver"))
	assertMatch(t, m.Match("2026 Best of ASCO Denver"), "2026 ASCO Direct Denver", models.ConfidenceNormalized)

	m = New(names("2026 Oncology Clinical Updates - Review and Renew Sedona"))
	assertMatch(t, m.Match("2026 Oncology Clinical Updates – Review and  Renew"), "2026 Oncology Clinical Updates - Review and Renew Sedona", models.ConfidenceNormalized)

	assertMatch(t, defaultMatcher(t).Match("2026 Best of ASCO Denver"), "2026 ASCO Direct Denver", models.ConfidenceNormalized)
}

func TestMatch_Keyword(t *testing.T) {
	m := defaultMatcher(t)
	assertMatch(t, m.Match("2026 Denver June ASCO"), "2026 ASCO Direct Denver", models.ConfidenceKeyword)
	assertMatch(t, m.Match("best of hematology 2026"), "2026 Best of Hematology Conference", models.ConfidenceKeyword)
}

func TestMatch_KeywordThreshold(t *testing.T) {
	m := New(names("2026 Cancer Updates Dallas", "2026 ASCO Direct Boston", "2025 Retreat Boston"))

	// 3 mots en commun avec un seul événement
	assertMatch(t, m.Match("boston asco june 2026"), "2026 ASCO Direct Boston", models.ConfidenceKeyword)

	// 2 mots au plus avec chacun
	assertMatch(t, m.Match("2026 boston gala"), "", models.ConfidenceNone)
}

func TestMatch_KeywordPrefersHighestThenFirst(t *testing.T) {
	m := New(names("alpha beta gamma one", "alpha beta gamma delta two", "alpha beta gamma delta three"))
	assertMatch(t, m.Match("delta gamma beta alpha zeta"), "alpha beta gamma delta two", models.ConfidenceKeyword)
}

func TestMatch_None(t *testing.T) {
	m := defaultMatcher(t)
	assertMatch(t, m.Match("NonExistent Event 2099"), "", models.ConfidenceNone)
}

func TestMatch_EmptyQuery(t *testing.T) {
	for _, q := range []string{"", "   ", "\t\n"} {
		assertMatch(t, defaultMatcher(t).Match(q), "", models.ConfidenceNone)
		assertMatch(t, New(nil).Match(q), "", models.ConfidenceNone)
	}
}

func TestMatch_ReturnsCopy(t *testing.T) {
	m := New(names("2026 ASCO Direct Denver"))
	r := m.Match("denver")
	r.Event.Name = "changed"
	assertMatch(t, m.Match("denver"), "2026 ASCO Direct Denver", models.ConfidenceExact)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"2026 Best of ASCO Denver":  "2026 asco direct denver",
		"2026 Best of Breast  Conf": "2026 breast conf",
		"Review — and – Renew":      "review - and - renew",
		"  Best Practices  ":        "practices",
	}
	for in, want := range cases {
		if got := normalize(in); got != want {
			t.Fatalf("normalize(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	m := defaultMatcher(t)
	got := m.FindSimilar("ASCO Denver 2026", 3)
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[0].Event.Name != "2026 ASCO Direct Denver" || got[0].Score != 0.75 {
		t.Fatalf("unexpected top result: %+v", got[0])
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not sorted: %+v", got)
		}
	}
}

func TestFindSimilar_StableTiesAndFilter(t *testing.T) {
	m := New(names("red fox", "blue fox", "green owl"))
	got := m.FindSimilar("fox", 10)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2 (zero scores dropped)", len(got))
	}
	if got[0].Event.Name != "red fox" || got[1].Event.Name != "blue fox" {
		t.Fatalf("ties should keep catalog order: %+v", got)
	}
	if got[0].Score != 0.5 {
		t.Fatalf("got score %v, want 0.5", got[0].Score)
	}
	if res := m.FindSimilar("fox", 0); len(res) != 0 {
		t.Fatalf("limit 0 should return nothing, got %d", len(res))
	}
	if res := m.FindSimilar("", 5); len(res) != 0 {
		t.Fatalf("empty query should return nothing, got %d", len(res))
	}
}

// Une requête vidée par la normalisation ("best", "best of") est contenue
// dans tous les noms : le premier événement du catalogue répond.
func TestMatch_NormalizesToEmpty(t *testing.T) {
	m := New(names("2025 Astera Cancer Care Annual Retreat", "2026 ASCO Direct Denver"))
	assertMatch(t, m.Match("bestbest"), "2025 Astera Cancer Care Annual Retreat", models.ConfidenceNormalized)
	assertMatch(t, m.Match("Best of"), "2025 Astera Cancer Care Annual Retreat", models.ConfidenceNormalized)
}
