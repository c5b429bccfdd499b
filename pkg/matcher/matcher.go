// Package matcher rapproche un nom d'événement saisi librement (tableur,
// formulaire) d'un événement du catalogue.
//
// Trois étapes, la première qui trouve gagne :
//  1. inclusion partielle, sans casse, dans un sens ou dans l'autre ;
//  2. même test sur des noms normalisés (tirets, "Best of ASCO", espaces) ;
//  3. au moins 3 mots en commun, le meilleur score l'emporte.
//
// Chaque étape parcourt le catalogue dans son ordre de chargement et retient
// le premier candidat, pas le « meilleur ».
package matcher

import (
	"sort"
	"strings"

	"sponsor-letters/pkg/models"
)

// MinCommonWords : seuil de l'étape 3.
const MinCommonWords = 3

var dashes = strings.NewReplacer("–", "-", "—", "-", "−", "-")

// Matcher travaille sur une copie figée de la liste des événements.
type Matcher struct {
	events []models.Event
}

func New(events []models.Event) *Matcher {
	cp := make([]models.Event, len(events))
	copy(cp, events)
	return &Matcher{events: cp}
}

// Match renvoie l'événement trouvé et l'étape qui l'a trouvé. Une requête
// vide ou blanche renvoie (nil, none) sans parcourir le catalogue.
func (m *Matcher) Match(query string) models.MatchResult {
	if strings.TrimSpace(query) == "" {
		return models.MatchResult{Confidence: models.ConfidenceNone}
	}
	if i := m.exactPartial(query); i >= 0 {
		return m.result(i, models.ConfidenceExact)
	}
	if i := m.normalized(query); i >= 0 {
		return m.result(i, models.ConfidenceNormalized)
	}
	if i := m.keyword(query); i >= 0 {
		return m.result(i, models.ConfidenceKeyword)
	}
	return models.MatchResult{Confidence: models.ConfidenceNone}
}

func (m *Matcher) result(i int, c models.Confidence) models.MatchResult {
	e := clone(m.events[i])
	return models.MatchResult{Event: &e, Confidence: c}
}

func clone(e models.Event) models.Event {
	if e.ExpectedAttendance != nil {
		n := *e.ExpectedAttendance
		e.ExpectedAttendance = &n
	}
	return e
}

func (m *Matcher) exactPartial(query string) int {
	q := strings.ToLower(query)
	for i, e := range m.events {
		name := strings.ToLower(e.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return i
		}
	}
	return -1
}

func (m *Matcher) normalized(query string) int {
	q := normalize(query)
	for i, e := range m.events {
		name := normalize(e.Name)
		if strings.Contains(name, q) || strings.Contains(q, name) {
			return i
		}
	}
	return -1
}

func (m *Matcher) keyword(query string) int {
	words := wordSet(query)
	best, bestCount := -1, 0
	for i, e := range m.events {
		n := commonCount(words, wordSet(e.Name))
		// strictement supérieur : à égalité, le premier du catalogue reste
		if n >= MinCommonWords && n > bestCount {
			best, bestCount = i, n
		}
	}
	return best
}

// FindSimilar classe les événements par similarité de Jaccard sur les mots
// (intersection / union), scores nuls exclus, au plus limit résultats.
func (m *Matcher) FindSimilar(query string, limit int) []models.SimilarEvent {
	if limit <= 0 {
		return nil
	}
	words := wordSet(query)
	var out []models.SimilarEvent
	for _, e := range m.events {
		if s := jaccard(words, wordSet(e.Name)); s > 0 {
			out = append(out, models.SimilarEvent{Event: clone(e), Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// normalize : minuscules, tirets unifiés, "best of asco" -> "asco direct",
// "best of" et "best" supprimés, espaces compactés.
func normalize(name string) string {
	name = strings.ToLower(name)
	name = dashes.Replace(name)
	name = strings.ReplaceAll(name, "best of asco", "asco direct")
	name = strings.ReplaceAll(name, "best of", "")
	name = strings.ReplaceAll(name, "best", "")
	return strings.Join(strings.Fields(name), " ")
}

func wordSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func commonCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := commonCount(a, b)
	union := len(a) + len(b) - common
	return float64(common) / float64(union)
}
