package catalog

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"sponsor-letters/pkg/models"
)

const eventDateLayout = "January 2, 2006"

var trailingYearRe = regexp.MustCompile(`(\d{4})\s*$`)

// ParseEventDate lit le premier jour d'une date de catalogue : "June 13-14,
// 2026", "November 1–2, 2025" ou "January 31-February 1, 2026".
func ParseEventDate(text string) (time.Time, bool) {
	text = strings.TrimSpace(text)
	first, _, ranged := strings.Cut(strings.ReplaceAll(text, "–", "-"), "-")
	first = strings.TrimSpace(first)
	if ranged && !strings.Contains(first, ",") {
		m := trailingYearRe.FindStringSubmatch(text)
		if m == nil {
			return time.Time{}, false
		}
		first += ", " + m[1]
	}
	t, err := time.Parse(eventDateLayout, first)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Upcoming renvoie les événements qui commencent le jour de now ou après, du
// plus proche au plus lointain. Les dates illisibles sont ignorées.
func (c *Catalog) Upcoming(now time.Time) []models.Event {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type dated struct {
		ev  models.Event
		day time.Time
	}
	var list []dated
	for _, e := range c.events {
		d, ok := ParseEventDate(e.DateText)
		if !ok || d.Before(today) {
			continue
		}
		list = append(list, dated{cloneEvent(e), d})
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].day.Before(list[j].day) })

	out := make([]models.Event, len(list))
	for i, d := range list {
		out[i] = d.ev
	}
	return out
}
