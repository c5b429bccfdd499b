package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sponsor-letters/pkg/models"
)

// ErrInvalidCatalog est renvoyée quand les données du catalogue sont incohérentes.
var ErrInvalidCatalog = errors.New("catalogue invalide")

// AddOnTable : grille d'options d'une année de tarification.
type AddOnTable struct {
	Year   int
	AddOns []models.AddOn
}

type addOnIndex struct {
	order []models.AddOnKey
	byKey map[models.AddOnKey]models.AddOn
}

// Catalog est un instantané immuable des événements et des grilles tarifaires.
// Toutes les méthodes renvoient des copies : un appelant ne peut pas modifier
// le catalogue partagé.
type Catalog struct {
	events    []models.Event
	booths    map[models.BoothTier]float64
	olderYear int
	newerYear int
	older     addOnIndex
	newer     addOnIndex
}

// New valide puis copie les données fournies.
func New(events []models.Event, booths map[models.BoothTier]float64, older, newer AddOnTable) (*Catalog, error) {
	if older.Year == newer.Year {
		return nil, fmt.Errorf("%w: années de tarification identiques (%d)", ErrInvalidCatalog, older.Year)
	}

	c := &Catalog{
		events:    make([]models.Event, 0, len(events)),
		booths:    make(map[models.BoothTier]float64, len(booths)),
		olderYear: older.Year,
		newerYear: newer.Year,
	}

	seen := make(map[string]struct{}, len(events))
	for i, e := range events {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: événement #%d sans nom", ErrInvalidCatalog, i)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: événement en double %q", ErrInvalidCatalog, e.Name)
		}
		seen[e.Name] = struct{}{}
		if e.DefaultTier == "" {
			e.DefaultTier = models.BoothNone
		}
		if !e.DefaultTier.Known() {
			return nil, fmt.Errorf("%w: niveau %q inconnu pour %q", ErrInvalidCatalog, e.DefaultTier, e.Name)
		}
		if e.ExpectedAttendance != nil && *e.ExpectedAttendance < 0 {
			return nil, fmt.Errorf("%w: participation négative pour %q", ErrInvalidCatalog, e.Name)
		}
		c.events = append(c.events, cloneEvent(e))
	}

	for tier, price := range booths {
		if !tier.Known() || tier == models.BoothNone {
			return nil, fmt.Errorf("%w: niveau de stand %q inconnu", ErrInvalidCatalog, tier)
		}
		if price < 0 {
			return nil, fmt.Errorf("%w: prix négatif pour %q", ErrInvalidCatalog, tier)
		}
		c.booths[tier] = price
	}

	var err error
	if c.older, err = indexAddOns(older); err != nil {
		return nil, err
	}
	if c.newer, err = indexAddOns(newer); err != nil {
		return nil, err
	}
	return c, nil
}

func indexAddOns(t AddOnTable) (addOnIndex, error) {
	idx := addOnIndex{byKey: make(map[models.AddOnKey]models.AddOn, len(t.AddOns))}
	for _, a := range t.AddOns {
		if a.Key == "" {
			return addOnIndex{}, fmt.Errorf("%w: option sans clé (%d)", ErrInvalidCatalog, t.Year)
		}
		if _, dup := idx.byKey[a.Key]; dup {
			return addOnIndex{}, fmt.Errorf("%w: option %q en double (%d)", ErrInvalidCatalog, a.Key, t.Year)
		}
		if a.Price < 0 {
			return addOnIndex{}, fmt.Errorf("%w: prix négatif pour l'option %q (%d)", ErrInvalidCatalog, a.Key, t.Year)
		}
		idx.order = append(idx.order, a.Key)
		idx.byKey[a.Key] = a
	}
	return idx, nil
}

func cloneEvent(e models.Event) models.Event {
	if e.ExpectedAttendance != nil {
		n := *e.ExpectedAttendance
		e.ExpectedAttendance = &n
	}
	return e
}

// Events renvoie tous les événements dans l'ordre de chargement.
func (c *Catalog) Events() []models.Event {
	out := make([]models.Event, len(c.events))
	for i, e := range c.events {
		out[i] = cloneEvent(e)
	}
	return out
}

// Len : nombre d'événements.
func (c *Catalog) Len() int { return len(c.events) }

func (c *Catalog) OlderYear() int { return c.olderYear }
func (c *Catalog) NewerYear() int { return c.newerYear }

// BoothPrice renvoie le prix d'un niveau de stand. BoothNone et les niveaux
// absents de la grille valent 0 (ok=false).
func (c *Catalog) BoothPrice(tier models.BoothTier) (float64, bool) {
	if tier == models.BoothNone {
		return 0, false
	}
	p, ok := c.booths[tier]
	return p, ok
}

// BoothPrices renvoie une copie de la grille des stands.
func (c *Catalog) BoothPrices() map[models.BoothTier]float64 {
	out := make(map[models.BoothTier]float64, len(c.booths))
	for k, v := range c.booths {
		out[k] = v
	}
	return out
}

// table : toute année autre que l'année récente retombe sur l'ancienne grille.
func (c *Catalog) table(year int) addOnIndex {
	if year == c.newerYear {
		return c.newer
	}
	return c.older
}

// AddOn cherche une option dans la grille de l'année donnée.
func (c *Catalog) AddOn(year int, key models.AddOnKey) (models.AddOn, bool) {
	a, ok := c.table(year).byKey[key]
	return a, ok
}

// AddOnsFor liste les options de l'année, dans l'ordre de la grille.
func (c *Catalog) AddOnsFor(year int) []models.AddOn {
	t := c.table(year)
	out := make([]models.AddOn, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.byKey[k])
	}
	return out
}

// EventYear déduit l'année de tarification à partir du nom de l'événement.
func (c *Catalog) EventYear(e models.Event) int {
	return c.YearOf(e.Name)
}

// YearOf : année récente si le nom la contient, sinon l'ancienne.
func (c *Catalog) YearOf(name string) int {
	if strings.Contains(name, strconv.Itoa(c.newerYear)) {
		return c.newerYear
	}
	return c.olderYear
}

// EventsByYear filtre les événements par année de tarification.
func (c *Catalog) EventsByYear(year int) []models.Event {
	var out []models.Event
	for _, e := range c.events {
		if c.EventYear(e) == year {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}

// FindByName : correspondance exacte sur le nom.
func (c *Catalog) FindByName(name string) (models.Event, bool) {
	for _, e := range c.events {
		if e.Name == name {
			return cloneEvent(e), true
		}
	}
	return models.Event{}, false
}

// Search cherche (sans casse) dans le nom, la ville et le lieu.
func (c *Catalog) Search(query string) []models.Event {
	q := strings.ToLower(query)
	var out []models.Event
	for _, e := range c.events {
		searchable := strings.ToLower(e.Name + " " + e.CityState + " " + e.Venue)
		if strings.Contains(searchable, q) {
			out = append(out, cloneEvent(e))
		}
	}
	return out
}
