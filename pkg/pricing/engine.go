package pricing

import (
	"math"

	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/models"
	"sponsor-letters/pkg/money"
)

// Denomination : les totaux sont arrondis aux 50 dollars les plus proches.
const Denomination = 50.0

var multipliers = map[models.Discount]float64{
	models.DiscountNone: 1.00,
	models.Discount10:   0.90,
	models.Discount15:   0.85,
	models.Discount20:   0.80,
}

// Engine calcule les prix à partir d'un instantané du catalogue. Il ne garde
// aucun état : deux appels identiques donnent le même résultat.
type Engine struct {
	cat *catalog.Catalog
}

func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// Multiplier renvoie le coefficient d'une remise. DiscountCustom n'en a pas
// (ok=false) ; une clé inconnue vaut 1.00.
func Multiplier(d models.Discount) (float64, bool) {
	if d == models.DiscountCustom {
		return 0, false
	}
	if m, ok := multipliers[d]; ok {
		return m, true
	}
	return 1.00, true
}

// RoundNearest50 arrondit au multiple de 50 le plus proche, égalité vers le
// pair (7525 -> 7500, 7575 -> 7600).
func RoundNearest50(amount float64) float64 {
	return math.RoundToEven(amount/Denomination) * Denomination
}

// Calculate ne renvoie jamais d'erreur : un stand ou une option inconnus
// comptent pour 0, une remise inconnue pour 1.00.
func (e *Engine) Calculate(req models.PricingRequest) models.PricingResult {
	tier := req.BoothTier
	if tier == "" {
		tier = models.BoothNone
	}
	boothPrice, _ := e.cat.BoothPrice(tier)

	keys := dedupe(req.AddOnKeys)
	addOnsTotal := 0.0
	for _, k := range keys {
		if a, ok := e.cat.AddOn(req.EventYear, k); ok {
			addOnsTotal += a.Price
		}
	}

	subtotal := boothPrice + addOnsTotal
	res := models.PricingResult{
		BoothTier:   tier,
		BoothPrice:  boothPrice,
		AddOnKeys:   keys,
		AddOnsTotal: addOnsTotal,
		Subtotal:    subtotal,
		Discount:    req.Discount,
	}

	if req.Discount == models.DiscountCustom && req.CustomTotal != nil {
		res.Multiplier = 0
		res.FinalTotal = *req.CustomTotal
	} else {
		m, ok := Multiplier(req.Discount)
		if !ok {
			// total personnalisé absent : pas de remise
			m = 1.00
		}
		res.Multiplier = m
		res.FinalTotal = subtotal * m
	}
	res.DiscountAmount = subtotal - res.FinalTotal
	res.RoundedTotal = RoundNearest50(res.FinalTotal)
	return res
}

// AddOnBreakdown détaille les options connues de l'année, sans doublons.
func (e *Engine) AddOnBreakdown(keys []models.AddOnKey, year int) []models.AddOnLine {
	var out []models.AddOnLine
	for _, k := range dedupe(keys) {
		a, ok := e.cat.AddOn(year, k)
		if !ok {
			continue
		}
		out = append(out, models.AddOnLine{
			Key:            k,
			Label:          a.Label,
			Price:          a.Price,
			PriceFormatted: money.Format(a.Price),
		})
	}
	return out
}

// Display formate un résultat pour l'affichage.
func Display(r models.PricingResult) models.PricingDisplay {
	discount := "None"
	if r.DiscountAmount > 0 {
		discount = "-" + money.Format(r.DiscountAmount)
	}
	return models.PricingDisplay{
		Booth:        money.Format(r.BoothPrice),
		AddOns:       money.Format(r.AddOnsTotal),
		Subtotal:     money.Format(r.Subtotal),
		Discount:     discount,
		TotalBefore:  money.Format(r.FinalTotal),
		FinalRounded: money.Format(r.RoundedTotal),
	}
}

func dedupe(keys []models.AddOnKey) []models.AddOnKey {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[models.AddOnKey]struct{}, len(keys))
	out := make([]models.AddOnKey, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
