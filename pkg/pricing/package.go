package pricing

import "sponsor-letters/pkg/models"

// CalculatePackage additionne plusieurs événements dans un package
// multi-conférences. Pas de remise ni d'arrondi : chaque événement est
// tarifé à son année.
func (e *Engine) CalculatePackage(items []models.PackageItem) models.PackageResult {
	var res models.PackageResult
	for _, it := range items {
		r := e.Calculate(models.PricingRequest{
			BoothTier: it.BoothTier,
			AddOnKeys: it.AddOnKeys,
			EventYear: e.cat.EventYear(it.Event),
			Discount:  models.DiscountNone,
		})
		res.TotalBoothCost += r.BoothPrice
		res.TotalAddOnCost += r.AddOnsTotal
		res.Lines = append(res.Lines, models.PackageLine{
			EventName:  it.Event.Name,
			BoothTier:  r.BoothTier,
			BoothCost:  r.BoothPrice,
			AddOnKeys:  r.AddOnKeys,
			AddOnCost:  r.AddOnsTotal,
			EventTotal: r.BoothPrice + r.AddOnsTotal,
		})
	}
	res.FinalTotal = res.TotalBoothCost + res.TotalAddOnCost
	if len(items) > 0 {
		res.AveragePerEvent = res.FinalTotal / float64(len(items))
	}
	return res
}
