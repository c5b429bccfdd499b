// Package money formate et relit les montants en dollars ($7,500.00).
package money

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format : deux décimales, séparateur de milliers, préfixe "$". Le signe
// d'un montant négatif suit le "$" ("$-1,500.00"). Les noms de fichiers générés et le corps des lettres reprennent ce format
// tel quel.
func Format(amount float64) string {
	// message.Printer n'est pas sûr en concurrence : un par appel.
	p := message.NewPrinter(language.AmericanEnglish)
	return "$" + p.Sprintf("%.2f", amount)
}

// Parse lit un montant saisi librement ("$6,750", "6750.00").
// Toute valeur illisible vaut 0.
func Parse(s string) float64 {
	v, _ := ParseOK(s)
	return v
}

// ParseOK est comme Parse mais signale une valeur absente ou illisible.
func ParseOK(s string) (float64, bool) {
	clean := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
