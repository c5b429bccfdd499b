package letters

import (
	"strings"
	"unicode"

	"sponsor-letters/pkg/models"
)

// SafeFilename ne garde que lettres, chiffres, espaces, "-" et "_", compacte
// les espaces en "_" et tronque à max caractères (max <= 0 : pas de limite).
func SafeFilename(s string, max int) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case r == ' ':
			space = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			if space && b.Len() > 0 {
				b.WriteByte('_')
			}
			space = false
			b.WriteRune(r)
		}
	}
	out := b.String()
	if max > 0 {
		if rs := []rune(out); len(rs) > max {
			out = string(rs[:max])
		}
	}
	return out
}

// BaseFilename : nom de fichier d'une lettre, sans extension
// ("LOR_Acme_Corp_2026_ASCO_Direct_Denver").
func BaseFilename(doc models.DocumentType, company, meeting string) string {
	if strings.TrimSpace(company) == "" {
		company = "Company"
	}
	return SafeFilename(string(doc)+" "+company+" "+meeting, 0)
}
