package letters

import (
	"errors"
	"fmt"
	"strings"

	"sponsor-letters/pkg/models"
)

// Format : format de sortie d'une lettre, aussi utilisé comme extension.
type Format string

const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
)

// ErrUnknownFormat : format absent de la liste txt, pdf.
var ErrUnknownFormat = errors.New("unknown letter format")

// Ext : ".txt", ".pdf".
func (f Format) Ext() string { return "." + string(f) }

// ParseFormats lit une liste séparée par des virgules ("txt,pdf"). Une liste
// vide donne le texte seul ; les doublons sont ignorés.
func ParseFormats(s string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]bool)
	for _, f := range strings.Split(s, ",") {
		f := Format(strings.ToLower(strings.TrimSpace(f)))
		switch f {
		case "":
			continue
		case FormatText, FormatPDF:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []Format{FormatText}
	}
	return out, nil
}

// Render produit la lettre dans le format demandé.
func (r *Renderer) Render(p models.LetterPayload, f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return r.Text(p), nil
	case FormatPDF:
		return r.PDF(p)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
