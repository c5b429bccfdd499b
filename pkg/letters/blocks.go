package letters

import (
	"regexp"
	"strings"

	"sponsor-letters/pkg/models"
)

type blockKind int

const (
	blockText blockKind = iota
	blockTitle
	blockHeading
	blockLabel
	blockBullet
	blockSubBullet
	blockBlank
)

// block : une ligne de lettre et son rôle dans la mise en page.
type block struct {
	kind blockKind
	text string
}

// "1. Purpose", "14. Signatures"
var sectionRe = regexp.MustCompile(`^\d+\. [A-Z][^.]*$`)

// blocks : paragraphes classés puis, pour une LOR, la fin de lettre.
func (r *Renderer) blocks(p models.LetterPayload) []block {
	paras := r.Paragraphs(p)
	out := make([]block, 0, len(paras)+24)
	for i, s := range paras {
		out = append(out, classify(i, s))
	}
	if p.DocumentType != models.DocumentLOA {
		out = append(out, r.closing(p)...)
	}
	return out
}

func classify(i int, s string) block {
	kind := blockText
	switch {
	case i == 0:
		kind = blockTitle
	case s == "":
		kind = blockBlank
	case len(s) > 4 && strings.HasPrefix(s, "**") && strings.HasSuffix(s, "**"):
		kind = blockHeading
	case strings.HasPrefix(s, "• "):
		kind = blockBullet
	case strings.HasPrefix(s, "  - "):
		kind = blockSubBullet
	case sectionRe.MatchString(s):
		kind = blockHeading
	}
	return block{kind: kind, text: s}
}

// closing : avantages du stand, options, informations complémentaires et
// signature d'une LOR.
func (r *Renderer) closing(p models.LetterPayload) []block {
	var out []block
	add := func(kind blockKind, text string) { out = append(out, block{kind, text}) }
	bullets := func(items []string) {
		for _, it := range items {
			add(blockBullet, "• "+it)
		}
	}

	if p.BoothSelected {
		add(blockBlank, "")
		add(blockHeading, "Exhibit Booth")
		bullets(BoothBenefits)
	}
	if len(p.AddOns) > 0 {
		add(blockBlank, "")
		add(blockHeading, "Selected Add-Ons")
		for _, a := range p.AddOns {
			add(blockLabel, a.Label)
			bullets(AddOnBullets[a.Key])
		}
	}
	if lead, items := ParseAdditionalInfo(p.AdditionalInfo); lead != "" {
		add(blockBlank, "")
		add(blockHeading, "Additional Information")
		add(blockText, lead)
		bullets(items)
	}

	name, title := splitSignatory(orDefault(p.SignaturePerson, r.issuer.Signatory))
	add(blockBlank, "")
	add(blockText, "Grateful for your support,")
	add(blockBlank, "")
	add(blockLabel, name)
	if title != blankLine {
		add(blockText, title)
	}
	if r.issuer.Email != "" {
		add(blockText, r.issuer.Email)
	}
	return out
}
