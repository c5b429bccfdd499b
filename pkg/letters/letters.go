// Package letters produit les lettres LOR (demande) et LOA (accord).
//
// Paragraphs renvoie le corps de la lettre ligne par ligne. Text et PDF
// assemblent la lettre complète (avantages du stand, options, informations
// complémentaires et signature pour une LOR), en texte brut ou en PDF.
package letters

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"sponsor-letters/pkg/money"
	"sponsor-letters/pkg/models"
)

// DateLayout : format des dates dans les lettres ("June 05, 2026").
const DateLayout = "January 02, 2006"

const blankLine = "____________________________"

// Renderer produit les lettres pour un émetteur donné.
type Renderer struct {
	issuer Issuer
}

func NewRenderer(issuer Issuer) *Renderer {
	return &Renderer{issuer: issuer}
}

// Paragraphs renvoie les paragraphes de la lettre selon son type. Un type
// inconnu est traité comme une LOR.
func (r *Renderer) Paragraphs(p models.LetterPayload) []string {
	if p.DocumentType == models.DocumentLOA {
		return r.loa(p)
	}
	return r.lor(p)
}

func (r *Renderer) lor(p models.LetterPayload) []string {
	audience := p.Audience
	if audience == "" {
		audience = DefaultAudience
	}

	paras := []string{
		"Letter of Request",
		letterDate(p),
		"Dear Exhibitor,",
		fmt.Sprintf("%s is proud to submit this request to %s for support of %s. The meeting will take place on %s at %s, %s.",
			r.issuer.ShortName, p.CompanyName, p.MeetingName, p.MeetingDate, p.Venue, p.CityState),
	}
	if p.AttendanceExpected != nil && *p.AttendanceExpected > 0 {
		paras = append(paras, fmt.Sprintf("We expect %d total attendees, including %s. Attendance numbers are expected, but not guaranteed.",
			*p.AttendanceExpected, audience))
	} else {
		paras = append(paras, fmt.Sprintf("We expect a strong mix of %s. Attendance numbers are expected, but not guaranteed.", audience))
	}
	paras = append(paras,
		fmt.Sprintf("%s will showcase clinical presentations, allowing attendees to engage in presentation, discussion, analysis, and participation.", p.MeetingName),
		fmt.Sprintf("Your support in the amount of %s will provide you with an opportunity to support high-quality education. %s will provide you with the following benefits:",
			p.AmountCurrency, r.issuer.ShortName),
	)
	return paras
}

func (r *Renderer) loa(p models.LetterPayload) []string {
	company := orDefault(p.CompanyName, "[Company]")
	address := orDefault(p.CompanyAddress, "[Address]")
	meeting := orDefault(p.MeetingName, "[Meeting]")
	date := orDefault(p.MeetingDate, "[Date]")
	amount := orDefault(p.AmountCurrency, "[Amount]")

	party := r.issuer.partyName()
	terms := strings.NewReplacer("{party}", party)

	var paras []string
	add := func(lines ...string) { paras = append(paras, lines...) }

	add("LETTER OF AGREEMENT (LOA)", "",
		fmt.Sprintf("This Letter of Agreement (the \"Agreement\") is made as of %s by and between %s (\"%s\"), with its principal place of business at %s, and %s (\"Sponsor\"), with its principal place of business at %s. The individual signing this Agreement represents that they have the authority to legally bind the Sponsor to this Agreement.",
			letterDate(p), r.issuer.LegalName, party, r.issuer.Address, company, address), "",
		"1. Purpose", "",
		"The purpose of this Agreement is to outline the terms under which the Sponsor agrees to participate in "+party+"'s educational events by securing exhibit tables, product theaters, and other sponsorship-related opportunities, as defined in the attached Scope of Work (SOW).", "",
		"2. Scope of Work (SOW)", "",
		"The SOW, attached as Exhibit A, details the educational services "+party+" will provide.", "",
		"Each sponsorship opportunity including name and date of meeting, city, and specific sponsor items will be specified in the SOW. This Agreement applies to all events listed within the specified dates and covers all agreed-upon sponsorship activities.", "",
		"**SPECIFIC EVENT DETAILS:**",
		"• Event: "+meeting,
		"• Date: "+date,
		"• Location: "+Location(p.Venue, p.CityState),
		"• Total Sponsorship Amount: "+amount, "",
		"**DETAILED SCOPE OF WORK:**", "",
	)

	if p.BoothSelected {
		add("**EXHIBIT BOOTH SPONSORSHIP:**",
			"• Booth Tier: "+boothLabel(p.BoothTier),
			"• Booth Cost: "+money.Format(p.BoothPrice),
			"• Booth Benefits:")
		for _, b := range BoothBenefits {
			add("  - " + b)
		}
		add("")
	}

	if len(p.AddOns) > 0 {
		add("**ADDITIONAL SPONSORSHIP COMPONENTS:**")
		for _, a := range p.AddOns {
			add(fmt.Sprintf("• %s: %s", a.Label, money.Format(a.Price)))
			for _, b := range AddOnBullets[a.Key] {
				add("  - " + b)
			}
		}
		add("")
	}

	if info := strings.TrimSpace(p.AdditionalInfo); info != "" {
		add("**ADDITIONAL SPONSORSHIP REQUIREMENTS:**", info, "")
	}

	for _, s := range agreementTerms {
		add(s.heading, "")
		for _, b := range s.body {
			add(terms.Replace(b), "")
		}
	}

	name, title := splitSignatory(orDefault(p.SignaturePerson, r.issuer.Signatory))
	add("14. Signatures", "",
		"By signing below, the parties agree to the terms and conditions outlined in this Agreement.", "",
		party, "",
		"By: "+blankLine,
		"Name: "+name,
		"Title: "+title,
		"Date: "+letterDate(p),
		"", "",
		company, "",
		"By: "+blankLine,
		"Name: "+blankLine,
		"Title: "+blankLine,
		"Date: "+blankLine,
	)
	return paras
}

// Text assemble la lettre complète en texte brut. Pour une LOR, les avantages
// du stand, les options et les informations complémentaires suivent le corps,
// puis la formule de clôture et la signature.
func (r *Renderer) Text(p models.LetterPayload) []byte {
	var buf bytes.Buffer
	for _, b := range r.blocks(p) {
		buf.WriteString(b.text)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Location n'affiche que la ville quand le lieu y est déjà contenu.
func Location(venue, cityState string) string {
	if venue == "" || strings.Contains(cityState, venue) {
		return orDefault(cityState, "[City, State]")
	}
	if cityState == "" {
		return venue
	}
	return venue + ", " + cityState
}

// ParseAdditionalInfo découpe le texte libre : la première ligne non vide est
// l'introduction, les suivantes deviennent des puces débarrassées de leur
// marqueur ("-", "•", "*", "1.", "2)").
func ParseAdditionalInfo(text string) (string, []string) {
	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return "", nil
	}

	var bullets []string
	for _, ln := range lines[1:] {
		s := strings.TrimSpace(strings.TrimLeft(ln, "-•*"))
		if len(s) > 2 && s[0] >= '0' && s[0] <= '9' && (s[1] == '.' || s[1] == ')') {
			s = strings.TrimSpace(s[2:])
		}
		if s != "" {
			bullets = append(bullets, s)
		}
	}
	return lines[0], bullets
}

func letterDate(p models.LetterPayload) string {
	d := p.Date
	if d.IsZero() {
		d = time.Now()
	}
	return d.Format(DateLayout)
}

func boothLabel(t models.BoothTier) string {
	if l, ok := models.BoothTierLabels[t]; ok {
		return l
	}
	return string(t)
}

func splitSignatory(s string) (name, title string) {
	if n, t, ok := strings.Cut(s, " - "); ok {
		return n, t
	}
	return s, blankLine
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
