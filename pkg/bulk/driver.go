// Package bulk génère une lettre par ligne de tableur et les range dans une
// archive zip. Une ligne en échec est notée dans le rapport sans interrompre
// le lot ; seules une erreur d'écriture de l'archive ou l'annulation du
// contexte arrêtent le traitement.
package bulk

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"sponsor-letters/pkg/activity"
	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/letters"
	"sponsor-letters/pkg/matcher"
	"sponsor-letters/pkg/models"
	"sponsor-letters/pkg/money"
	"sponsor-letters/pkg/pricing"
)

const (
	letterDir       = "Letters/"
	maxInviteName   = 80
	maxCompanyName  = 40
	defaultCompany  = "[Company Name]"
	archiveDateForm = "20060102"
)

// Recorder reçoit une entrée par lettre générée (journal d'activité).
type Recorder interface {
	Append(e models.ActivityEntry) (models.ActivityEntry, error)
}

// Options d'un lot.
type Options struct {
	DocumentType models.DocumentType
	CompanyName  string           // prioritaire sur la colonne "Company Name"
	Date         time.Time        // date des lettres ; zéro = maintenant
	Recorder     Recorder         // optionnel
	Formats      []letters.Format // un fichier par format ; vide = texte seul
	Progress     io.Writer        // barre de progression ; nil = aucune
	Verbose      bool
}

// Driver enchaîne rapprochement, calcul et rendu pour chaque ligne.
type Driver struct {
	cat      *catalog.Catalog
	matcher  *matcher.Matcher
	engine   *pricing.Engine
	renderer *letters.Renderer
	now      func() time.Time
}

func NewDriver(cat *catalog.Catalog, renderer *letters.Renderer) *Driver {
	return &Driver{
		cat:      cat,
		matcher:  matcher.New(cat.Events()),
		engine:   pricing.NewEngine(cat),
		renderer: renderer,
		now:      time.Now,
	}
}

// ArchiveName : "{DOC}_{Company}_{N}_Letters_{YYYYMMDD}.zip", ou
// "{DOC}_Excel_Bulk_{N}_Letters_{YYYYMMDD}.zip" sans société.
func ArchiveName(doc models.DocumentType, company string, n int, day time.Time) string {
	if c := letters.SafeFilename(company, maxCompanyName); c != "" {
		return fmt.Sprintf("%s_%s_%d_Letters_%s.zip", doc, c, n, day.Format(archiveDateForm))
	}
	return fmt.Sprintf("%s_Excel_Bulk_%d_Letters_%s.zip", doc, n, day.Format(archiveDateForm))
}

// Run écrit l'archive dans w et renvoie le rapport du lot. En cas
// d'annulation, le rapport partiel est renvoyé avec ctx.Err().
func (d *Driver) Run(ctx context.Context, rows []models.BulkRow, opts Options, w io.Writer) (models.BulkReport, error) {
	if opts.DocumentType == "" {
		opts.DocumentType = models.DocumentLOR
	}
	day := opts.Date
	if day.IsZero() {
		day = d.now()
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = []letters.Format{letters.FormatText}
	}

	report := models.BulkReport{
		BatchID:     uuid.NewString(),
		ArchiveName: ArchiveName(opts.DocumentType, opts.CompanyName, len(rows), day),
		TotalRows:   len(rows),
		Errors:      []string{},
		Files:       []string{},
	}
	if opts.Verbose {
		log.Printf("[INFO] batch=%s rows=%d doc=%s", report.BatchID, len(rows), opts.DocumentType)
	}

	zw := zip.NewWriter(w)
	bar := progressbar.NewOptions64(int64(len(rows)),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription(string(opts.DocumentType)),
		progressbar.OptionShowCount(),
	)
	used := make(map[string]bool)

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if row.RowNumber == 0 {
			row.RowNumber = i + 2
		}

		payload, total, err := d.payload(row, opts, day)
		var docs [][]byte
		if err == nil {
			docs, err = d.render(payload, formats)
		}
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %v", row.RowNumber, err))
			_ = bar.Add(1)
			if opts.Verbose {
				log.Printf("[WARN] row %d: %v", row.RowNumber, err)
			}
			continue
		}

		base := uniqueName(used, inviteName(row))
		for j, format := range formats {
			name := letterDir + base + format.Ext()
			f, err := zw.Create(name)
			if err != nil {
				return report, fmt.Errorf("zip %s: %w", name, err)
			}
			if _, err := f.Write(docs[j]); err != nil {
				return report, fmt.Errorf("zip %s: %w", name, err)
			}
			report.Files = append(report.Files, name)
		}
		report.Generated++

		if opts.Recorder != nil {
			_, err := opts.Recorder.Append(models.ActivityEntry{
				CompanyName:   payload.CompanyName,
				MeetingName:   payload.MeetingName,
				DocumentType:  opts.DocumentType,
				BoothSelected: boothKey(payload),
				AddOns:        addOnKeys(payload.AddOns),
				TotalCost:     total,
				Mode:          activity.ModeExcelBulk,
			})
			if err != nil {
				log.Printf("[WARN] row %d: activity log: %v", row.RowNumber, err)
			}
		}

		_ = bar.Add(1)
		if opts.Verbose {
			log.Printf("[INFO] row %d -> %s (%s)", row.RowNumber, payload.MeetingName, payload.AmountCurrency)
		}
	}

	if err := zw.Close(); err != nil {
		return report, fmt.Errorf("close zip: %w", err)
	}
	return report, nil
}

// render produit la lettre dans chaque format avant toute écriture dans
// l'archive.
func (d *Driver) render(p models.LetterPayload, formats []letters.Format) ([][]byte, error) {
	docs := make([][]byte, len(formats))
	for i, f := range formats {
		data, err := d.renderer.Render(p, f)
		if err != nil {
			return nil, err
		}
		docs[i] = data
	}
	return docs, nil
}

// payload construit la lettre d'une ligne. Le total vient de la colonne
// "Total" ; s'il est vide, il est calculé à partir du stand, des options et
// de la remise de la ligne.
func (d *Driver) payload(row models.BulkRow, opts Options, day time.Time) (models.LetterPayload, float64, error) {
	m := d.matcher.Match(row.EventName)
	if !m.Found() {
		return models.LetterPayload{}, 0, fmt.Errorf("Event '%s' not found in system", row.EventName)
	}
	ev := *m.Event
	year := d.cat.EventYear(ev)

	tier := ev.DefaultTier
	if row.BoothTier != "" {
		tier = models.ParseBoothTier(row.BoothTier)
	}
	keys := ParseAddOns(row.AddOns)

	var total float64
	if strings.TrimSpace(row.Total) == "" {
		res := d.engine.Calculate(models.PricingRequest{
			BoothTier: tier,
			AddOnKeys: keys,
			EventYear: year,
			Discount:  models.ParseDiscount(row.Discount),
		})
		total = res.RoundedTotal
	} else {
		v, ok := money.ParseOK(row.Total)
		if !ok {
			return models.LetterPayload{}, 0, fmt.Errorf("invalid Total '%s'", row.Total)
		}
		total = v
	}

	attendance := ev.ExpectedAttendance
	if n, ok := parseAttendance(row.ExpectedAttendance); ok {
		attendance = &n
	}

	company := defaultCompany
	switch {
	case strings.TrimSpace(opts.CompanyName) != "":
		company = strings.TrimSpace(opts.CompanyName)
	case row.CompanyName != "":
		company = row.CompanyName
	}

	boothPrice, known := d.cat.BoothPrice(tier)
	return models.LetterPayload{
		DocumentType:       opts.DocumentType,
		CompanyName:        company,
		CompanyAddress:     row.OfficialAddress,
		MeetingName:        ev.Name,
		MeetingDate:        firstNonEmpty(row.Date, ev.DateText),
		Venue:              firstNonEmpty(row.Venue, ev.Venue),
		CityState:          firstNonEmpty(row.City, ev.CityState),
		AttendanceExpected: attendance,
		BoothSelected:      known,
		BoothTier:          tier,
		BoothPrice:         boothPrice,
		AddOns:             d.engine.AddOnBreakdown(keys, year),
		AmountCurrency:     money.Format(total),
		Date:               day,
	}, total, nil
}

// ParseAddOns découpe la colonne "Add-ons" ("program_ad_full, email_banner").
func ParseAddOns(s string) []models.AddOnKey {
	var out []models.AddOnKey
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '|' }) {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, models.AddOnKey(strings.ToLower(f)))
		}
	}
	return out
}

// parseAttendance accepte "120" comme "120.0" ; zéro ou négatif est ignoré.
func parseAttendance(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}

func inviteName(row models.BulkRow) string {
	if n := letters.SafeFilename(row.ExhibitorInvite, maxInviteName); n != "" {
		return n
	}
	return fmt.Sprintf("Invite_%d", row.RowNumber)
}

// uniqueName ajoute _2, _3... aux noms déjà utilisés dans l'archive. Le nom
// renvoyé est sans extension.
func uniqueName(used map[string]bool, base string) string {
	name := base
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s_%d", base, n)
	}
	used[name] = true
	return name
}

func boothKey(p models.LetterPayload) string {
	if !p.BoothSelected {
		return ""
	}
	return string(p.BoothTier)
}

func addOnKeys(lines []models.AddOnLine) []models.AddOnKey {
	keys := make([]models.AddOnKey, len(lines))
	for i, l := range lines {
		keys[i] = l.Key
	}
	return keys
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" && !strings.EqualFold(v, "nan") {
			return v
		}
	}
	return ""
}
