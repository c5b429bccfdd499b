package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sponsor-letters/pkg/activity"
	"sponsor-letters/pkg/bulk"
	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/letters"
	"sponsor-letters/pkg/matcher"
	"sponsor-letters/pkg/models"
	"sponsor-letters/pkg/money"
	"sponsor-letters/pkg/pricing"
)

var errUsage = errors.New("usage")

// options : paramètres des modes, renseignés par les flags.
type options struct {
	mode        string
	event       string
	company     string
	address     string
	booth       string
	addOns      string
	discount    string
	customTotal float64
	year        int
	doc         string
	info        string
	attendance  int
	input       string
	out         string
	format      string
	upcoming    bool
	limit       int
}

type app struct {
	catalogs *catalog.Store
	renderer *letters.Renderer
	activity *activity.Store // nil hors letter/bulk/log
	out      io.Writer
	verbose  bool
	now      func() time.Time
}

func (a *app) run(ctx context.Context, o options) error {
	switch o.mode {
	case "price":
		return a.runPrice(o)
	case "match":
		return a.runMatch(o)
	case "similar":
		return a.runSimilar(o)
	case "letter":
		return a.runLetter(o)
	case "package":
		return a.runPackage(o)
	case "bulk":
		return a.runBulk(ctx, o)
	case "log":
		return a.runLog(o)
	case "events":
		return a.runEvents(o)
	}
	return fmt.Errorf("%w: mode inconnu %q", errUsage, o.mode)
}

func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

// request construit la demande de prix à partir des flags. Sans -year, l'année
// est déduite du nom de l'événement.
func (o options) request(cat *catalog.Catalog, ev *models.Event) models.PricingRequest {
	req := models.PricingRequest{
		BoothTier: models.ParseBoothTier(o.booth),
		AddOnKeys: bulk.ParseAddOns(o.addOns),
		EventYear: o.year,
		Discount:  models.ParseDiscount(o.discount),
	}
	if o.booth == "" && ev != nil {
		req.BoothTier = ev.DefaultTier
	}
	if req.EventYear == 0 {
		if ev != nil {
			req.EventYear = cat.EventYear(*ev)
		} else {
			req.EventYear = cat.YearOf(o.event)
		}
	}
	if req.Discount == models.DiscountCustom && o.customTotal >= 0 {
		v := o.customTotal
		req.CustomTotal = &v
	}
	return req
}

func (a *app) runPrice(o options) error {
	cat := a.catalogs.Load()
	var ev *models.Event
	if o.event != "" {
		if m := matcher.New(cat.Events()).Match(o.event); m.Found() {
			ev = m.Event
		}
	}
	req := o.request(cat, ev)
	engine := pricing.NewEngine(cat)
	res := engine.Calculate(req)
	d := pricing.Display(res)

	if ev != nil {
		fmt.Fprintf(a.out, "Event            %s\n", ev.Name)
	}
	fmt.Fprintf(a.out, "Pricing year     %d\n", req.EventYear)
	fmt.Fprintf(a.out, "Booth (%s)  %s\n", res.BoothTier, d.Booth)
	for _, l := range engine.AddOnBreakdown(res.AddOnKeys, req.EventYear) {
		fmt.Fprintf(a.out, "  + %-40s %s\n", l.Label, l.PriceFormatted)
	}
	fmt.Fprintf(a.out, "Add-ons          %s\n", d.AddOns)
	fmt.Fprintf(a.out, "Subtotal         %s\n", d.Subtotal)
	fmt.Fprintf(a.out, "Discount         %s\n", d.Discount)
	fmt.Fprintf(a.out, "Total            %s\n", d.TotalBefore)
	fmt.Fprintf(a.out, "Final (rounded)  %s\n", d.FinalRounded)
	return nil
}

// runEvents liste le catalogue : événements à venir avec -upcoming, recherche
// libre avec -event, filtre par -year, sinon tout.
func (a *app) runEvents(o options) error {
	cat := a.catalogs.Load()
	var events []models.Event
	switch {
	case o.upcoming:
		events = cat.Upcoming(a.clock())
	case o.event != "":
		events = cat.Search(o.event)
	case o.year != 0:
		events = cat.EventsByYear(o.year)
	default:
		events = cat.Events()
	}
	for _, e := range events {
		fmt.Fprintf(a.out, "%s ; %s ; %s ; %s\n", e.Name, e.DateText, eventLocation(e), e.DefaultTier)
	}
	return nil
}

func (a *app) runMatch(o options) error {
	if strings.TrimSpace(o.event) == "" {
		return fmt.Errorf("%w: -event requis", errUsage)
	}
	m := matcher.New(a.catalogs.Load().Events()).Match(o.event)
	if !m.Found() {
		fmt.Fprintf(a.out, "%s ; -\n", m.Confidence)
		return nil
	}
	fmt.Fprintf(a.out, "%s ; %s ; %s ; %s\n", m.Confidence, m.Event.Name, m.Event.DateText, m.Event.CityState)
	return nil
}

func (a *app) runSimilar(o options) error {
	if strings.TrimSpace(o.event) == "" {
		return fmt.Errorf("%w: -event requis", errUsage)
	}
	for _, s := range matcher.New(a.catalogs.Load().Events()).FindSimilar(o.event, o.limit) {
		fmt.Fprintf(a.out, "%.3f ; %s\n", s.Score, s.Event.Name)
	}
	return nil
}

func (a *app) runLetter(o options) error {
	cat := a.catalogs.Load()
	m := matcher.New(cat.Events()).Match(o.event)
	if !m.Found() {
		return fmt.Errorf("événement introuvable: %q", o.event)
	}
	if a.verbose && m.Confidence != models.ConfidenceExact {
		log.Printf("[INFO] %q matched %q (%s)", o.event, m.Event.Name, m.Confidence)
	}
	ev := *m.Event
	doc, err := o.docType()
	if err != nil {
		return err
	}
	formats, err := o.formats()
	if err != nil {
		return err
	}

	req := o.request(cat, &ev)
	engine := pricing.NewEngine(cat)
	res := engine.Calculate(req)
	boothPrice, booth := cat.BoothPrice(res.BoothTier)

	attendance := ev.ExpectedAttendance
	if o.attendance > 0 {
		n := o.attendance
		attendance = &n
	}
	p := models.LetterPayload{
		DocumentType:       doc,
		CompanyName:        o.company,
		CompanyAddress:     o.address,
		MeetingName:        ev.Name,
		MeetingDate:        ev.DateText,
		Venue:              ev.Venue,
		CityState:          ev.CityState,
		AttendanceExpected: attendance,
		BoothSelected:      booth,
		BoothTier:          res.BoothTier,
		BoothPrice:         boothPrice,
		AddOns:             engine.AddOnBreakdown(res.AddOnKeys, req.EventYear),
		AmountCurrency:     money.Format(res.RoundedTotal),
		AdditionalInfo:     strings.ReplaceAll(o.info, `\n`, "\n"),
		Date:               a.clock(),
	}
	if err := a.writeLetter(p, o.out, formats, letters.BaseFilename(doc, o.company, ev.Name)); err != nil {
		return err
	}

	if a.activity != nil {
		boothKey := ""
		if booth {
			boothKey = string(res.BoothTier)
		}
		_, err := a.activity.Append(models.ActivityEntry{
			CompanyName:    o.company,
			MeetingName:    ev.Name,
			DocumentType:   doc,
			BoothSelected:  boothKey,
			AddOns:         res.AddOnKeys,
			TotalCost:      res.RoundedTotal,
			AdditionalInfo: p.AdditionalInfo,
			Mode:           activity.ModeSingle,
		})
		if err != nil {
			log.Printf("[WARN] activity log: %v", err)
		}
	}
	return nil
}

// writeLetter écrit la lettre sur la sortie standard, dans le fichier out, ou
// dans le dossier out (un fichier par format). La sortie standard et un
// fichier n'acceptent qu'un seul format.
func (a *app) writeLetter(p models.LetterPayload, out string, formats []letters.Format, base string) error {
	dir := false
	if out != "" {
		if fi, err := os.Stat(out); err == nil && fi.IsDir() {
			dir = true
		}
	}
	if !dir && len(formats) > 1 {
		return fmt.Errorf("%w: plusieurs formats exigent un dossier -out", errUsage)
	}

	for _, f := range formats {
		data, err := a.renderer.Render(p, f)
		if err != nil {
			return err
		}
		if out == "" {
			if _, err := a.out.Write(data); err != nil {
				return err
			}
			continue
		}
		path := out
		if dir {
			path = filepath.Join(out, base+f.Ext())
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write letter: %w", err)
		}
		log.Printf("[INFO] %s written to %s (%s)", p.DocumentType, path, p.AmountCurrency)
	}
	return nil
}

// runPackage tarife plusieurs événements ensemble, avec le même stand et les mêmes
// options pour chacun.
func (a *app) runPackage(o options) error {
	cat := a.catalogs.Load()
	m := matcher.New(cat.Events())

	var items []models.PackageItem
	for _, name := range strings.Split(o.event, ";") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		r := m.Match(name)
		if !r.Found() {
			return fmt.Errorf("événement introuvable: %q", name)
		}
		tier := models.ParseBoothTier(o.booth)
		if o.booth == "" {
			tier = r.Event.DefaultTier
		}
		items = append(items, models.PackageItem{Event: *r.Event, BoothTier: tier, AddOnKeys: bulk.ParseAddOns(o.addOns)})
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: -event \"nom1; nom2\" requis", errUsage)
	}

	res := pricing.NewEngine(cat).CalculatePackage(items)
	for _, l := range res.Lines {
		fmt.Fprintf(a.out, "%s ; %s=%s ; add-ons=%s ; total=%s\n",
			l.EventName, l.BoothTier, money.Format(l.BoothCost), money.Format(l.AddOnCost), money.Format(l.EventTotal))
	}
	fmt.Fprintf(a.out, "Booths   %s\n", money.Format(res.TotalBoothCost))
	fmt.Fprintf(a.out, "Add-ons  %s\n", money.Format(res.TotalAddOnCost))
	fmt.Fprintf(a.out, "Total    %s (%d events, avg %s)\n", money.Format(res.FinalTotal), len(res.Lines), money.Format(res.AveragePerEvent))
	return nil
}

func (a *app) runBulk(ctx context.Context, o options) error {
	if o.input == "" {
		return fmt.Errorf("%w: -input requis", errUsage)
	}
	f, err := os.Open(o.input)
	if err != nil {
		return err
	}
	rows, err := bulk.ReadRows(f)
	f.Close()
	if err != nil {
		return err
	}

	doc, err := o.docType()
	if err != nil {
		return err
	}
	day := a.clock()
	dir := o.out
	if dir == "" {
		dir = "."
	}
	formats, err := o.formats()
	if err != nil {
		return err
	}
	path := filepath.Join(dir, bulk.ArchiveName(doc, o.company, len(rows), day))
	zf, err := os.Create(path)
	if err != nil {
		return err
	}

	opts := bulk.Options{
		DocumentType: doc,
		Formats:      formats,
		CompanyName:  o.company,
		Date:         day,
		Progress:     os.Stderr,
		Verbose:      a.verbose,
	}
	if a.activity != nil {
		opts.Recorder = a.activity
	}
	report, runErr := bulk.NewDriver(a.catalogs.Load(), a.renderer).Run(ctx, rows, opts, zf)
	if err := zf.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		os.Remove(path)
		return runErr
	}

	fmt.Fprintf(a.out, "\nbatch %s ; %s\n", report.BatchID, path)
	fmt.Fprintf(a.out, "rows=%d generated=%d failed=%d\n", report.TotalRows, report.Generated, report.Failed)
	for _, e := range report.Errors {
		fmt.Fprintln(a.out, e)
	}
	return nil
}

func (a *app) runLog(o options) error {
	var (
		entries []models.ActivityEntry
		err     error
	)
	if o.company != "" || o.event != "" || o.doc != "" {
		entries, err = a.activity.Search(models.ActivityFilter{
			CompanyName:  o.company,
			MeetingName:  o.event,
			DocumentType: models.DocumentType(strings.ToUpper(o.doc)),
		})
	} else {
		entries, err = a.activity.Recent(o.limit)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "%s ; %s ; %s ; %s ; %s ; %s\n",
			e.Timestamp.Format(time.RFC3339), e.DocumentType, e.CompanyName, e.MeetingName, money.Format(e.TotalCost), e.Mode)
	}

	st, err := a.activity.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "letters=%d LOR=%d LOA=%d revenue=%s companies=%d\n",
		st.TotalLetters, st.LORCount, st.LOACount, money.Format(st.TotalRevenue), st.UniqueCompanies)
	return nil
}

// eventLocation : lieu affiché pour un événement du catalogue.
func eventLocation(e models.Event) string {
	return letters.Location(e.Venue, e.CityState)
}

func (o options) formats() ([]letters.Format, error) {
	formats, err := letters.ParseFormats(o.format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return formats, nil
}

// docType : LOR par défaut.
func (o options) docType() (models.DocumentType, error) {
	switch doc := models.DocumentType(strings.ToUpper(o.doc)); doc {
	case "":
		return models.DocumentLOR, nil
	case models.DocumentLOR, models.DocumentLOA:
		return doc, nil
	}
	return "", fmt.Errorf("%w: -doc %q", errUsage, o.doc)
}
