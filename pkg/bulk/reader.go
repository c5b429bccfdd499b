package bulk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"sponsor-letters/pkg/models"
)

// Colonnes du tableur.
const (
	ColExhibitorInvite    = "Exhibitor Invite"
	ColEventName          = "Event Name"
	ColTotal              = "Total"
	ColCompanyName        = "Company Name"
	ColDate               = "Date"
	ColCity               = "City"
	ColVenue              = "Venue"
	ColOfficialAddress    = "Official Address"
	ColExpectedAttendance = "Expected Attendance"
	ColBoothTier          = "Booth Tier"
	ColAddOns             = "Add-ons"
	ColDiscount           = "Discount"
)

// RequiredColumns doivent toutes figurer dans l'en-tête.
var RequiredColumns = []string{ColExhibitorInvite, ColEventName, ColTotal}

// ErrMissingColumns : l'en-tête ne contient pas toutes les colonnes requises.
var ErrMissingColumns = errors.New("missing required columns")

// ReadRows lit un CSV avec en-tête. Les lignes sont numérotées comme dans le
// tableur : la première ligne de données porte le numéro 2.
func ReadRows(r io.Reader) ([]models.BulkRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(RequiredColumns, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range RequiredColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var rows []models.BulkRow
	for n := 2; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", n, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		rows = append(rows, models.BulkRow{
			RowNumber:          n,
			ExhibitorInvite:    get(ColExhibitorInvite),
			EventName:          get(ColEventName),
			Total:              get(ColTotal),
			CompanyName:        get(ColCompanyName),
			Date:               get(ColDate),
			City:               get(ColCity),
			Venue:              get(ColVenue),
			OfficialAddress:    get(ColOfficialAddress),
			ExpectedAttendance: get(ColExpectedAttendance),
			BoothTier:          get(ColBoothTier),
			AddOns:             get(ColAddOns),
			Discount:           get(ColDiscount),
		})
	}
	return rows, nil
}
