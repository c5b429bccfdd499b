package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"sponsor-letters/pkg/models"
)

//go:embed catalog.json
var defaultData []byte

// fileFormat décrit le JSON du catalogue (même forme que catalog.json).
type fileFormat struct {
	OlderYear   int                          `json:"older_year"`
	NewerYear   int                          `json:"newer_year"`
	BoothPrices map[models.BoothTier]float64 `json:"booth_prices"`
	AddOns      struct {
		Older []models.AddOn `json:"older"`
		Newer []models.AddOn `json:"newer"`
	} `json:"add_ons"`
	Events []models.Event `json:"events"`
}

// Decode lit un catalogue JSON. Les champs inconnus sont refusés.
func Decode(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var f fileFormat
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(f.Events, f.BoothPrices,
		AddOnTable{Year: f.OlderYear, AddOns: f.AddOns.Older},
		AddOnTable{Year: f.NewerYear, AddOns: f.AddOns.Newer},
	)
}

// LoadFile charge un catalogue depuis un fichier JSON.
func LoadFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer fh.Close()

	c, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default renvoie le catalogue embarqué (saisons 2025-2026).
func Default() (*Catalog, error) {
	var f fileFormat
	if err := json.Unmarshal(defaultData, &f); err != nil {
		return nil, fmt.Errorf("%w: catalogue embarqué: %v", ErrInvalidCatalog, err)
	}
	return New(f.Events, f.BoothPrices,
		AddOnTable{Year: f.OlderYear, AddOns: f.AddOns.Older},
		AddOnTable{Year: f.NewerYear, AddOns: f.AddOns.Newer},
	)
}
