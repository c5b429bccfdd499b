package models

import (
	"time"
)

/*
CATALOG → types du catalogue chargé une seule fois au démarrage (lecture seule).
*/

// BoothTier identifie un niveau de stand.
type BoothTier string

const (
	BoothNone       BoothTier = "none"
	BoothStandard1D BoothTier = "standard_1d"
	BoothStandard2D BoothTier = "standard_2d"
	BoothPlatinum   BoothTier = "platinum"
	BoothBestOf     BoothTier = "best_of"
	BoothPremier    BoothTier = "premier"
)

// BoothTiers liste les niveaux connus, dans l'ordre d'affichage.
var BoothTiers = []BoothTier{BoothStandard1D, BoothStandard2D, BoothPlatinum, BoothBestOf, BoothPremier}

// BoothTierLabels : libellés utilisés dans les lettres.
var BoothTierLabels = map[BoothTier]string{
	BoothStandard1D: "Standard Booth (1-Day Event)",
	BoothStandard2D: "Standard Booth (2-Day Event)",
	BoothPlatinum:   "Platinum Booth",
	BoothBestOf:     "Best of Booth",
	BoothPremier:    "Premier Booth",
	BoothNone:       "(No Booth - Add-ons Only)",
}

// ParseBoothTier accepte aussi l'ancienne valeur "(no booth)". Une valeur
// inconnue est renvoyée telle quelle : elle sera tarifée à zéro.
func ParseBoothTier(s string) BoothTier {
	switch s {
	case "", "(no booth)", "no booth", string(BoothNone):
		return BoothNone
	}
	return BoothTier(s)
}

// Known indique si le niveau fait partie de l'énumération.
func (t BoothTier) Known() bool {
	if t == BoothNone {
		return true
	}
	for _, k := range BoothTiers {
		if k == t {
			return true
		}
	}
	return false
}

// AddOnKey identifie une option de sponsoring.
type AddOnKey string

const (
	AddOnProgramAdFull       AddOnKey = "program_ad_full"
	AddOnChargingStations    AddOnKey = "charging_stations"
	AddOnWifiSponsorship     AddOnKey = "wifi_sponsorship"
	AddOnPlatformBanner      AddOnKey = "platform_banner"
	AddOnEmailBanner         AddOnKey = "email_banner"
	AddOnRegistrationBanner  AddOnKey = "registration_banner"
	AddOnNetworkingReception AddOnKey = "networking_reception"
	AddOnNetworkingActivity  AddOnKey = "networking_activity"
	AddOnAdvisoryBoard       AddOnKey = "advisory_board"
	AddOnNonCMESession       AddOnKey = "non_cme_session"
)

// Event représente une conférence du catalogue.
type Event struct {
	Name               string    `json:"name"`
	DateText           string    `json:"date_text"`
	Venue              string    `json:"venue"`
	CityState          string    `json:"city_state"`
	DefaultTier        BoothTier `json:"default_tier"`
	ExpectedAttendance *int      `json:"expected_attendance,omitempty"`
}

// AddOn : option tarifée, rattachée à une grille annuelle.
type AddOn struct {
	Key   AddOnKey `json:"key"`
	Label string   `json:"label"`
	Price float64  `json:"price"`
}

/*
COMPUTE → entrées et résultats des calculs (jamais persistés).
*/

// Discount est la politique de remise choisie.
type Discount string

const (
	DiscountNone   Discount = "none"
	Discount10     Discount = "pct10"
	Discount15     Discount = "pct15"
	Discount20     Discount = "pct20"
	DiscountCustom Discount = "custom"
)

// ParseDiscount accepte aussi les anciennes clés "minus_10" etc.
func ParseDiscount(s string) Discount {
	switch s {
	case "", "none":
		return DiscountNone
	case "pct10", "minus_10", "10":
		return Discount10
	case "pct15", "minus_15", "15":
		return Discount15
	case "pct20", "minus_20", "20":
		return Discount20
	case "custom":
		return DiscountCustom
	}
	return Discount(s)
}

// PricingRequest regroupe les paramètres d'un calcul de prix.
type PricingRequest struct {
	BoothTier   BoothTier
	AddOnKeys   []AddOnKey
	EventYear   int
	Discount    Discount
	CustomTotal *float64 // utilisé seulement avec DiscountCustom
}

// PricingResult contient le détail d'un calcul de prix.
type PricingResult struct {
	BoothTier      BoothTier
	BoothPrice     float64
	AddOnKeys      []AddOnKey // sans doublons, ordre d'origine
	AddOnsTotal    float64
	Subtotal       float64
	Discount       Discount
	Multiplier     float64 // 0 pour un total personnalisé
	DiscountAmount float64 // négatif si le total personnalisé dépasse le sous-total
	FinalTotal     float64 // avant arrondi
	RoundedTotal   float64 // arrondi aux 50 les plus proches
}

// PricingDisplay : montants formatés pour l'affichage.
type PricingDisplay struct {
	Booth        string
	AddOns       string
	Subtotal     string
	Discount     string
	TotalBefore  string
	FinalRounded string
}

// AddOnLine : ligne détaillée d'une option choisie.
type AddOnLine struct {
	Key            AddOnKey
	Label          string
	Price          float64
	PriceFormatted string
}

// Confidence indique l'étape du rapprochement qui a trouvé l'événement.
type Confidence string

const (
	ConfidenceExact      Confidence = "exact"
	ConfidenceNormalized Confidence = "normalized"
	ConfidenceKeyword    Confidence = "keyword"
	ConfidenceNone       Confidence = "none"
)

// MatchResult : résultat du rapprochement d'un nom libre avec le catalogue.
type MatchResult struct {
	Event      *Event
	Confidence Confidence
}

// Found indique si un événement a été trouvé.
func (m MatchResult) Found() bool {
	return m.Event != nil
}

// SimilarEvent : suggestion avec score de Jaccard.
type SimilarEvent struct {
	Event Event
	Score float64
}

// PackageItem : un événement d'un package multi-conférences.
type PackageItem struct {
	Event     Event
	BoothTier BoothTier
	AddOnKeys []AddOnKey
}

// PackageLine : détail par événement d'un package.
type PackageLine struct {
	EventName  string
	BoothTier  BoothTier
	BoothCost  float64
	AddOnKeys  []AddOnKey
	AddOnCost  float64
	EventTotal float64
}

// PackageResult : totaux d'un package multi-conférences (sans remise).
type PackageResult struct {
	TotalBoothCost  float64
	TotalAddOnCost  float64
	FinalTotal      float64
	AveragePerEvent float64
	Lines           []PackageLine
}

/*
LETTERS / BULK → données transmises au rendu et au traitement par lot.
*/

// DocumentType : lettre de demande (LOR) ou d'accord (LOA).
type DocumentType string

const (
	DocumentLOR DocumentType = "LOR"
	DocumentLOA DocumentType = "LOA"
)

// LetterPayload contient tout ce qu'il faut pour produire une lettre.
type LetterPayload struct {
	DocumentType       DocumentType
	CompanyName        string
	CompanyAddress     string
	MeetingName        string
	MeetingDate        string
	Venue              string
	CityState          string
	AttendanceExpected *int
	Audience           string
	BoothSelected      bool
	BoothTier          BoothTier
	BoothPrice         float64
	AddOns             []AddOnLine
	AmountCurrency     string
	AdditionalInfo     string
	SignaturePerson    string
	Date               time.Time
}

// BulkRow : une ligne du tableur importé.
type BulkRow struct {
	RowNumber          int
	ExhibitorInvite    string
	EventName          string
	Total              string
	CompanyName        string
	Date               string
	City               string
	Venue              string
	OfficialAddress    string
	ExpectedAttendance string
	BoothTier          string
	AddOns             string
	Discount           string
}

// BulkReport résume un traitement par lot.
type BulkReport struct {
	BatchID     string
	ArchiveName string
	TotalRows   int
	Generated   int
	Failed      int
	Errors      []string
	Files       []string
}

/*
ACTIVITY → journal des lettres générées.
*/

// ActivityEntry : une ligne du journal d'activité.
type ActivityEntry struct {
	ID             string       `json:"id"`
	Timestamp      time.Time    `json:"timestamp"`
	CompanyName    string       `json:"company_name"`
	MeetingName    string       `json:"meeting_name"`
	DocumentType   DocumentType `json:"document_type"`
	BoothSelected  string       `json:"booth_selected,omitempty"`
	AddOns         []AddOnKey   `json:"add_ons"`
	TotalCost      float64      `json:"total_cost"`
	AdditionalInfo string       `json:"additional_info"`
	Mode           string       `json:"mode"`
}

// ActivityFilter : critères de recherche (champs vides ignorés).
type ActivityFilter struct {
	CompanyName  string
	MeetingName  string
	DocumentType DocumentType
}

// ActivityStats : statistiques agrégées du journal.
type ActivityStats struct {
	TotalLetters    int
	LORCount        int
	LOACount        int
	TotalRevenue    float64
	UniqueCompanies int
}

/*
CONFIG → paramètres globaux
*/

// Config contient les paramètres passés par la ligne de commande.
type Config struct {
	CatalogPath string // fichier JSON du catalogue (optionnel)
	DSN         string // source MySQL du catalogue (optionnelle)
	ActivityDB  string // fichier du journal d'activité
	Verbose     bool   // logs détaillés
}
