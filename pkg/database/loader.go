package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"sponsor-letters/pkg/catalog"
	"sponsor-letters/pkg/models"

	_ "github.com/go-sql-driver/mysql"
)

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Tables : noms des tables du catalogue.
type Tables struct {
	Events string // Name, DateText, Venue, CityState, DefaultTier, ExpectedAttendance, SortOrder
	Booths string // Tier, Price
	AddOns string // Year, AddOnKey, Label, Price, SortOrder
}

// DefaultTables : schéma livré avec l'outil.
var DefaultTables = Tables{Events: "SponsorEvent", Booths: "BoothPrice", AddOns: "AddOnPrice"}

func (t Tables) validate() error {
	for _, n := range []string{t.Events, t.Booths, t.AddOns} {
		if !tableNameRe.MatchString(n) {
			return fmt.Errorf("table invalide: %q", n)
		}
	}
	return nil
}

// Open DSN mariadb:// ou mysql:// → format MySQL driver
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// addOnRow : une ligne de la table des options.
type addOnRow struct {
	year  int
	addOn models.AddOn
}

// LoadCatalog lit les trois tables et construit un catalogue validé.
// Les options doivent couvrir exactement deux années : la plus ancienne sert
// de grille par défaut.
func LoadCatalog(ctx context.Context, db *sql.DB, t Tables, verbose bool) (*catalog.Catalog, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}

	events, err := loadEvents(ctx, db, t.Events)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.Events, err)
	}
	booths, err := loadBooths(ctx, db, t.Booths)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.Booths, err)
	}
	addOns, err := loadAddOns(ctx, db, t.AddOns)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", t.AddOns, err)
	}
	if verbose {
		log.Printf("[DEBUG] catalog rows: events=%d booths=%d add-ons=%d", len(events), len(booths), len(addOns))
	}

	older, newer, err := splitAddOnTables(addOns)
	if err != nil {
		return nil, err
	}
	return catalog.New(events, booths, older, newer)
}

func loadEvents(ctx context.Context, db *sql.DB, table string) ([]models.Event, error) {
	q := fmt.Sprintf(`
		SELECT Name, DateText, Venue, CityState, DefaultTier, ExpectedAttendance
		FROM %s
		ORDER BY SortOrder, Name
	`, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		var (
			e          models.Event
			tier       string
			attendance sql.NullInt64
		)
		if err := rows.Scan(&e.Name, &e.DateText, &e.Venue, &e.CityState, &tier, &attendance); err != nil {
			return nil, err
		}
		e.DefaultTier = models.ParseBoothTier(tier)
		if attendance.Valid {
			n := int(attendance.Int64)
			e.ExpectedAttendance = &n
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func loadBooths(ctx context.Context, db *sql.DB, table string) (map[models.BoothTier]float64, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT Tier, Price FROM %s`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.BoothTier]float64)
	for rows.Next() {
		var (
			tier  string
			price float64
		)
		if err := rows.Scan(&tier, &price); err != nil {
			return nil, err
		}
		out[models.BoothTier(tier)] = price
	}
	return out, rows.Err()
}

func loadAddOns(ctx context.Context, db *sql.DB, table string) ([]addOnRow, error) {
	q := fmt.Sprintf(`
		SELECT Year, AddOnKey, Label, Price
		FROM %s
		ORDER BY Year, SortOrder, AddOnKey
	`, table)
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []addOnRow
	for rows.Next() {
		var (
			r   addOnRow
			key string
		)
		if err := rows.Scan(&r.year, &key, &r.addOn.Label, &r.addOn.Price); err != nil {
			return nil, err
		}
		r.addOn.Key = models.AddOnKey(key)
		out = append(out, r)
	}
	return out, rows.Err()
}

// splitAddOnTables regroupe les options par année, dans l'ordre de lecture.
func splitAddOnTables(rows []addOnRow) (catalog.AddOnTable, catalog.AddOnTable, error) {
	byYear := make(map[int][]models.AddOn)
	for _, r := range rows {
		byYear[r.year] = append(byYear[r.year], r.addOn)
	}
	if len(byYear) != 2 {
		return catalog.AddOnTable{}, catalog.AddOnTable{}, fmt.Errorf("%w: %d années d'options, 2 attendues", catalog.ErrInvalidCatalog, len(byYear))
	}
	years := make([]int, 0, 2)
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return catalog.AddOnTable{Year: years[0], AddOns: byYear[years[0]]},
		catalog.AddOnTable{Year: years[1], AddOns: byYear[years[1]]},
		nil
}
