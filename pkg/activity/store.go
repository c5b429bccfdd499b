// Package activity tient le journal des lettres générées dans un fichier
// BoltDB. Les entrées sont indexées par un numéro de séquence croissant :
// l'ordre des clés est l'ordre chronologique.
package activity

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"

	"sponsor-letters/pkg/models"
)

const bucketName = "letters"

const (
	// DefaultMaxEntries : nombre d'entrées conservées par la rotation.
	DefaultMaxEntries = 500
	// MaxInputLength : longueur maximale d'un champ texte après nettoyage.
	MaxInputLength = 500
)

// Modes d'enregistrement.
const (
	ModeSingle    = "single"
	ModeExcelBulk = "excel-bulk"
)

// ErrClosed est renvoyée après Close.
var ErrClosed = errors.New("activity log closed")

var dangerous = strings.NewReplacer(
	"<", "", ">", "", `"`, "", "'", "", "&", "", ";", "",
	"(", "", ")", "", "{", "", "}", "", "[", "", "]", "",
)

// Store : journal d'activité persistant.
type Store struct {
	db         *bolt.DB
	maxEntries int
	now        func() time.Time
}

// Open ouvre (ou crée) le journal. maxEntries <= 0 prend DefaultMaxEntries.
func Open(path string, maxEntries int) (*Store, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open activity log %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init activity log: %w", err)
	}
	return &Store{db: db, maxEntries: maxEntries, now: time.Now}, nil
}

// Close libère le verrou du fichier. Un second appel est sans effet.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Sanitize retire les caractères < > " ' & ; ( ) { } [ ] et tronque à
// MaxInputLength caractères.
func Sanitize(text string) string {
	out := dangerous.Replace(text)
	if rs := []rune(out); len(rs) > MaxInputLength {
		out = string(rs[:MaxInputLength])
	}
	return out
}

// Append enregistre une entrée : identifiant et horodatage sont attribués
// ici, les champs texte sont nettoyés et AdditionalInfo est préfixé par le
// mode ("[single] ..."). Les entrées les plus anciennes au-delà de
// maxEntries sont supprimées dans la même transaction.
func (s *Store) Append(e models.ActivityEntry) (models.ActivityEntry, error) {
	if s.db == nil {
		return models.ActivityEntry{}, ErrClosed
	}
	if e.Mode == "" {
		e.Mode = ModeSingle
	}
	e.ID = uuid.NewString()
	e.Timestamp = s.now().UTC()
	e.CompanyName = Sanitize(e.CompanyName)
	e.MeetingName = Sanitize(e.MeetingName)
	e.DocumentType = models.DocumentType(Sanitize(string(e.DocumentType)))
	e.AdditionalInfo = fmt.Sprintf("[%s] %s", e.Mode, Sanitize(e.AdditionalInfo))
	if e.AddOns == nil {
		e.AddOns = []models.AddOnKey{}
	}

	data, err := json.Marshal(e)
	if err != nil {
		return models.ActivityEntry{}, err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(itob(seq), data); err != nil {
			return err
		}
		return rotate(b, s.maxEntries)
	})
	if err != nil {
		return models.ActivityEntry{}, fmt.Errorf("append activity: %w", err)
	}
	return e, nil
}

// rotate supprime les plus anciennes entrées au-delà de max.
func rotate(b *bolt.Bucket, max int) error {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	var old [][]byte
	for k, _ := c.First(); k != nil && n-len(old) > max; k, _ = c.Next() {
		old = append(old, append([]byte(nil), k...))
	}
	for _, k := range old {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// All renvoie toutes les entrées, de la plus ancienne à la plus récente.
func (s *Store) All() ([]models.ActivityEntry, error) {
	var items []models.ActivityEntry
	err := s.view(func(b *bolt.Bucket) error {
		return b.ForEach(func(_, v []byte) error {
			var e models.ActivityEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			items = append(items, e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ActivityEntry{}
	}
	return items, nil
}

// Recent renvoie au plus limit entrées, la plus récente d'abord
// (limit <= 0 : toutes).
func (s *Store) Recent(limit int) ([]models.ActivityEntry, error) {
	items := []models.ActivityEntry{}
	err := s.view(func(b *bolt.Bucket) error {
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(items) >= limit {
				break
			}
			var e models.ActivityEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			items = append(items, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Search filtre les entrées : société et événement par inclusion sans casse,
// type de document à l'identique. Un critère vide est ignoré.
func (s *Store) Search(f models.ActivityFilter) ([]models.ActivityEntry, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	company := strings.ToLower(f.CompanyName)
	meeting := strings.ToLower(f.MeetingName)

	out := []models.ActivityEntry{}
	for _, e := range all {
		if company != "" && !strings.Contains(strings.ToLower(e.CompanyName), company) {
			continue
		}
		if meeting != "" && !strings.Contains(strings.ToLower(e.MeetingName), meeting) {
			continue
		}
		if f.DocumentType != "" && f.DocumentType != e.DocumentType {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Stats agrège le journal.
func (s *Store) Stats() (models.ActivityStats, error) {
	all, err := s.All()
	if err != nil {
		return models.ActivityStats{}, err
	}
	var st models.ActivityStats
	companies := make(map[string]struct{})
	for _, e := range all {
		st.TotalLetters++
		switch e.DocumentType {
		case models.DocumentLOR:
			st.LORCount++
		case models.DocumentLOA:
			st.LOACount++
		}
		st.TotalRevenue += e.TotalCost
		if e.CompanyName != "" {
			companies[e.CompanyName] = struct{}{}
		}
	}
	st.UniqueCompanies = len(companies)
	return st, nil
}

// Clear vide le journal.
func (s *Store) Clear() error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

func (s *Store) view(fn func(b *bolt.Bucket) error) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.View(func(tx *bolt.Tx) error {
		return fn(tx.Bucket([]byte(bucketName)))
	})
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
