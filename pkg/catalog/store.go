package catalog

import "sync/atomic"

// Store garde l'instantané courant. Un rechargement remplace le catalogue
// entier d'un coup ; les lecteurs n'ont jamais besoin de verrou.
type Store struct {
	cur atomic.Pointer[Catalog]
}

// NewStore initialise le store avec un premier instantané.
func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.cur.Store(c)
	return s
}

// Load renvoie l'instantané courant.
func (s *Store) Load() *Catalog {
	return s.cur.Load()
}

// Swap installe un nouvel instantané et renvoie l'ancien.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.cur.Swap(c)
}
