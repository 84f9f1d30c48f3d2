// Package session holds each browser session's most recent lookup. The
// retained raw/flat pair is replaced whole on every new lookup and cleared
// on failure; nothing is shared across sessions and nothing survives the
// store TTL.
package session

import (
	"consultacnpj/cmd/internal/domain/record"
	"consultacnpj/cmd/internal/infrastructure/cnpja"
	"time"

	"github.com/labstack/gommon/log"
	gocache "github.com/patrickmn/go-cache"
)

const DefaultTTL = 30 * time.Minute

// inflightTTL caps how long a session can be marked busy. The slowest
// legitimate lookup sits through every retry wait, so anything older than
// that plus a minute of slack is a leak from a crashed request and may be
// reclaimed.
const inflightTTL = (cnpja.DefaultMaxRetries+1)*cnpja.DefaultRetryWait + time.Minute

// Lookup is the session-scoped result state: the raw registry document and
// the flat record derived from it, kept together because the card export
// re-derives from the raw document.
type Lookup struct {
	CNPJ      string
	Raw       *cnpja.Office
	Flat      record.Flat
	Warnings  []string
	FetchedAt time.Time
}

type Store struct {
	results  *gocache.Cache
	inflight *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		results:  gocache.New(ttl, ttl),
		inflight: gocache.New(inflightTTL, inflightTTL),
	}
}

// Begin marks the session as having a lookup in flight. It reports false
// when one already is, so the caller can reject the second trigger instead
// of racing on the retained pair.
func (s *Store) Begin(sessionID string) bool {
	return s.inflight.Add(sessionID, true, gocache.DefaultExpiration) == nil
}

func (s *Store) End(sessionID string) {
	s.inflight.Delete(sessionID)
}

// Put replaces the session's retained lookup whole; results are never
// merged.
func (s *Store) Put(sessionID string, lookup *Lookup) {
	s.results.Set(sessionID, lookup, gocache.DefaultExpiration)
}

func (s *Store) Get(sessionID string) (*Lookup, bool) {
	value, found := s.results.Get(sessionID)
	if !found {
		return nil, false
	}

	lookup, ok := value.(*Lookup)
	if !ok {
		log.Errorf("session store holds unexpected type for session %s", sessionID)
		return nil, false
	}
	return lookup, true
}

func (s *Store) Clear(sessionID string) {
	s.results.Delete(sessionID)
}
