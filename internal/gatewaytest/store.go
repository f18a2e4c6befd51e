package gatewaytest

import (
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ruteri/bzz-gateway-client/interfaces"
)

// manifestEntry is a file of a manifest.
type manifestEntry struct {
	Hash        interfaces.ContentHash `json:"hash"`
	ContentType string                 `json:"contentType"`
	Size        int64                  `json:"size"`
	ModTime     time.Time              `json:"mod_time"`
}

type manifest struct {
	Entries map[string]manifestEntry `json:"entries"`
}

func (m *manifest) clone() *manifest {
	c := &manifest{Entries: make(map[string]manifestEntry, len(m.Entries))}
	for p, e := range m.Entries {
		c.Entries[p] = e
	}
	return c
}

type feedUpdate struct {
	time  uint64
	level uint8
	data  []byte
}

// store keeps blobs, manifests, domains and feeds in memory.
type store struct {
	mu        sync.RWMutex
	blobs     map[interfaces.ContentHash][]byte
	manifests map[interfaces.ContentHash]*manifest
	domains   map[string]interfaces.ContentHash
	feeds     map[string]feedUpdate
	now       func() time.Time
}

func newStore() *store {
	return &store{
		blobs:     map[interfaces.ContentHash][]byte{},
		manifests: map[interfaces.ContentHash]*manifest{},
		domains:   map[string]interfaces.ContentHash{},
		feeds:     map[string]feedUpdate{},
		now:       time.Now,
	}
}

func contentHash(data []byte) interfaces.ContentHash {
	return interfaces.ContentHash(hex.EncodeToString(crypto.Keccak256(data)))
}

func (s *store) putBlob(data []byte) interfaces.ContentHash {
	h := contentHash(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[h] = append([]byte(nil), data...)
	return h
}

func (s *store) blob(h interfaces.ContentHash) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[h]
	return b, ok
}

func (s *store) newEntry(data []byte, contentType string) manifestEntry {
	return manifestEntry{
		Hash:        s.putBlob(data),
		ContentType: contentType,
		Size:        int64(len(data)),
		ModTime:     s.now().UTC().Truncate(time.Second),
	}
}

// putManifest stores m as content and returns its hash.
func (s *store) putManifest(m *manifest) interfaces.ContentHash {
	encoded, _ := json.Marshal(m)
	h := s.putBlob(encoded)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[h] = m
	return h
}

func (s *store) manifest(h interfaces.ContentHash) (*manifest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.manifests[h]
	return m, ok
}

// list returns the entries below prefix, folding deeper paths into common
// prefixes.
func (s *store) list(m *manifest, prefix string) interfaces.ListResult {
	var result interfaces.ListResult
	prefixes := map[string]struct{}{}

	paths := make([]string, 0, len(m.Entries))
	for p := range m.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		if i := strings.Index(rest, "/"); i >= 0 {
			cp := prefix + rest[:i+1]
			if _, ok := prefixes[cp]; !ok {
				prefixes[cp] = struct{}{}
				result.CommonPrefixes = append(result.CommonPrefixes, cp)
			}
			continue
		}
		e := m.Entries[p]
		result.Entries = append(result.Entries, interfaces.ListEntry{
			Hash:        e.Hash,
			Path:        p,
			ContentType: e.ContentType,
			Size:        e.Size,
			ModTime:     e.ModTime,
		})
	}
	return result
}

func feedKey(topic, user string) string {
	return strings.ToLower(topic) + "/" + strings.ToLower(user)
}

func (s *store) latestFeed(topic, user string) (feedUpdate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.feeds[feedKey(topic, user)]
	return u, ok
}

func (s *store) putFeed(topic, user string, u feedUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds[feedKey(topic, user)] = u
}

func (s *store) domain(name string) (interfaces.ContentHash, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.domains[name]
	return h, ok
}

func (s *store) putDomain(name string, h interfaces.ContentHash) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domains[name] = h
}
