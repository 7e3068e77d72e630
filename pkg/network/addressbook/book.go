package addressbook

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/twmb/murmur3"
)

// numBuckets partitions known addresses for eviction fairness once the
// configured address limit is reached: evicting from the most populated
// bucket spreads pressure across the address space instead of always
// evicting the oldest or a fixed victim, the way Bitcoin/Zcash's addrman
// bucket scheme does.
const numBuckets = 64

// maxFailures is the number of consecutive ChangeFailed events after
// which a known address is reclassified as bad. It stays in the book
// (so a later ChangeGood can reclaim it) but contributes to eviction
// pressure first.
const maxFailures = 8

// peerClass classifies a known address the way addrman does: new
// (learned but never dialed), tried (dialed at least once), good
// (handshake succeeded at least once and hasn't failed past the
// threshold), or bad (failed past the threshold).
type peerClass int

const (
	classNew peerClass = iota
	classTried
	classGood
	classBad
)

type peerEntry struct {
	addr     string
	class    peerClass
	failures int
	bucket   uint32
}

// AddressBook is the shared, mutex-protected store of known peer
// addresses. All mutation goes through Update, invoked by the
// AddressBookUpdater's single worker; reads may come from any
// goroutine and only ever contend briefly for the mutex.
type AddressBook struct {
	mu            sync.Mutex
	localListener string
	limit         int
	seed          uint32

	peers   map[string]*peerEntry
	buckets map[uint32][]string
}

// New constructs an empty AddressBook. localListener, if non-empty, is
// never added to the book: a node doesn't need its own address as a
// dial candidate. limit bounds the number of known addresses held;
// once reached, Update evicts before adding.
func New(localListener string, limit int) *AddressBook {
	return &AddressBook{
		localListener: localListener,
		limit:         limit,
		seed:          newBucketSeed(),
		peers:         make(map[string]*peerEntry),
		buckets:       make(map[uint32][]string),
	}
}

func newBucketSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is
		// broken, in which case bucket fairness is the least of the
		// process's problems; a fixed fallback keeps New a non-erroring
		// constructor.
		return 0x9747b28c
	}
	return binary.BigEndian.Uint32(b[:])
}

func (b *AddressBook) bucketFor(addr string) uint32 {
	return murmur3.Sum32WithSeed([]byte(addr), b.seed) % numBuckets
}

// Update applies a single liveness event to the book and reports
// whether it added a new address; at the limit that add first evicts
// another address, so the count can stay the same. The updater
// republishes its watch-channel metrics only when Update reports true.
// Update holds AddressBook's own mutex for the duration of one call,
// matching the "apply one change" scoped critical section the updater
// is built around.
func (b *AddressBook) Update(change AddrChange) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch change.Kind {
	case ChangeNew:
		return b.addLocked(change.Addr)
	case ChangeAttempt:
		if e, ok := b.peers[change.Addr]; ok {
			e.class = classTried
		}
		return false
	case ChangeGood:
		added := false
		if _, ok := b.peers[change.Addr]; !ok {
			added = b.addLocked(change.Addr)
		}
		if e, ok := b.peers[change.Addr]; ok {
			e.class = classGood
			e.failures = 0
		}
		return added
	case ChangeFailed:
		e, ok := b.peers[change.Addr]
		if !ok {
			return false
		}
		e.failures++
		if e.failures >= maxFailures {
			e.class = classBad
		}
		return false
	default:
		return false
	}
}

// addLocked inserts addr as a new, untried entry, evicting first if the
// book is at its limit. Callers must hold b.mu.
func (b *AddressBook) addLocked(addr string) bool {
	if addr == "" || addr == b.localListener {
		return false
	}
	if _, ok := b.peers[addr]; ok {
		return false
	}
	if b.limit > 0 && len(b.peers) >= b.limit {
		b.evictOneLocked()
	}

	bucket := b.bucketFor(addr)
	b.peers[addr] = &peerEntry{addr: addr, class: classNew, bucket: bucket}
	b.buckets[bucket] = append(b.buckets[bucket], addr)
	return true
}

// evictOneLocked removes one address from the most populated bucket,
// preferring a bad-classified entry within it if one exists. Callers
// must hold b.mu.
func (b *AddressBook) evictOneLocked() {
	var fullest uint32
	var fullestLen = -1
	for bucket, addrs := range b.buckets {
		if len(addrs) > fullestLen {
			fullest = bucket
			fullestLen = len(addrs)
		}
	}
	if fullestLen <= 0 {
		return
	}

	addrs := b.buckets[fullest]
	victimIdx := 0
	for i, a := range addrs {
		if e := b.peers[a]; e != nil && e.class == classBad {
			victimIdx = i
			break
		}
	}
	victim := addrs[victimIdx]
	addrs = append(addrs[:victimIdx], addrs[victimIdx+1:]...)
	if len(addrs) == 0 {
		delete(b.buckets, fullest)
	} else {
		b.buckets[fullest] = addrs
	}
	delete(b.peers, victim)
}

// Len reports the number of known addresses currently held.
func (b *AddressBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.peers)
}

// Contains reports whether addr is currently known, regardless of class.
func (b *AddressBook) Contains(addr string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.peers[addr]
	return ok
}

// Metrics returns a snapshot of the book's current size for publication
// on the updater's watch channel.
func (b *AddressBook) Metrics() AddressMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return AddressMetrics{Addresses: len(b.peers), AddressLimit: b.limit}
}

// PeerRecord is an exported view of one address book entry, used only
// to move entries across the persistence boundary in Store.
type PeerRecord struct {
	Addr     string
	Class    int
	Failures int
}

// Snapshot returns every known address as a PeerRecord, for Store.Save.
func (b *AddressBook) Snapshot() []PeerRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	records := make([]PeerRecord, 0, len(b.peers))
	for _, e := range b.peers {
		records = append(records, PeerRecord{Addr: e.addr, Class: int(e.class), Failures: e.failures})
	}
	return records
}

// Restore seeds the book from previously persisted records, bypassing
// Update's new-address classification so a peer's prior class and
// failure count survive a restart. Restore is meant to run once, before
// the updater starts applying live changes.
func (b *AddressBook) Restore(records []PeerRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range records {
		if r.Addr == "" || r.Addr == b.localListener {
			continue
		}
		if _, ok := b.peers[r.Addr]; ok {
			continue
		}
		bucket := b.bucketFor(r.Addr)
		b.peers[r.Addr] = &peerEntry{addr: r.Addr, class: peerClass(r.Class), failures: r.Failures, bucket: bucket}
		b.buckets[bucket] = append(b.buckets[bucket], r.Addr)
	}
}
