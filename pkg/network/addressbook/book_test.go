package addressbook

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateAddsNewAddress(t *testing.T) {
	b := New("", 10)
	changed := b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"})
	require.True(t, changed)
	require.Equal(t, 1, b.Len())
	require.True(t, b.Contains("10.0.0.1:8233"))
}

func TestUpdateIgnoresLocalListener(t *testing.T) {
	b := New("10.0.0.1:8233", 10)
	changed := b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"})
	require.False(t, changed)
	require.Equal(t, 0, b.Len())
}

func TestUpdateNewIsIdempotent(t *testing.T) {
	b := New("", 10)
	require.True(t, b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"}))
	require.False(t, b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"}))
	require.Equal(t, 1, b.Len())
}

func TestUpdateGoodAddsUnknownAddress(t *testing.T) {
	b := New("", 10)
	changed := b.Update(AddrChange{Kind: ChangeGood, Addr: "10.0.0.2:8233"})
	require.True(t, changed)
	require.Equal(t, 1, b.Len())
}

func TestUpdateAttemptAndFailedDoNotChangeCount(t *testing.T) {
	b := New("", 10)
	b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.3:8233"})

	require.False(t, b.Update(AddrChange{Kind: ChangeAttempt, Addr: "10.0.0.3:8233"}))
	require.False(t, b.Update(AddrChange{Kind: ChangeFailed, Addr: "10.0.0.3:8233"}))
	require.Equal(t, 1, b.Len())
}

func TestUpdateFailedOnUnknownAddressIsNoop(t *testing.T) {
	b := New("", 10)
	require.False(t, b.Update(AddrChange{Kind: ChangeFailed, Addr: "10.0.0.4:8233"}))
	require.Equal(t, 0, b.Len())
}

func TestUpdateFailedPastThresholdMarksBad(t *testing.T) {
	b := New("", 10)
	addr := "10.0.0.5:8233"
	b.Update(AddrChange{Kind: ChangeNew, Addr: addr})
	for i := 0; i < maxFailures; i++ {
		b.Update(AddrChange{Kind: ChangeFailed, Addr: addr})
	}
	e := b.peers[addr]
	require.Equal(t, classBad, e.class)
}

func TestUpdateGoodClearsFailures(t *testing.T) {
	b := New("", 10)
	addr := "10.0.0.6:8233"
	b.Update(AddrChange{Kind: ChangeNew, Addr: addr})
	b.Update(AddrChange{Kind: ChangeFailed, Addr: addr})
	b.Update(AddrChange{Kind: ChangeGood, Addr: addr})

	e := b.peers[addr]
	require.Equal(t, classGood, e.class)
	require.Equal(t, 0, e.failures)
}

func TestAddLockedEvictsAtLimit(t *testing.T) {
	const limit = 5
	b := New("", limit)
	for i := 0; i < limit; i++ {
		require.True(t, b.Update(AddrChange{Kind: ChangeNew, Addr: fmt.Sprintf("10.0.0.%d:8233", i)}))
	}
	require.Equal(t, limit, b.Len())

	require.True(t, b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.99:8233"}))
	require.Equal(t, limit, b.Len(), "inserting past the limit must evict, not grow unbounded")
}

func TestEvictionPrefersBadEntries(t *testing.T) {
	const limit = 3
	b := New("", limit)

	// Pick limit addresses that all land in one bucket, so that bucket is
	// the fullest when eviction runs.
	var addrs []string
	bucket := b.bucketFor("10.0.1.0:8233")
	for i := 0; len(addrs) < limit; i++ {
		addr := fmt.Sprintf("10.0.1.%d:8233", i)
		if b.bucketFor(addr) == bucket {
			addrs = append(addrs, addr)
		}
	}
	for _, addr := range addrs {
		b.Update(AddrChange{Kind: ChangeNew, Addr: addr})
	}

	// The bad entry is the last one in its bucket, so evicting it is the
	// bad-entry preference, not the default first-in-bucket pick.
	badAddr := addrs[limit-1]
	for i := 0; i < maxFailures; i++ {
		b.Update(AddrChange{Kind: ChangeFailed, Addr: badAddr})
	}
	require.Equal(t, classBad, b.peers[badAddr].class)

	// Force an eviction.
	b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.9.9:8233"})
	require.Equal(t, limit, b.Len())
	require.False(t, b.Contains(badAddr))
	require.True(t, b.Contains(addrs[0]))
	require.True(t, b.Contains(addrs[1]))
}

func TestMetricsReflectsSize(t *testing.T) {
	b := New("", 10)
	b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"})
	b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.2:8233"})

	m := b.Metrics()
	require.Equal(t, 2, m.Addresses)
	require.Equal(t, 10, m.AddressLimit)
}

func TestSnapshotAndRestoreRoundTrip(t *testing.T) {
	b := New("", 10)
	b.Update(AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"})
	b.Update(AddrChange{Kind: ChangeGood, Addr: "10.0.0.2:8233"})
	b.Update(AddrChange{Kind: ChangeFailed, Addr: "10.0.0.2:8233"})

	records := b.Snapshot()
	require.Len(t, records, 2)

	restored := New("", 10)
	restored.Restore(records)
	require.Equal(t, b.Len(), restored.Len())
	for _, r := range records {
		require.True(t, restored.Contains(r.Addr))
	}
}

func TestRestoreSkipsLocalListener(t *testing.T) {
	restored := New("127.0.0.1:8233", 10)
	restored.Restore([]PeerRecord{{Addr: "127.0.0.1:8233"}, {Addr: "10.0.0.1:8233"}})
	require.Equal(t, 1, restored.Len())
	require.False(t, restored.Contains("127.0.0.1:8233"))
}
