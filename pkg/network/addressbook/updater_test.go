package addressbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSpawnAppliesChangesInOrder(t *testing.T) {
	book, changes, metrics, worker := Spawn(Config{PeerConnectionLimit: 8, AddressLimit: 100}, "", zaptest.NewLogger(t))
	defer func() {
		close(changes)
		worker.Wait()
	}()

	changes <- AddrChange{Kind: ChangeNew, Addr: "10.0.0.1:8233"}
	changes <- AddrChange{Kind: ChangeGood, Addr: "10.0.0.1:8233"}

	require.Eventually(t, func() bool {
		return book.Len() == 1
	}, time.Second, time.Millisecond)

	select {
	case m := <-metrics:
		require.Equal(t, 1, m.Addresses)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for metrics snapshot")
	}
}

func TestWorkerExitsWithAllSendersClosedWhenChannelClosed(t *testing.T) {
	_, changes, _, worker := Spawn(Config{PeerConnectionLimit: 1, AddressLimit: 10}, "", zaptest.NewLogger(t))
	close(changes)

	select {
	case <-worker.Done():
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after senders closed")
	}
	require.ErrorIs(t, worker.Err(), ErrAllSendersClosed)
}

func TestMetricsWatchIsMostRecentValueOnly(t *testing.T) {
	sender, receiver := newMetricsWatch(AddressMetrics{Addresses: 0, AddressLimit: 5})
	sender.Send(AddressMetrics{Addresses: 1, AddressLimit: 5})
	sender.Send(AddressMetrics{Addresses: 2, AddressLimit: 5})
	sender.Send(AddressMetrics{Addresses: 3, AddressLimit: 5})

	got := <-receiver.C()
	require.Equal(t, 3, got.Addresses, "a lagging receiver observes only the latest snapshot")

	select {
	case <-receiver.C():
		t.Fatal("no further value should be buffered")
	default:
	}
}
