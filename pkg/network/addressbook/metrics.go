package addressbook

// AddressMetrics is the snapshot AddressBookUpdater publishes after every
// change that adds an address to the book. Field names are deliberately plain
// (not the dotted metric-contract style pkg/core/mempool uses) since this
// isn't a Prometheus gauge; it's the value carried over the watch channel.
type AddressMetrics struct {
	Addresses    int
	AddressLimit int
}

// metricsSender and metricsReceiver implement a single-slot,
// most-recent-value watch channel in the style of Tokio's watch channel,
// built on plain channels since no available library offers an
// off-the-shelf equivalent for a single scalar value. A receiver that
// falls behind never blocks the worker; it only ever observes the
// latest snapshot, never a backlog.

// metricsSender publishes AddressMetrics snapshots. Send never blocks.
type metricsSender struct {
	ch chan AddressMetrics
}

// metricsReceiver observes the most recently sent AddressMetrics.
type metricsReceiver struct {
	ch chan AddressMetrics
}

// newMetricsWatch returns a connected sender/receiver pair, primed with
// initial.
func newMetricsWatch(initial AddressMetrics) (metricsSender, metricsReceiver) {
	ch := make(chan AddressMetrics, 1)
	ch <- initial
	return metricsSender{ch: ch}, metricsReceiver{ch: ch}
}

// Send replaces whatever value is currently buffered with v. A receiver
// that hasn't yet read the previous value only ever sees the latest one.
func (s metricsSender) Send(v AddressMetrics) {
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
}

// C returns the channel callers receive snapshots on.
func (r metricsReceiver) C() <-chan AddressMetrics {
	return r.ch
}
