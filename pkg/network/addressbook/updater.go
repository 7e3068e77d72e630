package addressbook

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Config bounds the updater's change channel and the book's address
// limit. PeerConnectionLimit is the owner's configured maximum
// inbound-plus-outbound peer count; the channel capacity equals it, so
// the channel's own backpressure never exceeds what the peer set could
// ever produce concurrently.
type Config struct {
	PeerConnectionLimit int
	AddressLimit        int
}

// Worker is the handle returned by Spawn. It completes only when its
// change channel has been closed and has drained; Err then returns
// ErrAllSendersClosed. There is no other
// shutdown path.
type Worker struct {
	log      *zap.Logger
	started  *atomic.Bool
	finished chan struct{}
	err      error
}

// Wait blocks until the worker has exited.
func (w *Worker) Wait() {
	<-w.finished
}

// Err returns the reason the worker exited. It is only meaningful after
// Wait returns (or after a value has been received from Done).
func (w *Worker) Err() error {
	return w.err
}

// Done returns a channel closed when the worker exits.
func (w *Worker) Done() <-chan struct{} {
	return w.finished
}

// Spawn constructs an AddressBook and a single blocking worker that
// serializes every mutation onto it. It returns the shared book, the
// sending half of the bounded change channel, a receiver for the most
// recent AddressMetrics snapshot, and the worker's handle.
//
// The worker runs for the lifetime of the process: the owner keeps the
// returned sender alive (and keeps sending AddrChange events) for as
// long as the address book should keep updating; closing the change
// channel is the only way to stop it.
func Spawn(cfg Config, localListener string, log *zap.Logger) (*AddressBook, chan<- AddrChange, <-chan AddressMetrics, *Worker) {
	if log == nil {
		log = zap.NewNop()
	}

	book := New(localListener, cfg.AddressLimit)
	sender, receiver := newMetricsWatch(book.Metrics())

	changes := make(chan AddrChange, cfg.PeerConnectionLimit)

	w := &Worker{
		log:      log,
		started:  atomic.NewBool(false),
		finished: make(chan struct{}),
	}

	if w.started.CAS(false, true) {
		go w.run(changes, book, sender)
	}

	return book, changes, receiver.C(), w
}

func (w *Worker) run(changes <-chan AddrChange, book *AddressBook, sender metricsSender) {
	correlationID := uuid.New().String()
	w.log.Info("starting address book updater", zap.String("correlation_id", correlationID))

	for change := range changes {
		w.log.Debug("applying address book change",
			zap.String("correlation_id", correlationID),
			zap.String("addr", change.Addr),
			zap.Int("kind", int(change.Kind)))

		if book.Update(change) {
			sender.Send(book.Metrics())
		}
	}

	w.err = ErrAllSendersClosed
	w.log.Info("stopping address book updater",
		zap.String("correlation_id", correlationID),
		zap.Error(w.err))
	close(w.finished)
}
