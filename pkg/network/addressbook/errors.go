package addressbook

import "errors"

// ErrAllSendersClosed is returned by a Worker's Err once its change
// channel has been drained and closed by every sender. It is the only
// way the worker stops; there is no graceful-shutdown signal.
var ErrAllSendersClosed = errors.New("addressbook: all change senders closed")
