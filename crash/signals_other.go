//go:build !unix

package crash

import "os"

// Signals are the failure signals the handler watches. Windows delivers
// none that os/signal can observe.
var Signals = []os.Signal{}

func reraise(os.Signal) {
	os.Exit(2)
}
