package crash

import (
	"os"
	"os/signal"
	"runtime/debug"
	"sync"
)

// Handler watches failure signals until Stop is called.
type Handler struct {
	ch       chan os.Signal
	done     chan struct{}
	stopOnce sync.Once
	onSignal func(os.Signal)
}

// raise is replaced in tests
var raise = reraise

// Install starts watching Signals and calls onSignal for the first one
// received before re-raising it. Only this handler's registration is
// removed before the re-raise; other signal.Notify channels keep theirs.
func Install(onSignal func(os.Signal)) *Handler {
	debug.SetTraceback("all")

	h := &Handler{
		ch:       make(chan os.Signal, 1),
		done:     make(chan struct{}),
		onSignal: onSignal,
	}
	// Notify with no signals would relay every signal
	if len(Signals) > 0 {
		signal.Notify(h.ch, Signals...)
	}
	go h.run()
	return h
}

func (h *Handler) run() {
	select {
	case sig := <-h.ch:
		if h.onSignal != nil {
			h.onSignal(sig)
		}
		signal.Stop(h.ch)
		raise(sig)
	case <-h.done:
	}
}

// Stop uninstalls the handler and puts the traceback level back to the
// one GOTRACEBACK selects. It is safe to call more than once.
func (h *Handler) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() {
		signal.Stop(h.ch)
		close(h.done)
		debug.SetTraceback(envTraceback())
	})
}

// envTraceback is the level the runtime starts with.
func envTraceback() string {
	if level := os.Getenv("GOTRACEBACK"); level != "" {
		return level
	}
	return "single"
}
