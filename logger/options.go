package logger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"

	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/sink"
	"github.com/philipp01105/streamlog/sink/asyncsink"
)

// Backend names accepted by Options.Backend.
const (
	BackendAsync = "async"
	BackendStd   = "std"
	BackendZap   = "zap"
)

// Newline policy values accepted by Options.Newline.
const (
	NewlineAuto = "auto"
	NewlineOn   = "on"
	NewlineOff  = "off"
)

// DefaultVerbosityEnv is the environment variable read for the initial
// verbosity.
const DefaultVerbosityEnv = "GLOG_v"

// ErrUnknownBackend is returned for a backend name outside the known set.
var ErrUnknownBackend = errors.New("logging: unknown backend")

// Options defines configuration options for the logging facade.
type Options struct {
	Backend      string        `json:"backend" mapstructure:"backend"`
	Filename     string        `json:"file" mapstructure:"file"`
	Newline      string        `json:"newline" mapstructure:"newline"`
	VerbosityEnv string        `json:"verbosity-env" mapstructure:"verbosity-env"`
	Verbosity    int           `json:"v" mapstructure:"v"`
	Stacktrace   bool          `json:"stacktrace" mapstructure:"stacktrace"`
	QueueSize    int           `json:"queue-size" mapstructure:"queue-size"`
	FlushOn      string        `json:"flush-on" mapstructure:"flush-on"`
	Overflow     string        `json:"overflow" mapstructure:"overflow"`
	CoarseClock  bool          `json:"coarse-clock" mapstructure:"coarse-clock"`
	DrainTimeout time.Duration `json:"drain-timeout" mapstructure:"drain-timeout"`

	// Sink, when set, is used instead of building one from Backend.
	Sink sink.Sink `json:"-" mapstructure:"-"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Backend:      BackendAsync,
		Newline:      NewlineAuto,
		VerbosityEnv: DefaultVerbosityEnv,
		Stacktrace:   true,
		QueueSize:    asyncsink.DefaultQueueSize,
		FlushOn:      "warning",
		Overflow:     "drop-newest",
		DrainTimeout: 5 * time.Second,
	}
}

// Complete normalizes option values and fills in empty ones.
func (o *Options) Complete() error {
	o.Backend = strings.ToLower(strings.TrimSpace(o.Backend))
	if o.Backend == "" {
		o.Backend = BackendAsync
	}
	o.Newline = strings.ToLower(strings.TrimSpace(o.Newline))
	if o.Newline == "" {
		o.Newline = NewlineAuto
	}
	if o.QueueSize == 0 {
		o.QueueSize = asyncsink.DefaultQueueSize
	}
	if o.FlushOn == "" {
		o.FlushOn = "warning"
	}
	if o.Overflow == "" {
		o.Overflow = "drop-newest"
	}
	return nil
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	var err error

	switch o.Backend {
	case BackendAsync, BackendStd, BackendZap:
	default:
		if o.Sink == nil {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend))
		}
	}
	switch o.Newline {
	case NewlineAuto, NewlineOn, NewlineOff:
	default:
		err = multierr.Append(err, fmt.Errorf("invalid newline policy %q (want auto, on or off)", o.Newline))
	}
	if o.QueueSize < 0 {
		err = multierr.Append(err, fmt.Errorf("queue size must not be negative, got %d", o.QueueSize))
	}
	if _, ok := core.ParseSeverity(o.FlushOn); !ok {
		err = multierr.Append(err, fmt.Errorf("invalid flush-on severity %q", o.FlushOn))
	}
	if _, perr := sink.ParseOverflowPolicy(o.Overflow); perr != nil {
		err = multierr.Append(err, perr)
	}
	if o.DrainTimeout < 0 {
		err = multierr.Append(err, fmt.Errorf("drain timeout must not be negative, got %s", o.DrainTimeout))
	}
	return err
}

// AddFlags adds flags for logging options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Backend, "log.backend", o.Backend, "Logging backend: async, std or zap")
	fs.StringVar(&o.Filename, "log.file", o.Filename, "Log file; empty logs to the console")
	fs.StringVar(&o.Newline, "log.newline", o.Newline, "Append a trailing newline to records: auto, on or off")
	fs.StringVar(&o.VerbosityEnv, "log.verbosity-env", o.VerbosityEnv, "Environment variable holding the initial verbosity")
	fs.IntVarP(&o.Verbosity, "log.v", "v", o.Verbosity, "Initial verbosity, overridden by the verbosity environment variable")
	fs.BoolVar(&o.Stacktrace, "log.stacktrace", o.Stacktrace, "Install the failure-signal handler")
	fs.IntVar(&o.QueueSize, "log.queue-size", o.QueueSize, "Capacity of the async file queue")
	fs.StringVar(&o.FlushOn, "log.flush-on", o.FlushOn, "Lowest severity that flushes the async file writer")
	fs.StringVar(&o.Overflow, "log.overflow", o.Overflow, "Async queue overflow policy: drop-newest, drop-oldest or block")
	fs.BoolVar(&o.CoarseClock, "log.coarse-clock", o.CoarseClock, "Timestamp records from a cached clock updated every 500µs")
	fs.DurationVar(&o.DrainTimeout, "log.drain-timeout", o.DrainTimeout, "Upper bound for flushing the async queue")
}

// newlinePolicy resolves the auto setting. zap terminates lines itself.
func (o *Options) newlinePolicy() bool {
	switch o.Newline {
	case NewlineOn:
		return true
	case NewlineOff:
		return false
	default:
		return o.Sink != nil || o.Backend != BackendZap
	}
}
