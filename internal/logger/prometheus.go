package logger

import (
	"github.com/maxaizer/jobbridge/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const untypedError = "untyped"

// errorCounterHook counts error-level entries by their ErrorTypeField and
// level. Entries logged without a type are counted as untyped.
type errorCounterHook struct {
	counter *prometheus.CounterVec
}

func newErrorCounterHook(counter *prometheus.CounterVec) *errorCounterHook {
	return &errorCounterHook{counter: counter}
}

func (h *errorCounterHook) Fire(entry *log.Entry) error {
	errorType, ok := entry.Data[ErrorTypeField].(string)
	if !ok || errorType == "" {
		errorType = untypedError
	}

	h.counter.WithLabelValues(errorType, entry.Level.String()).Inc()
	return nil
}

func (h *errorCounterHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func addErrorCounterHook() {
	log.AddHook(newErrorCounterHook(metrics.ErrorsCounter))
}
