package logger

import (
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_ErrorCounterHook_ShouldCountErrorsByTypeAndLevel(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_errors_total"}, []string{"type", "level"})

	logger := log.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(newErrorCounterHook(counter))

	logger.WithField(ErrorTypeField, ErrorTypeDb).Error("db is down")
	logger.WithField(ErrorTypeField, ErrorTypeDb).Error("db is still down")
	logger.WithField(ErrorTypeField, ErrorTypeGeocoderApi).Error("nominatim answered 503")
	logger.Error("no type")
	logger.WithField(ErrorTypeField, ErrorTypeDb).Warn("not counted")

	assert.Equal(t, float64(2), testutil.ToFloat64(counter.WithLabelValues(ErrorTypeDb, "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues(ErrorTypeGeocoderApi, "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(counter.WithLabelValues(untypedError, "error")))
	assert.Equal(t, 3, testutil.CollectAndCount(counter))
}
