package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobbridge_errors_total",
			Help: "Total number of logged errors by type and level.",
		},
		[]string{"type", "level"},
	)
	MatchEvaluationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobbridge_match_evaluations_total",
			Help: "Total number of profile/search evaluations by result.",
		},
		[]string{"result"},
	)
	NotificationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobbridge_match_notifications_created_total",
			Help: "Total number of created match notifications by kind.",
		},
		[]string{"kind"},
	)
	GeocodeRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobbridge_geocode_requests_total",
			Help: "Total number of geocode lookups by outcome.",
		},
		[]string{"outcome"},
	)
	SearchCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobbridge_saved_search_check_duration_seconds",
			Help:    "Duration of each saved searches check run in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 120},
		},
	)
)

type Server struct {
	http *http.Server
}

func StartMetricsServer(address string) *Server {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(MatchEvaluationsCounter)
	prometheus.MustRegister(NotificationsCounter)
	prometheus.MustRegister(GeocodeRequestsCounter)
	prometheus.MustRegister(SearchCheckDuration)

	s := &Server{http: &http.Server{
		Addr:              address,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}}

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	log.Infof("metrics server listening on %s", address)
	return s
}

func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
