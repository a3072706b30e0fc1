package services

import (
	"context"
	"errors"

	"github.com/maxaizer/jobbridge/internal/clients/nominatim"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/metrics"
	"github.com/maxaizer/jobbridge/internal/repositories"
	log "github.com/sirupsen/logrus"
)

type placeSearcher interface {
	Search(ctx context.Context, query string) ([]nominatim.Place, error)
}

type geocodable interface {
	geo.Located
	LocationQuery() string
}

type ungeocodedRepository[T geocodable] interface {
	GetUngeocoded(ctx context.Context, afterID, limit int) ([]T, error)
	UpdateCoordinates(ctx context.Context, ID int, point geo.Point) error
}

// BackfillReport sums up a backfill run. NotFound rows are counted as
// failed too.
type BackfillReport struct {
	Total     int
	Succeeded int
	Failed    int
	NotFound  int
}

type Geocoder struct {
	client    placeSearcher
	cache     repositories.GeocodeCache
	jobs      ungeocodedRepository[models.Job]
	profiles  ungeocodedRepository[models.Profile]
	batchSize int
}

func NewGeocoder(client placeSearcher, cache repositories.GeocodeCache,
	jobs ungeocodedRepository[models.Job], profiles ungeocodedRepository[models.Profile]) *Geocoder {

	return &Geocoder{client: client, cache: cache, jobs: jobs, profiles: profiles, batchSize: 50}
}

// Geocode resolves a location to coordinates. An unknown location gives an
// invalid point and no error.
func (g *Geocoder) Geocode(ctx context.Context, city, state, country string) (geo.Point, error) {
	return g.geocodeQuery(ctx, models.JoinLocation(city, state, country))
}

func (g *Geocoder) geocodeQuery(ctx context.Context, query string) (geo.Point, error) {

	if query == "" {
		return geo.Point{}, nil
	}

	if g.cache != nil {
		point, found, err := g.cache.Get(ctx, query)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("failed to read geocode cache: %v", err)
		} else if found {
			metrics.GeocodeRequestsCounter.WithLabelValues("cached").Inc()
			return point, nil
		}
	}

	places, err := g.client.Search(ctx, query)
	if err != nil {
		metrics.GeocodeRequestsCounter.WithLabelValues("error").Inc()
		if !errors.Is(err, context.Canceled) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeGeocoderApi).Errorf("failed to geocode %q: %v", query, err)
		}
		return geo.Point{}, err
	}

	var point geo.Point
	if len(places) > 0 {
		if point, err = places[0].Point(); err != nil {
			metrics.GeocodeRequestsCounter.WithLabelValues("error").Inc()
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeGeocoderApi).Errorf("bad place for %q: %v", query, err)
			return geo.Point{}, err
		}
		metrics.GeocodeRequestsCounter.WithLabelValues("found").Inc()
	} else {
		metrics.GeocodeRequestsCounter.WithLabelValues("not_found").Inc()
	}

	if g.cache != nil {
		if err = g.cache.Set(ctx, query, point); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).Errorf("failed to write geocode cache: %v", err)
		}
	}
	return point, nil
}

// BackfillJobs geocodes jobs that have location text but no coordinates.
func (g *Geocoder) BackfillJobs(ctx context.Context) (BackfillReport, error) {
	return backfill(ctx, g, g.jobs, "jobs")
}

// BackfillProfiles geocodes profiles that have location text but no
// coordinates.
func (g *Geocoder) BackfillProfiles(ctx context.Context) (BackfillReport, error) {
	return backfill(ctx, g, g.profiles, "profiles")
}

func backfill[T geocodable](ctx context.Context, g *Geocoder, repo ungeocodedRepository[T], name string) (BackfillReport, error) {

	var report BackfillReport
	afterID := 0

	for {
		batch, err := repo.GetUngeocoded(ctx, afterID, g.batchSize)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get ungeocoded %v: %v", name, err)
			return report, err
		}
		if len(batch) == 0 {
			break
		}

		for _, item := range batch {
			if err = ctx.Err(); err != nil {
				return report, err
			}
			afterID = item.Identity()
			report.Total++

			point, err := g.geocodeQuery(ctx, item.LocationQuery())
			if err != nil {
				report.Failed++
				continue
			}
			if !point.Valid() {
				log.Warnf("%v %v: location %q not found", name, item.Identity(), item.LocationQuery())
				report.NotFound++
				report.Failed++
				continue
			}

			if err = repo.UpdateCoordinates(ctx, item.Identity(), point); err != nil {
				log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
					Errorf("failed to save coordinates of %v %v: %v", name, item.Identity(), err)
				report.Failed++
				continue
			}
			report.Succeeded++
		}
	}

	log.Infof("geocoded %v: %v succeeded, %v failed of %v", name, report.Succeeded, report.Failed, report.Total)
	return report, nil
}
