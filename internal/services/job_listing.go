package services

import (
	"context"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/maxaizer/jobbridge/internal/repositories"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type jobFinder interface {
	Find(ctx context.Context, filter repositories.JobFilter, box *geo.Box) ([]models.Job, error)
}

type userProfileRepository interface {
	GetByUser(ctx context.Context, userID int64) (*models.Profile, error)
}

type ListOptions struct {
	Filter         repositories.JobFilter
	SortByDistance bool
}

// JobList carries distances rounded for display. A job without an entry has
// unknown distance.
type JobList struct {
	Jobs      []models.Job
	Distances map[int]float64
}

// MapQuery overrides the viewer's profile: Origin replaces the profile
// location and MaxDistance the commute radius.
type MapQuery struct {
	Filter      repositories.JobFilter
	Origin      *geo.Point
	MaxDistance *float64
}

type MapPin struct {
	ID              int
	Title           string
	Company         string
	Latitude        float64
	Longitude       float64
	WorkType        models.WorkType
	Location        string
	SalaryRange     string
	VisaSponsorship bool
	DistanceMiles   *float64
}

// MapData lists plottable jobs. MissingCount counts jobs that passed the
// filters but have no coordinates; TotalCount includes them.
type MapData struct {
	Results      []MapPin
	MissingCount int
	TotalCount   int
	UserLocation *geo.Point
}

type JobListing struct {
	jobs     jobFinder
	profiles userProfileRepository
}

func NewJobListing(jobs jobFinder, profiles userProfileRepository) *JobListing {
	return &JobListing{jobs: jobs, profiles: profiles}
}

// ListForUser applies the viewer's commute radius when their profile has both
// a location and a radius, and annotates distances when it has a location.
// userID 0 is an anonymous viewer.
func (l *JobListing) ListForUser(ctx context.Context, userID int64, opts ListOptions) (*JobList, error) {

	origin, radius, err := l.viewerOrigin(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := l.findWithin(ctx, opts.Filter, origin, radius)
	if err != nil {
		return nil, err
	}

	distances := geo.AnnotateDistances(jobs, origin)
	if opts.SortByDistance {
		geo.SortByDistance(jobs, distances)
	}

	rounded := make(map[int]float64, len(distances))
	for id, miles := range distances {
		rounded[id] = geo.RoundMiles(miles)
	}
	return &JobList{Jobs: jobs, Distances: rounded}, nil
}

func (l *JobListing) MapData(ctx context.Context, userID int64, query MapQuery) (*MapData, error) {

	origin, radius, err := l.viewerOrigin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if query.Origin != nil && query.Origin.Valid() {
		origin = *query.Origin
	}
	if query.MaxDistance != nil {
		radius = *query.MaxDistance
	}

	jobs, err := l.findWithin(ctx, query.Filter, origin, radius)
	if err != nil {
		return nil, err
	}

	data := &MapData{Results: []MapPin{}, TotalCount: len(jobs)}
	if origin.Valid() {
		data.UserLocation = &origin
	}

	for _, job := range jobs {
		location := job.Location()
		if !location.Valid() {
			data.MissingCount++
			continue
		}

		pin := MapPin{
			ID:              job.ID,
			Title:           job.Title,
			Company:         job.Company,
			Latitude:        *location.Latitude,
			Longitude:       *location.Longitude,
			WorkType:        job.WorkType,
			Location:        job.LocationQuery(),
			SalaryRange:     salaryRange(job.MinSalary, job.MaxSalary),
			VisaSponsorship: job.VisaSponsorship,
		}
		if miles, ok := geo.Distance(origin, location); ok {
			miles = geo.RoundMiles(miles)
			pin.DistanceMiles = &miles
		}
		data.Results = append(data.Results, pin)
	}

	return data, nil
}

func (l *JobListing) viewerOrigin(ctx context.Context, userID int64) (geo.Point, float64, error) {
	if userID == 0 {
		return geo.Point{}, 0, nil
	}

	profile, err := l.profiles.GetByUser(ctx, userID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get profile of user %v: %v", userID, err)
		return geo.Point{}, 0, err
	}
	if profile == nil {
		return geo.Point{}, 0, nil
	}
	return profile.Location(), profile.CommuteRadiusMiles(), nil
}

// findWithin narrows the query with a bounding box in SQL, then applies the
// exact radius check in memory.
func (l *JobListing) findWithin(ctx context.Context, filter repositories.JobFilter, origin geo.Point,
	radius float64) ([]models.Job, error) {

	var box *geo.Box
	if b, ok := geo.BoundingBoxAround(origin, radius); ok {
		box = &b
	}

	jobs, err := l.jobs.Find(ctx, filter, box)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to find jobs: %v", err)
		return nil, err
	}
	return geo.FilterWithinRadius(jobs, origin, radius), nil
}

var salaryPrinter = message.NewPrinter(language.English)

func salaryRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return salaryPrinter.Sprintf("$%d - $%d", *min, *max)
	case min != nil:
		return salaryPrinter.Sprintf("From $%d", *min)
	case max != nil:
		return salaryPrinter.Sprintf("Up to $%d", *max)
	default:
		return ""
	}
}
