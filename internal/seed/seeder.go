package seed

import (
	"context"
	"fmt"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type userStore interface {
	Add(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type skillStore interface {
	GetOrCreate(ctx context.Context, name string) (*models.Skill, error)
}

type profileStore interface {
	Add(ctx context.Context, profile *models.Profile) error
	GetByUser(ctx context.Context, userID int64) (*models.Profile, error)
}

type jobStore interface {
	Add(ctx context.Context, job *models.Job) error
}

type searchService interface {
	Create(ctx context.Context, ownerID int64, input services.SavedSearchInput) (*models.SavedSearch, error)
	Toggle(ctx context.Context, ownerID int64, searchID int) (*models.SavedSearch, error)
}

type profileEvaluator interface {
	OnProfileSaved(ctx context.Context, profileID int, created bool) (int, error)
}

type Stores struct {
	Users     userStore
	Skills    skillStore
	Profiles  profileStore
	Jobs      jobStore
	Searches  searchService
	Evaluator profileEvaluator
}

type Report struct {
	Skills        int
	Users         int
	Profiles      int
	Jobs          int
	SavedSearches int
	Notifications int
}

// Seeder inserts a fixture. Saved searches go in before profiles so that
// each created profile is evaluated against them like a regular signup.
type Seeder struct {
	stores Stores
	skills map[string]models.Skill
}

func NewSeeder(stores Stores) *Seeder {
	return &Seeder{stores: stores, skills: make(map[string]models.Skill)}
}

func (s *Seeder) Seed(ctx context.Context, fixture *Fixture) (Report, error) {

	var report Report

	if err := s.seedSkills(ctx, fixture, &report); err != nil {
		return report, err
	}

	users := make(map[string]*models.User, len(fixture.Users))
	for _, u := range fixture.Users {
		user, created, err := s.user(ctx, u)
		if err != nil {
			return report, errors.Wrapf(err, "user %s", u.Username)
		}
		if created {
			report.Users++
		}
		users[u.Username] = user
	}

	for i, j := range fixture.Jobs {
		job, err := s.job(j, users)
		if err != nil {
			return report, errors.Wrapf(err, "job #%d", i+1)
		}
		if err = s.stores.Jobs.Add(ctx, job); err != nil {
			return report, errors.Wrapf(err, "job %q", j.Title)
		}
		report.Jobs++
	}

	for _, f := range fixture.SavedSearches {
		if err := s.search(ctx, f, users); err != nil {
			return report, errors.Wrapf(err, "saved search %q", f.Name)
		}
		report.SavedSearches++
	}

	for _, u := range fixture.Users {
		if u.Profile == nil {
			continue
		}
		notified, created, err := s.profile(ctx, users[u.Username], *u.Profile)
		if err != nil {
			return report, errors.Wrapf(err, "profile of %s", u.Username)
		}
		if created {
			report.Profiles++
		}
		report.Notifications += notified
	}

	log.Infof("seeded %+v", report)
	return report, nil
}

func (s *Seeder) seedSkills(ctx context.Context, fixture *Fixture, report *Report) error {

	names := append([]string{}, fixture.Skills...)
	for _, u := range fixture.Users {
		if u.Profile != nil {
			names = append(names, u.Profile.Skills...)
		}
	}
	for _, j := range fixture.Jobs {
		names = append(names, j.Skills...)
	}
	for _, f := range fixture.SavedSearches {
		names = append(names, f.Skills...)
	}

	for _, name := range lo.Uniq(names) {
		key := models.NormalizeSkillName(name)
		if _, ok := s.skills[key]; ok {
			continue
		}
		skill, err := s.stores.Skills.GetOrCreate(ctx, name)
		if err != nil {
			return errors.Wrapf(err, "skill %s", name)
		}
		s.skills[key] = *skill
		report.Skills++
	}
	return nil
}

func (s *Seeder) skillsOf(names []string) []models.Skill {
	return lo.UniqBy(lo.Map(names, func(name string, _ int) models.Skill {
		return s.skills[models.NormalizeSkillName(name)]
	}), func(skill models.Skill) int { return skill.ID })
}

// user returns the existing account when the username is taken, which makes
// reseeding the same file a no-op for users.
func (s *Seeder) user(ctx context.Context, fixture UserFixture) (*models.User, bool, error) {

	if fixture.Username == "" {
		return nil, false, errors.New("username is required")
	}

	existing, err := s.stores.Users.GetByUsername(ctx, fixture.Username)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	user := &models.User{Username: fixture.Username, Email: fixture.Email}
	if err = s.stores.Users.Add(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Seeder) job(fixture JobFixture, users map[string]*models.User) (*models.Job, error) {

	job := &models.Job{
		Title:            fixture.Title,
		Company:          fixture.Company,
		Description:      fixture.Description,
		Skills:           s.skillsOf(fixture.Skills),
		LocationCity:     fixture.Location.City,
		LocationState:    fixture.Location.State,
		LocationCountry:  fixture.Location.Country,
		Latitude:         fixture.Location.Latitude,
		Longitude:        fixture.Location.Longitude,
		MinSalary:        fixture.MinSalary,
		MaxSalary:        fixture.MaxSalary,
		WorkType:         models.WorkOnsite,
		VisaSponsorship:  fixture.VisaSponsorship,
		ModerationStatus: models.ModerationActive,
	}

	if fixture.WorkType != "" {
		workType, err := models.ToWorkType(fixture.WorkType)
		if err != nil {
			return nil, err
		}
		job.WorkType = workType
	}

	if fixture.PostedBy != "" {
		poster, ok := users[fixture.PostedBy]
		if !ok {
			return nil, fmt.Errorf("unknown poster %s", fixture.PostedBy)
		}
		job.PostedByID = &poster.ID
	}
	return job, nil
}

func (s *Seeder) search(ctx context.Context, fixture SearchFixture, users map[string]*models.User) error {

	owner, ok := users[fixture.Owner]
	if !ok {
		return fmt.Errorf("unknown owner %s", fixture.Owner)
	}

	search, err := s.stores.Searches.Create(ctx, owner.ID, services.SavedSearchInput{
		Name:    fixture.Name,
		Query:   fixture.Query,
		Skills:  fixture.Skills,
		City:    fixture.City,
		State:   fixture.State,
		Country: fixture.Country,
	})
	if err != nil {
		return err
	}

	if fixture.Paused {
		_, err = s.stores.Searches.Toggle(ctx, owner.ID, search.ID)
	}
	return err
}

func (s *Seeder) profile(ctx context.Context, user *models.User, fixture ProfileFixture) (int, bool, error) {

	existing, err := s.stores.Profiles.GetByUser(ctx, user.ID)
	if err != nil {
		return 0, false, err
	}
	if existing != nil {
		return 0, false, nil
	}

	profile := &models.Profile{
		UserID:          user.ID,
		Headline:        fixture.Headline,
		Bio:             fixture.Bio,
		Experience:      fixture.Experience,
		LocationCity:    fixture.Location.City,
		LocationState:   fixture.Location.State,
		LocationCountry: fixture.Location.Country,
		Latitude:        fixture.Location.Latitude,
		Longitude:       fixture.Location.Longitude,
		CommuteRadius:   fixture.CommuteRadius,
		Skills:          s.skillsOf(fixture.Skills),
		Visibility:      models.VisibilityPublic,
		AccountType:     models.AccountJobSeeker,
	}

	if fixture.Visibility != "" {
		if profile.Visibility, err = models.ToVisibility(fixture.Visibility); err != nil {
			return 0, false, err
		}
	}
	if fixture.AccountType != "" {
		if profile.AccountType, err = models.ToAccountType(fixture.AccountType); err != nil {
			return 0, false, err
		}
	}

	if err = s.stores.Profiles.Add(ctx, profile); err != nil {
		return 0, false, err
	}

	notified, err := s.stores.Evaluator.OnProfileSaved(ctx, profile.ID, true)
	return notified, true, err
}
