package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// SavedSearchInput is the owner-editable part of a saved search. Skills are
// given by name and must already exist.
type SavedSearchInput struct {
	Name    string   `validate:"required,max=100"`
	Query   string   `validate:"max=200"`
	Skills  []string `validate:"max=20,dive,required,max=50"`
	City    string   `validate:"max=100"`
	State   string   `validate:"max=100"`
	Country string   `validate:"max=100"`
}

func (in SavedSearchInput) normalized() SavedSearchInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Query = strings.TrimSpace(in.Query)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Country = strings.TrimSpace(in.Country)
	in.Skills = lo.Map(in.Skills, func(s string, _ int) string { return strings.TrimSpace(s) })
	return in
}

type savedSearchRepository interface {
	Add(ctx context.Context, search *models.SavedSearch) error
	UpdateWithSkills(ctx context.Context, search *models.SavedSearch, skills []models.Skill) error
	GetByID(ctx context.Context, ID int) (*models.SavedSearch, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]models.SavedSearch, error)
	SetActive(ctx context.Context, ID int, active bool) error
	Remove(ctx context.Context, ID int) error
}

type skillResolver interface {
	GetByName(ctx context.Context, name string) (*models.Skill, error)
}

type ownerProfileRepository interface {
	GetByUser(ctx context.Context, userID int64) (*models.Profile, error)
}

// SavedSearches is the owner-scoped management surface for saved searches.
// Every mutation checks that the caller owns the search.
type SavedSearches struct {
	searches savedSearchRepository
	skills   skillResolver
	profiles ownerProfileRepository
	validate *validator.Validate
}

func NewSavedSearches(searches savedSearchRepository, skills skillResolver, profiles ownerProfileRepository) *SavedSearches {
	return &SavedSearches{searches: searches, skills: skills, profiles: profiles, validate: validator.New()}
}

// Create rejects owners whose profile is a job seeker one. Accounts without
// a profile are recruiter or staff accounts and may own searches.
func (s *SavedSearches) Create(ctx context.Context, ownerID int64, input SavedSearchInput) (*models.SavedSearch, error) {

	profile, err := s.profiles.GetByUser(ctx, ownerID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get profile of %v: %v", ownerID, err)
		return nil, err
	}
	if profile != nil && profile.AccountType != models.AccountRecruiter {
		return nil, ErrNotRecruiter
	}

	input, skills, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	search := models.NewSavedSearch(ownerID, input.Name, input.Query, skills, input.City, input.State, input.Country)
	if err = s.searches.Add(ctx, search); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to add saved search: %v", err)
		return nil, err
	}
	return search, nil
}

// Update replaces the criteria; the active flag and last check are kept.
func (s *SavedSearches) Update(ctx context.Context, ownerID int64, searchID int, input SavedSearchInput) (*models.SavedSearch, error) {

	search, err := s.owned(ctx, ownerID, searchID)
	if err != nil {
		return nil, err
	}

	input, skills, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	search.Name = input.Name
	search.Query = input.Query
	search.LocationCity = input.City
	search.LocationState = input.State
	search.LocationCountry = input.Country

	if err = s.searches.UpdateWithSkills(ctx, search, skills); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to update saved search: %v", err)
		return nil, err
	}
	search.Skills = skills
	return search, nil
}

// Toggle flips the search between active and inactive. Existing
// notifications are left untouched.
func (s *SavedSearches) Toggle(ctx context.Context, ownerID int64, searchID int) (*models.SavedSearch, error) {

	search, err := s.owned(ctx, ownerID, searchID)
	if err != nil {
		return nil, err
	}

	if err = s.searches.SetActive(ctx, search.ID, !search.IsActive); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to toggle saved search: %v", err)
		return nil, err
	}
	search.IsActive = !search.IsActive
	return search, nil
}

func (s *SavedSearches) Delete(ctx context.Context, ownerID int64, searchID int) error {

	if _, err := s.owned(ctx, ownerID, searchID); err != nil {
		return err
	}

	if err := s.searches.Remove(ctx, searchID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to remove saved search: %v", err)
		return err
	}
	return nil
}

func (s *SavedSearches) List(ctx context.Context, ownerID int64) ([]models.SavedSearch, error) {
	return s.searches.GetByOwner(ctx, ownerID)
}

func (s *SavedSearches) owned(ctx context.Context, ownerID int64, searchID int) (*models.SavedSearch, error) {
	search, err := s.searches.GetByID(ctx, searchID)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to get saved search: %v", err)
		return nil, err
	}
	if search == nil {
		return nil, ErrSearchNotFound
	}
	if search.OwnerID != ownerID {
		return nil, ErrNotSearchOwner
	}
	return search, nil
}

func (s *SavedSearches) prepare(ctx context.Context, input SavedSearchInput) (SavedSearchInput, []models.Skill, error) {

	input = input.normalized()
	if err := s.validate.Struct(input); err != nil {
		return input, nil, errors.Wrap(err, "invalid saved search")
	}

	skills := make([]models.Skill, 0, len(input.Skills))
	for _, name := range input.Skills {
		skill, err := s.skills.GetByName(ctx, name)
		if err != nil {
			return input, nil, err
		}
		if skill == nil {
			return input, nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
		}
		skills = append(skills, *skill)
	}

	return input, lo.UniqBy(skills, func(skill models.Skill) int { return skill.ID }), nil
}
