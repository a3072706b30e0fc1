package seed

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Fixture is the on-disk seed format. Users are referenced by username.
type Fixture struct {
	Skills        []string        `yaml:"skills"`
	Users         []UserFixture   `yaml:"users"`
	Jobs          []JobFixture    `yaml:"jobs"`
	SavedSearches []SearchFixture `yaml:"saved_searches"`
}

type UserFixture struct {
	Username string          `yaml:"username"`
	Email    string          `yaml:"email"`
	Profile  *ProfileFixture `yaml:"profile"`
}

type LocationFixture struct {
	City      string   `yaml:"city"`
	State     string   `yaml:"state"`
	Country   string   `yaml:"country"`
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

type ProfileFixture struct {
	Headline      string          `yaml:"headline"`
	Bio           string          `yaml:"bio"`
	Experience    string          `yaml:"experience"`
	Location      LocationFixture `yaml:"location"`
	CommuteRadius *int            `yaml:"commute_radius"`
	Visibility    string          `yaml:"visibility"`
	AccountType   string          `yaml:"account_type"`
	Skills        []string        `yaml:"skills"`
}

type JobFixture struct {
	Title           string          `yaml:"title"`
	Company         string          `yaml:"company"`
	Description     string          `yaml:"description"`
	Location        LocationFixture `yaml:"location"`
	MinSalary       *int            `yaml:"min_salary"`
	MaxSalary       *int            `yaml:"max_salary"`
	WorkType        string          `yaml:"work_type"`
	VisaSponsorship bool            `yaml:"visa_sponsorship"`
	PostedBy        string          `yaml:"posted_by"`
	Skills          []string        `yaml:"skills"`
}

type SearchFixture struct {
	Owner   string   `yaml:"owner"`
	Name    string   `yaml:"name"`
	Query   string   `yaml:"query"`
	Skills  []string `yaml:"skills"`
	City    string   `yaml:"city"`
	State   string   `yaml:"state"`
	Country string   `yaml:"country"`
	Paused  bool     `yaml:"paused"`
}

func Load(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fixture Fixture
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fixture); err != nil {
		return nil, errors.Wrapf(err, "invalid seed file %s", path)
	}
	return &fixture, nil
}
