package main

import (
	"context"
	"fmt"
	"io"

	"github.com/maxaizer/jobbridge/internal/domain/models"
	"github.com/maxaizer/jobbridge/internal/geo"
	"github.com/maxaizer/jobbridge/internal/repositories"
	"github.com/maxaizer/jobbridge/internal/services"
	"github.com/spf13/cobra"
)

type jobFlags struct {
	userID         int64
	title          string
	company        string
	skills         []string
	city           string
	state          string
	country        string
	minSalary      int
	maxSalary      int
	workType       string
	visa           bool
	includeRemoved bool
}

var (
	jobsFilter     jobFlags
	sortByDistance bool
	mapOrigin      []float64
	mapMaxDistance float64

	jobsCmd = &cobra.Command{
		Use:   "jobs",
		Short: "Query the job board the way a signed-in user sees it",
	}

	jobsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List jobs within the user's commute radius",
		Args:  cobra.NoArgs,
		RunE:  runJobsList,
	}

	jobsMapCmd = &cobra.Command{
		Use:   "map",
		Short: "List geocoded jobs as map pins",
		Args:  cobra.NoArgs,
		RunE:  runJobsMap,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{jobsListCmd, jobsMapCmd} {
		flags := cmd.Flags()
		flags.Int64Var(&jobsFilter.userID, "user", 0, "viewer user id, 0 for anonymous")
		flags.StringVar(&jobsFilter.title, "title", "", "title fragment")
		flags.StringVar(&jobsFilter.company, "company", "", "company fragment")
		flags.StringSliceVar(&jobsFilter.skills, "skill", nil, "required skill, any of them matches")
		flags.StringVar(&jobsFilter.city, "city", "", "city fragment")
		flags.StringVar(&jobsFilter.state, "state", "", "state fragment")
		flags.StringVar(&jobsFilter.country, "country", "", "country fragment")
		flags.IntVar(&jobsFilter.minSalary, "min-salary", 0, "minimum salary")
		flags.IntVar(&jobsFilter.maxSalary, "max-salary", 0, "maximum salary")
		flags.StringVar(&jobsFilter.workType, "work-type", "", "onsite, remote or hybrid")
		flags.BoolVar(&jobsFilter.visa, "visa", false, "only jobs offering visa sponsorship")
		flags.BoolVar(&jobsFilter.includeRemoved, "include-removed", false, "include removed jobs")
	}

	jobsListCmd.Flags().BoolVar(&sortByDistance, "sort-by-distance", false, "closest jobs first")
	jobsMapCmd.Flags().Float64SliceVar(&mapOrigin, "origin", nil, "latitude,longitude replacing the profile location")
	jobsMapCmd.Flags().Float64Var(&mapMaxDistance, "max-distance", 0, "radius in miles replacing the commute radius")

	jobsCmd.AddCommand(jobsListCmd, jobsMapCmd)
}

func (f jobFlags) toFilter(ctx context.Context, skills *repositories.CachedSkills) (repositories.JobFilter, error) {

	filter := repositories.JobFilter{
		Title:          f.title,
		Company:        f.company,
		City:           f.city,
		State:          f.state,
		Country:        f.country,
		IncludeRemoved: f.includeRemoved,
	}

	for _, name := range f.skills {
		skill, err := skills.GetByName(ctx, name)
		if err != nil {
			return filter, err
		}
		if skill == nil {
			return filter, fmt.Errorf("%w: %s", services.ErrUnknownSkill, name)
		}
		filter.SkillIDs = append(filter.SkillIDs, skill.ID)
	}

	if f.minSalary > 0 {
		filter.MinSalary = &f.minSalary
	}
	if f.maxSalary > 0 {
		filter.MaxSalary = &f.maxSalary
	}
	if f.visa {
		filter.VisaSponsorship = &f.visa
	}
	if f.workType != "" {
		workType, err := models.ToWorkType(f.workType)
		if err != nil {
			return filter, err
		}
		filter.WorkType = workType
	}
	return filter, nil
}

func runJobsList(cmd *cobra.Command, _ []string) error {

	a, err := newApplication()
	if err != nil {
		return err
	}
	defer a.Close()

	filter, err := jobsFilter.toFilter(cmd.Context(), a.skills)
	if err != nil {
		return err
	}

	list, err := services.NewJobListing(a.jobs, a.profiles).
		ListForUser(cmd.Context(), jobsFilter.userID, services.ListOptions{Filter: filter, SortByDistance: sortByDistance})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, job := range list.Jobs {
		if err = printJob(out, job, list.Distances); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "%d jobs\n", len(list.Jobs))
	return err
}

func printJob(out io.Writer, job models.Job, distances map[int]float64) error {
	distance := "distance unknown"
	if miles, ok := distances[job.ID]; ok {
		distance = fmt.Sprintf("%.1f mi", miles)
	}
	_, err := fmt.Fprintf(out, "#%d %s at %s, %s (%s, %s)\n",
		job.ID, job.Title, job.Company, job.LocationQuery(), job.WorkType, distance)
	return err
}

func runJobsMap(cmd *cobra.Command, _ []string) error {

	a, err := newApplication()
	if err != nil {
		return err
	}
	defer a.Close()

	filter, err := jobsFilter.toFilter(cmd.Context(), a.skills)
	if err != nil {
		return err
	}

	query := services.MapQuery{Filter: filter}
	if len(mapOrigin) > 0 {
		if len(mapOrigin) != 2 {
			return fmt.Errorf("origin must be latitude,longitude")
		}
		origin := geo.NewPoint(mapOrigin[0], mapOrigin[1])
		query.Origin = &origin
	}
	if cmd.Flags().Changed("max-distance") {
		query.MaxDistance = &mapMaxDistance
	}

	data, err := services.NewJobListing(a.jobs, a.profiles).MapData(cmd.Context(), jobsFilter.userID, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, pin := range data.Results {
		distance := ""
		if pin.DistanceMiles != nil {
			distance = fmt.Sprintf(", %.1f mi", *pin.DistanceMiles)
		}
		salary := pin.SalaryRange
		if salary == "" {
			salary = "salary not listed"
		}
		if _, err = fmt.Fprintf(out, "#%d %s at %s [%.4f, %.4f] %s%s\n",
			pin.ID, pin.Title, pin.Company, pin.Latitude, pin.Longitude, salary, distance); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "%d of %d jobs plotted, %d without coordinates\n",
		len(data.Results), data.TotalCount, data.MissingCount)
	return err
}
