package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// estimatorHuhTheme returns a huh theme matching the formatter palette.
func estimatorHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// estimateFormValues is what the interactive estimate form edits in place.
type estimateFormValues struct {
	activities []string
	drivers    map[domain.DriverDimension]*string
	risks      []string
}

func newEstimateFormValues(sel domain.DriverSelection, activities, risks []string) *estimateFormValues {
	v := &estimateFormValues{
		activities: activities,
		drivers:    make(map[domain.DriverDimension]*string, len(domain.DriverDimensions)),
		risks:      risks,
	}
	for _, dim := range domain.DriverDimensions {
		opt := sel.Option(dim)
		v.drivers[dim] = &opt
	}
	return v
}

func (v *estimateFormValues) selection() domain.DriverSelection {
	var sel domain.DriverSelection
	for _, dim := range domain.DriverDimensions {
		sel = sel.With(dim, *v.drivers[dim])
	}
	return sel
}

// estimateForm builds the activity, driver and risk pickers. Driver
// descriptions show where each pre-filled choice came from.
func estimateForm(cat *domain.Catalog, v *estimateFormValues, sources map[domain.DriverDimension]domain.DefaultSource) *huh.Form {
	actOpts := make([]huh.Option[string], 0, len(cat.Activities))
	for _, act := range cat.Activities {
		actOpts = append(actOpts, huh.NewOption(fmt.Sprintf("%s  %s (%gd)", act.Code, act.Name, act.BaseDays), act.Code))
	}

	driverFields := make([]huh.Field, 0, len(domain.DriverDimensions))
	for _, dim := range domain.DriverDimensions {
		opts := make([]huh.Option[string], 0, 3)
		for _, d := range cat.DriverOptions(dim) {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (×%g)", d.Option, d.Multiplier), d.Option))
		}
		driverFields = append(driverFields, huh.NewSelect[string]().
			Title(string(dim)).
			Description("pre-filled from "+formatter.SourceLabel(sources[dim])).
			Options(opts...).
			Value(v.drivers[dim]))
	}

	riskOpts := make([]huh.Option[string], 0, len(cat.Risks))
	for _, r := range cat.Risks {
		riskOpts = append(riskOpts, huh.NewOption(fmt.Sprintf("%s (weight %g)", r.Name, r.Weight), r.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Activities").
				Options(actOpts...).
				Value(&v.activities).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("select at least one activity")
					}
					return nil
				}),
		),
		huh.NewGroup(driverFields...),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Risks").
				Options(riskOpts...).
				Value(&v.risks),
		),
	).WithTheme(estimatorHuhTheme()).WithShowHelp(false)
}
