package scaffold

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// PostForm builds the interactive form for a new post. Submitted values are
// written into d; the tags field is applied by the returned finish func.
func PostForm(d *PostDraft) (*huh.Form, func()) {
	tags := strings.Join(d.Tags, ", ")
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&d.Title).
				Validate(ValidateTitle),
			huh.NewInput().
				Title("Author").
				Placeholder("BlogLabs Admin").
				Value(&d.Author),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&d.Date).
				Validate(ValidateDate),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Summary").
				CharLimit(160).
				Value(&d.Summary),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&tags),
			huh.NewConfirm().
				Title("Save as draft?").
				Value(&d.Draft),
		),
	).WithTheme(huh.ThemeCharm())

	finish := func() {
		d.Tags = SplitTags(tags)
		d.Slug = Slugify(d.Title)
	}
	return form, finish
}

// ProjectForm builds the interactive form for a new project
func ProjectForm(d *ProjectDraft) (*huh.Form, func()) {
	order := ""
	if d.Order != 0 {
		order = strconv.Itoa(d.Order)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&d.Name).
				Validate(ValidateTitle),
			huh.NewInput().
				Title("Description").
				Value(&d.Description),
			huh.NewInput().
				Title("GitHub URL").
				Value(&d.GitHubURL).
				Validate(func(s string) error {
					if s == "" {
						return errRequired
					}
					return ValidateURL(s)
				}),
			huh.NewInput().
				Title("Live URL").
				Description("Optional").
				Value(&d.LiveURL).
				Validate(ValidateURL),
			huh.NewInput().
				Title("Order").
				Description("Lower numbers are listed first").
				Value(&order).
				Validate(validateOrder),
		),
	).WithTheme(huh.ThemeCharm())

	finish := func() {
		d.Order, _ = strconv.Atoi(strings.TrimSpace(order))
	}
	return form, finish
}

func validateOrder(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errOrder
	}
	return nil
}
