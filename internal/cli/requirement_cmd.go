package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/cli/formatter"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/repository"
)

func newRequirementCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requirement",
		Aliases: []string{"req"},
		Short:   "Manage requirements",
	}

	cmd.AddCommand(
		newRequirementAddCmd(a),
		newRequirementListCmd(a),
		newRequirementTreeCmd(a),
		newRequirementShowCmd(a),
		newRequirementUpdateCmd(a),
		newRequirementMoveCmd(a),
		newRequirementRemoveCmd(a),
	)

	return cmd
}

func parsePriorityFlag(s string) (domain.Priority, error) {
	p, ok := domain.ParsePriority(s)
	if !ok {
		return "", fmt.Errorf("invalid priority %q (use High, Med or Low)", s)
	}
	return p, nil
}

func parseStateFlag(s string) (domain.RequirementState, error) {
	st := strings.ToLower(strings.TrimSpace(s))
	if !domain.ValidStates[st] {
		return "", fmt.Errorf("invalid state %q (use proposed, selected, scheduled or done)", s)
	}
	return domain.RequirementState(st), nil
}

func parseDifficultyFlag(s string) (domain.Difficulty, error) {
	d := strings.ToLower(strings.TrimSpace(s))
	if d == "" {
		return "", nil
	}
	if !domain.ValidDifficulties[d] {
		return "", fmt.Errorf("invalid difficulty %q (use low, medium or high)", s)
	}
	return domain.Difficulty(d), nil
}

func newRequirementAddCmd(a *App) *cobra.Command {
	var title, description, priority, state, difficulty, parent string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a requirement",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := parsePriorityFlag(priority)
			if err != nil {
				return err
			}
			st, err := parseStateFlag(state)
			if err != nil {
				return err
			}
			diff, err := parseDifficultyFlag(difficulty)
			if err != nil {
				return err
			}

			r := &domain.Requirement{
				Title:       title,
				Description: description,
				Priority:    p,
				State:       st,
				Difficulty:  diff,
				Tags:        tags,
			}
			if parent != "" {
				pr, err := a.Requirements.Resolve(ctx, parent)
				if err != nil {
					return fmt.Errorf("parent %s: %w", parent, err)
				}
				r.ParentID = &pr.ID
			}

			if err := a.Requirements.Create(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created requirement %s %s\n", formatter.SeqLabel(r.Seq), r.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Requirement title")
	cmd.Flags().StringVar(&description, "description", "", "Longer description")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMed), "Priority: High, Med or Low")
	cmd.Flags().StringVar(&state, "state", string(domain.StateProposed), "State: proposed, selected, scheduled or done")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty override: low, medium or high")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable or comma-separated)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent requirement (#seq or id)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

// listRows loads every requirement through the dashboard so list and tree
// share its ordering and latest-estimate lookup.
func listRows(cmd *cobra.Command, a *App, criteria dashboardFilters) (*app.DashboardResponse, error) {
	req, err := buildDashboardRequest(a, criteria)
	if err != nil {
		return nil, err
	}
	return a.Dashboard.Build(cmd.Context(), req)
}

func newRequirementListCmd(a *App) *cobra.Command {
	var f dashboardFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requirements with their latest estimate",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := listRows(cmd, a, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRequirementList(resp.Rows))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newRequirementTreeCmd(a *App) *cobra.Command {
	var f dashboardFilters

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the requirement hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := listRows(cmd, a, f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatRequirementTree(resp.Rows))
			for _, w := range resp.Warnings {
				fmt.Fprintln(out, formatter.StyleYellow.Render("! ")+w)
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newRequirementShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			var parent *domain.Requirement
			if r.ParentID != nil {
				if parent, err = a.Requirements.GetByID(ctx, *r.ParentID); err != nil {
					return err
				}
			}
			latest, err := a.Estimates.Latest(ctx, r.ID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRequirement(r, parent, latest))
			return nil
		},
	}
}

func newRequirementUpdateCmd(a *App) *cobra.Command {
	var title, description, priority, state, difficulty string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <ref>",
		Short: "Update requirement fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				r.Title = title
			}
			if flags.Changed("description") {
				r.Description = description
			}
			if flags.Changed("priority") {
				if r.Priority, err = parsePriorityFlag(priority); err != nil {
					return err
				}
			}
			if flags.Changed("state") {
				if r.State, err = parseStateFlag(state); err != nil {
					return err
				}
			}
			if flags.Changed("difficulty") {
				if r.Difficulty, err = parseDifficultyFlag(difficulty); err != nil {
					return err
				}
			}
			if flags.Changed("tag") {
				r.Tags = tags
			}

			if err := a.Requirements.Update(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated requirement %s %s\n", formatter.SeqLabel(r.Seq), r.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority")
	cmd.Flags().StringVar(&state, "state", "", "New state")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "New difficulty (empty clears it)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags (repeatable or comma-separated)")

	return cmd
}

func newRequirementMoveCmd(a *App) *cobra.Command {
	var parent string
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "move <ref>",
		Short: "Re-parent a requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if toRoot == (parent != "") {
				return fmt.Errorf("use exactly one of --parent or --root")
			}
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}

			var parentID *string
			label := "the top level"
			if parent != "" {
				p, err := a.Requirements.Resolve(ctx, parent)
				if err != nil {
					return fmt.Errorf("parent %s: %w", parent, err)
				}
				parentID = &p.ID
				label = formatter.SeqLabel(p.Seq)
			}

			if err := a.Requirements.Move(ctx, r.ID, parentID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s under %s\n", formatter.SeqLabel(r.Seq), label)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent (#seq or id)")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Make it a top-level requirement")

	return cmd
}

func newRequirementRemoveCmd(a *App) *cobra.Command {
	var cascade bool

	cmd := &cobra.Command{
		Use:   "remove <ref>",
		Short: "Delete a requirement and its estimates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := a.Requirements.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.Requirements.Delete(ctx, r.ID, cascade); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed requirement %s %s\n", formatter.SeqLabel(r.Seq), r.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cascade, "cascade", false, "Also delete child requirements")

	return cmd
}
