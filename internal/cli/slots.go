package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/calendar"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/conditions"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/config"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/service"
)

func newWeeksCmd() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "weeks START END",
		Short: "Preview the weeks a residency over [START, END] would get",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDates(args[0], args[1])
			if err != nil {
				return err
			}
			cfg := config.LoadEngineConfig()
			seeds, err := cfg.Planner().Generate(start, end)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), seeds)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "START\tEND\tTIER\tPERFORMANCES\tFEE")
			for _, s := range seeds {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
					s.Start.Format(calendar.ISODate),
					s.End.Format(calendar.ISODate),
					s.Tier,
					s.PerformanceCount,
					s.FeeCents,
				)
			}
			return tw.Flush()
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newGenerateCmd() *cobra.Command {
	var dryRun bool
	c := &cobra.Command{
		Use:   "generate PROGRAM_ID START END",
		Short: "Create the week slots of a residency",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			start, end, err := parseDates(args[1], args[2])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				if dryRun {
					plan, err := a.svc.PlanWeeklySlots(ctx, id, start, end)
					if err != nil {
						return err
					}
					return printPlan(cmd.OutOrStdout(), plan, a.engine.Locale)
				}
				slots, err := a.svc.GenerateWeeklySlots(ctx, id, start, end)
				if err != nil {
					return err
				}
				return printSlots(cmd.OutOrStdout(), slots, a.engine.Locale)
			})
		},
	}
	c.Flags().BoolVar(&dryRun, "dry-run", false, "show the weeks and their conflicts without creating slots")
	return c
}

func newAddDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-date PROGRAM_ID DATE...",
		Short: "Add single-date slots to a multi-date program",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			days := make([]time.Time, 0, len(args)-1)
			for _, s := range args[1:] {
				d, err := calendar.ParseDate(s)
				if err != nil {
					return err
				}
				days = append(days, d)
			}
			return run(func(ctx context.Context, a *app) error {
				slots, err := a.svc.AddDates(ctx, id, days...)
				if err != nil {
					return err
				}
				return printSlots(cmd.OutOrStdout(), slots, a.engine.Locale)
			})
		},
	}
}

func newSlotsCmd() *cobra.Command {
	var page, size int
	var asJSON bool
	c := &cobra.Command{
		Use:   "slots PROGRAM_ID",
		Short: "List the slots of a program with their conditions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				p, err := a.svc.ListSlots(ctx, id, page, size)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), p)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tDATES\tSTATUS\tTIER\tFEE\tPERFORMANCES")
				for _, v := range p.Items {
					fee := "-"
					if v.Conditions.FeeCents != nil {
						fee = fmt.Sprintf("%d %s", *v.Conditions.FeeCents, v.Conditions.Currency)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
						v.Slot.ID,
						calendar.FormatRange(v.Slot.Range(), a.engine.Locale),
						v.Slot.Status,
						v.Slot.Tier,
						fee,
						v.Conditions.PerformanceCount,
					)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("page %d, %d slot(s)", p.Page, p.Total)))
				return nil
			})
		},
	}
	c.Flags().IntVar(&page, "page", 1, "page number")
	c.Flags().IntVar(&size, "size", 20, "page size")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newCancelSlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-slot SLOT_ID",
		Short: "Cancel an unbooked slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("slot", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				slot, err := a.svc.CancelSlot(ctx, id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "slot %s cancelled\n", slot.ID)
				return nil
			})
		},
	}
}

func newOverrideCmd() *cobra.Command {
	var (
		fee           int64
		performances  int
		notes         string
		lodging, meal bool
	)
	c := &cobra.Command{
		Use:   "override SLOT_ID [FILE]",
		Short: "Replace the conditions override of a slot",
		Long: "Replace the conditions override of a slot with the JSON in FILE (\"-\" for stdin),\n" +
			"or with an override built from the flags below. Unset flags keep the program values.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("slot", args[0])
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 2 {
				raw, err = readConditions(args[1])
			} else {
				raw, err = overrideFromFlags(cmd, overrideFlags{
					fee:          fee,
					performances: performances,
					notes:        notes,
					lodging:      lodging,
					meals:        meal,
				})
			}
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				return a.svc.UpdateSlotOverride(ctx, id, raw)
			})
		},
	}
	c.Flags().Int64Var(&fee, "fee-cents", 0, "fee in cents")
	c.Flags().IntVar(&performances, "performances", 0, "number of performances")
	c.Flags().StringVar(&notes, "notes", "", "free-form notes")
	c.Flags().BoolVar(&lodging, "lodging", false, "lodging included")
	c.Flags().BoolVar(&meal, "meals", false, "meals included")
	return c
}

type overrideFlags struct {
	fee            int64
	performances   int
	notes          string
	lodging, meals bool
}

// overrideFromFlags encodes only the flags that were set, so the other
// fields keep coming from the program.
func overrideFromFlags(cmd *cobra.Command, f overrideFlags) ([]byte, error) {
	var (
		c   conditions.Conditions
		set bool
	)
	flags := cmd.Flags()
	if flags.Changed("fee-cents") {
		if f.fee < 0 {
			return nil, fmt.Errorf("--fee-cents must not be negative")
		}
		c.Remuneration.FeeCents = conditions.Int64(f.fee)
		set = true
	}
	if flags.Changed("performances") {
		if f.performances < 0 {
			return nil, fmt.Errorf("--performances must not be negative")
		}
		c.Remuneration.PerformanceCount = conditions.Int(f.performances)
		set = true
	}
	if flags.Changed("notes") {
		c.Notes = conditions.String(f.notes)
		set = true
	}
	if flags.Changed("lodging") {
		c.Lodging.Included = conditions.Bool(f.lodging)
		set = true
	}
	if flags.Changed("meals") {
		c.Meals.Included = conditions.Bool(f.meals)
		set = true
	}
	if !set {
		return nil, fmt.Errorf("give a FILE or at least one override flag")
	}
	return c.Marshal()
}

func printPlan(w io.Writer, plan []service.PlannedWeek, loc calendar.Locale) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATES\tTIER\tPERFORMANCES\tFEE\tCONFLICTS")
	for _, week := range plan {
		conflicts := "-"
		if len(week.Conflicts) > 0 {
			conflicts = fmt.Sprint(len(week.Conflicts))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			calendar.FormatRange(week.Seed.Range(), loc),
			week.Seed.Tier,
			week.Seed.PerformanceCount,
			week.Seed.FeeCents,
			conflicts,
		)
	}
	return tw.Flush()
}

func parseDates(from, to string) (time.Time, time.Time, error) {
	start, err := calendar.ParseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := calendar.ParseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
