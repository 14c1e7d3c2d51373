package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/roadmap"
)

func newApplyCmd() *cobra.Command {
	var option string
	c := &cobra.Command{
		Use:   "apply SLOT_ID ARTIST_ID",
		Short: "Apply an artist to an open slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseID("slot", args[0])
			if err != nil {
				return err
			}
			artistID, err := parseID("artist", args[1])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				application, err := a.svc.Apply(ctx, slotID, artistID, option)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "application:", application.ID)
				return nil
			})
		},
	}
	c.Flags().StringVar(&option, "option", "", "chosen remuneration option")
	return c
}

func newWithdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw APPLICATION_ID",
		Short: "Withdraw a pending application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("application", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				if _, err := a.svc.WithdrawApplication(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "application %s withdrawn\n", id)
				return nil
			})
		},
	}
}

func newConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm SLOT_ID APPLICATION_ID",
		Short: "Book a slot for the artist of an application",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseID("slot", args[0])
			if err != nil {
				return err
			}
			appID, err := parseID("application", args[1])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				res, err := a.svc.Confirm(ctx, slotID, appID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "booking:", res.Booking.ID)
				if len(res.Rejected) > 0 {
					fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d other application(s) rejected", len(res.Rejected))))
				}
				return nil
			})
		},
	}
}

func newCancelBookingCmd() *cobra.Command {
	var reason string
	c := &cobra.Command{
		Use:   "cancel-booking BOOKING_ID",
		Short: "Cancel a booking and reopen its slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("booking", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				res, err := a.svc.CancelBooking(ctx, id, reason)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "booking %s cancelled, slot %s open again\n", id, res.Slot.ID)
				return nil
			})
		},
	}
	c.Flags().StringVar(&reason, "reason", "", "reason kept on the booking")
	return c
}

func newRoadmapCmd() *cobra.Command {
	var slot, booking string
	var asJSON, plain bool
	c := &cobra.Command{
		Use:   "roadmap",
		Short: "Show the roadmap of a booking, or a preview for a slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (slot == "") == (booking == "") {
				return fmt.Errorf("exactly one of --slot or --booking is required")
			}
			var id uuid.UUID
			var err error
			if slot != "" {
				id, err = parseID("slot", slot)
			} else {
				id, err = parseID("booking", booking)
			}
			if err != nil {
				return err
			}

			return run(func(ctx context.Context, a *app) error {
				var rm roadmap.Roadmap
				var err error
				if slot != "" {
					rm, err = a.svc.PreviewRoadmap(ctx, id)
				} else {
					rm, err = a.svc.Roadmap(ctx, id)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				switch {
				case asJSON:
					return printJSON(out, rm)
				case plain:
					return rm.WriteText(out)
				default:
					printRoadmap(out, rm)
					return nil
				}
			})
		},
	}
	c.Flags().StringVar(&slot, "slot", "", "slot id (preview)")
	c.Flags().StringVar(&booking, "booking", "", "booking id")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	c.Flags().BoolVar(&plain, "text", false, "print plain text for export")
	return c
}

func newApplicationsCmd() *cobra.Command {
	var page, size int
	var asJSON bool
	c := &cobra.Command{
		Use:   "applications SLOT_ID",
		Short: "List the applications of a slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("slot", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				p, err := a.svc.ListApplications(ctx, id, page, size)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), p)
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tARTIST\tSTATUS\tOPTION\tAPPLIED")
				for _, item := range p.Items {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						item.ID,
						item.ArtistID,
						item.Status,
						item.Option,
						item.CreatedAt.Format(time.RFC3339),
					)
				}
				if err := tw.Flush(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(fmt.Sprintf("page %d, %d application(s)", p.Page, p.Total)))
				return nil
			})
		},
	}
	c.Flags().IntVar(&page, "page", 1, "page number")
	c.Flags().IntVar(&size, "size", 20, "page size")
	c.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return c
}

func newHistoryCmd() *cobra.Command {
	var page, size int
	c := &cobra.Command{
		Use:   "history PROGRAM_ID",
		Short: "List the events of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				p, err := a.svc.History(ctx, id, page, size)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	}
	c.Flags().IntVar(&page, "page", 1, "page number")
	c.Flags().IntVar(&size, "size", 50, "page size")
	return c
}
