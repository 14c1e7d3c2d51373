package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/service"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

var debug bool

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "swingbooking",
		Short:         "Program scheduling, applications and roadmaps for live music bookings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "verbose logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newProgramCmd())
	root.AddCommand(newWeeksCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newAddDateCmd())
	root.AddCommand(newSlotsCmd())
	root.AddCommand(newCancelSlotCmd())
	root.AddCommand(newOverrideCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newWithdrawCmd())
	root.AddCommand(newApplicationsCmd())
	root.AddCommand(newConfirmCmd())
	root.AddCommand(newCancelBookingCmd())
	root.AddCommand(newRoadmapCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(service.UserMessage(err)))
		fmt.Fprintln(os.Stderr, mutedStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// run bootstraps the engine for one command.
func run(fn func(ctx context.Context, a *app) error) error {
	a, err := bootstrap(debug)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, a)
}

func parseID(name, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return id, nil
}
