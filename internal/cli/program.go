package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/model"
	"github.com/bookingswingevents-commits/SwingBooking-sub001/internal/service"
)

func newProgramCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "program",
		Short: "Program management",
	}
	cmd.AddCommand(newProgramCreateCmd())
	cmd.AddCommand(newProgramShowCmd())
	cmd.AddCommand(newProgramStatusCmd("publish", "Open a program to applications", model.ProgramStatusPublished))
	cmd.AddCommand(newProgramStatusCmd("unpublish", "Put a program back to draft", model.ProgramStatusDraft))
	cmd.AddCommand(newProgramStatusCmd("cancel", "Cancel a program", model.ProgramStatusCancelled))
	cmd.AddCommand(newProgramConditionsCmd())
	return cmd
}

func newProgramShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show PROGRAM_ID",
		Short: "Print a program with its baseline conditions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				p, err := a.svc.GetProgram(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), p)
			})
		},
	}
}

func newProgramCreateCmd() *cobra.Command {
	var title, typ, client, conditionsFile string
	c := &cobra.Command{
		Use:   "create",
		Short: "Create a draft program",
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID := uuid.Nil
			if client != "" {
				id, err := parseID("client", client)
				if err != nil {
					return err
				}
				clientID = id
			}
			raw, err := readConditions(conditionsFile)
			if err != nil {
				return err
			}

			return run(func(ctx context.Context, a *app) error {
				p, err := a.svc.CreateProgram(ctx, service.CreateProgramInput{
					ClientID:   clientID,
					Title:      title,
					Type:       model.ProgramType(strings.ToUpper(typ)),
					Conditions: raw,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "created program:", p.ID)
				return nil
			})
		},
	}
	c.Flags().StringVar(&title, "title", "", "program title")
	c.Flags().StringVar(&typ, "type", string(model.ProgramTypeMultiDates), "MULTI_DATES or WEEKLY_RESIDENCY")
	c.Flags().StringVar(&client, "client", "", "client id")
	c.Flags().StringVar(&conditionsFile, "conditions", "", "JSON file with the baseline conditions")
	_ = c.MarkFlagRequired("title")
	return c
}

func newProgramStatusCmd(use, short string, status model.ProgramStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " PROGRAM_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				if err := a.svc.SetProgramStatus(ctx, id, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "program %s is now %s\n", id, status)
				return nil
			})
		},
	}
}

func newProgramConditionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions PROGRAM_ID FILE",
		Short: "Replace the baseline conditions of a program",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("program", args[0])
			if err != nil {
				return err
			}
			raw, err := readConditions(args[1])
			if err != nil {
				return err
			}
			return run(func(ctx context.Context, a *app) error {
				return a.svc.UpdateConditions(ctx, id, raw)
			})
		},
	}
}

// readConditions reads a JSON file; "-" is stdin and "" means none.
func readConditions(path string) ([]byte, error) {
	switch path {
	case "":
		return nil, nil
	case "-":
		return io.ReadAll(os.Stdin)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read conditions: %w", err)
		}
		return raw, nil
	}
}
