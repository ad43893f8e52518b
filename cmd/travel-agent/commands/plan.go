package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hamzaessahbaoui/travel-planner/pkg/planner"
	"github.com/hamzaessahbaoui/travel-planner/pkg/tools/itinerary"
	"github.com/hamzaessahbaoui/travel-planner/pkg/travel"
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create a travel plan without the language model",
	Example: `  travel-agent plan --from NYC --to Paris --start 2025-06-15 --end 2025-06-19 --travelers 2
  travel-agent plan --from NYC --to Paris --start 2025-06-15 --end 2025-06-19 --ics > trip.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		from, _ := flags.GetString("from")
		to, _ := flags.GetString("to")
		start, _ := flags.GetString("start")
		end, _ := flags.GetString("end")
		travelers, _ := flags.GetInt("travelers")
		asICS, _ := flags.GetBool("ics")
		verbose, _ := flags.GetBool("verbose")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		var record planner.Recorder
		if verbose {
			record = func(inv travel.Invocation) {
				fmt.Fprintf(cmd.ErrOrStderr(), "-> %s\n", inv.Tool)
			}
		}

		res, err := a.planner.Plan(ctx, planner.Request{
			Origin:      from,
			Destination: to,
			StartDate:   start,
			EndDate:     end,
			Travelers:   travelers,
		}, record)
		if err != nil {
			return err
		}

		if asICS {
			cal, err := itinerary.Calendar(res.Plan.ID, res.Plan.Itinerary)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(out, cal)
			return err
		}
		fmt.Fprintln(out, res.Message)
		fmt.Fprintln(out, res.Summary)
		return nil
	},
}

func init() {
	PlanCmd.Flags().String("from", "", "origin city or airport code")
	PlanCmd.Flags().String("to", "", "destination city or airport code")
	PlanCmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	PlanCmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	PlanCmd.Flags().Int("travelers", planner.DefaultTravelers, "number of travelers")
	PlanCmd.Flags().Bool("ics", false, "print the itinerary as an iCalendar document")
	PlanCmd.Flags().BoolP("verbose", "v", false, "print each tool call to stderr")
	_ = PlanCmd.MarkFlagRequired("from")
	_ = PlanCmd.MarkFlagRequired("to")
	_ = PlanCmd.MarkFlagRequired("start")
	_ = PlanCmd.MarkFlagRequired("end")
}
