package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"liyu1981.xyz/prioribin-service/pkg/models"
)

func newRegisterCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "register <bin_id>",
		Short: "Register a bin at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bin, created, err := newAPIClient(serverURL).register(args[0], lat, lon)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("Registered %s at (%.6f, %.6f)\n", bin.BinID, bin.Lat, bin.Lon)
			} else {
				fmt.Printf("%s already registered at (%.6f, %.6f), nothing changed\n", bin.BinID, bin.Lat, bin.Lon)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	return cmd
}

func newBinsCmd() *cobra.Command {
	var priorityOnly bool

	cmd := &cobra.Command{
		Use:   "bins",
		Short: "List bins, fullest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			bins, err := newAPIClient(serverURL).listBins(priorityOnly)
			if err != nil {
				return err
			}
			printBinsTable(bins, time.Now())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&priorityOnly, "priority", "p", false, "Only bins in Warning or Critical")
	return cmd
}

func printBinsTable(bins []models.Bin, now time.Time) {
	if len(bins) == 0 {
		fmt.Println("No bins found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "BIN ID\tFILL\tSTATUS\tLOCATION\tLAST UPDATED")
	for _, b := range bins {
		updated := "never"
		if !b.LastUpdated.IsZero() {
			updated = humanize.RelTime(b.LastUpdated, now, "ago", "from now")
		}
		fmt.Fprintf(w, "%s\t%d%%\t%s\t%.5f, %.5f\t%s\n", b.BinID, b.FillLevel, b.Status, b.Lat, b.Lon, updated)
	}
	w.Flush()
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <bin_id>",
		Short: "Show a bin's history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := newAPIClient(serverURL).history(args[0])
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Printf("No history for %s.\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTYPE\tCOLLECTOR\tDESCRIPTION")
			for _, e := range events {
				collector := "-"
				if e.CollectorName != nil {
					collector = *e.CollectorName
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", humanize.Time(e.Timestamp), e.EventType, collector, e.Description)
			}
			w.Flush()
			return nil
		},
	}
}

// waitHealthy polls /healthz until the server answers or timeout passes.
func waitHealthy(client *apiClient, timeout time.Duration) error {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " Waiting for " + client.base + " ..."
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if client.healthy() {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("server at %s is not healthy after %s", client.base, timeout)
}
