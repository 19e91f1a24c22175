package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mhalder/jobsift/internal/match"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts [company]",
	Short: "List known contacts, or test-match a company name",
	Long: "Without arguments, prints every contact in the record store. " +
		"With a company name, runs the fuzzy matcher against it and reports the best hit.",
	Args: cobra.MaximumNArgs(1),
	RunE: runContacts,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
}

func runContacts(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open record store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	contacts, err := store.ReadContacts(ctx)
	if err != nil {
		logger.Error("failed to read contacts", "error", err)
		os.Exit(1)
	}

	if len(args) == 1 {
		m := match.Best(args[0], contacts, cfg.Contacts.Threshold)
		if m == nil {
			fmt.Printf("no contact matched %q (threshold %d)\n", args[0], cfg.Contacts.Threshold)
			return nil
		}
		fmt.Printf("%s — %s at %s (score %d)\n", m.Name, m.Position, m.Company, m.MatchScore)
		return nil
	}

	if len(contacts) == 0 {
		fmt.Println("no contacts in the record store")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOSITION\tCOMPANY\tURL")
	for _, c := range contacts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.Name, c.Position, c.Company, c.URL)
	}
	return w.Flush()
}
