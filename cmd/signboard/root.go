package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/signboard/internal/config"
)

// NewRootCmd creates the root command for signboard.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signboard",
		Short: "Report petition signatures per party from a Google Sheet",
		Long: `signboard loads a public Google Sheets document listing legislators and
whether they signed a petition, then reports signature counts per party
and member listings.

Without arguments the built-in petition sheet is used. More sheets can be
named in a .signboard configuration file (see "signboard init").`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	flags := cmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.StringP("config", "c", "",
		"Configuration file path (default: .signboard in current or home directory)")
	flags.String("sheet-id", "", "Spreadsheet id, overriding the configured source")
	flags.String("gid", "", "Worksheet gid, overriding the configured source")
	flags.String("range", "", "Cell range such as A:H, overriding the configured source")
	flags.DurationP("timeout", "t", config.DefaultTimeout, "HTTP request timeout")
	flags.String("proxy", "", "SOCKS5 proxy address (host:port)")
	flags.String("locale", config.DefaultLocale, "Locale used to order names")
	flags.String("base-url", "", "Sheets endpoint base URL")
	_ = flags.MarkHidden("base-url")

	// Add subcommands
	cmd.AddCommand(NewSummaryCmd())
	cmd.AddCommand(NewMembersCmd())
	cmd.AddCommand(NewMemberCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
