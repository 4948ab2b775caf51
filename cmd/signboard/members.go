package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/signboard/internal/model"
	"github.com/nao1215/signboard/internal/report"
)

// NewMembersCmd creates the members command.
func NewMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members [source]",
		Short: "List members and whether they signed",
		Long: `Members loads a sheet source and lists its members with their party,
state and signature. Each member shows its row position (used by
"signboard member") and its identity marker "name_party_state".

Filtering, sorting and paging happen after the sheet is loaded.

Examples:
  # Members of one party who have not signed
  signboard members --party PT --signed no

  # Sorted by name, second page of 20
  signboard members --sort name --limit 20 --offset 20

  # Export the listing and the party table to Excel
  signboard members --xlsx members.xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: runMembersCmd,
	}

	cmd.Flags().String("party", "", "Only list members of this party")
	cmd.Flags().String("state", "", "Only list members of this state")
	cmd.Flags().String("signed", "all", "Filter by signature: yes, no or all")
	cmd.Flags().String("sort", string(report.SortPosition),
		"Sort by name, party, state, signed or position")
	cmd.Flags().Bool("desc", false, "Reverse the sort order")
	cmd.Flags().Int("limit", 0, "Maximum number of members to list (0 lists all)")
	cmd.Flags().Int("offset", 0, "Number of matching members to skip")
	addReportFlags(cmd)

	return cmd
}

// memberQueryFromFlags builds a MemberQuery from the members command flags.
func memberQueryFromFlags(cmd *cobra.Command) (report.MemberQuery, error) {
	var q report.MemberQuery
	flags := cmd.Flags()

	var err error
	if q.Party, err = flags.GetString("party"); err != nil {
		return q, err
	}
	if q.State, err = flags.GetString("state"); err != nil {
		return q, err
	}

	signed, err := flags.GetString("signed")
	if err != nil {
		return q, err
	}
	if q.Signed, err = report.ParseSignedFilter(signed); err != nil {
		return q, err
	}

	sortKey, err := flags.GetString("sort")
	if err != nil {
		return q, err
	}
	if q.SortBy, err = report.ParseSortKey(sortKey); err != nil {
		return q, err
	}

	if q.Desc, err = flags.GetBool("desc"); err != nil {
		return q, err
	}
	if q.Limit, err = flags.GetInt("limit"); err != nil {
		return q, err
	}
	if q.Offset, err = flags.GetInt("offset"); err != nil {
		return q, err
	}

	return q, q.Validate()
}

// runMembersCmd executes the members command.
func runMembersCmd(cmd *cobra.Command, args []string) error {
	query, err := memberQueryFromFlags(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, args)
	if err != nil {
		return err
	}
	query.Locale = a.cfg.LocaleTag()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	snap, err := a.loadOne(ctx)
	if err != nil {
		return err
	}

	view, err := report.Select(snap, query)
	if err != nil {
		return err
	}

	return a.writeReport(cmd, func(w report.Writer) (int, error) {
		return w.WriteMembers(view)
	})
}

// loadOne loads the first resolved source. Transport and parse failures
// are returned as errors; an empty sheet is not a failure.
func (a *app) loadOne(ctx context.Context) (*model.Snapshot, error) {
	src := a.cfg.Sources[0]

	snap, err := a.loader.Load(ctx, src)
	if snap == nil {
		return nil, fmt.Errorf("loading %q interrupted: %w", src.Name, err)
	}
	if snap.Status.IsFailure() {
		return nil, loadFailures([]*model.Snapshot{snap})
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrLoadFailed, src.Name, err)
	}

	if snap.Status == model.StatusNoData {
		a.logger.Warn("sheet returned no data", "source", src.Name)
	}
	return snap, nil
}
