package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/signboard/internal/report"
)

// ErrMemberNotFound is returned when no member is at the requested position.
var ErrMemberNotFound = errors.New("member not found")

// ErrInvalidPosition is returned when the position argument is not a
// positive integer.
var ErrInvalidPosition = errors.New("invalid position: must be a positive integer")

// NewMemberCmd creates the member command.
func NewMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member <position> [source]",
		Short: "Show the details of one member",
		Long: `Member shows a single member's details: party, state, signature,
social links, email and photo URL. The position is the "#" column of
"signboard members", starting at 1.

Rows with missing cells are shown with blank fields.

Examples:
  # Details of the third member of the built-in sheet
  signboard member 3

  # As JSON, from a configured source
  signboard member 12 senate --json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runMemberCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// parsePosition parses a 1-based member position.
func parsePosition(s string) (int, error) {
	pos, err := strconv.Atoi(s)
	if err != nil || pos < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, s)
	}
	return pos, nil
}

// runMemberCmd executes the member command.
func runMemberCmd(cmd *cobra.Command, args []string) error {
	pos, err := parsePosition(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, args[1:])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	snap, err := a.loadOne(ctx)
	if err != nil {
		return err
	}

	detail, ok := report.NewMemberDetail(snap, pos)
	if !ok {
		return fmt.Errorf("%w: position %d (source %q has %d members)",
			ErrMemberNotFound, pos, snap.Source, len(snap.Members))
	}

	return a.writeReport(cmd, func(w report.Writer) (int, error) {
		return w.WriteMember(detail)
	})
}
