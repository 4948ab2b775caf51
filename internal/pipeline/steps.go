package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/nao1215/signboard/internal/gsheet"
	"github.com/nao1215/signboard/internal/model"
	"github.com/nao1215/signboard/internal/sheet"
	"github.com/nao1215/signboard/internal/tally"
)

// Fetcher retrieves the raw gviz response of a source.
// *gsheet.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, src gsheet.Source) ([]byte, error)
	URL(src gsheet.Source) string
}

// FetchStep downloads the response body into Snapshot.Raw.
type FetchStep struct {
	fetcher Fetcher
	source  gsheet.Source
	logger  *slog.Logger
}

// NewFetchStep creates a fetch step for src.
func NewFetchStep(fetcher Fetcher, src gsheet.Source, logger *slog.Logger) *FetchStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchStep{fetcher: fetcher, source: src, logger: logger}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, snap *model.Snapshot) error {
	snap.URL = s.fetcher.URL(s.source)

	body, err := s.fetcher.Fetch(ctx, s.source)
	if err != nil {
		snap.TimedOut = gsheet.IsTimeout(err)
		snap.SetError(model.StatusTransportError, err)
		return err
	}

	s.logger.Debug("fetched sheet", "url", snap.URL, "bytes", len(body))
	snap.Raw = body
	return nil
}

// ParseStep decodes Snapshot.Raw into Snapshot.Table.
type ParseStep struct{}

// NewParseStep creates a parse step.
func NewParseStep() *ParseStep {
	return &ParseStep{}
}

// Name returns the step name.
func (s *ParseStep) Name() string {
	return "parse"
}

// Do executes the parse step. NoData is not an error.
func (s *ParseStep) Do(_ context.Context, snap *model.Snapshot) error {
	result := sheet.Parse(snap.Raw)
	snap.Table = result.Table
	snap.Columns = result.Table.ColumnLabels()

	if result.Outcome == sheet.ParseError {
		snap.SetError(model.StatusParseError, result.Err)
		return result.Err
	}
	snap.Status = result.Outcome.Status()
	return nil
}

// MemberStep builds member records from the table.
type MemberStep struct {
	logger *slog.Logger
}

// NewMemberStep creates a member step.
func NewMemberStep(logger *slog.Logger) *MemberStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberStep{logger: logger}
}

// Name returns the step name.
func (s *MemberStep) Name() string {
	return "members"
}

// Do executes the member step. Shape mismatches are counted and logged.
func (s *MemberStep) Do(_ context.Context, snap *model.Snapshot) error {
	snap.Members = model.NewMembers(snap.Table)

	mismatched := snap.Table.ShapeMismatches()
	snap.ShapeMismatches = len(mismatched)
	if len(mismatched) > 0 {
		s.logger.Warn("rows do not match column count",
			"source", snap.Source,
			"rows", len(mismatched),
			"columns", snap.Table.ColumnCount(),
		)
	}

	incomplete := 0
	for _, m := range snap.Members {
		if !m.Complete {
			incomplete++
		}
	}
	if incomplete > 0 {
		s.logger.Warn("rows shorter than a member record",
			"source", snap.Source,
			"rows", incomplete,
			"expected_cells", model.MemberColumnCount,
		)
	}
	return nil
}

// AggregateStep computes ranked per-party counts and totals.
type AggregateStep struct {
	locale language.Tag
}

// NewAggregateStep creates an aggregate step ranking ties under locale.
func NewAggregateStep(locale language.Tag) *AggregateStep {
	return &AggregateStep{locale: locale}
}

// Name returns the step name.
func (s *AggregateStep) Name() string {
	return "aggregate"
}

// Do executes the aggregate step.
func (s *AggregateStep) Do(_ context.Context, snap *model.Snapshot) error {
	t := tally.Aggregate(snap.Table)
	snap.Parties = t.Ranked(s.locale)
	snap.Totals = t.Totals()
	return nil
}

// StandardFactory returns a pipeline factory that fetches, parses, builds
// members and aggregates each source.
func StandardFactory(fetcher Fetcher, locale language.Tag, logger *slog.Logger) func(src gsheet.Source) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return func(src gsheet.Source) *Pipeline {
		p := New(WithLogger(logger))
		p.AddSteps(
			NewFetchStep(fetcher, src, logger),
			NewParseStep(),
			NewMemberStep(logger),
			NewAggregateStep(locale),
		)
		return p
	}
}
