package sheet

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/nao1215/signboard/internal/model"
)

// Outcome classifies a parse result.
type Outcome int

const (
	// NoData means there was nothing to parse.
	NoData Outcome = iota

	// Success means a table was decoded.
	Success

	// ParseError means the payload could not be decoded.
	ParseError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NoData:
		return "no_data"
	case ParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Status maps the outcome to a snapshot load status.
func (o Outcome) Status() model.LoadStatus {
	switch o {
	case Success:
		return model.StatusOK
	case ParseError:
		return model.StatusParseError
	default:
		return model.StatusNoData
	}
}

// Result is the outcome of Parse.
type Result struct {
	// Outcome tells the caller how to read the result.
	Outcome Outcome

	// Table is the parsed table. It is empty, never nil, unless Outcome is Success.
	Table *model.Table

	// Err describes a ParseError. Nil otherwise.
	Err error
}

// wrapped matches from after the first "(" to before the last ");",
// across line breaks.
var wrapped = regexp.MustCompile(`(?s)\((.*)\);`)

// queryError is one entry of the envelope's "errors" list.
type queryError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

// envelope is the object passed to setResponse.
type envelope struct {
	Version string       `json:"version"`
	ReqID   string       `json:"reqId"`
	Status  string       `json:"status"`
	Errors  []queryError `json:"errors"`
	Table   *model.Table `json:"table"`
}

// Parse extracts and decodes the table embedded in a gviz response.
func Parse(payload []byte) Result {
	if len(payload) == 0 {
		return noData()
	}

	match := wrapped.FindSubmatch(payload)
	if match == nil {
		return noData()
	}

	var env envelope
	if err := json.Unmarshal(match[1], &env); err != nil {
		return Result{
			Outcome: ParseError,
			Table:   model.NewEmptyTable(),
			Err:     fmt.Errorf("%w: %w", ErrMalformedJSON, err),
		}
	}

	if strings.EqualFold(env.Status, "error") {
		return Result{
			Outcome: ParseError,
			Table:   model.NewEmptyTable(),
			Err:     fmt.Errorf("%w: %s", ErrQueryFailed, describe(env.Errors)),
		}
	}

	if env.Table == nil {
		return noData()
	}

	normalize(env.Table)
	return Result{Outcome: Success, Table: env.Table}
}

// ParseString is Parse for string payloads.
func ParseString(payload string) Result {
	return Parse([]byte(payload))
}

func noData() Result {
	return Result{Outcome: NoData, Table: model.NewEmptyTable()}
}

// normalize replaces nil slices so callers can range without checks.
func normalize(t *model.Table) {
	if t.Columns == nil {
		t.Columns = []model.Column{}
	}
	if t.Rows == nil {
		t.Rows = []model.Row{}
	}
}

func describe(errs []queryError) string {
	if len(errs) == 0 {
		return "no details"
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := e.DetailedMessage
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = e.Reason
		}
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, "; ")
}
