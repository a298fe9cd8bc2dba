package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
)

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}

// validateQuery rejects a malformed --query expression at flag-parse time,
// before any request is made.
func validateQuery(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	if _, err := jmespath.Compile(expr); err != nil {
		return fmt.Errorf("invalid --query expression: %w", err)
	}
	return nil
}

// projectJSON applies a JMESPath expression to v. The value round-trips
// through encoding/json first so expressions address wire field names
// (job_id, fraud_probability) rather than Go identifiers.
func projectJSON(v any, expr string) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result for query: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode result for query: %w", err)
	}
	out, err := jmespath.Search(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("evaluate --query expression: %w", err)
	}
	return out, nil
}

// printResult writes v to w as indented JSON, projected through the query
// expression when one is given.
func printResult(w io.Writer, v any, query string) error {
	if strings.TrimSpace(query) != "" {
		projected, err := projectJSON(v, query)
		if err != nil {
			return err
		}
		v = projected
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// renderError prints the one-line failure message commands exit with. An
// insufficient-balance rejection gets a follow-up hint; the check is by HTTP
// status, never by matching the server's message text.
func renderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	_ = writef(w, "frauddesk: %v\n", err)
	if apperrors.IsInsufficientBalance(err) {
		_ = writeln(w, "Not enough credits for this analysis. Run `frauddesk topup --amount <credits>` to add more.")
	}
}

func renderHistoryTable(w io.Writer, preds []model.Prediction) error {
	if len(preds) == 0 {
		return writeln(w, "(no predictions found)")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "JOB ID\tSTATUS\tCOST\tVERDICT\tCREATED (UTC)\tCOMPLETED (UTC)"); err != nil {
		return fmt.Errorf("write history header row: %w", err)
	}
	for i := range preds {
		p := &preds[i]
		if err := writef(
			tw,
			"%s\t%s\t%.2f\t%s\t%s\t%s\n",
			p.JobID,
			p.Status,
			p.Cost,
			verdict(p),
			formatTimestamp(p.CreatedAt),
			formatTimestamp(p.CompletedAt),
		); err != nil {
			return fmt.Errorf("write history row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush history table: %w", err)
	}
	return nil
}

// verdict condenses a prediction's result into one table cell.
func verdict(p *model.Prediction) string {
	switch {
	case p.Status == model.StatusFailed:
		if p.Result != nil && p.Result.Error != "" {
			return "error: " + p.Result.Error
		}
		return "error"
	case p.Result == nil:
		return "-"
	case p.Result.Prediction != "":
		return fmt.Sprintf("%s (p=%.2f)", p.Result.Prediction, p.Result.FraudProbability)
	case p.Result.IsFraud:
		return fmt.Sprintf("fraud (p=%.2f)", p.Result.FraudProbability)
	default:
		return fmt.Sprintf("legitimate (p=%.2f)", p.Result.FraudProbability)
	}
}

func formatTimestamp(ts *model.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format("2006-01-02 15:04:05")
}
