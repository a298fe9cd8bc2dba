package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/frauddesk/frauddesk-cli/internal/balance"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	"github.com/frauddesk/frauddesk-cli/internal/service"
)

// lifecycle bundles the submit and watch services wired against the shared
// API client, with the balance refresher hooked up to reconciliation so a
// settled job refreshes the balance view.
type lifecycle struct {
	submitter *service.Submitter
	poller    *service.Poller
	refresher *balance.Refresher
}

func newLifecycle(cmdCtx *commandContext) *lifecycle {
	app := cmdCtx.App
	refresher := balance.MustNewRefresher(balance.RefresherOptions{
		API:     app.API,
		Logger:  app.Logger,
		Metrics: app.Metrics,
	})

	hooks := service.Hooks{
		OnSubmitted: func(p *model.Prediction) {
			_ = writef(os.Stderr, "submitted %s (cost %.2f credits)\n", p.JobID, p.Cost)
		},
		OnStatus: func(p *model.Prediction) {
			_ = writef(os.Stderr, "%s: pending\n", p.JobID)
		},
		OnBalanceStale: func() {
			if _, err := refresher.Refresh(cmdCtx.Ctx); err != nil {
				app.Logger.WarnContext(cmdCtx.Ctx, "balance refresh failed", "error", err)
			}
		},
	}

	return &lifecycle{
		submitter: service.MustNewSubmitter(service.SubmitterOptions{
			API:     app.API,
			Logger:  app.Logger,
			Metrics: app.Metrics,
			Hooks:   hooks,
		}),
		poller: service.MustNewPoller(service.PollerOptions{
			API:     app.API,
			Logger:  app.Logger,
			Metrics: app.Metrics,
			Hooks:   hooks,
			Config: service.PollConfig{
				PendingBaseDelay: app.Config.Poll.PendingBaseDelay,
				PendingMaxDelay:  app.Config.Poll.PendingMaxDelay,
				ErrorRetryDelay:  app.Config.Poll.ErrorRetryDelay,
				MaxErrorRetries:  app.Config.Poll.MaxErrorRetries,
			},
		}),
		refresher: refresher,
	}
}

// reportBalance writes the post-watch balance line once reconciliation has
// refreshed it.
func (l *lifecycle) reportBalance(w io.Writer) {
	if b, _, ok := l.refresher.Last(); ok {
		_ = writef(w, "balance: %.2f credits\n", b.Balance)
	}
}

type submitOptions struct {
	File   string
	ID     string
	Amount float64
	Origin string
	Dest   string
	Attrs  map[string]any
	Wait   bool
	Query  string
}

func parseSubmitFlags(args []string) (submitOptions, error) {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := submitOptions{Attrs: map[string]any{}}
	fs.StringVar(&opts.File, "file", "", "Read the transaction JSON object from a file (\"-\" for stdin)")
	fs.StringVar(&opts.ID, "id", "", "Transaction id (generated when omitted)")
	fs.Float64Var(&opts.Amount, "amount", 0, "Transaction amount")
	fs.StringVar(&opts.Origin, "origin", "", "Origin account")
	fs.StringVar(&opts.Dest, "dest", "", "Destination account")
	fs.Func("attr", "Extra attribute as key=value (repeatable; value parsed as JSON when possible)", func(s string) error {
		key, val, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return fmt.Errorf("attribute %q must be key=value", s)
		}
		opts.Attrs[key] = parseAttrValue(val)
		return nil
	})
	fs.BoolVar(&opts.Wait, "wait", false, "Watch the job until it settles")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output")

	if err := fs.Parse(args); err != nil {
		return submitOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return submitOptions{}, err
	}
	return opts, nil
}

// parseAttrValue decodes an --attr value as a JSON literal so numbers and
// booleans keep their type on the wire; anything that does not parse stays a
// string.
func parseAttrValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// buildTransaction assembles the submit payload from the file and the flag
// overrides. Flags win over file fields, and a missing id gets a generated
// one so quick command-line submissions need not invent identifiers.
func buildTransaction(opts *submitOptions) (model.Transaction, error) {
	tx := model.Transaction{}
	if opts.File != "" {
		raw, err := readTransactionFile(opts.File)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &tx); err != nil {
			return nil, fmt.Errorf("parse transaction file: %w", err)
		}
	}
	if opts.ID != "" {
		tx["id"] = opts.ID
	}
	if opts.Amount != 0 {
		tx["amount"] = opts.Amount
	}
	if opts.Origin != "" {
		tx["origin_account"] = opts.Origin
	}
	if opts.Dest != "" {
		tx["dest_account"] = opts.Dest
	}
	for k, v := range opts.Attrs {
		tx[k] = v
	}
	if _, ok := tx["id"]; !ok {
		tx["id"] = "tx-" + uuid.NewString()
	}
	return tx, nil
}

func readTransactionFile(path string) ([]byte, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read transaction from stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transaction file: %w", err)
	}
	return raw, nil
}

func runSubmit(cmdCtx *commandContext, args []string) error {
	opts, err := parseSubmitFlags(args)
	if err != nil {
		return err
	}
	tx, err := buildTransaction(&opts)
	if err != nil {
		return err
	}

	lc := newLifecycle(cmdCtx)
	pred, err := lc.submitter.Submit(cmdCtx.Ctx, tx)
	if err != nil {
		return err
	}
	if !opts.Wait {
		return printResult(os.Stdout, pred, opts.Query)
	}

	final, watchErr := lc.poller.Watch(cmdCtx.Ctx, pred.JobID)
	lc.poller.Wait()
	if watchErr != nil {
		return watchErr
	}
	if err := printResult(os.Stdout, final, opts.Query); err != nil {
		return err
	}
	lc.reportBalance(os.Stderr)
	return nil
}

type statusOptions struct {
	JobID string
	Query string
}

func parseStatusFlags(args []string) (statusOptions, error) {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts statusOptions
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output")

	if err := fs.Parse(args); err != nil {
		return statusOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return statusOptions{}, err
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return statusOptions{}, errors.New("usage: frauddesk status [flags] <job-id>")
	}
	opts.JobID = rest[0]
	return opts, nil
}

// runStatus is the one-shot read: a single query, no schedule, no retries.
func runStatus(cmdCtx *commandContext, args []string) error {
	opts, err := parseStatusFlags(args)
	if err != nil {
		return err
	}

	pred, err := cmdCtx.App.API.GetPrediction(cmdCtx.Ctx, opts.JobID)
	if err != nil {
		return err
	}
	return printResult(os.Stdout, pred, opts.Query)
}

type watchOptions struct {
	JobIDs []string
	Query  string
}

func parseWatchFlags(args []string) (watchOptions, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts watchOptions
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to each job's JSON output")

	if err := fs.Parse(args); err != nil {
		return watchOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return watchOptions{}, err
	}
	opts.JobIDs = fs.Args()
	if len(opts.JobIDs) == 0 {
		return watchOptions{}, errors.New("usage: frauddesk watch [flags] <job-id> [job-id ...]")
	}
	return opts, nil
}

func runWatch(cmdCtx *commandContext, args []string) error {
	opts, err := parseWatchFlags(args)
	if err != nil {
		return err
	}

	lc := newLifecycle(cmdCtx)
	if len(opts.JobIDs) == 1 {
		final, watchErr := lc.poller.Watch(cmdCtx.Ctx, opts.JobIDs[0])
		lc.poller.Wait()
		if watchErr != nil {
			return watchErr
		}
		if err := printResult(os.Stdout, final, opts.Query); err != nil {
			return err
		}
		lc.reportBalance(os.Stderr)
		return nil
	}

	// Watches are independent: one job failing must not cut short the
	// others, so the group context is the command's own and each failure is
	// reported as it happens.
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed int
	)
	for _, jobID := range opts.JobIDs {
		g.Go(func() error {
			final, watchErr := lc.poller.Watch(cmdCtx.Ctx, jobID)

			mu.Lock()
			defer mu.Unlock()
			if watchErr != nil {
				failed++
				renderError(os.Stderr, fmt.Errorf("watch %s: %w", jobID, watchErr))
				return watchErr
			}
			return printResult(os.Stdout, final, opts.Query)
		})
	}
	groupErr := g.Wait()
	lc.poller.Wait()
	lc.reportBalance(os.Stderr)
	if failed > 0 {
		return fmt.Errorf("%d of %d watches failed", failed, len(opts.JobIDs))
	}
	return groupErr
}
