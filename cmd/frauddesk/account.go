package main

import (
	"errors"
	"flag"
	"os"

	"github.com/frauddesk/frauddesk-cli/internal/balance"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

type balanceOptions struct {
	Query string
}

func parseBalanceFlags(args []string) (balanceOptions, error) {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts balanceOptions
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output")

	if err := fs.Parse(args); err != nil {
		return balanceOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return balanceOptions{}, err
	}
	return opts, nil
}

func runBalance(cmdCtx *commandContext, args []string) error {
	opts, err := parseBalanceFlags(args)
	if err != nil {
		return err
	}

	app := cmdCtx.App
	refresher := balance.MustNewRefresher(balance.RefresherOptions{
		API:     app.API,
		Logger:  app.Logger,
		Metrics: app.Metrics,
	})
	b, err := refresher.Refresh(cmdCtx.Ctx)
	if err != nil {
		return err
	}
	if opts.Query != "" {
		return printResult(os.Stdout, b, opts.Query)
	}
	return writef(os.Stdout, "%.2f credits\n", b.Balance)
}

type topUpOptions struct {
	Amount float64
	Query  string
}

func parseTopUpFlags(args []string) (topUpOptions, error) {
	fs := flag.NewFlagSet("topup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts topUpOptions
	fs.Float64Var(&opts.Amount, "amount", 0, "Credits to add (required, must be positive)")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output")

	if err := fs.Parse(args); err != nil {
		return topUpOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return topUpOptions{}, err
	}
	if opts.Amount == 0 {
		return topUpOptions{}, errors.New("--amount is required")
	}
	return opts, nil
}

func runTopUp(cmdCtx *commandContext, args []string) error {
	opts, err := parseTopUpFlags(args)
	if err != nil {
		return err
	}

	receipt, err := cmdCtx.App.API.TopUp(cmdCtx.Ctx, &model.TopUpRequest{Amount: opts.Amount})
	if err != nil {
		return err
	}
	if opts.Query != "" {
		return printResult(os.Stdout, receipt, opts.Query)
	}
	return writef(os.Stdout, "balance %.2f -> %.2f (transaction %s)\n",
		receipt.PreviousBalance, receipt.CurrentBalance, receipt.TransactionID)
}

type historyOptions struct {
	Skip  int
	Limit int
	JSON  bool
	Query string
}

func parseHistoryFlags(args []string) (historyOptions, error) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts historyOptions
	fs.IntVar(&opts.Skip, "skip", 0, "Number of predictions to skip")
	fs.IntVar(&opts.Limit, "limit", 20, "Maximum predictions to return")
	fs.BoolVar(&opts.JSON, "json", false, "Emit raw JSON instead of a table")
	fs.StringVar(&opts.Query, "query", "", "JMESPath expression applied to the JSON output (implies --json)")

	if err := fs.Parse(args); err != nil {
		return historyOptions{}, err
	}
	if err := validateQuery(opts.Query); err != nil {
		return historyOptions{}, err
	}
	if opts.Skip < 0 || opts.Limit < 0 {
		return historyOptions{}, errors.New("--skip and --limit must not be negative")
	}
	return opts, nil
}

func runHistory(cmdCtx *commandContext, args []string) error {
	opts, err := parseHistoryFlags(args)
	if err != nil {
		return err
	}

	history, err := cmdCtx.App.API.ListPredictions(cmdCtx.Ctx, opts.Skip, opts.Limit)
	if err != nil {
		return err
	}
	if opts.Query != "" || opts.JSON {
		return printResult(os.Stdout, history, opts.Query)
	}
	return renderHistoryTable(os.Stdout, history.Predictions)
}
