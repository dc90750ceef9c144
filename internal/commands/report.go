package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/aging"
	"github.com/cleared-dev/tally/internal/balancefeed"
	"github.com/cleared-dev/tally/internal/classify"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/logging"
	"github.com/cleared-dev/tally/internal/metrics"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate the ledger into reports",
	}
	reportCmd.AddCommand(newReportMetricsCommand())
	reportCmd.AddCommand(newReportCashflowCommand())
	reportCmd.AddCommand(newReportTrialBalanceCommand())
	reportCmd.AddCommand(newReportAgingCommand())
	return reportCmd
}

// reportFlags are shared by all report subcommands.
type reportFlags struct {
	repoDir string
	asOf    string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "reference date (YYYY-MM-DD, default today)")
}

// run loads the workspace and executes one aggregation.
func (f *reportFlags) run(ctx context.Context) (metrics.Result, *config.Config, error) {
	absDir, err := filepath.Abs(f.repoDir)
	if err != nil {
		return metrics.Result{}, nil, fmt.Errorf("resolving path: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if f.asOf != "" {
		today, err = time.Parse("2006-01-02", f.asOf)
		if err != nil {
			return metrics.Result{}, nil, fmt.Errorf("parsing --as-of date %q: %w", f.asOf, err)
		}
	}

	cfg, err := config.Load(filepath.Join(absDir, "tally.yaml"))
	if err != nil {
		return metrics.Result{}, nil, err
	}

	accts, err := accounts.Load(absDir)
	if err != nil {
		return metrics.Result{}, nil, err
	}

	entries, err := journal.NewService(absDir).ReadAll()
	if err != nil {
		return metrics.Result{}, nil, err
	}

	items, err := aging.Load(absDir)
	if err != nil {
		return metrics.Result{}, nil, err
	}

	feed, err := balancefeed.Load(filepath.Join(absDir, "balances", "daily-balances.csv"))
	if err != nil {
		return metrics.Result{}, nil, err
	}

	agg := metrics.NewAggregator(cfg.Engine, classify.Default(), logging.New())
	res := agg.Run(ctx, metrics.Input{
		Accounts:  accts.All(),
		Entries:   entries,
		OpenItems: items,
		Balances:  feed,
		Today:     today,
	})
	return res, cfg, nil
}

func newReportMetricsCommand() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "KPI totals, ratios, and month-over-month growth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, cfg, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}

			snap := res.Snapshot
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Metrics for %s\n\n", cfg.Business.Name)
			fmt.Fprintf(w, "Total assets\t%s\n", snap.TotalAssets.StringFixed(2))
			fmt.Fprintf(w, "Total liabilities\t%s\n", snap.TotalLiabilities.StringFixed(2))
			fmt.Fprintf(w, "Total equity\t%s\n", snap.TotalEquity.StringFixed(2))
			fmt.Fprintf(w, "Total revenue\t%s\n", snap.TotalRevenue.StringFixed(2))
			fmt.Fprintf(w, "Total expenses\t%s\n", snap.TotalExpenses.StringFixed(2))
			fmt.Fprintf(w, "Net income\t%s\n", snap.NetIncome.StringFixed(2))
			fmt.Fprintf(w, "Profit margin\t%s%%\n", percent(snap.ProfitMargin))
			fmt.Fprintf(w, "Asset turnover\t%s\n", snap.AssetTurnover.StringFixed(2))
			fmt.Fprintf(w, "Debt to equity\t%s\n", snap.DebtToEquity.StringFixed(2))
			fmt.Fprintf(w, "Current ratio\t%s\n", snap.CurrentRatio.StringFixed(2))
			fmt.Fprintf(w, "Revenue growth (MoM)\t%s%%\n", percent(snap.RevenueGrowth))
			fmt.Fprintf(w, "Expense growth (MoM)\t%s%%\n", percent(snap.ExpenseGrowth))
			fmt.Fprintf(w, "Asset growth (MoM)\t%s%%\n", percent(snap.AssetGrowth))
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}

func newReportCashflowCommand() *cobra.Command {
	var flags reportFlags
	var all bool

	cmd := &cobra.Command{
		Use:   "cashflow",
		Short: "Daily cash timeline with reconstructed balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "date\tcash in\tcash out\tbank in\tbank out\tnet\topen cash\tclose cash\topen bank\tclose bank\tsource")
			for i, bucket := range res.Buckets {
				db := res.Balances[i]
				if !all && len(bucket.Transactions) == 0 && !db.HasRealData {
					continue
				}
				source := "derived"
				if db.HasRealData {
					source = "feed"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					bucket.Date,
					bucket.CashInflows.StringFixed(2), bucket.CashOutflows.StringFixed(2),
					bucket.BankInflows.StringFixed(2), bucket.BankOutflows.StringFixed(2),
					db.NetCashFlow.StringFixed(2),
					db.OpeningCash.StringFixed(2), db.ClosingCash.StringFixed(2),
					db.OpeningBank.StringFixed(2), db.ClosingBank.StringFixed(2),
					source)
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "include days with no activity")
	return cmd
}

func newReportTrialBalanceCommand() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Global debit/credit integrity check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}

			tb := res.TrialBalance
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Total debits\t%s\n", tb.TotalDebits.StringFixed(2))
			fmt.Fprintf(w, "Total credits\t%s\n", tb.TotalCredits.StringFixed(2))
			fmt.Fprintf(w, "Difference\t%s\n", tb.Difference.StringFixed(2))
			if tb.Balanced {
				fmt.Fprintln(w, "Status\tBALANCED")
			} else {
				fmt.Fprintln(w, "Status\tOUT OF BALANCE")
			}
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}

func newReportAgingCommand() *cobra.Command {
	var flags reportFlags

	cmd := &cobra.Command{
		Use:   "aging",
		Short: "Receivable and payable aging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, _, err := flags.run(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printAging(w, "Receivables", res.Receivables.Entities, res.Receivables)
			fmt.Fprintln(w)
			printAging(w, "Payables", res.Payables.Entities, res.Payables)
			return w.Flush()
		},
	}

	flags.register(cmd)
	return cmd
}

func printAging(w *tabwriter.Writer, title string, entities []aging.EntityAging, rep aging.Report) {
	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintln(w, "counterparty\tcurrent\toverdue\ttotal")
	for _, e := range entities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			e.Counterparty, e.Current.StringFixed(2), e.Overdue.StringFixed(2), e.TotalOutstanding().StringFixed(2))
	}
	fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\n", rep.Current.StringFixed(2), rep.Overdue.StringFixed(2), rep.TotalOutstanding.StringFixed(2))
	fmt.Fprintf(w, "Turnover\t%s\n", rep.Turnover.StringFixed(2))
	fmt.Fprintf(w, "Days outstanding\t%s\n", rep.DaysOutstanding.StringFixed(1))
}

var hundred = decimal.NewFromInt(100)

func percent(ratio decimal.Decimal) string {
	return ratio.Mul(hundred).StringFixed(1)
}
