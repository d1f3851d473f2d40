package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/rateio/internal/app"
	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/importer"
)

type importFlags struct {
	bank     string
	file     string
	category string
	splits   []string
	generate bool
	dryRun   bool
}

func newImportCommand() *cobra.Command {
	var f importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a bank statement as bills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, db, err := openServices()
			if err != nil {
				return err
			}
			defer db.Close()

			return runImport(cmd.Context(), cmd.OutOrStdout(), svc, f)
		},
	}

	cmd.Flags().StringVar(&f.bank, "bank", "", "statement layout: cgd, inter or nubank (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&f.file, "file", "", "path to the CSV statement (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&f.category, "category", "", "category name applied to every line")
	cmd.Flags().StringArrayVar(&f.splits, "split", nil, "person share as NAME=PERCENT, repeatable")
	cmd.Flags().BoolVar(&f.generate, "generate", false, "create the remaining installments of installment lines")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the parsed lines without saving")

	return cmd
}

func runImport(ctx context.Context, w io.Writer, svc *app.Services, f importFlags) error {
	file, err := os.Open(f.file)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer file.Close()

	txs, err := svc.Import.Import(importer.Bank(f.bank), file)
	if err != nil {
		return err
	}

	txs, err = svc.Rules.Annotate(ctx, txs)
	if err != nil {
		return err
	}

	if f.dryRun {
		fmt.Fprintln(w, renderLines(txs))
		return nil
	}

	opts := bill.ImportOptions{GenerateFutureInstallments: f.generate}

	if f.category != "" {
		c, err := svc.Categories.GetByName(ctx, f.category)
		if err != nil {
			return fmt.Errorf("category %q: %w", f.category, err)
		}

		opts.CategoryID = &c.ID
	}

	shares, err := parseSplits(f.splits)
	if err != nil {
		return err
	}

	for _, s := range shares {
		p, err := svc.People.GetByName(ctx, s.name)
		if err != nil {
			return fmt.Errorf("person %q: %w", s.name, err)
		}

		opts.Allocation = append(opts.Allocation, bill.SplitParams{PersonID: p.ID, Percentage: &s.percent})
	}

	res, err := svc.Bills.SaveImported(ctx, txs, opts)
	if res != nil {
		printImportResult(w, res)
	}

	return err
}

type share struct {
	name    string
	percent decimal.Decimal
}

// parseSplits reads NAME=PERCENT pairs. A trailing % is accepted.
func parseSplits(values []string) ([]share, error) {
	shares := make([]share, 0, len(values))
	total := decimal.Zero

	for _, v := range values {
		name, pct, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)

		if !ok || name == "" {
			return nil, fmt.Errorf("split %q: expected NAME=PERCENT", v)
		}

		p, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(pct), "%"))
		if err != nil || p.IsNegative() {
			return nil, fmt.Errorf("split %q: invalid percentage", v)
		}

		total = total.Add(p)
		shares = append(shares, share{name: name, percent: p})
	}

	if total.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("splits add up to %s%%", total.String())
	}

	return shares, nil
}

func renderLines(txs []bill.ImportedTransaction) string {
	t := table.New().Headers("DATE", "DESCRIPTION", "INSTALLMENT", "AMOUNT", "CATEGORY")

	for _, tx := range txs {
		category := ""
		if tx.CategoryID != nil {
			category = tx.CategoryID.String()
		}

		t.Row(
			tx.Date.Format("2006-01-02"),
			tx.Description,
			fmt.Sprintf("%d/%d", tx.InstallmentIndex, tx.InstallmentCount),
			tx.Amount.StringFixed(2),
			category,
		)
	}

	return t.String()
}

func printImportResult(w io.Writer, res *bill.ImportResult) {
	fmt.Fprintf(w, "saved %d line(s), %d bill(s) created\n", res.Saved, len(res.BillIDs))

	for _, f := range res.Failures {
		fmt.Fprintf(w, "line %d (%s): %v\n", f.Line, f.Description, f.Err)
	}
}

