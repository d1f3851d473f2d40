package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/rateio/internal/allocation"
	"github.com/MrJamesThe3rd/rateio/internal/bill"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	"github.com/MrJamesThe3rd/rateio/internal/person"
)

// billForm holds the values bound to the new bill form.
type billForm struct {
	Description  string
	Amount       string
	DueDate      string
	Installments string
	Generate     bool
	CategoryID   uuid.UUID
	People       []uuid.UUID
}

func newBillForm(now time.Time) *billForm {
	return &billForm{
		DueDate:      now.Format(time.DateOnly),
		Installments: "1",
	}
}

func (f *billForm) build(people []*person.Person, categories []*category.Category) *huh.Form {
	categoryOpts := []huh.Option[uuid.UUID]{huh.NewOption("No category", uuid.Nil)}
	for _, c := range categories {
		categoryOpts = append(categoryOpts, huh.NewOption(c.Icon+" "+c.Name, c.ID))
	}

	personOpts := make([]huh.Option[uuid.UUID], 0, len(people))
	for _, p := range people {
		personOpts = append(personOpts, huh.NewOption(p.Name, p.ID).Selected(true))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&f.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&f.Amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD").
				Value(&f.DueDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Installments").
				Value(&f.Installments).
				Validate(func(s string) error {
					_, err := parseInstallments(s)
					return err
				}),
			huh.NewConfirm().
				Title("Create every installment?").
				Description("Amount is the purchase total, split into monthly bills").
				Value(&f.Generate),
			huh.NewSelect[uuid.UUID]().
				Title("Category").
				Options(categoryOpts...).
				Value(&f.CategoryID),
			huh.NewMultiSelect[uuid.UUID]().
				Title("Split evenly between").
				Options(personOpts...).
				Value(&f.People),
		),
	).WithWidth(50).WithShowHelp(false)
}

// params converts the form values into a create request. Splits divide the amount evenly.
func (f *billForm) params() (bill.CreateParams, error) {
	amount, err := parseAmount(f.Amount)
	if err != nil {
		return bill.CreateParams{}, err
	}

	due, err := time.Parse(time.DateOnly, strings.TrimSpace(f.DueDate))
	if err != nil {
		return bill.CreateParams{}, fmt.Errorf("due date: %w", err)
	}

	count, err := parseInstallments(f.Installments)
	if err != nil {
		return bill.CreateParams{}, err
	}

	params := bill.CreateParams{
		Description:                strings.TrimSpace(f.Description),
		Amount:                     amount,
		InstallmentIndex:           1,
		InstallmentCount:           count,
		DueDate:                    &due,
		GenerateFutureInstallments: f.Generate && count > 1,
	}

	if f.CategoryID != uuid.Nil {
		params.CategoryID = &f.CategoryID
	}

	if len(f.People) > 0 {
		shares, err := allocation.SplitEven(amount, f.People)
		if err != nil {
			return bill.CreateParams{}, err
		}

		for _, s := range shares {
			params.Splits = append(params.Splits, bill.SplitParams{PersonID: s.Recipient, Amount: s.Amount})
		}
	}

	return params, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", "."))
	if err != nil {
		return decimal.Zero, errors.New("amount must be a number")
	}

	if !d.IsPositive() {
		return decimal.Zero, errors.New("amount must be greater than zero")
	}

	return d, nil
}

func parseInstallments(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, errors.New("installments must be a positive number")
	}

	return n, nil
}
