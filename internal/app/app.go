// Package app wires the stores and services shared by every binary.
package app

import (
	"database/sql"

	"github.com/MrJamesThe3rd/rateio/internal/bill"
	billStore "github.com/MrJamesThe3rd/rateio/internal/bill/store"
	"github.com/MrJamesThe3rd/rateio/internal/category"
	categoryStore "github.com/MrJamesThe3rd/rateio/internal/category/store"
	"github.com/MrJamesThe3rd/rateio/internal/config"
	"github.com/MrJamesThe3rd/rateio/internal/export"
	"github.com/MrJamesThe3rd/rateio/internal/importer"
	"github.com/MrJamesThe3rd/rateio/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/rateio/internal/matching/store"
	"github.com/MrJamesThe3rd/rateio/internal/person"
	personStore "github.com/MrJamesThe3rd/rateio/internal/person/store"
	"github.com/MrJamesThe3rd/rateio/internal/report"
)

type Services struct {
	Bills      *bill.Service
	People     *person.Service
	Categories *category.Service
	Rules      *matching.Service
	Reports    *report.Service
	Export     *export.Service
	Import     *importer.Service
}

func New(db *sql.DB, cfg *config.Config) *Services {
	s := &Services{
		People:     person.NewService(personStore.New(db)),
		Categories: category.NewService(categoryStore.New(db)),
		Rules:      matching.NewService(matchingStore.New(db)),
		Import:     importer.NewService(),
	}

	s.Bills = bill.NewService(billStore.New(db), cfg.App.MaxInstallments).WithPeople(s.People)

	s.Reports = report.NewService(s.Bills, s.People, s.Categories)
	s.Export = export.NewService(s.Bills, s.People, s.Categories, s.Reports)

	return s
}
