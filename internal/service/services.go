package service

import (
	"github.com/yery-max/Proyecto-final/internal/infra"
	"github.com/yery-max/Proyecto-final/internal/store"
)

// Services bundles every engine service built over one store.
type Services struct {
	Products  ProductService
	Sales     SaleService
	Inventory InventoryService
	Import    ImportService
	Query     QueryService
	Reports   ReportService
}

// NewServices wires the services. Dependency graph: Service ← Store ← Repository.
func NewServices(st *store.Store, metrics *infra.Metrics, reportsPath string, sale SaleOptions) *Services {
	return &Services{
		Products:  NewProductService(st, metrics),
		Sales:     NewSaleService(st, metrics, sale),
		Inventory: NewInventoryService(st, metrics),
		Import:    NewImportService(st, metrics),
		Query:     NewQueryService(st),
		Reports:   NewReportService(st, reportsPath, metrics),
	}
}
