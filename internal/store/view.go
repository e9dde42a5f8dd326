package store

import (
	"time"

	"github.com/yery-max/Proyecto-final/internal/model"
)

// View is a read-only window on the store state. Every accessor returns
// copies, so results stay valid after View returns.
type View struct {
	state *state
	cfg   model.Config
}

func (v View) Config() model.Config { return v.cfg }

// Products lists products in document order, all branches when branch is empty.
func (v View) Products(branch string) []model.Product {
	return filterProducts(v.state.products, branch)
}

func (v View) FindProduct(sku, branch string) (model.Product, bool) {
	i := indexOf(v.state.products, sku, branch)
	if i < 0 {
		return model.Product{}, false
	}
	return v.state.products[i], true
}

// Branches returns the registered branch names sorted.
func (v View) Branches() []string { return v.state.branches.Names() }

func (v View) HasBranch(name string) bool { return v.state.branches.Has(name) }

func (v View) Sale(id string) (model.Sale, bool) {
	for _, s := range v.state.sales {
		if s.ID == id {
			return s.Clone(), true
		}
	}
	return model.Sale{}, false
}

// Sales returns the whole sale log in registration order.
func (v View) Sales() []model.Sale {
	out := make([]model.Sale, 0, len(v.state.sales))
	for _, s := range v.state.sales {
		out = append(out, s.Clone())
	}
	return out
}

// SalesOn returns the sales whose timestamp falls on day's calendar date.
func (v View) SalesOn(day time.Time) []model.Sale {
	var out []model.Sale
	for _, s := range v.state.sales {
		if s.OnDate(day) {
			out = append(out, s.Clone())
		}
	}
	return out
}
