package store

import (
	"fmt"
	"time"

	"github.com/yery-max/Proyecto-final/internal/model"
)

const maxSaleIDAttempts = 32

// Tx is the mutable working copy handed to Store.Update.
// Pointers returned by FindProduct stay valid until the next InsertProduct
// or RemoveProduct on the same Tx.
type Tx struct {
	state state
	cfg   model.Config
	now   time.Time
	newID func() string
}

// Config returns the engine configuration.
func (tx *Tx) Config() model.Config { return tx.cfg }

// Now returns the time the transaction started.
func (tx *Tx) Now() time.Time { return tx.now }

// FindProduct resolves (sku, branch) to the working record.
func (tx *Tx) FindProduct(sku, branch string) (*model.Product, bool) {
	i := indexOf(tx.state.products, sku, branch)
	if i < 0 {
		return nil, false
	}
	return &tx.state.products[i], true
}

// InsertProduct validates p, assigns a fresh id and appends it.
// It refuses a second record for an existing (sku, branch).
func (tx *Tx) InsertProduct(p model.Product) (model.Product, error) {
	if err := p.Validate(); err != nil {
		return model.Product{}, err
	}
	if indexOf(tx.state.products, p.SKU, p.Branch) >= 0 {
		return model.Product{}, fmt.Errorf("%w: SKU %s ya existe en %s", model.ErrDuplicateKey, p.SKU, p.Branch)
	}
	p.ID = tx.newID()
	tx.state.products = append(tx.state.products, p)
	return p, nil
}

// RemoveProduct deletes the record for (sku, branch).
func (tx *Tx) RemoveProduct(sku, branch string) (model.Product, bool) {
	i := indexOf(tx.state.products, sku, branch)
	if i < 0 {
		return model.Product{}, false
	}
	removed := tx.state.products[i]
	tx.state.products = append(tx.state.products[:i], tx.state.products[i+1:]...)
	return removed, true
}

// Products returns copies of the working records, all branches when branch is empty.
func (tx *Tx) Products(branch string) []model.Product {
	return filterProducts(tx.state.products, branch)
}

// RegisterBranch adds name to the registry. It reports whether it was new.
func (tx *Tx) RegisterBranch(name string) bool {
	if tx.state.branches.Has(name) {
		return false
	}
	tx.state.branches[name] = model.Branch{}
	return true
}


// AppendSale stamps the sale with a fresh unique id and, when unset, the
// transaction time, then appends it to the sale log.
func (tx *Tx) AppendSale(sale model.Sale) model.Sale {
	sale.ID = tx.uniqueSaleID()
	if sale.Timestamp.IsZero() {
		sale.Timestamp = tx.now
	}
	sale = sale.Clone()
	tx.state.sales = append(tx.state.sales, sale)
	return sale
}

func (tx *Tx) uniqueSaleID() string {
	taken := make(map[string]struct{}, len(tx.state.sales))
	for _, s := range tx.state.sales {
		taken[s.ID] = struct{}{}
	}
	for i := 0; i < maxSaleIDAttempts; i++ {
		id := saleID(tx.newID)
		if _, dup := taken[id]; !dup {
			return id
		}
	}
	// Short ids exhausted; the full generator output is unique on its own.
	return "VTA-" + tx.newID()
}

// ResetCatalog drops every product and branch, keeping the sale log.
func (tx *Tx) ResetCatalog() {
	tx.state.products = []model.Product{}
	tx.state.branches = model.Branches{}
}

// Reset drops every product, sale and branch. Config is kept.
func (tx *Tx) Reset() {
	tx.ResetCatalog()
	tx.state.sales = []model.Sale{}
}

func filterProducts(products []model.Product, branch string) []model.Product {
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if branch == "" || p.Branch == branch {
			out = append(out, p)
		}
	}
	return out
}
