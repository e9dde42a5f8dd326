package store

import "github.com/yery-max/Proyecto-final/internal/model"

// indexOf resolves a composite key to a position in products, or -1.
//
// It is a linear scan over the collection: the store keeps no separate index
// to maintain. If hand-edited documents ever contain two records for the same
// key, the first one in document order wins.
func indexOf(products []model.Product, sku, branch string) int {
	for i := range products {
		if products[i].SKU == sku && products[i].Branch == branch {
			return i
		}
	}
	return -1
}
