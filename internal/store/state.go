package store

import (
	"github.com/yery-max/Proyecto-final/internal/model"
	"github.com/yery-max/Proyecto-final/internal/repository"
)

type state struct {
	products []model.Product
	branches model.Branches
	sales    []model.Sale
}

func emptyState() state {
	return state{
		products: []model.Product{},
		branches: model.Branches{},
		sales:    []model.Sale{},
	}
}

// clone copies everything a transaction may mutate. Sales are append-only,
// so only the slice header is capped; appending then reallocates.
func (s state) clone() state {
	return state{
		products: append([]model.Product{}, s.products...),
		branches: s.branches.Clone(),
		sales:    s.sales[:len(s.sales):len(s.sales)],
	}
}

func (s state) documents() repository.Documents {
	return repository.Documents{
		Products: s.products,
		Branches: s.branches,
		Sales:    s.sales,
	}
}
