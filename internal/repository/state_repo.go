package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yery-max/Proyecto-final/internal/model"
)

// Bucket names shared by every backend. The JSON backend maps each one to a
// file, the SQLite backend to a row of the state table.
const (
	BucketProducts = "products"
	BucketBranches = "branches"
	BucketSales    = "sales"
)

var buckets = []string{BucketProducts, BucketBranches, BucketSales}

// Documents is the full persisted state of the engine.
// A nil field after Load means the document was missing or could not be decoded.
type Documents struct {
	Products []model.Product
	Branches model.Branches
	Sales    []model.Sale
}

// StateRepository reads and overwrites the three documents as a whole.
// Services never talk to it directly; the entity store calls Save after every
// successful mutation.
type StateRepository interface {
	Load(ctx context.Context) (Documents, error)
	Save(ctx context.Context, docs Documents) error
	Close() error
}

// ErrPersistence matches every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("error de persistencia")

// PersistenceError reports an I/O failure while loading or saving a document.
type PersistenceError struct {
	Op       string // load | save
	Document string
	Err      error
}

func (e *PersistenceError) Error() string {
	if e.Document == "" {
		return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence %s %s: %v", e.Op, e.Document, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func encodeBucket(docs Documents, bucket string) ([]byte, error) {
	var v any
	switch bucket {
	case BucketProducts:
		if docs.Products == nil {
			docs.Products = []model.Product{}
		}
		v = docs.Products
	case BucketBranches:
		if docs.Branches == nil {
			docs.Branches = model.Branches{}
		}
		v = docs.Branches
	case BucketSales:
		if docs.Sales == nil {
			docs.Sales = []model.Sale{}
		}
		v = docs.Sales
	default:
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
	return json.MarshalIndent(v, "", "    ")
}

// decodeBucket fills the matching field of docs. On error docs is untouched.
func decodeBucket(docs *Documents, bucket string, data []byte) error {
	switch bucket {
	case BucketProducts:
		var products []model.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return err
		}
		docs.Products = products
	case BucketBranches:
		var branches model.Branches
		if err := json.Unmarshal(data, &branches); err != nil {
			return err
		}
		docs.Branches = branches
	case BucketSales:
		var sales []model.Sale
		if err := json.Unmarshal(data, &sales); err != nil {
			return err
		}
		docs.Sales = sales
	default:
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	return nil
}
