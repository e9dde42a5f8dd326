package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// File names of the three documents inside the data directory.
const (
	ProductsFile = "inventario.json"
	BranchesFile = "sucursales.json"
	SalesFile    = "ventas.json"
)

var bucketFiles = map[string]string{
	BucketProducts: ProductsFile,
	BucketBranches: BranchesFile,
	BucketSales:    SalesFile,
}

// JSONStore keeps each document as an indented JSON file under dir.
//
// Save stages all three documents as synced temp files first and only then
// renames them into place (products, branches, sales). A failure while
// staging leaves every previous document intact; only a crash between the
// renames can leave the files from two different saves.
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir, creating the directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &PersistenceError{Op: "open", Document: dir, Err: err}
	}
	return &JSONStore{dir: dir}, nil
}

// Dir returns the data directory.
func (s *JSONStore) Dir() string { return s.dir }

// Path returns the file path of a bucket's document.
func (s *JSONStore) Path(bucket string) string {
	return filepath.Join(s.dir, bucketFiles[bucket])
}

// Ping checks that the data directory is still there.
func (s *JSONStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &PersistenceError{Op: "ping", Document: s.dir, Err: errors.New("not a directory")}
	}
	return nil
}

func (s *JSONStore) Load(ctx context.Context) (Documents, error) {
	var docs Documents
	if err := ctx.Err(); err != nil {
		return docs, &PersistenceError{Op: "load", Document: s.dir, Err: err}
	}
	for _, bucket := range buckets {
		path := s.Path(bucket)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("document", path).Msg("document not found")
			continue
		}
		if err != nil {
			return Documents{}, &PersistenceError{Op: "load", Document: path, Err: err}
		}
		if err := decodeBucket(&docs, bucket, data); err != nil {
			log.Warn().Err(err).Str("document", path).Msg("malformed document ignored")
		}
	}
	return docs, nil
}

type stagedFile struct {
	tmp  string
	dest string
}

func (s *JSONStore) Save(ctx context.Context, docs Documents) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "save", Document: s.dir, Err: err}
	}
	staged := make([]stagedFile, 0, len(buckets))
	cleanup := func() {
		for _, f := range staged {
			_ = os.Remove(f.tmp)
		}
	}
	for _, bucket := range buckets {
		dest := s.Path(bucket)
		data, err := encodeBucket(docs, bucket)
		if err != nil {
			cleanup()
			return &PersistenceError{Op: "save", Document: dest, Err: err}
		}
		tmp, err := writeTemp(s.dir, filepath.Base(dest), data)
		if err != nil {
			cleanup()
			return &PersistenceError{Op: "save", Document: dest, Err: err}
		}
		staged = append(staged, stagedFile{tmp: tmp, dest: dest})
	}
	for i, f := range staged {
		if err := os.Rename(f.tmp, f.dest); err != nil {
			for _, rest := range staged[i:] {
				_ = os.Remove(rest.tmp)
			}
			return &PersistenceError{Op: "save", Document: f.dest, Err: err}
		}
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }

// writeTemp writes data to a synced temp file next to the destination and
// returns its path.
func writeTemp(dir, base string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
