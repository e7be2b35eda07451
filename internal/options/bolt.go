package options

import (
	"fmt"

	"go.etcd.io/bbolt"
	"go.yaml.in/yaml/v3"
)

var bucketOptions = []byte("options")

// BoltStore keeps one option per key in a bbolt bucket.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening options db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketOptions)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating options bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Load merges the stored options into t.
func (s *BoltStore) Load(t *Tree) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketOptions)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var doc yaml.Node
			if err := yaml.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("decoding option %q: %w", k, err)
			}
			if len(doc.Content) == 0 {
				return nil
			}
			val, err := decodeValue(doc.Content[0])
			if err != nil {
				return fmt.Errorf("decoding option %q: %w", k, err)
			}
			t.Set(string(k), val)
			return nil
		})
	})
}

// Save replaces the bucket contents with t in one transaction.
func (s *BoltStore) Save(t *Tree) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketOptions) != nil {
			if err := tx.DeleteBucket(bucketOptions); err != nil {
				return fmt.Errorf("clearing options bucket: %w", err)
			}
		}
		b, err := tx.CreateBucket(bucketOptions)
		if err != nil {
			return fmt.Errorf("creating options bucket: %w", err)
		}
		for _, name := range t.AllNames() {
			v, _ := t.Lookup(name)
			n, err := encodeValue(v)
			if err != nil {
				return fmt.Errorf("encoding option %q: %w", name, err)
			}
			data, err := yaml.Marshal(n)
			if err != nil {
				return fmt.Errorf("encoding option %q: %w", name, err)
			}
			if err := b.Put([]byte(name), data); err != nil {
				return fmt.Errorf("storing option %q: %w", name, err)
			}
		}
		return nil
	})
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
