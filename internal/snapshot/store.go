// Package snapshot persists sand world snapshots in an embedded bbolt
// database so headless runs can be suspended and resumed.
package snapshot

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"sandgrid/internal/sims/sand"
)

var bucketSnapshots = []byte("snapshots")

// ErrNotFound marks lookups for snapshot ids the store does not hold.
var ErrNotFound = errors.New("snapshot: not found")

// Meta summarizes a stored snapshot.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Tick      uint64    `json:"tick"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Grains    int       `json:"grains"`
	Objects   int       `json:"objects"`
	Checksum  uint64    `json:"checksum"`
}

type record struct {
	Meta  Meta       `json:"meta"`
	State sand.State `json:"state"`
}

// Store persists world snapshots keyed by uuid.
type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

// Open opens (or creates) the snapshot database at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot: open %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "snapshot: init bucket")
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save captures the world and stores it under a fresh id.
func (s *Store) Save(w *sand.World) (Meta, error) {
	st := w.CaptureState()
	meta := Meta{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Tick:      st.Tick,
		Width:     st.Config.Width,
		Height:    st.Config.Height,
		Grains:    len(st.Particles),
		Objects:   len(st.Objects),
		Checksum:  st.Checksum,
	}
	data, err := json.Marshal(record{Meta: meta, State: st})
	if err != nil {
		return Meta{}, errors.Wrap(err, "snapshot: encode")
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(meta.ID), data)
	})
	if err != nil {
		return Meta{}, errors.Wrapf(err, "snapshot: store %s", meta.ID)
	}
	s.log.Info("snapshot saved",
		zap.String("id", meta.ID),
		zap.Uint64("tick", meta.Tick),
		zap.Int("grains", meta.Grains),
		zap.Int("objects", meta.Objects),
	)
	return meta, nil
}

// Load restores the world stored under id. The state checksum is verified
// during restore; mismatches surface as sand.ErrStateChecksum.
func (s *Store) Load(id string) (*sand.World, Meta, error) {
	var rec record
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSnapshots).Get([]byte(id))
		if data == nil {
			return errors.Wrap(ErrNotFound, id)
		}
		return errors.Wrapf(json.Unmarshal(data, &rec), "snapshot: decode %s", id)
	})
	if err != nil {
		return nil, Meta{}, err
	}
	world, err := sand.RestoreState(rec.State)
	if err != nil {
		return nil, Meta{}, errors.Wrapf(err, "snapshot: restore %s", id)
	}
	s.log.Info("snapshot loaded", zap.String("id", id), zap.Uint64("tick", rec.Meta.Tick))
	return world, rec.Meta, nil
}

// List returns snapshot metadata ordered by creation time.
func (s *Store) List() ([]Meta, error) {
	var metas []Meta
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(k, v []byte) error {
			var header struct {
				Meta Meta `json:"meta"`
			}
			if err := json.Unmarshal(v, &header); err != nil {
				return errors.Wrapf(err, "snapshot: decode meta %s", string(k))
			}
			metas = append(metas, header.Meta)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].CreatedAt.Equal(metas[j].CreatedAt) {
			return metas[i].ID < metas[j].ID
		}
		return metas[i].CreatedAt.Before(metas[j].CreatedAt)
	})
	return metas, nil
}

// Delete removes the snapshot stored under id.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSnapshots)
		if b.Get([]byte(id)) == nil {
			return errors.Wrap(ErrNotFound, id)
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		return err
	}
	s.log.Info("snapshot deleted", zap.String("id", id))
	return nil
}
