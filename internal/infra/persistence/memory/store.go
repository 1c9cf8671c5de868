// Package memory is an in-process implementation of the catalog repositories,
// used for local development and tests.
package memory

import (
	"os"
	"slices"
	"sync"
	"time"

	"artisan/internal/domain/entity"
	"artisan/internal/errors"

	jsoniter "github.com/json-iterator/go"
)

// Store holds every collection. Repositories are views over it.
type Store struct {
	mu       sync.RWMutex
	products map[string]*entity.Product
	sellers  map[string]*entity.Seller
	likes    map[string]*entity.Like
	reviews  map[string][]*entity.Review

	// txMu serialises transactions.
	txMu sync.Mutex

	now func() time.Time
}

// Fixture is the on-disk seed format of the store.
type Fixture struct {
	Sellers  []*entity.Seller  `json:"sellers"`
	Products []*entity.Product `json:"products"`
	Reviews  []*entity.Review  `json:"reviews"`
	Likes    []*entity.Like    `json:"likes"`
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		products: make(map[string]*entity.Product),
		sellers:  make(map[string]*entity.Seller),
		likes:    make(map[string]*entity.Like),
		reviews:  make(map[string][]*entity.Review),
		now:      time.Now,
	}
}

// LoadFixture seeds the store from a JSON file.
func (s *Store) LoadFixture(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read fixture %s", path)
	}

	var fixture Fixture
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &fixture); err != nil {
		return errors.Wrapf(err, "failed to decode fixture %s", path)
	}

	s.Seed(fixture)

	return nil
}

// Seed inserts the fixture records, replacing records with the same ID.
func (s *Store) Seed(fixture Fixture) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, seller := range fixture.Sellers {
		cp := *seller
		s.sellers[seller.ID] = &cp
	}
	for _, product := range fixture.Products {
		s.products[product.ID] = cloneProduct(product)
	}
	for _, review := range fixture.Reviews {
		cp := *review
		s.reviews[review.ProductID] = append(s.reviews[review.ProductID], &cp)
	}
	for _, like := range fixture.Likes {
		cp := *like
		s.likes[entity.LikeKey(like.UserID, like.ProductID)] = &cp
	}
}

// undoLog remembers the first prior value of every product and like a
// transaction wrote. A nil value means the key did not exist.
type undoLog struct {
	products map[string]*entity.Product
	likes    map[string]*entity.Like
}

func newUndoLog() *undoLog {
	return &undoLog{
		products: make(map[string]*entity.Product),
		likes:    make(map[string]*entity.Like),
	}
}

// recordProduct must be called with the store lock held, before the write.
func (u *undoLog) recordProduct(id string, prev *entity.Product) {
	if u == nil {
		return
	}
	if _, seen := u.products[id]; !seen {
		u.products[id] = cloneProduct(prev)
	}
}

// recordLike must be called with the store lock held, before the write.
func (u *undoLog) recordLike(key string, prev *entity.Like) {
	if u == nil {
		return
	}
	if _, seen := u.likes[key]; seen {
		return
	}
	if prev == nil {
		u.likes[key] = nil

		return
	}
	cp := *prev
	u.likes[key] = &cp
}

// rollback puts back the keys the transaction touched and nothing else.
func (s *Store) rollback(u *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, prev := range u.products {
		if prev == nil {
			delete(s.products, id)

			continue
		}
		s.products[id] = prev
	}
	for key, prev := range u.likes {
		if prev == nil {
			delete(s.likes, key)

			continue
		}
		s.likes[key] = prev
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}

	cp := *p
	cp.Tags = slices.Clone(p.Tags)
	cp.Materials = slices.Clone(p.Materials)
	cp.Images = slices.Clone(p.Images)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		cp.OriginalPrice = &op
	}
	if p.DeletedAt != nil {
		at := *p.DeletedAt
		cp.DeletedAt = &at
	}

	return &cp
}
