// Package repository holds the per-entity stores. Every read and write is
// scoped to the requesting user and every write runs in one transaction.
package repository

import (
	"github.com/diewo77/recipe-api/internal/tokencache"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Repository groups the stores built over one connection pool.
type Repository struct {
	Users       *UserStore
	Tokens      *TokenStore
	Tags        *TagStore
	Ingredients *IngredientStore
	Recipes     *RecipeStore
}

type options struct {
	cache      tokencache.Cache
	bcryptCost int
	log        *zap.Logger
}

type Option func(*options)

// WithTokenCache memoizes token lookups in c.
func WithTokenCache(c tokencache.Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithLogger reports token cache failures to log.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithBcryptCost overrides bcrypt.DefaultCost; tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

func New(db *gorm.DB, opts ...Option) *Repository {
	o := options{cache: tokencache.Nop{}, bcryptCost: bcrypt.DefaultCost, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	users := &UserStore{db: db, cache: o.cache, cost: o.bcryptCost, log: o.log}
	tags := newTagStore(db)
	ingredients := newIngredientStore(db)
	return &Repository{
		Users:       users,
		Tokens:      &TokenStore{db: db, users: users, cache: o.cache, log: o.log},
		Tags:        tags,
		Ingredients: ingredients,
		Recipes:     &RecipeStore{db: db, tags: tags, ingredients: ingredients},
	}
}
