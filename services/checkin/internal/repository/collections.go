package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
)

// Collections gives typed access to every collection in a RecordStore.
// A key that was never saved loads as the demo seed when seeding is on,
// otherwise as an empty collection.
type Collections struct {
	store RecordStore
	seed  bool
	today func() time.Time
}

func NewCollections(store RecordStore, seed bool, today func() time.Time) *Collections {
	if today == nil {
		today = time.Now
	}
	return &Collections{store: store, seed: seed, today: today}
}

func load[T any](ctx context.Context, store RecordStore, key string, fallback func() []T) ([]T, error) {
	var out []T
	found, err := store.Load(ctx, key, &out)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return fallback(), nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, store RecordStore, key string, v []T) error {
	if v == nil {
		v = []T{}
	}
	if err := store.Save(ctx, key, v); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func seedOr[T any](seed bool, f func() []T) func() []T {
	if seed {
		return f
	}
	return func() []T { return []T{} }
}

func (c *Collections) LoadProperties(ctx context.Context) ([]domain.Property, error) {
	return load(ctx, c.store, KeyProperties, seedOr(c.seed, domain.SeedProperties))
}

func (c *Collections) SaveProperties(ctx context.Context, v []domain.Property) error {
	return save(ctx, c.store, KeyProperties, v)
}

func (c *Collections) LoadGuests(ctx context.Context) ([]domain.Guest, error) {
	return load(ctx, c.store, KeyGuests, seedOr(c.seed, func() []domain.Guest {
		return domain.SeedGuests(c.today())
	}))
}

func (c *Collections) SaveGuests(ctx context.Context, v []domain.Guest) error {
	return save(ctx, c.store, KeyGuests, v)
}

func (c *Collections) LoadQuestions(ctx context.Context) ([]domain.CheckInQuestion, error) {
	return load(ctx, c.store, KeyQuestions, seedOr(c.seed, domain.SeedQuestions))
}

func (c *Collections) SaveQuestions(ctx context.Context, v []domain.CheckInQuestion) error {
	return save(ctx, c.store, KeyQuestions, v)
}

func (c *Collections) LoadAnswers(ctx context.Context) ([]domain.QuestionAnswer, error) {
	return load(ctx, c.store, KeyAnswers, seedOr(c.seed, domain.SeedAnswers))
}

func (c *Collections) SaveAnswers(ctx context.Context, v []domain.QuestionAnswer) error {
	return save(ctx, c.store, KeyAnswers, v)
}

func (c *Collections) LoadInstructionPages(ctx context.Context) ([]domain.InstructionPage, error) {
	return load(ctx, c.store, KeyInstructionPages, seedOr(c.seed, domain.SeedInstructionPages))
}

func (c *Collections) SaveInstructionPages(ctx context.Context, v []domain.InstructionPage) error {
	return save(ctx, c.store, KeyInstructionPages, v)
}
