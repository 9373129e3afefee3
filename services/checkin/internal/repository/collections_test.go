package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
	"github.com/stretchr/testify/require"
)

var fixedToday = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }

func TestCollections_MissingKeyLoadsSeed(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryStore(), true, fixedToday)

	props, err := c.LoadProperties(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.Equal(t, "prop-1", props[0].ID)

	guests, err := c.LoadGuests(ctx)
	require.NoError(t, err)
	require.Equal(t, "2024-02-01", guests[0].CheckInDate)

	answers, err := c.LoadAnswers(ctx)
	require.NoError(t, err)
	require.Equal(t, "page-1", answers[0].InstructionPageID.String())
}

func TestCollections_MissingKeyWithoutSeedIsEmpty(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryStore(), false, fixedToday)

	pages, err := c.LoadInstructionPages(ctx)
	require.NoError(t, err)
	require.NotNil(t, pages)
	require.Empty(t, pages)
}

func TestCollections_SaveThenLoadKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewCollections(store, true, fixedToday)

	f := domain.NewFactory()
	props, err := c.LoadProperties(ctx)
	require.NoError(t, err)
	added := f.NewProperty(domain.CreatePropertyReq{Name: "Cabin", Address: "1 Pine Rd"})
	require.NoError(t, c.SaveProperties(ctx, append(props, added)))

	loaded, err := c.LoadProperties(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	require.Equal(t, added.ID, loaded[2].ID)
	require.True(t, added.CreatedAt.Equal(loaded[2].CreatedAt))
}

func TestCollections_SavedEmptyCollectionStaysEmpty(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryStore(), true, fixedToday)

	require.NoError(t, c.SaveQuestions(ctx, nil))
	qs, err := c.LoadQuestions(ctx)
	require.NoError(t, err)
	require.Empty(t, qs)
}

func TestCollections_PageStepsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewCollections(NewMemoryStore(), false, fixedToday)

	page := domain.NewFactory().NewInstructionPage(domain.CreateInstructionPageReq{
		PropertyID: "prop-1",
		Title:      "Arrival",
		Steps:      []domain.StepInput{{Title: "Park"}, {Title: "Walk"}},
	})
	require.NoError(t, c.SaveInstructionPages(ctx, []domain.InstructionPage{page}))

	pages, err := c.LoadInstructionPages(ctx)
	require.NoError(t, err)
	require.Equal(t, page.Steps, pages[0].Steps)
}

type failingStore struct{}

func (failingStore) Load(context.Context, string, any) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingStore) Save(context.Context, string, any) error {
	return errors.New("connection refused")
}

func TestCollections_WrapsStoreErrors(t *testing.T) {
	c := NewCollections(failingStore{}, true, fixedToday)

	_, err := c.LoadGuests(context.Background())
	require.ErrorContains(t, err, "load guests")

	err = c.SaveGuests(context.Background(), []domain.Guest{})
	require.ErrorContains(t, err, "save guests")
}
