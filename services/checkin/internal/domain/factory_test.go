package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testFactory() *Factory {
	clock := time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("PST", -8*60*60))
	n := 0
	return &Factory{
		Now: func() time.Time {
			clock = clock.Add(time.Millisecond)
			return clock
		},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func TestFactory_NewPropertyAppendsInOrder(t *testing.T) {
	f := testFactory()
	props := SeedProperties()

	p1 := f.NewProperty(CreatePropertyReq{Name: "Cabin", Address: "1 Pine Rd"})
	p2 := f.NewProperty(CreatePropertyReq{Name: "Cottage", Address: "2 Oak Rd"})
	props = append(props, p1, p2)

	require.NotEqual(t, p1.ID, p2.ID)
	require.True(t, p2.CreatedAt.After(p1.CreatedAt))
	require.Equal(t, time.UTC, p1.CreatedAt.Location())
	require.Equal(t, []string{"prop-1", "prop-2", p1.ID, p2.ID}, []string{props[0].ID, props[1].ID, props[2].ID, props[3].ID})
}

func TestFactory_DefaultSourcesAreUnique(t *testing.T) {
	f := NewFactory()
	a := f.NewProperty(CreatePropertyReq{Name: "A"})
	b := f.NewProperty(CreatePropertyReq{Name: "B"})
	require.NotEqual(t, a.ID, b.ID)
	require.False(t, b.CreatedAt.Before(a.CreatedAt))
}

func TestFactory_NewGuestGetsMagicToken(t *testing.T) {
	f := NewFactory()
	g1 := f.NewGuest(CreateGuestReq{Name: "Ann", PropertyID: "prop-1", CheckInDate: "2024-02-01"})
	g2 := f.NewGuest(CreateGuestReq{Name: "Bob", PropertyID: "prop-1", CheckInDate: "2024-02-01"})

	require.True(t, strings.HasPrefix(g1.MagicToken, MagicTokenPrefix))
	require.NotEqual(t, g1.MagicToken, g2.MagicToken)
	require.Empty(t, g1.IDDocumentURL)
}

func TestFactory_NewInstructionPageNumbersSteps(t *testing.T) {
	f := testFactory()
	page := f.NewInstructionPage(CreateInstructionPageReq{
		PropertyID: "prop-1",
		Title:      "Arrival",
		Steps: []StepInput{
			{Title: "Park"},
			{Title: "Lockbox", ImageURL: "https://example.com/box.jpg"},
		},
	})

	require.Len(t, page.Steps, 2)
	require.Equal(t, 1, page.Steps[0].StepNumber)
	require.Equal(t, 2, page.Steps[1].StepNumber)
	require.NotEqual(t, page.Steps[0].ID, page.Steps[1].ID)
	require.NotEqual(t, page.ID, page.Steps[0].ID)
}

func TestFactory_NewAnswerKeepsLink(t *testing.T) {
	f := testFactory()
	a := f.NewAnswer("q-1", CreateAnswerReq{AnswerText: "Late", InstructionPageID: LinkPage("page-9")})
	require.Equal(t, "q-1", a.QuestionID)
	require.Equal(t, "page-9", a.InstructionPageID.String())
}
