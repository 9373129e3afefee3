package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixture() Collections {
	return SeedCollections(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))
}

func TestResolveSession_UnknownToken(t *testing.T) {
	c := fixture()

	s, ok := ResolveSession("nope", c)
	require.False(t, ok)
	require.Nil(t, s)

	s, ok = ResolveSession("", c)
	require.False(t, ok)
	require.Nil(t, s)
}

func TestResolveSession_EmptyTokenNeverMatchesEmptyGuestToken(t *testing.T) {
	c := fixture()
	c.Guests = append(c.Guests, Guest{ID: "guest-x", PropertyID: "prop-1"})

	_, ok := ResolveSession("", c)
	require.False(t, ok)
}

func TestResolveSession_ValidGuest(t *testing.T) {
	s, ok := ResolveSession("magic-token-123", fixture())
	require.True(t, ok)
	require.Equal(t, "guest-1", s.Guest.ID)
	require.Equal(t, "prop-1", s.Property.ID)
	require.Equal(t, s.Guest.PropertyID, s.Property.ID)
	require.NotNil(t, s.Question)
	require.Equal(t, "q-1", s.Question.ID)

	ids := []string{}
	for _, a := range s.Answers {
		ids = append(ids, a.ID)
	}
	require.Equal(t, []string{"a-1", "a-2"}, ids)
}

func TestResolveSession_TokenIsCaseSensitive(t *testing.T) {
	_, ok := ResolveSession("MAGIC-TOKEN-123", fixture())
	require.False(t, ok)
}

func TestResolveSession_MissingProperty(t *testing.T) {
	c := fixture()
	c.Properties = c.Properties[1:]

	s, ok := ResolveSession("magic-token-123", c)
	require.False(t, ok)
	require.Nil(t, s)
}

func TestResolveSession_PropertyWithoutQuestion(t *testing.T) {
	c := fixture()
	c.Questions = c.Questions[1:]

	s, ok := ResolveSession("magic-token-123", c)
	require.True(t, ok)
	require.Nil(t, s.Question)
	require.NotNil(t, s.Answers)
	require.Empty(t, s.Answers)
}

func TestResolveSession_FirstQuestionWins(t *testing.T) {
	c := fixture()
	c.Questions = append(c.Questions, CheckInQuestion{ID: "q-late", PropertyID: "prop-1", Question: "Pets?"})

	s, ok := ResolveSession("magic-token-123", c)
	require.True(t, ok)
	require.Equal(t, "q-1", s.Question.ID)
}

func TestResolveSession_Idempotent(t *testing.T) {
	c := fixture()
	first, ok := ResolveSession("magic-token-456", c)
	require.True(t, ok)
	second, ok := ResolveSession("magic-token-456", c)
	require.True(t, ok)
	require.Equal(t, first, second)
}

func TestResolveSession_AnswersDoNotAliasCollection(t *testing.T) {
	c := fixture()
	s, ok := ResolveSession("magic-token-123", c)
	require.True(t, ok)

	s.Answers[0].AnswerText = "changed"
	require.Equal(t, "1-2 guests", c.Answers[0].AnswerText)
}

func TestCheckInGate(t *testing.T) {
	guest := Guest{CheckInDate: "2024-02-01"}

	require.Equal(t, GateOpen, CheckInGate(guest, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, GateOpen, CheckInGate(guest, time.Date(2024, 2, 1, 23, 59, 0, 0, time.UTC)))
	require.Equal(t, GateClosed, CheckInGate(guest, time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, GateTooEarly, CheckInGate(guest, time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)))
}

func TestCheckInGate_UsesTodaysLocation(t *testing.T) {
	guest := Guest{CheckInDate: "2024-02-01"}
	tokyo := time.FixedZone("JST", 9*60*60)

	// 20:00 UTC on Jan 31 is already Feb 1 in Tokyo.
	instant := time.Date(2024, 1, 31, 20, 0, 0, 0, time.UTC)
	require.Equal(t, GateTooEarly, CheckInGate(guest, instant))
	require.Equal(t, GateOpen, CheckInGate(guest, instant.In(tokyo)))
}

func TestCheckInGate_UnparseableDateIsClosed(t *testing.T) {
	for _, d := range []string{"", "2024-2-1", "tomorrow"} {
		require.Equal(t, GateClosed, CheckInGate(Guest{CheckInDate: d}, time.Now()), d)
	}
}

func TestNavigateAnswer(t *testing.T) {
	pages := []InstructionPage{{
		ID:    "page-1",
		Title: "Lockbox",
		Steps: StepList{{ID: "s1", StepNumber: 1, Title: "Find it"}},
	}}

	page, ok := NavigateAnswer(QuestionAnswer{ID: "A1", InstructionPageID: LinkPage("page-1")}, pages)
	require.True(t, ok)
	require.Equal(t, "page-1", page.ID)
	require.Len(t, page.Steps, 1)

	page, ok = NavigateAnswer(QuestionAnswer{ID: "A2", InstructionPageID: LinkPage("page-missing")}, pages)
	require.False(t, ok)
	require.Nil(t, page)

	page, ok = NavigateAnswer(QuestionAnswer{ID: "A3", InstructionPageID: Unlinked}, pages)
	require.False(t, ok)
	require.Nil(t, page)
}

func TestNavigateAnswer_ReturnedPageIsACopy(t *testing.T) {
	pages := SeedInstructionPages()
	page, ok := NavigateAnswer(SeedAnswers()[0], pages)
	require.True(t, ok)

	page.Steps[0].Title = "changed"
	require.Equal(t, "Find the Key Lockbox", pages[0].Steps[0].Title)
}

func TestSeedCollections_Consistent(t *testing.T) {
	today := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	c := SeedCollections(today)

	require.Equal(t, "2026-10-18", c.Guests[0].CheckInDate)
	for _, a := range c.Answers {
		_, ok := NavigateAnswer(a, c.Pages)
		require.True(t, ok, a.ID)
	}
	for _, p := range c.Pages {
		for i, s := range p.Steps {
			require.Equal(t, i+1, s.StepNumber)
		}
	}

	s, ok := ResolveSession("magic-token-123", c)
	require.True(t, ok)
	require.Equal(t, GateOpen, CheckInGate(s.Guest, today))
}
