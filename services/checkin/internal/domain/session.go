package domain

import "time"

// DateLayout is the calendar-date layout of check-in and check-out dates.
const DateLayout = "2006-01-02"

// Collections is one consistent read of every stored collection.
type Collections struct {
	Properties []Property
	Guests     []Guest
	Questions  []CheckInQuestion
	Answers    []QuestionAnswer
	Pages      []InstructionPage
}

// GuestSession is derived from the collections on every request and never stored.
type GuestSession struct {
	Guest    Guest            `json:"guest"`
	Property Property         `json:"property"`
	Question *CheckInQuestion `json:"question"`
	Answers  []QuestionAnswer `json:"answers"`
}

// ResolveSession finds the guest holding token and assembles their session.
// It reports false for an empty or unknown token and for a guest whose
// property no longer exists.
func ResolveSession(token string, c Collections) (*GuestSession, bool) {
	if token == "" {
		return nil, false
	}

	var guest *Guest
	for i := range c.Guests {
		if c.Guests[i].MagicToken == token {
			g := c.Guests[i]
			guest = &g
			break
		}
	}
	if guest == nil {
		return nil, false
	}

	property, ok := FindProperty(c.Properties, guest.PropertyID)
	if !ok {
		return nil, false
	}

	session := &GuestSession{
		Guest:    *guest,
		Property: *property,
		Answers:  []QuestionAnswer{},
	}
	if q, ok := FirstQuestionFor(c.Questions, property.ID); ok {
		session.Question = q
		session.Answers = AnswersFor(c.Answers, q.ID)
	}
	return session, true
}

// HasAnswer reports whether answerID is one of the session's answers.
func (s *GuestSession) HasAnswer(answerID string) (*QuestionAnswer, bool) {
	return FindAnswer(s.Answers, answerID)
}

type Gate string

const (
	GateOpen     Gate = "open"
	GateTooEarly Gate = "too_early"
	GateClosed   Gate = "closed"
)

// CheckInGate opens only on the guest's exact check-in date, compared as a
// calendar date in today's location. An unparseable check-in date is closed.
func CheckInGate(guest Guest, today time.Time) Gate {
	checkIn, err := time.Parse(DateLayout, guest.CheckInDate)
	if err != nil {
		return GateClosed
	}

	day := today.Format(DateLayout)
	switch {
	case day == guest.CheckInDate:
		return GateOpen
	case day < checkIn.Format(DateLayout):
		return GateTooEarly
	default:
		return GateClosed
	}
}

// NavigateAnswer returns the instruction page an answer leads to. An
// unlinked answer or a link to a missing page yields no transition.
func NavigateAnswer(answer QuestionAnswer, pages []InstructionPage) (*InstructionPage, bool) {
	pageID, ok := answer.InstructionPageID.PageID()
	if !ok {
		return nil, false
	}
	return FindInstructionPage(pages, pageID)
}
