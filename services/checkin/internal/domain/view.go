package domain

import "fmt"

// CheckInView is what a guest sees on their check-in page. Question and
// answers are present only while the gate is open.
type CheckInView struct {
	Guest    GuestDTO         `json:"guest"`
	Property Property         `json:"property"`
	Gate     Gate             `json:"gate"`
	Today    string           `json:"today"`
	Question *CheckInQuestion `json:"question,omitempty"`
	Answers  []QuestionAnswer `json:"answers,omitempty"`
	Notice   string           `json:"notice,omitempty"`
}

// NewCheckInView gates the session content on the check-in day.
func NewCheckInView(s *GuestSession, gate Gate, today string) CheckInView {
	view := CheckInView{
		Guest:    s.Guest.DTO(),
		Property: s.Property,
		Gate:     gate,
		Today:    today,
	}

	switch gate {
	case GateOpen:
		view.Question = s.Question
		view.Answers = s.Answers
	case GateTooEarly:
		view.Notice = fmt.Sprintf("Check-in instructions are not available yet. Please return on your check-in date (%s).", s.Guest.CheckInDate)
	default:
		view.Notice = fmt.Sprintf("Check-in instructions were available on your check-in date (%s).", s.Guest.CheckInDate)
	}
	return view
}

// AnswerResult reports where an answer leads. Page is nil when there is
// no transition.
type AnswerResult struct {
	AnswerID   string           `json:"answer_id"`
	Transition bool             `json:"transition"`
	Page       *InstructionPage `json:"page,omitempty"`
}

type SessionStart struct {
	SessionToken string      `json:"session_token"`
	ExpiresIn    int64       `json:"expires_in"`
	CheckIn      CheckInView `json:"checkin"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type HostSession struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type MagicLink struct {
	GuestID string `json:"guest_id"`
	Link    string `json:"link"`
}
