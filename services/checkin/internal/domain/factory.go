package domain

import (
	"time"

	"github.com/google/uuid"
)

// MagicTokenPrefix starts every generated guest magic token.
const MagicTokenPrefix = "magic-"

// Factory stamps new entities with an id and creation time. It has no side
// effects: callers append the result to its collection and save it.
type Factory struct {
	Now   func() time.Time
	NewID func() string
}

func NewFactory() *Factory {
	return &Factory{Now: time.Now, NewID: uuid.NewString}
}

func (f *Factory) now() time.Time {
	return f.Now().UTC()
}

func (f *Factory) NewProperty(req CreatePropertyReq) Property {
	return Property{
		ID:          f.NewID(),
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		CreatedAt:   f.now(),
	}
}

func (f *Factory) NewGuest(req CreateGuestReq) Guest {
	return Guest{
		ID:           f.NewID(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PropertyID:   req.PropertyID,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		MagicToken:   MagicTokenPrefix + f.NewID(),
		CreatedAt:    f.now(),
	}
}

func (f *Factory) NewQuestion(req CreateQuestionReq) CheckInQuestion {
	return CheckInQuestion{
		ID:         f.NewID(),
		PropertyID: req.PropertyID,
		Question:   req.Question,
		CreatedAt:  f.now(),
	}
}

func (f *Factory) NewAnswer(questionID string, req CreateAnswerReq) QuestionAnswer {
	return QuestionAnswer{
		ID:                f.NewID(),
		QuestionID:        questionID,
		AnswerText:        req.AnswerText,
		InstructionPageID: req.InstructionPageID,
		CreatedAt:         f.now(),
	}
}

func (f *Factory) NewStep(in StepInput) InstructionStep {
	return InstructionStep{
		ID:          f.NewID(),
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

// NewInstructionPage numbers the submitted steps by position.
func (f *Factory) NewInstructionPage(req CreateInstructionPageReq) InstructionPage {
	steps := StepList{}
	for _, in := range req.Steps {
		steps = steps.Append(f.NewStep(in))
	}
	return InstructionPage{
		ID:         f.NewID(),
		PropertyID: req.PropertyID,
		Title:      req.Title,
		Steps:      steps,
		CreatedAt:  f.now(),
	}
}
