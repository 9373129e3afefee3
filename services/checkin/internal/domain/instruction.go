package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrStepIndex = errors.New("step index out of range")

type InstructionStep struct {
	ID          string `json:"id"`
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

type InstructionPage struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	Title      string    `json:"title"`
	Steps      StepList  `json:"steps"`
	CreatedAt  time.Time `json:"created_at"`
}

type StepInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type CreateInstructionPageReq struct {
	PropertyID string      `json:"property_id"`
	Title      string      `json:"title"`
	Steps      []StepInput `json:"steps"`
}

// StepPatch updates individual step fields. Nil means unchanged.
type StepPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// StepList is the ordered steps of an instruction page. Every operation
// returns a new list with step numbers re-derived from position.
type StepList []InstructionStep

func (s StepList) clone() StepList {
	out := make(StepList, len(s))
	copy(out, s)
	return out
}

// Renumber sets each step number to its 1-based position.
func (s StepList) Renumber() StepList {
	out := s.clone()
	for i := range out {
		out[i].StepNumber = i + 1
	}
	return out
}

// Append adds step at the end. A missing id is generated.
func (s StepList) Append(step InstructionStep) StepList {
	if step.ID == "" {
		step.ID = uuid.NewString()
	}
	out := append(s.clone(), step)
	return out.Renumber()
}

func (s StepList) RemoveAt(i int) (StepList, error) {
	if i < 0 || i >= len(s) {
		return s.clone(), ErrStepIndex
	}
	out := make(StepList, 0, len(s)-1)
	out = append(out, s[:i]...)
	out = append(out, s[i+1:]...)
	return out.Renumber(), nil
}

// MoveUp swaps step i with the one before it. The first step stays put.
func (s StepList) MoveUp(i int) StepList {
	if i <= 0 || i >= len(s) {
		return s.Renumber()
	}
	return s.swap(i, i-1)
}

// MoveDown swaps step i with the one after it. The last step stays put.
func (s StepList) MoveDown(i int) StepList {
	if i < 0 || i >= len(s)-1 {
		return s.Renumber()
	}
	return s.swap(i, i+1)
}

func (s StepList) swap(i, j int) StepList {
	out := s.clone()
	out[i], out[j] = out[j], out[i]
	return out.Renumber()
}

func (s StepList) Update(i int, patch StepPatch) (StepList, error) {
	if i < 0 || i >= len(s) {
		return s.clone(), ErrStepIndex
	}
	out := s.clone()
	if patch.Title != nil {
		out[i].Title = *patch.Title
	}
	if patch.Description != nil {
		out[i].Description = *patch.Description
	}
	if patch.ImageURL != nil {
		out[i].ImageURL = *patch.ImageURL
	}
	return out.Renumber(), nil
}

func FindInstructionPage(pages []InstructionPage, id string) (*InstructionPage, bool) {
	for i := range pages {
		if pages[i].ID == id {
			p := pages[i]
			p.Steps = p.Steps.clone()
			return &p, true
		}
	}
	return nil, false
}

// ReplaceInstructionPage swaps the page with the same id, keeping its position.
func ReplaceInstructionPage(pages []InstructionPage, updated InstructionPage) ([]InstructionPage, bool) {
	out := make([]InstructionPage, len(pages))
	copy(out, pages)
	for i := range out {
		if out[i].ID == updated.ID {
			out[i] = updated
			return out, true
		}
	}
	return out, false
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

func ParseMoveDirection(s string) (MoveDirection, bool) {
	switch MoveDirection(s) {
	case MoveUp, MoveDown:
		return MoveDirection(s), true
	default:
		return "", false
	}
}

// Move applies MoveUp or MoveDown to step i.
func (s StepList) Move(i int, dir MoveDirection) StepList {
	if dir == MoveUp {
		return s.MoveUp(i)
	}
	return s.MoveDown(i)
}
