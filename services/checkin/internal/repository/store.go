package repository

import (
	"context"
	"errors"
)

// Collection keys. Each key holds the whole ordered collection as a JSON array.
const (
	KeyProperties       = "properties"
	KeyGuests           = "guests"
	KeyQuestions        = "questions"
	KeyAnswers          = "answers"
	KeyInstructionPages = "instructionPages"
)

var ErrUnknownBackend = errors.New("unknown store backend")

// RecordStore persists whole collections under a key. Load reports false
// when the key has never been saved; Save replaces the previous value.
type RecordStore interface {
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}
