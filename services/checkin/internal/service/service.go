package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/diagnosis/staycheck/pkg/config"
	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
	"github.com/diagnosis/staycheck/services/checkin/internal/repository"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrSessionNotFound    = errors.New("check-in session not found")
	ErrValidation         = errors.New("validation failed")
	ErrCheckInNotOpen     = errors.New("check-in is not open")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Deps is shared by the admin and check-in services. Writes hold mu for
// the whole load-modify-save so concurrent requests never lose updates.
type Deps struct {
	Collections *repository.Collections
	Factory     *domain.Factory
	Events      events.Publisher
	Config      *config.Config
	Now         func() time.Time

	mu *sync.Mutex
}

func NewDeps(collections *repository.Collections, publisher events.Publisher, cfg *config.Config) *Deps {
	return &Deps{
		Collections: collections,
		Factory:     domain.NewFactory(),
		Events:      publisher,
		Config:      cfg,
		Now:         time.Now,
		mu:          &sync.Mutex{},
	}
}

func (d *Deps) lock() func() {
	d.mu.Lock()
	return d.mu.Unlock
}

// today is the current instant in the configured check-in location.
func (d *Deps) today() time.Time {
	return d.Now().In(d.Config.App.Location())
}

// loadCollections reads every collection concurrently.
func (d *Deps) loadCollections(ctx context.Context) (domain.Collections, error) {
	var c domain.Collections
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		c.Properties, err = d.Collections.LoadProperties(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Guests, err = d.Collections.LoadGuests(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Questions, err = d.Collections.LoadQuestions(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Answers, err = d.Collections.LoadAnswers(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Pages, err = d.Collections.LoadInstructionPages(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Collections{}, err
	}
	return c, nil
}

func (d *Deps) publish(ctx context.Context, subject string, payload interface{}) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Publish(ctx, subject, payload); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
