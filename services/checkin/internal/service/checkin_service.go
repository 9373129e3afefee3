package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/diagnosis/staycheck/internal/utils"
	"github.com/diagnosis/staycheck/pkg/auth"
	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
)

type CheckInService interface {
	StartSession(ctx context.Context, magicToken string) (*domain.SessionStart, error)
	View(ctx context.Context, magicToken string) (*domain.CheckInView, error)
	UpdateContact(ctx context.Context, magicToken string, patch *domain.ContactPatch) (*domain.GuestDTO, error)
	RecordIDDocument(ctx context.Context, magicToken, fileName string) (*domain.GuestDTO, error)
	SelectAnswer(ctx context.Context, magicToken, answerID string) (*domain.AnswerResult, error)
}

type checkInService struct {
	*Deps
}

func NewCheckInService(deps *Deps) CheckInService {
	return &checkInService{Deps: deps}
}

func (s *checkInService) resolve(ctx context.Context, magicToken string) (*domain.GuestSession, domain.Collections, error) {
	c, err := s.loadCollections(ctx)
	if err != nil {
		return nil, domain.Collections{}, err
	}
	session, ok := domain.ResolveSession(magicToken, c)
	if !ok {
		return nil, c, ErrSessionNotFound
	}
	return session, c, nil
}

func (s *checkInService) view(session *domain.GuestSession) domain.CheckInView {
	today := s.today()
	return domain.NewCheckInView(session, domain.CheckInGate(session.Guest, today), today.Format(domain.DateLayout))
}

func (s *checkInService) StartSession(ctx context.Context, magicToken string) (*domain.SessionStart, error) {
	session, _, err := s.resolve(ctx, magicToken)
	if err != nil {
		return nil, err
	}

	authCfg := s.Config.Auth
	token, err := auth.NewGuestSession(session.Guest.ID, session.Guest.MagicToken, authCfg.JWTSecret, authCfg.GuestSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest session: %w", err)
	}

	view := s.view(session)
	s.publish(ctx, events.GuestSessionStarted, events.GuestSessionStartedEvent{
		GuestID:    session.Guest.ID,
		PropertyID: session.Property.ID,
		GateOpen:   view.Gate == domain.GateOpen,
		StartedAt:  s.Now().UTC(),
	})

	return &domain.SessionStart{
		SessionToken: token,
		ExpiresIn:    int64(authCfg.GuestSessionTTL.Seconds()),
		CheckIn:      view,
	}, nil
}

func (s *checkInService) View(ctx context.Context, magicToken string) (*domain.CheckInView, error) {
	session, _, err := s.resolve(ctx, magicToken)
	if err != nil {
		return nil, err
	}
	view := s.view(session)
	return &view, nil
}

func (s *checkInService) UpdateContact(ctx context.Context, magicToken string, patch *domain.ContactPatch) (*domain.GuestDTO, error) {
	if patch.Empty() {
		return nil, validationError("nothing to update")
	}
	if patch.Email != nil {
		email := utils.NormalizeEmail(*patch.Email)
		if !utils.IsValidEmail(email) {
			return nil, validationError("a valid email is required")
		}
		patch.Email = &email
	}
	if patch.Phone != nil {
		phone := utils.NormalizeString(*patch.Phone)
		if !utils.IsValidPhone(phone) {
			return nil, validationError("phone number is invalid")
		}
		patch.Phone = &phone
	}

	defer s.lock()()

	session, c, err := s.resolve(ctx, magicToken)
	if err != nil {
		return nil, err
	}

	guest := session.Guest
	var changes []string
	if patch.Email != nil && *patch.Email != guest.Email {
		guest.Email = *patch.Email
		changes = append(changes, "email")
	}
	if patch.Phone != nil && *patch.Phone != guest.Phone {
		guest.Phone = *patch.Phone
		changes = append(changes, "phone")
	}
	if len(changes) == 0 {
		dto := guest.DTO()
		return &dto, nil
	}

	if err := s.replaceGuest(ctx, c.Guests, guest); err != nil {
		return nil, err
	}

	s.publish(ctx, events.GuestContactUpdated, events.GuestUpdatedEvent{
		GuestID:   guest.ID,
		Changes:   changes,
		UpdatedAt: s.Now().UTC(),
	})

	dto := guest.DTO()
	return &dto, nil
}

// RecordIDDocument stores a reference derived from the file name. The file
// itself is not kept.
func (s *checkInService) RecordIDDocument(ctx context.Context, magicToken, fileName string) (*domain.GuestDTO, error) {
	fileName = strings.TrimSpace(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, validationError("file name is required")
	}

	defer s.lock()()

	session, c, err := s.resolve(ctx, magicToken)
	if err != nil {
		return nil, err
	}
	if domain.CheckInGate(session.Guest, s.today()) != domain.GateOpen {
		return nil, ErrCheckInNotOpen
	}

	guest := session.Guest
	guest.IDDocumentURL = domain.IDDocumentURL(fileName)
	if err := s.replaceGuest(ctx, c.Guests, guest); err != nil {
		return nil, err
	}

	s.publish(ctx, events.GuestIDDocumentRecorded, events.GuestUpdatedEvent{
		GuestID:   guest.ID,
		Changes:   []string{"id_document_url"},
		UpdatedAt: s.Now().UTC(),
	})

	dto := guest.DTO()
	return &dto, nil
}

// SelectAnswer follows one of the session's answers to its instruction
// page. Answers outside the session, unlinked answers and dangling links
// report no transition.
func (s *checkInService) SelectAnswer(ctx context.Context, magicToken, answerID string) (*domain.AnswerResult, error) {
	session, c, err := s.resolve(ctx, magicToken)
	if err != nil {
		return nil, err
	}
	if domain.CheckInGate(session.Guest, s.today()) != domain.GateOpen {
		return nil, ErrCheckInNotOpen
	}

	result := &domain.AnswerResult{AnswerID: answerID}
	answer, ok := session.HasAnswer(answerID)
	if !ok {
		logger.DebugContext(ctx, "Answer is not part of the guest session", "answer_id", answerID, "guest_id", session.Guest.ID)
		return result, nil
	}

	if page, ok := domain.NavigateAnswer(*answer, c.Pages); ok {
		result.Transition = true
		result.Page = page
	}

	s.publish(ctx, events.GuestAnswerSelected, events.GuestAnswerSelectedEvent{
		GuestID:    session.Guest.ID,
		AnswerID:   answer.ID,
		PageID:     answer.InstructionPageID.String(),
		Transition: result.Transition,
		SelectedAt: s.Now().UTC(),
	})

	return result, nil
}

func (s *checkInService) replaceGuest(ctx context.Context, guests []domain.Guest, guest domain.Guest) error {
	updated, ok := domain.ReplaceGuest(guests, guest)
	if !ok {
		return fmt.Errorf("guest %s: %w", guest.ID, ErrNotFound)
	}
	return s.Collections.SaveGuests(ctx, updated)
}
