package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/alexedwards/argon2id"
	"github.com/diagnosis/staycheck/internal/utils"
	"github.com/diagnosis/staycheck/pkg/auth"
	"github.com/diagnosis/staycheck/pkg/events"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
)

type AdminService interface {
	Login(ctx context.Context, req *domain.LoginReq) (*domain.HostSession, error)

	CreateProperty(ctx context.Context, req *domain.CreatePropertyReq) (*domain.Property, error)
	ListProperties(ctx context.Context) ([]domain.Property, error)

	CreateGuest(ctx context.Context, req *domain.CreateGuestReq) (*domain.Guest, error)
	ListGuests(ctx context.Context, propertyID string) ([]domain.Guest, error)
	GetGuest(ctx context.Context, id string) (*domain.Guest, error)
	MagicLink(ctx context.Context, guestID string) (*domain.MagicLink, error)
	SendMagicLink(ctx context.Context, guestID string) (*domain.MagicLink, error)

	CreateQuestion(ctx context.Context, req *domain.CreateQuestionReq) (*domain.CheckInQuestion, error)
	ListQuestions(ctx context.Context, propertyID string) ([]domain.CheckInQuestion, error)
	CreateAnswer(ctx context.Context, questionID string, req *domain.CreateAnswerReq) (*domain.QuestionAnswer, error)
	ListAnswers(ctx context.Context, questionID string) ([]domain.QuestionAnswer, error)

	CreateInstructionPage(ctx context.Context, req *domain.CreateInstructionPageReq) (*domain.InstructionPage, error)
	ListInstructionPages(ctx context.Context, propertyID string) ([]domain.InstructionPage, error)
	GetInstructionPage(ctx context.Context, id string) (*domain.InstructionPage, error)
	AppendStep(ctx context.Context, pageID string, in *domain.StepInput) (*domain.InstructionPage, error)
	UpdateStep(ctx context.Context, pageID string, index int, patch *domain.StepPatch) (*domain.InstructionPage, error)
	RemoveStep(ctx context.Context, pageID string, index int) (*domain.InstructionPage, error)
	MoveStep(ctx context.Context, pageID string, index int, dir domain.MoveDirection) (*domain.InstructionPage, error)
}

type adminService struct {
	*Deps
}

func NewAdminService(deps *Deps) AdminService {
	return &adminService{Deps: deps}
}

func (s *adminService) Login(ctx context.Context, req *domain.LoginReq) (*domain.HostSession, error) {
	email := utils.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, validationError("email and password are required")
	}

	authCfg := s.Config.Auth
	if authCfg.AdminPasswordHash == "" {
		logger.WarnContext(ctx, "Host login attempted but ADMIN_PASSWORD_HASH is not set")
		return nil, ErrInvalidCredentials
	}
	if email != utils.NormalizeEmail(authCfg.AdminEmail) {
		return nil, ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(req.Password, authCfg.AdminPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("compare password hash: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewHostSession(email, authCfg.JWTSecret, authCfg.AdminSessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create host session: %w", err)
	}

	return &domain.HostSession{
		Token:     token,
		ExpiresIn: int64(authCfg.AdminSessionTTL.Seconds()),
	}, nil
}

func (s *adminService) CreateProperty(ctx context.Context, req *domain.CreatePropertyReq) (*domain.Property, error) {
	req.Name = utils.NormalizeString(req.Name)
	req.Address = utils.NormalizeString(req.Address)
	req.Description = utils.NormalizeString(req.Description)
	if req.Name == "" || req.Address == "" {
		return nil, validationError("name and address are required")
	}

	defer s.lock()()

	properties, err := s.Collections.LoadProperties(ctx)
	if err != nil {
		return nil, err
	}

	property := s.Factory.NewProperty(*req)
	if err := s.Collections.SaveProperties(ctx, append(properties, property)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.PropertyCreated, events.PropertyCreatedEvent{
		PropertyID: property.ID,
		Name:       property.Name,
		CreatedAt:  property.CreatedAt,
	})

	return &property, nil
}

func (s *adminService) ListProperties(ctx context.Context) ([]domain.Property, error) {
	return s.Collections.LoadProperties(ctx)
}

func (s *adminService) CreateGuest(ctx context.Context, req *domain.CreateGuestReq) (*domain.Guest, error) {
	req.Name = utils.NormalizeString(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	req.Phone = utils.NormalizeString(req.Phone)
	req.CheckInDate = utils.NormalizeString(req.CheckInDate)
	req.CheckOutDate = utils.NormalizeString(req.CheckOutDate)

	if err := validateGuest(req); err != nil {
		return nil, err
	}

	defer s.lock()()

	properties, err := s.Collections.LoadProperties(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindProperty(properties, req.PropertyID); !ok {
		return nil, validationError("property does not exist")
	}

	guests, err := s.Collections.LoadGuests(ctx)
	if err != nil {
		return nil, err
	}

	guest := s.Factory.NewGuest(*req)
	if err := s.Collections.SaveGuests(ctx, append(guests, guest)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.GuestCreated, events.GuestCreatedEvent{
		GuestID:     guest.ID,
		PropertyID:  guest.PropertyID,
		Email:       guest.Email,
		CheckInDate: guest.CheckInDate,
		CreatedAt:   guest.CreatedAt,
	})

	return &guest, nil
}

func validateGuest(req *domain.CreateGuestReq) error {
	switch {
	case req.Name == "":
		return validationError("name is required")
	case !utils.IsValidEmail(req.Email):
		return validationError("a valid email is required")
	case req.Phone != "" && !utils.IsValidPhone(req.Phone):
		return validationError("phone number is invalid")
	case req.PropertyID == "":
		return validationError("property_id is required")
	case !utils.IsValidDate(req.CheckInDate):
		return validationError("check_in_date must be YYYY-MM-DD")
	case !utils.IsValidDate(req.CheckOutDate):
		return validationError("check_out_date must be YYYY-MM-DD")
	case req.CheckOutDate < req.CheckInDate:
		return validationError("check_out_date must not be before check_in_date")
	}
	return nil
}

func (s *adminService) ListGuests(ctx context.Context, propertyID string) ([]domain.Guest, error) {
	guests, err := s.Collections.LoadGuests(ctx)
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return guests, nil
	}

	out := make([]domain.Guest, 0, len(guests))
	for _, g := range guests {
		if g.PropertyID == propertyID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *adminService) GetGuest(ctx context.Context, id string) (*domain.Guest, error) {
	guests, err := s.Collections.LoadGuests(ctx)
	if err != nil {
		return nil, err
	}
	guest, ok := domain.FindGuest(guests, id)
	if !ok {
		return nil, fmt.Errorf("guest %s: %w", id, ErrNotFound)
	}
	return guest, nil
}

func (s *adminService) MagicLink(ctx context.Context, guestID string) (*domain.MagicLink, error) {
	guest, err := s.GetGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}
	return &domain.MagicLink{GuestID: guest.ID, Link: s.buildMagicLink(guest.MagicToken)}, nil
}

// SendMagicLink hands the link to the notify service for email delivery.
func (s *adminService) SendMagicLink(ctx context.Context, guestID string) (*domain.MagicLink, error) {
	guest, err := s.GetGuest(ctx, guestID)
	if err != nil {
		return nil, err
	}

	properties, err := s.Collections.LoadProperties(ctx)
	if err != nil {
		return nil, err
	}
	propertyName := ""
	if p, ok := domain.FindProperty(properties, guest.PropertyID); ok {
		propertyName = p.Name
	}

	link := &domain.MagicLink{GuestID: guest.ID, Link: s.buildMagicLink(guest.MagicToken)}
	if s.Events == nil {
		return nil, fmt.Errorf("no event publisher configured")
	}
	err = s.Events.Publish(ctx, events.MagicLinkRequested, events.MagicLinkRequestedEvent{
		GuestID:      guest.ID,
		GuestName:    guest.Name,
		Email:        guest.Email,
		PropertyName: propertyName,
		CheckInDate:  guest.CheckInDate,
		Link:         link.Link,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request magic link email: %w", err)
	}

	return link, nil
}

func (s *adminService) buildMagicLink(token string) string {
	base := strings.TrimRight(s.Config.App.PublicURL, "/")
	return base + "?token=" + url.QueryEscape(token)
}

func (s *adminService) CreateQuestion(ctx context.Context, req *domain.CreateQuestionReq) (*domain.CheckInQuestion, error) {
	req.Question = utils.NormalizeString(req.Question)
	if req.Question == "" || req.PropertyID == "" {
		return nil, validationError("property_id and question are required")
	}

	defer s.lock()()

	properties, err := s.Collections.LoadProperties(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindProperty(properties, req.PropertyID); !ok {
		return nil, validationError("property does not exist")
	}

	questions, err := s.Collections.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if _, exists := domain.FirstQuestionFor(questions, req.PropertyID); exists {
		logger.WarnContext(ctx, "Property already has a question; guests will keep seeing the first one", "property_id", req.PropertyID)
	}

	question := s.Factory.NewQuestion(*req)
	if err := s.Collections.SaveQuestions(ctx, append(questions, question)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.QuestionCreated, events.CatalogEvent{
		ID:         question.ID,
		PropertyID: question.PropertyID,
		At:         question.CreatedAt,
	})

	return &question, nil
}

func (s *adminService) ListQuestions(ctx context.Context, propertyID string) ([]domain.CheckInQuestion, error) {
	questions, err := s.Collections.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return questions, nil
	}

	out := make([]domain.CheckInQuestion, 0, len(questions))
	for _, q := range questions {
		if q.PropertyID == propertyID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *adminService) CreateAnswer(ctx context.Context, questionID string, req *domain.CreateAnswerReq) (*domain.QuestionAnswer, error) {
	req.AnswerText = utils.NormalizeString(req.AnswerText)
	if req.AnswerText == "" {
		return nil, validationError("answer_text is required")
	}

	defer s.lock()()

	questions, err := s.Collections.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindQuestion(questions, questionID); !ok {
		return nil, fmt.Errorf("question %s: %w", questionID, ErrNotFound)
	}

	if pageID, linked := req.InstructionPageID.PageID(); linked {
		pages, err := s.Collections.LoadInstructionPages(ctx)
		if err != nil {
			return nil, err
		}
		if _, ok := domain.FindInstructionPage(pages, pageID); !ok {
			return nil, validationError("instruction_page_id does not exist")
		}
	}

	answers, err := s.Collections.LoadAnswers(ctx)
	if err != nil {
		return nil, err
	}

	answer := s.Factory.NewAnswer(questionID, *req)
	if err := s.Collections.SaveAnswers(ctx, append(answers, answer)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.AnswerCreated, events.CatalogEvent{
		ID:       answer.ID,
		ParentID: questionID,
		At:       answer.CreatedAt,
	})

	return &answer, nil
}

func (s *adminService) ListAnswers(ctx context.Context, questionID string) ([]domain.QuestionAnswer, error) {
	questions, err := s.Collections.LoadQuestions(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindQuestion(questions, questionID); !ok {
		return nil, fmt.Errorf("question %s: %w", questionID, ErrNotFound)
	}

	answers, err := s.Collections.LoadAnswers(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AnswersFor(answers, questionID), nil
}

func (s *adminService) CreateInstructionPage(ctx context.Context, req *domain.CreateInstructionPageReq) (*domain.InstructionPage, error) {
	req.Title = utils.NormalizeString(req.Title)
	if req.Title == "" || req.PropertyID == "" {
		return nil, validationError("property_id and title are required")
	}
	for i := range req.Steps {
		if err := normalizeStep(&req.Steps[i]); err != nil {
			return nil, err
		}
	}

	defer s.lock()()

	properties, err := s.Collections.LoadProperties(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := domain.FindProperty(properties, req.PropertyID); !ok {
		return nil, validationError("property does not exist")
	}

	pages, err := s.Collections.LoadInstructionPages(ctx)
	if err != nil {
		return nil, err
	}

	page := s.Factory.NewInstructionPage(*req)
	if err := s.Collections.SaveInstructionPages(ctx, append(pages, page)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.InstructionPageCreated, events.CatalogEvent{
		ID:         page.ID,
		PropertyID: page.PropertyID,
		At:         page.CreatedAt,
	})

	return &page, nil
}

func normalizeStep(in *domain.StepInput) error {
	in.Title = utils.NormalizeString(in.Title)
	in.Description = utils.NormalizeString(in.Description)
	in.ImageURL = utils.NormalizeString(in.ImageURL)
	if in.Title == "" {
		return validationError("every step needs a title")
	}
	return nil
}

func normalizeStepPatch(p *domain.StepPatch) error {
	for _, field := range []*string{p.Title, p.Description, p.ImageURL} {
		if field != nil {
			*field = utils.NormalizeString(*field)
		}
	}
	if p.Title != nil && *p.Title == "" {
		return validationError("step title cannot be empty")
	}
	return nil
}

func (s *adminService) ListInstructionPages(ctx context.Context, propertyID string) ([]domain.InstructionPage, error) {
	pages, err := s.Collections.LoadInstructionPages(ctx)
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return pages, nil
	}

	out := make([]domain.InstructionPage, 0, len(pages))
	for _, p := range pages {
		if p.PropertyID == propertyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *adminService) GetInstructionPage(ctx context.Context, id string) (*domain.InstructionPage, error) {
	pages, err := s.Collections.LoadInstructionPages(ctx)
	if err != nil {
		return nil, err
	}
	page, ok := domain.FindInstructionPage(pages, id)
	if !ok {
		return nil, fmt.Errorf("instruction page %s: %w", id, ErrNotFound)
	}
	return page, nil
}

func (s *adminService) AppendStep(ctx context.Context, pageID string, in *domain.StepInput) (*domain.InstructionPage, error) {
	if err := normalizeStep(in); err != nil {
		return nil, err
	}
	return s.editSteps(ctx, pageID, func(steps domain.StepList) (domain.StepList, error) {
		return steps.Append(s.Factory.NewStep(*in)), nil
	})
}

func (s *adminService) UpdateStep(ctx context.Context, pageID string, index int, patch *domain.StepPatch) (*domain.InstructionPage, error) {
	if err := normalizeStepPatch(patch); err != nil {
		return nil, err
	}
	return s.editSteps(ctx, pageID, func(steps domain.StepList) (domain.StepList, error) {
		return steps.Update(index, *patch)
	})
}

func (s *adminService) RemoveStep(ctx context.Context, pageID string, index int) (*domain.InstructionPage, error) {
	return s.editSteps(ctx, pageID, func(steps domain.StepList) (domain.StepList, error) {
		return steps.RemoveAt(index)
	})
}

func (s *adminService) MoveStep(ctx context.Context, pageID string, index int, dir domain.MoveDirection) (*domain.InstructionPage, error) {
	return s.editSteps(ctx, pageID, func(steps domain.StepList) (domain.StepList, error) {
		return steps.Move(index, dir), nil
	})
}

// editSteps applies edit to a stored page and replaces it in place.
func (s *adminService) editSteps(ctx context.Context, pageID string, edit func(domain.StepList) (domain.StepList, error)) (*domain.InstructionPage, error) {
	defer s.lock()()

	pages, err := s.Collections.LoadInstructionPages(ctx)
	if err != nil {
		return nil, err
	}
	page, ok := domain.FindInstructionPage(pages, pageID)
	if !ok {
		return nil, fmt.Errorf("instruction page %s: %w", pageID, ErrNotFound)
	}

	steps, err := edit(page.Steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	page.Steps = steps

	updated, _ := domain.ReplaceInstructionPage(pages, *page)
	if err := s.Collections.SaveInstructionPages(ctx, updated); err != nil {
		return nil, err
	}

	s.publish(ctx, events.InstructionPageUpdated, events.CatalogEvent{
		ID:         page.ID,
		PropertyID: page.PropertyID,
		At:         s.Now().UTC(),
	})

	return page, nil
}
