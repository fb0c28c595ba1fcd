package service

import (
	"strings"

	"turftrack/internal/model"
	"turftrack/internal/repository"
)

// ContactInput carries a contact-form submission
type ContactInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmittedURL string `json:"submitted_url"`
}

// ContactService stores contact-form submissions. Email dispatch is handled
// elsewhere (and is best-effort by policy); intake never depends on it.
type ContactService interface {
	Submit(input ContactInput, ipAddress, userAgent string) (*model.ContactMessage, error)
	List() ([]model.ContactMessage, error)
}

// contactService implements ContactService
type contactService struct {
	repo repository.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(input ContactInput, ipAddress, userAgent string) (*model.ContactMessage, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, model.ValidationErrorf("name is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.ValidationErrorf("a valid email is required")
	}
	if strings.TrimSpace(input.Subject) == "" {
		return nil, model.ValidationErrorf("subject is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, model.ValidationErrorf("message is required")
	}

	msg := &model.ContactMessage{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Subject:      strings.TrimSpace(input.Subject),
		Message:      input.Message,
		SubmittedURL: input.SubmittedURL,
		IPAddress:    ipAddress,
		UserAgent:    userAgent,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *contactService) List() ([]model.ContactMessage, error) {
	return s.repo.List()
}
