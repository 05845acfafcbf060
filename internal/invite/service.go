package invite

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grupoclick/clickcheck/internal/user"
)

const defaultExpiryDays = 7

var (
	ErrEmailRequired = errors.New("email is required")
	ErrTokenRequired = errors.New("token is required")
	ErrActiveInvite  = errors.New("email already has an active invite")
	ErrUserExists    = errors.New("user is already registered")
	ErrNotFound      = errors.New("invite not found")
)

type Service interface {
	List() ([]InviteResponse, error)
	Create(invitedBy string, dto CreateInviteDTO) (*CreatedInviteResponse, error)
	Verify(token string) (*VerifyResponse, error)
	RedeemForEmail(email string) (user.AdminLevel, bool, error)
	Delete(id uuid.UUID) error
}

type service struct {
	repo  Repository
	users user.UserRepository
}

func NewService(repo Repository, users user.UserRepository) Service {
	return &service{repo: repo, users: users}
}

func (s *service) List() ([]InviteResponse, error) {
	invites, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]InviteResponse, 0, len(invites))
	for _, i := range invites {
		responses = append(responses, InviteResponse{
			ID:         i.ID,
			Email:      i.Email,
			AdminLevel: i.AdminLevel,
			InvitedBy:  i.InvitedBy,
			UsedAt:     i.UsedAt,
			ExpiresAt:  i.ExpiresAt,
			CreatedAt:  i.CreatedAt,
			Status:     i.Status(now),
		})
	}
	return responses, nil
}

func (s *service) Create(invitedBy string, dto CreateInviteDTO) (*CreatedInviteResponse, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	adminLevel := dto.AdminLevel
	if !adminLevel.IsValid() {
		adminLevel = user.AdminLevelUser
	}
	expiryDays := defaultExpiryDays
	if dto.ExpiresIn != nil && *dto.ExpiresIn > 0 {
		expiryDays = *dto.ExpiresIn
	}

	active, err := s.repo.FindActiveByEmail(email)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrActiveInvite
	}

	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	inv := &Invite{
		Email:      email,
		Token:      token,
		AdminLevel: adminLevel,
		InvitedBy:  invitedBy,
		ExpiresAt:  time.Now().AddDate(0, 0, expiryDays),
	}
	if err := s.repo.Create(inv); err != nil {
		return nil, err
	}

	return &CreatedInviteResponse{
		Email:     email,
		Token:     token,
		InviteURL: inviteURL(token),
		ExpiresAt: inv.ExpiresAt,
	}, nil
}

func (s *service) Verify(token string) (*VerifyResponse, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	inv, err := s.repo.FindByToken(token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	switch inv.Status(time.Now()) {
	case "used":
		return &VerifyResponse{Valid: false, Error: "invite has already been used"}, nil
	case "expired":
		return &VerifyResponse{Valid: false, Error: "invite has expired"}, nil
	}

	return &VerifyResponse{
		Valid:      true,
		Email:      inv.Email,
		AdminLevel: inv.AdminLevel,
		ExpiresAt:  &inv.ExpiresAt,
	}, nil
}

// RedeemForEmail consumes the email's pending invite when the invitee
// first signs in, so login can apply the invited admin level. ok is
// false when no pending invite exists.
func (s *service) RedeemForEmail(email string) (user.AdminLevel, bool, error) {
	inv, err := s.repo.FindActiveByEmail(email)
	if err != nil {
		return "", false, err
	}
	if inv == nil {
		return "", false, nil
	}
	if err := s.repo.MarkUsed(inv.ID, time.Now()); err != nil {
		return "", false, err
	}
	return inv.AdminLevel, true, nil
}

func (s *service) Delete(id uuid.UUID) error {
	return s.repo.Delete(id)
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func inviteURL(token string) string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/invite?token=%s", strings.TrimRight(base, "/"), token)
}
