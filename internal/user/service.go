package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/grupoclick/clickcheck/internal/auth"
	"github.com/grupoclick/clickcheck/internal/config"
	"github.com/grupoclick/clickcheck/internal/permission"
)

const tokenTTL = 7 * 24 * time.Hour

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailTaken    = errors.New("a user with this email already exists")
	ErrNotFound      = errors.New("user not found")
	ErrSelfDelete    = errors.New("you cannot delete your own account")
)

type Service interface {
	AuthCodeURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*LoginResponse, error)
	IssueToken(u *User) (string, error)
	Me(userID uuid.UUID) (*UserResponse, error)
	List() ([]UserResponse, error)
	Create(dto CreateUserDTO) (*UserResponse, error)
	Update(id uuid.UUID, dto UpdateUserDTO) error
	Delete(id uuid.UUID, callerID uuid.UUID) error
	Directory() ([]DirectoryEntry, error)
}

// InviteRedeemer consumes a pending invite for an email on first login,
// yielding the invited admin level.
type InviteRedeemer interface {
	RedeemForEmail(email string) (AdminLevel, bool, error)
}

type service struct {
	repo    UserRepository
	invites InviteRedeemer
}

func NewService(repo UserRepository, invites InviteRedeemer) Service {
	return &service{repo: repo, invites: invites}
}

func (s *service) AuthCodeURL(state string) string {
	return authCodeURL(state)
}

// LoginWithGoogle exchanges the OAuth code, upserts the user by email
// and issues an API token.
func (s *service) LoginWithGoogle(ctx context.Context, code string) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	cfg := oauthConfig()
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Error("Google code exchange failed")
		return nil, err
	}

	gu, err := fetchGoogleUser(ctx, cfg, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, err
	}

	u, err := s.repo.FindByEmail(gu.Email)
	if err != nil {
		return nil, err
	}

	if u == nil {
		u = &User{
			Email:          strings.ToLower(gu.Email),
			FullName:       gu.Name,
			GoogleID:       gu.ID,
			ProfilePicture: gu.Picture,
			AdminLevel:     s.invitedAdminLevel(log, gu.Email),
			Profile:        permission.ProfileValidator,
		}
		if err := s.repo.Create(u); err != nil {
			return nil, err
		}
		log.WithField("email", u.Email).Info("Created user from Google login")
	} else if u.GoogleID == "" || u.ProfilePicture == "" {
		if u.GoogleID == "" {
			u.GoogleID = gu.ID
		}
		if u.ProfilePicture == "" {
			u.ProfilePicture = gu.Picture
		}
		if err := s.repo.Update(u); err != nil {
			return nil, err
		}
	}

	apiToken, err := s.IssueToken(u)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: apiToken, User: s.toResponse(u)}, nil
}

// invitedAdminLevel consumes a pending invite for the email, defaulting
// to a regular account when none exists or the lookup fails.
func (s *service) invitedAdminLevel(log *logrus.Entry, email string) AdminLevel {
	if s.invites == nil {
		return AdminLevelUser
	}
	level, ok, err := s.invites.RedeemForEmail(email)
	if err != nil {
		log.WithError(err).Warn("Failed to redeem invite during login")
		return AdminLevelUser
	}
	if !ok {
		return AdminLevelUser
	}
	return level
}

func (s *service) IssueToken(u *User) (string, error) {
	return auth.GenerateJWT(u.ID.String(), string(u.AdminLevel), tokenTTL)
}

func (s *service) Me(userID uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return s.toResponse(u), nil
}

func (s *service) List() ([]UserResponse, error) {
	users, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *s.toResponse(&users[i]))
	}
	return responses, nil
}

func (s *service) Create(dto CreateUserDTO) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}

	existing, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	profile := dto.Profile
	if !profile.IsValid() {
		profile = permission.ProfileValidator
	}

	perms := permission.ForProfile(profile)
	if dto.Permissions != nil {
		perms = *dto.Permissions
	}
	rawPerms, err := json.Marshal(perms)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:       email,
		FullName:    dto.FullName,
		AdminLevel:  AdminLevelUser,
		Profile:     profile,
		Permissions: rawPerms,
	}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}

	return s.toResponse(u), nil
}

func (s *service) Update(id uuid.UUID, dto UpdateUserDTO) error {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}

	if dto.FullName != nil {
		u.FullName = *dto.FullName
	}
	if dto.Nickname != nil {
		u.Nickname = *dto.Nickname
	}
	if dto.ManagerID != nil {
		if *dto.ManagerID == "" {
			u.ManagerID = nil
		} else {
			managerID, err := uuid.Parse(*dto.ManagerID)
			if err != nil {
				return errors.New("invalid manager_id")
			}
			u.ManagerID = &managerID
		}
	}
	if dto.Profile != nil {
		if !dto.Profile.IsValid() {
			return errors.New("invalid profile")
		}
		u.Profile = *dto.Profile
	}
	if dto.Permissions != nil {
		rawPerms, err := json.Marshal(dto.Permissions)
		if err != nil {
			return err
		}
		u.Permissions = rawPerms
	}

	return s.repo.Update(u)
}

func (s *service) Delete(id uuid.UUID, callerID uuid.UUID) error {
	if id == callerID {
		return ErrSelfDelete
	}
	return s.repo.Delete(id)
}

func (s *service) Directory() ([]DirectoryEntry, error) {
	users, err := s.repo.ListDirectory()
	if err != nil {
		return nil, err
	}

	entries := make([]DirectoryEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, DirectoryEntry{
			ID:             u.ID,
			Email:          u.Email,
			FullName:       u.FullName,
			Nickname:       u.Nickname,
			ProfilePicture: u.ProfilePicture,
			Profile:        u.Profile,
			AdminLevel:     u.AdminLevel,
			ManagerID:      u.ManagerID,
		})
	}
	return entries, nil
}

func (s *service) toResponse(u *User) *UserResponse {
	r := ToResponse(u)
	return &r
}
