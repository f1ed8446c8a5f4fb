package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/auth"
	"github.com/northpine-labs/linkvault-back/internal/db"
)

type UserService struct {
	db     *gorm.DB
	repo   *Repository[db.User]
	auth   *auth.Service
	logger *zap.SugaredLogger
}

func NewUserService(g *gorm.DB, a *auth.Service, l *zap.SugaredLogger) *UserService {
	return &UserService{
		db:     g,
		repo:   NewRepository[db.User](g, "user", l),
		auth:   a,
		logger: l,
	}
}

func (s *UserService) All(ctx context.Context) ([]db.User, error) {
	return s.repo.All(ctx)
}

func (s *UserService) ByID(ctx context.Context, id uint64) (*db.User, error) {
	return s.repo.ByID(ctx, id)
}

// Register stores the bcrypt hash of the password; the plaintext never
// reaches the database.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*db.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, invalid("username, email, and password are required")
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	model := db.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", ErrLoginUserNotFound
		}
		return "", errors.Wrap(res.Error, "find user")
	}

	if !s.auth.VerifyPassword(password, user.PasswordHash) {
		return "", ErrLoginPasswordDoesNotMatch
	}

	return s.auth.IssueToken(user.ID, user.Username)
}

func (s *UserService) Update(ctx context.Context, id uint64, username, email, password *string) (*db.User, error) {
	fields := map[string]interface{}{}
	if username != nil {
		fields["username"] = *username
	}
	if email != nil {
		fields["email"] = *email
	}
	if password != nil {
		hash, err := s.auth.HashPassword(*password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *UserService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}
