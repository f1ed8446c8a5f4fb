package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/northpine-labs/linkvault-back/internal/config"
	"github.com/northpine-labs/linkvault-back/internal/db"
)

const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type (
	Claims struct {
		Username string `json:"username"`
		jwt.RegisteredClaims
	}

	Service struct {
		db     *gorm.DB
		secret []byte
		cost   int
		logger *zap.SugaredLogger
	}
)

func NewService(cfg *config.Config, db *gorm.DB, l *zap.SugaredLogger) *Service {
	return &Service{
		db:     db,
		secret: []byte(cfg.JWTSecret),
		cost:   cfg.BcryptCost,
		logger: l,
	}
}

func (s *Service) HashPassword(pass string) (string, error) {
	hashB, err := bcrypt.GenerateFromPassword([]byte(pass), s.cost)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(hashB), nil
}

func (s *Service) VerifyPassword(pass, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass)) == nil
}

func (s *Service) IssueToken(userID uint64, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// ValidateToken checks signature and expiry, then confirms the referenced
// user still exists. Deleting a user therefore kills every token issued to
// them, even ones that have not expired yet.
func (s *Service) ValidateToken(tokenString string) (*db.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user := db.User{}
	res := s.db.First(&user, userID)
	if res.Error != nil {
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			s.logger.Errorw("load user for token", "error", res.Error)
		}
		return nil, ErrInvalidToken
	}

	return &user, nil
}
