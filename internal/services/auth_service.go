package services

import (
	"context"
	cryptorand "crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/campusrfid/ledger/internal/config"
	"github.com/campusrfid/ledger/internal/models"
	"github.com/campusrfid/ledger/internal/repositories"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/argon2"
)

var errInvalidToken = errors.New("invalid session token")

// AuthService authenticates accounts and issues session tokens.
type AuthService struct {
	accounts       *repositories.AccountRepository
	redis          *redis.Client
	jwt            config.JWTConfig
	argon          config.Argon2Config
	defaultBalance decimal.Decimal
	now            func() time.Time
}

type sessionClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(accounts *repositories.AccountRepository, redisClient *redis.Client, jwtCfg config.JWTConfig, argonCfg config.Argon2Config, ledgerCfg config.LedgerConfig) *AuthService {
	return &AuthService{
		accounts:       accounts,
		redis:          redisClient,
		jwt:            jwtCfg,
		argon:          argonCfg,
		defaultBalance: ledgerCfg.DefaultBalance,
		now:            time.Now,
	}
}

// Authenticate matches email and password. Unapproved accounts are refused
// with ErrPendingApproval even when the password is right.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	acc, err := s.accounts.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Printf("[AUTH] No account for email: %s", email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if !s.verifyPassword(password, acc.PasswordHash) {
		log.Printf("[AUTH] Invalid password for account: %d", acc.ID)
		return nil, ErrInvalidCredentials
	}

	if !acc.Approved {
		log.Printf("[AUTH] Login refused, account %d pending approval", acc.ID)
		return nil, ErrPendingApproval
	}

	return acc, nil
}

// Register creates an unapproved user account with the default balance.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.Account, error) {
	hashed, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &models.Account{
		Email:        strings.TrimSpace(email),
		PasswordHash: hashed,
		Role:         models.RoleUser,
		Approved:     false,
		Balance:      s.defaultBalance,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Printf("[AUTH] Account registered - ID: %d, Email: %s", acc.ID, acc.Email)
	return acc, nil
}

// EnsureAdmin seeds the bootstrap admin (approved, zero balance) when no admin
// account exists yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	exists, err := s.accounts.AdminExists(ctx)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Account{
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		Approved:     true,
		Balance:      decimal.Zero,
	}
	if err := s.accounts.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Printf("[AUTH] Seeded admin account %s (ID: %d)", admin.Email, admin.ID)
	return nil
}

// IssueSession signs a session token for acc.
func (s *AuthService) IssueSession(acc *models.Account) (string, *models.Session, error) {
	now := s.now()
	session := &models.Session{
		AccountID: acc.ID,
		Role:      acc.Role,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(s.jwt.Expiry).Truncate(time.Second),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		UserID: acc.ID,
		Role:   string(acc.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.TokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	signed, err := token.SignedString([]byte(s.jwt.SecretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// ValidateSession parses a session token and rejects revoked ones.
func (s *AuthService) ValidateSession(ctx context.Context, tokenString string) (*models.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(s.jwt.SecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	role := models.Role(claims.Role)
	if claims.UserID == 0 || (role != models.RoleAdmin && role != models.RoleUser) {
		return nil, errInvalidToken
	}

	if s.redis != nil {
		n, err := s.redis.Exists(ctx, blacklistKey(claims.ID)).Result()
		if err != nil {
			log.Printf("[AUTH] Blacklist lookup failed: %v", err)
		} else if n > 0 {
			return nil, errInvalidToken
		}
	}

	return &models.Session{
		AccountID: claims.UserID,
		Role:      role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RevokeSession blacklists the token until it would have expired anyway.
func (s *AuthService) RevokeSession(ctx context.Context, session *models.Session) {
	if s.redis == nil || session == nil || session.TokenID == "" {
		return
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	if err := s.redis.Set(ctx, blacklistKey(session.TokenID), "1", ttl).Err(); err != nil {
		log.Printf("[AUTH] Failed to blacklist token: %v", err)
	}
}

func blacklistKey(tokenID string) string {
	return fmt.Sprintf("blacklist:%s", tokenID)
}

func (s *AuthService) hashPassword(password string) (string, error) {
	salt := make([]byte, s.argon.SaltLength)
	if _, err := cryptorand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, s.argon.Time, s.argon.Memory, s.argon.Threads, s.argon.KeyLength)
	return fmt.Sprintf("%s$%s", base64.StdEncoding.EncodeToString(salt), base64.StdEncoding.EncodeToString(hash)), nil
}

func (s *AuthService) verifyPassword(password, hashedPassword string) bool {
	parts := strings.Split(hashedPassword, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}

	hash, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	computedHash := argon2.IDKey([]byte(password), salt, s.argon.Time, s.argon.Memory, s.argon.Threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(hash, computedHash) == 1
}
