package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"hostel-shop-api/models"
	"hostel-shop-api/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Claims bound into every admin token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

// UserIdentity is what protected routes learn about the caller.
type UserIdentity struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

// IdentityService issues and verifies stateless bearer tokens. There is no
// revocation: a token stays valid until it expires.
type IdentityService struct {
	store  store.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIdentityService(st store.Store, secret string, ttl time.Duration) *IdentityService {
	return &IdentityService{
		store:  st,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares in constant time.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// dummyHash is compared against when the email is unknown so both failure
// paths pay for a bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	hash, _ := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	return string(hash)
})

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	err := s.store.FindOne(ctx, models.UsersCollection, store.Where(store.Eq("email", normalizeEmail(email))), &user)
	if errors.Is(err, store.ErrNotFound) {
		VerifyPassword(password, dummyHash())
		return nil, &AuthError{Kind: AuthInvalidCredentials}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, &AuthError{Kind: AuthInvalidCredentials}
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user.ToUserInfo()}, nil
}

// IssueToken signs an HS256 token valid for the configured TTL from now.
func (s *IdentityService) IssueToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *IdentityService) Authenticate(ctx context.Context, token string) (*UserIdentity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &AuthError{Kind: AuthExpired}
		}
		return nil, &AuthError{Kind: AuthInvalid}
	}
	if claims.UserID == "" {
		return nil, &AuthError{Kind: AuthInvalid}
	}

	var user models.User
	err = s.store.FindOne(ctx, models.UsersCollection, store.ByID(claims.UserID), &user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &AuthError{Kind: AuthUserNotFound}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &UserIdentity{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin}, nil
}
