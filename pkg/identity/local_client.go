package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dispatch/entities"
)

type local struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time
}

type LocalOption func(*local)

func WithBcryptCost(cost int) LocalOption { return func(l *local) { l.cost = cost } }

func WithClock(now func() time.Time) LocalOption { return func(l *local) { l.now = now } }

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewLocal keeps credentials in the service database and issues HS256
// tokens. An empty secret gets a random one, so tokens die with the process.
func NewLocal(db *gorm.DB, secret string, ttl time.Duration, opts ...LocalOption) Provider {
	l := &local{db: db, secret: []byte(secret), ttl: ttl, cost: bcrypt.DefaultCost, now: time.Now}
	if len(l.secret) == 0 {
		l.secret = make([]byte, 32)
		_, _ = rand.Read(l.secret)
	}
	if l.ttl <= 0 {
		l.ttl = 24 * time.Hour
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *local) Resolve(ctx context.Context, token string) (*Identity, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) { return l.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(l.now),
		jwt.WithIssuer("dispatch"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	var cred entities.Credential
	if err := l.db.WithContext(ctx).First(&cred, "id = ?", c.Subject).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &Identity{ID: cred.ID, Email: cred.Email}, nil
}

func (l *local) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var cred entities.Credential
	err := l.db.WithContext(ctx).First(&cred, "email = ?", normEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := l.now()
	exp := now.Add(l.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			Issuer:    "dispatch",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(l.secret)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: signed, ExpiresAt: exp, User: Identity{ID: cred.ID, Email: cred.Email}}, nil
}

func (l *local) CreateUser(ctx context.Context, in NewUser) (*Identity, error) {
	email := normEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, &APIError{Status: 400, Message: "email and password are required"}
	}
	var n int64
	if err := l.db.WithContext(ctx).Model(&entities.Credential{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), l.cost)
	if err != nil {
		return nil, &APIError{Status: 400, Message: err.Error(), Err: err}
	}
	cred := entities.Credential{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	if err := l.db.WithContext(ctx).Create(&cred).Error; err != nil {
		return nil, err
	}
	return &Identity{ID: cred.ID, Email: cred.Email}, nil
}

func (l *local) DeleteUser(ctx context.Context, id string) error {
	res := l.db.WithContext(ctx).Delete(&entities.Credential{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func normEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
