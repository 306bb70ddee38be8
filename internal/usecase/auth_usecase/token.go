package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
	TokenReset   TokenKind = "reset"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// subはメールアドレス
type Claims struct {
	TokenType TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type TokenConfig struct {
	Secret     string
	Algorithm  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
}

// 共有シークレットで署名したJWTを発行・検証する
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	parser *jwt.Parser
	clock  Clock
	ttl    map[TokenKind]time.Duration
}

func NewTokenService(cfg TokenConfig, clock Clock) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.Algorithm)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenService{
		secret: []byte(cfg.Secret),
		method: method,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
		clock: clock,
		ttl: map[TokenKind]time.Duration{
			TokenAccess:  cfg.AccessTTL,
			TokenRefresh: cfg.RefreshTTL,
			TokenReset:   cfg.ResetTTL,
		},
	}, nil
}

// ttlが0なら発行した瞬間に期限切れ
func (s *TokenService) Issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	if ttl < 0 {
		ttl = 0
	}
	now := s.clock.Now()
	claims := Claims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// 設定された有効期限で発行
func (s *TokenService) IssueKind(subject string, kind TokenKind) (string, error) {
	return s.Issue(subject, kind, s.ttl[kind])
}

func (s *TokenService) TTL(kind TokenKind) time.Duration {
	return s.ttl[kind]
}

// 署名→期限の順に検証する。期限切れと不正は別のエラー
func (s *TokenService) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := s.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// 種類が違うトークンはErrTokenInvalid
func (s *TokenService) VerifyKind(raw string, kind TokenKind) (*Claims, error) {
	claims, err := s.Verify(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != kind || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
