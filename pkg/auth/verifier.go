package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

var ErrNoKeySource = errors.New("auth: neither a shared secret nor a JWKS url is configured")

// Config selects how access tokens are verified. Secret enables HS256,
// JWKSURL enables RS256; both may be set at once.
type Config struct {
	Secret  string
	Issuer  string
	JWKSURL string
	Leeway  time.Duration

	// HTTPClient fetches the JWKS document; defaults to a 5s-timeout client.
	HTTPClient *http.Client
}

// Verifier validates access tokens issued by the auth service and extracts
// their subject.
type Verifier struct {
	secret   []byte
	issuer   string
	leeway   time.Duration
	provider *Provider
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	jwksURL := strings.TrimSpace(cfg.JWKSURL)
	if secret == "" && jwksURL == "" {
		return nil, ErrNoKeySource
	}

	v := &Verifier{
		issuer: strings.TrimSpace(cfg.Issuer),
		leeway: cfg.Leeway,
	}
	if v.leeway <= 0 {
		v.leeway = defaultLeeway
	}
	if secret != "" {
		v.secret = []byte(secret)
	}
	if jwksURL != "" {
		v.provider = NewProvider(jwksURL, cfg.HTTPClient)
	}
	return v, nil
}

// VerifySubject validates signature, expiry and issuer, then returns `sub`.
func (v *Verifier) VerifySubject(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods()),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, &claims, v.keyFunc, opts...)
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", errors.New("invalid token")
	}
	if claims.ExpiresAt == nil {
		return "", errors.New("token has no expiry")
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return "", errors.New("token subject missing")
	}
	return subject, nil
}

func (v *Verifier) methods() []string {
	var methods []string
	if v.secret != nil {
		methods = append(methods, jwt.SigningMethodHS256.Alg())
	}
	if v.provider != nil {
		methods = append(methods, jwt.SigningMethodRS256.Alg())
	}
	return methods
}

func (v *Verifier) keyFunc(token *jwt.Token) (interface{}, error) {
	switch token.Method.(type) {
	case *jwt.SigningMethodHMAC:
		if v.secret == nil {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	case *jwt.SigningMethodRSA:
		if v.provider == nil {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.provider.KeyFunc(token)
	default:
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
}
