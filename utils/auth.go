// utils/auth.go
package utils

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const RoleAdmin = "admin"

var (
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AdminClaims is the payload of an issued bearer token.
type AdminClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// CredentialGate issues and verifies HS256 tokens with a shared secret.
type CredentialGate struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCredentialGate(secret []byte, ttl time.Duration) *CredentialGate {
	return &CredentialGate{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the admin identity, valid for the gate's ttl.
func (g *CredentialGate) Issue(email string) (string, error) {
	if len(g.secret) == 0 {
		return "", errors.New("JWT secret not set")
	}

	now := g.now()
	claims := AdminClaims{
		Email: email,
		Role:  RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Verify returns the embedded claims. Every failure mode collapses into
// ErrInvalidToken.
func (g *CredentialGate) Verify(tokenString string) (*AdminClaims, error) {
	if tokenString == "" || len(g.secret) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin || claims.Email == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AdminAuthenticator holds the single configured admin identity. When
// PasswordHash is set it takes precedence over Password.
type AdminAuthenticator struct {
	Email        string
	Password     string
	PasswordHash string
}

// Authenticate checks both fields and does not report which one mismatched.
// The plain password is compared in constant time.
func (a AdminAuthenticator) Authenticate(email, password string) error {
	if a.Email == "" || (a.Password == "" && a.PasswordHash == "") {
		return ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(a.Email)) == 1

	var passwordOK bool
	if a.PasswordHash != "" {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	}

	if !emailOK || !passwordOK {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Auth middleware
func AuthMiddleware(gate *CredentialGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			RespondWithError(c, http.StatusUnauthorized, "Access denied. Invalid or missing token")
			return
		}

		claims, err := gate.Verify(tokenString)
		if err != nil {
			RespondWithError(c, http.StatusUnauthorized, "Access denied. Invalid or missing token")
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", claims.Role)
		c.Next()
	}
}
