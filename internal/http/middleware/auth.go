package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nixie-Tech-LLC/carescreen/internal/db"
	"github.com/Nixie-Tech-LLC/carescreen/internal/model"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or
// a wrong password. Callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("invalid email or password")

// currentUserKey is the gin context key JWTMiddleware stores the admin under.
const currentUserKey = "carescreen.currentUser"

// CredentialLookup finds an admin account by normalized email. db.Store
// satisfies it.
type CredentialLookup interface {
	GetUserByEmail(email string) (*model.User, error)
}

// NormalizeEmail is applied to every email before it is stored or looked up,
// so accounts are matched case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword returns ErrInvalidCredentials unless plain matches hash.
func CheckPassword(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Authenticate resolves the admin for a login request. Store failures other
// than a missing account are returned unchanged.
func Authenticate(users CredentialLookup, email, password string) (*model.User, error) {
	user, err := users.GetUserByEmail(NormalizeEmail(email))
	if errors.Is(err, db.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if err := CheckPassword(user.HashedPassword, password); err != nil {
		return nil, err
	}
	return user, nil
}

func setCurrentUser(c *gin.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// GetCurrentUser returns the admin JWTMiddleware authenticated for c.
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}
