package backend

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims is the validated content of an access token. Epoch is a
// per-user counter embedded at mint time; bumping the user's counter
// invalidates every outstanding token at once.
type AccessClaims struct {
	UserID string
	Role   string
	Epoch  int64
}

// TokenService mints and validates HMAC-signed access tokens.
type TokenService struct {
	secretKey []byte
	issuer    string
	accessTTL time.Duration
}

func NewTokenService(secretKey, issuer string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		accessTTL: accessTTL,
	}
}

func (s *TokenService) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (s *TokenService) Mint(userID, role string, epoch int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"epoch":   epoch,
		"iss":     s.issuer,
		"iat":     now.Unix(),
		"exp":     now.Add(s.accessTTL).Unix(),
		"jti":     s.generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *TokenService) Validate(tokenString string) (*AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	epoch, _ := claims["epoch"].(float64)
	if userID == "" || role == "" {
		return nil, ErrTokenInvalid
	}

	return &AccessClaims{UserID: userID, Role: role, Epoch: int64(epoch)}, nil
}
