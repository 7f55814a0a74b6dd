package auth

import (
	"errors"
	"os"
	"time"

	"github.com/SaiNageswarS/go-rest-boot/logger"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// GetToken signs the given claims with HS256 using ACCESS-SECRET from the
// environment. "iat" and "exp" are filled in when a positive ttl is given.
func GetToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	accessSecret := os.Getenv("ACCESS-SECRET")
	if accessSecret == "" {
		return "", errors.New("ACCESS-SECRET is not set in environment")
	}

	return SignToken(claims, []byte(accessSecret), ttl)
}

// SignToken signs the given claims with an explicit secret.
func SignToken(claims jwt.MapClaims, secret []byte, ttl time.Duration) (string, error) {
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	if ttl > 0 {
		now := time.Now()
		claims["iat"] = now.Unix()
		claims["exp"] = now.Add(ttl).Unix()
	}

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := at.SignedString(secret)
	if err != nil {
		logger.Error("Error signing token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// VerifyToken parses and validates a token against the given secret and
// returns its claims. Only HS256 is accepted.
var VerifyToken = func(token string, secret []byte) (jwt.MapClaims, error) {
	parsedToken, err := jwt.ParseWithClaims(
		token,
		jwt.MapClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("failed reading claims")
	}

	return claims, nil
}
