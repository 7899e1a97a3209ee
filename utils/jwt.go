package utils

import (
    "os"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func GenerateJWT(email string) (string, error) {
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
        "email": email,
        "exp":   time.Now().Add(time.Hour * 72).Unix(),
    })

    return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// ParseEmailFromJWT validates a token and returns its email claim. Used by
// the OAuth callback, which carries the caller's identity in the state
// parameter instead of an Authorization header.
func ParseEmailFromJWT(tokenString string) (string, error) {
    token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, jwt.ErrSignatureInvalid
        }
        return []byte(os.Getenv("JWT_SECRET")), nil
    })
    if err != nil || !token.Valid {
        return "", jwt.ErrTokenInvalidClaims
    }
    claims, ok := token.Claims.(jwt.MapClaims)
    if !ok {
        return "", jwt.ErrTokenInvalidClaims
    }
    email, _ := claims["email"].(string)
    if email == "" {
        return "", jwt.ErrTokenInvalidClaims
    }
    return email, nil
}
