package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	cookieName  = "session_token"
	sessionTTL  = 30 * 24 * time.Hour
	claimUserID = "user_id"
	claimLogin  = "login"
)

type Session struct {
	UserID int
	Login  string
}

func (env *Authenv) issueToken(s Session, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		claimUserID: s.UserID,
		claimLogin:  s.Login,
		"exp":       now.Add(sessionTTL).Unix(),
	})
	return token.SignedString(env.JWTkey)
}

func (env *Authenv) parseToken(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return env.JWTkey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, err
	}
	if !token.Valid {
		return Session{}, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, errors.New("unexpected claims type")
	}
	userID, ok := claims[claimUserID].(float64)
	if !ok || userID <= 0 {
		return Session{}, fmt.Errorf("missing %s claim", claimUserID)
	}
	login, ok := claims[claimLogin].(string)
	if !ok || login == "" {
		return Session{}, fmt.Errorf("missing %s claim", claimLogin)
	}
	return Session{UserID: int(userID), Login: login}, nil
}
