package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/nifty-xyz/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	// SignToken issues an access token after the caller proves control of
	// the address by signing the message with its key.
	SignToken(ctx ctx.Ctx, address Address, message, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
