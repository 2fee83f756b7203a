package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/nifty-xyz/goapi/base/ctx"
	"github.com/nifty-xyz/goapi/base/ethereum"
	"github.com/nifty-xyz/goapi/domain"
)

type impl struct {
	jwtSecret []byte
	tokenTtl  time.Duration
}

func New(jwtSecret string, tokenTtl time.Duration) domain.AuthUsecase {
	if tokenTtl == 0 {
		tokenTtl = 24 * time.Hour
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTtl:  tokenTtl,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, message, signature string) (string, error) {
	valid, err := ethereum.ValidateMsgSignature([]byte(message), signature, string(address))
	if err != nil {
		ctx.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	}
	if !valid {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(im.tokenTtl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", domain.ErrInvalidSignature
}
