package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type authKey int

const authKeyWriter authKey = iota

const tokenIssuer = "cmajd"

func (s *Server) handleIssueToken(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Passphrase string `json:"passphrase"`
	}
	if err := parseJSON(req, &body); err != nil {
		badRequest(err.Error()).writeTo(w, s.logger)
		return
	}

	if err := bcrypt.CompareHashAndPassword(s.passphraseHash, []byte(body.Passphrase)); err != nil {
		time.Sleep(s.unauthDelay)
		unauthorized("incorrect passphrase").writeTo(w, s.logger)
		return
	}

	claims := jwt.MapClaims{
		"iss": tokenIssuer,
		"sub": "writer",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.jwtSecret)
	if err != nil {
		internalError(err).writeTo(w, s.logger)
		return
	}

	ok(map[string]string{"token": signed}, "issued write token").writeTo(w, s.logger)
}

// requireAuth gates write endpoints behind a bearer JWT issued by
// handleIssueToken. Ported from server/token.go's AuthHandler, trimmed to a
// single fixed "writer" subject since this API has no user accounts.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		raw, err := bearerToken(req)
		if err != nil {
			time.Sleep(s.unauthDelay)
			unauthorized(err.Error()).writeTo(w, s.logger)
			return
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return s.jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(tokenIssuer), jwt.WithLeeway(time.Minute))
		if err != nil || !tok.Valid {
			time.Sleep(s.unauthDelay)
			unauthorized("invalid or expired token").writeTo(w, s.logger)
			return
		}

		ctx := context.WithValue(req.Context(), authKeyWriter, true)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func bearerToken(req *http.Request) (string, error) {
	header := strings.TrimSpace(req.Header.Get("Authorization"))
	if header == "" {
		return "", errNoAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errNotBearer
	}
	return strings.TrimSpace(parts[1]), nil
}
