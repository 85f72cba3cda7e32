// Package httpapi exposes the grammar store and LR(1) pipeline over HTTP:
// compile-and-save a grammar definition, then parse input text against it.
// Ported from server/server.go and server/api/api.go's chi router +
// JWT-auth-middleware shape.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/kestrelparse/cmaj/internal/store"
)

type requestIDKey int

const ctxRequestID requestIDKey = iota

var (
	errNoAuthHeader = errors.New("no authorization header present")
	errNotBearer    = errors.New("authorization header not in Bearer format")
)

// Server wires the grammar store into a chi router.
type Server struct {
	router         chi.Router
	store          *store.Store
	logger         *log.Logger
	jwtSecret      []byte
	passphraseHash []byte
	unauthDelay    time.Duration
}

// New builds a Server. passphraseHash is a bcrypt hash (see
// golang.org/x/crypto/bcrypt) of the passphrase clients must present to
// /token in order to receive a write-capable JWT.
func New(st *store.Store, passphraseHash, jwtSecret []byte) *Server {
	s := &Server{
		store:          st,
		logger:         log.New(os.Stderr, "httpapi: ", log.LstdFlags),
		jwtSecret:      jwtSecret,
		passphraseHash: passphraseHash,
		unauthDelay:    time.Second,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Post("/token", s.handleIssueToken)
	r.Get("/grammars", s.handleListGrammars)
	r.Get("/grammars/{name}", s.handleGetGrammar)
	r.With(s.requireAuth).Put("/grammars/{name}", s.handlePutGrammar)
	r.Post("/grammars/{name}/parse", s.handleParse)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.router.ServeHTTP(w, req)
}

// requestIDMiddleware stamps every request with a fresh uuid so log lines
// for the same request can be correlated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := context.WithValue(req.Context(), ctxRequestID, uuid.New().String())
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		reqID, _ := req.Context().Value(ctxRequestID).(string)
		s.logger.Printf("[%s] %s %s", reqID, req.Method, req.URL.Path)
		next.ServeHTTP(w, req)
	})
}

// parseJSON decodes req's JSON body into v. Ported from
// server/api/api.go parseJSON.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
		return fmt.Errorf("request content-type is not application/json")
	}

	bodyData, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	defer func() {
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(bodyData))
	}()

	if err := json.Unmarshal(bodyData, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}
