// Package tabapi provides the HTTP API for the tableau daemon: token
// exchange, formula solving, and solve-history browsing.
package tabapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/tableau/internal/tabauth"
	"github.com/dekarrin/tableau/internal/tabledb"
	"github.com/go-chi/chi/v5"
)

// API holds the parameters endpoints need to run.
type API struct {
	// History records and serves solved formulas.
	History tabledb.HistoryRepository

	// Keys is the set of provisioned API keys accepted at POST /v1/token.
	Keys []tabauth.APIKey

	// JWTSecret signs and validates bearer tokens.
	JWTSecret []byte

	// TokenTTL is how long an issued token remains valid.
	TokenTTL time.Duration

	// UnauthDelay is how long to pause before responding to an
	// unauthenticated, unauthorized, or failed request, to deprioritize
	// such requests from processing and I/O.
	UnauthDelay time.Duration
}

// Router builds the chi router serving the daemon's HTTP surface.
func (api API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(recoverMiddleware)

	r.Post("/v1/token", api.endpoint(api.epCreateToken))

	r.Group(func(r chi.Router) {
		r.Use(api.requireAuth)
		r.Post("/v1/solve", api.endpoint(api.epSolve))
		r.Get("/v1/history", api.endpoint(api.epHistory))
	})

	return r
}

type authKey int

const authKeyName authKey = iota

func (api API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		tok, err := bearerToken(req)
		if err != nil {
			r := Unauthorized("", err.Error())
			time.Sleep(api.UnauthDelay)
			r.WriteResponse(w)
			r.Log(req)
			return
		}

		name, err := tabauth.ValidateToken(api.JWTSecret, tok)
		if err != nil {
			r := Unauthorized("", err.Error())
			time.Sleep(api.UnauthDelay)
			r.WriteResponse(w)
			r.Log(req)
			return
		}

		ctx := context.WithValue(req.Context(), authKeyName, name)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// endpointFunc is the signature an individual endpoint implements; it
// returns a fully-built Result rather than writing to the ResponseWriter
// itself, so every handler gets consistent logging and panic recovery.
type endpointFunc func(req *http.Request) Result

func (api API) endpoint(ep endpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		r := ep(req)

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusForbidden || r.Status == http.StatusInternalServerError {
			time.Sleep(api.UnauthDelay)
		}

		r.WriteResponse(w)
		r.Log(req)
	}
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if panicErr := recover(); panicErr != nil {
				r := InternalServerError(fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())))
				r.WriteResponse(w)
				r.Log(req)
			}
		}()
		next.ServeHTTP(w, req)
	})
}

// parseJSON decodes the JSON request body into v, which must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if strings.ToLower(contentType) != "application/json" {
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
