// Package csrf provides a CSRF protection middleware for HTTP handlers.
// The middleware compares a token that is submitted with the request against
// a reference token that is stored in the session.
package csrf

import (
	"context"
	"net/http"
	"slices"
)

// ContextValueIdentifier is the context key under which the current CSRF
// token can be found. Use GetToken to retrieve it.
const ContextValueIdentifier = "_csrf_token"

// Middleware is a type that creates a new CSRF middleware. The CSRF
// middleware can be used to protect state-changing endpoints from cross-site
// request forgery attacks.
type Middleware struct {
	o options
}

// New returns a new CSRF middleware with the provided options.
// The sessionReader and sessionWriter functions give the middleware access to
// the token that is persisted in the session store.
func New(sessionReader SessionReader, sessionWriter SessionWriter, opts ...Option) *Middleware {
	opts = append(opts, withSessionReader(sessionReader), withSessionWriter(sessionWriter))
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	checkForPRNG()

	return m
}

// Handler returns the CSRF middleware handler. It validates the submitted
// token for all requests whose method is not ignored.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if slices.Contains(m.o.ignoreMethods, r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		storedToken := m.o.sessionGetter(r)
		requestToken := m.o.tokenGetter(r)
		if storedToken == "" || !tokenEqual(requestToken, storedToken) {
			m.o.errCallback(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RefreshToken returns a middleware handler that generates a new CSRF token,
// stores it in the session and injects it into the request context.
// It should be mounted on the endpoint that hands the token to the frontend.
func (m *Middleware) RefreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.newToken()
		m.o.sessionWriter(r, token)

		r = r.WithContext(context.WithValue(r.Context(), ContextValueIdentifier, token))

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) newToken() string {
	token := generateToken(m.o.tokenLength)
	key := generateToken(m.o.tokenLength)

	return encodeToken(maskToken(token, key))
}

// GetToken returns the CSRF token from the request context. If RefreshToken
// has not stored a token in the context, an empty string is returned.
func GetToken(ctx context.Context) string {
	token, ok := ctx.Value(ContextValueIdentifier).(string)
	if !ok {
		return ""
	}

	return token
}
