package tenancy

import "context"

// Session is the authenticated identity of a request as established by the
// session middleware. A nil *Session means the request is anonymous.
type Session struct {
	UserID string
	Role   string
}

type sessionKey struct{}

// NewContext returns a copy of ctx carrying session.
func NewContext(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionKey{}).(*Session)
	return session
}
