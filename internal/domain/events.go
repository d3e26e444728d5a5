package domain

import "context"

// EventWrapper carries the originating request context together with an event
// payload. Message bus subscribers run outside of the request goroutine, the
// wrapped context lets them still resolve the acting user via GetUserInfo.
type EventWrapper[T any] struct {
	Ctx   context.Context
	Event T
}
