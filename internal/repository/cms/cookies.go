package cms

import (
	"context"
	"net/http"
)

type cookiesKey struct{}

// WithCookies attaches the visitor's cookies so that every CMS request made
// with ctx carries them.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

func cookiesFrom(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesKey{}).([]*http.Cookie)
	return cookies
}
