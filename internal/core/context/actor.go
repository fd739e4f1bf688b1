// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"buildledger/internal/core/id"
)

// ActorContext identifies who is acting and on behalf of which company.
// The company ID here is informational (logging, audit); services receive
// the company ID as an explicit argument and never dig it out of context.
type ActorContext struct {
	UserID    string
	Email     string
	CompanyID id.ID
}

type actorContextKey struct{}

// WithActor adds ActorContext to context.
func WithActor(ctx context.Context, actor *ActorContext) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// GetActor returns ActorContext from context.
func GetActor(ctx context.Context) *ActorContext {
	if v, ok := ctx.Value(actorContextKey{}).(*ActorContext); ok {
		return v
	}
	return nil
}

// GetUserID returns the acting user ID from context or empty string.
func GetUserID(ctx context.Context) string {
	if a := GetActor(ctx); a != nil {
		return a.UserID
	}
	return ""
}

// GetCompanyID returns the acting company ID from context or the nil UUID.
func GetCompanyID(ctx context.Context) id.ID {
	if a := GetActor(ctx); a != nil {
		return a.CompanyID
	}
	return id.Nil()
}
