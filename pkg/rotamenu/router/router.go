package router

import (
	"fmt"
	"strings"
)

// HandlerFunc handles a command whose verb it was registered for.
// args is the rest of the command line with surrounding spaces removed.
type HandlerFunc func(args string) error

// FallbackFunc receives every command no handler claimed, unchanged.
type FallbackFunc func(cmd string) error

// Router sends each command to the handler registered for its verb, the
// first space-separated word. Verbs match case-insensitively.
type Router struct {
	handlers map[string]HandlerFunc
	fallback FallbackFunc
	stack    *Stack
}

// New creates a Router whose page stack holds at most maxDepth entries.
func New(maxDepth int) *Router {
	return &Router{
		handlers: make(map[string]HandlerFunc),
		stack:    NewStack(maxDepth),
	}
}

// Register adds a handler for verb, replacing any previous one.
func (r *Router) Register(verb string, fn HandlerFunc) *Router {
	r.handlers[strings.ToLower(verb)] = fn
	return r
}

// Fallback sets the function that receives unclaimed commands.
func (r *Router) Fallback(fn FallbackFunc) *Router {
	r.fallback = fn
	return r
}

// Dispatch routes cmd and returns the verb it was routed by, or "" when it
// went to the fallback.
func (r *Router) Dispatch(cmd string) (string, error) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return "", fmt.Errorf("router: empty command")
	}

	verb, args := Split(cmd)
	if fn, ok := r.handlers[strings.ToLower(verb)]; ok {
		if err := fn(args); err != nil {
			return verb, fmt.Errorf("router: %s: %w", verb, err)
		}
		return verb, nil
	}

	if r.fallback == nil {
		return "", fmt.Errorf("router: no handler for %q", verb)
	}
	return "", r.fallback(cmd)
}

// Stack returns the page stack handlers push to and pop from.
func (r *Router) Stack() *Stack {
	return r.stack
}

// Split separates the verb from the arguments of a command line.
func Split(cmd string) (verb, args string) {
	cmd = strings.TrimSpace(cmd)
	verb, args, _ = strings.Cut(cmd, " ")
	return verb, strings.TrimSpace(args)
}
