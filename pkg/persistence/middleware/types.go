package middleware

import "github.com/aretw0/unify/pkg/ports"

// Middleware allows wrapping a SolutionStore to add behavior.
type Middleware func(ports.SolutionStore) ports.SolutionStore

// Chain wraps store with mws. The first middleware is the outermost.
func Chain(store ports.SolutionStore, mws ...Middleware) ports.SolutionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
