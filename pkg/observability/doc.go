/*
Package observability provides tools for monitoring the unification engine.

It turns the engine's lifecycle hooks into Prometheus metrics and structured audit logs.
Both are plain domain.LifecycleHooks and can be merged and passed to unify.WithLifecycleHooks.
*/
package observability
