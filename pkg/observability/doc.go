/*
Package observability provides tools for monitoring survey sessions.

It turns the engine lifecycle hooks into Prometheus metrics and structured
audit logs. Both are plain domain.LifecycleHooks values and can be merged
with Combine before being handed to survey.WithLifecycleHooks.
*/
package observability
