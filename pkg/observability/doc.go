/*
Package observability turns expansion lifecycle events into logs and Prometheus metrics.

Both are plain domain.LifecycleHooks, so they can be combined and handed to
lindenmayer.WithLifecycleHooks:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := observability.Combine(observability.LogHooks(logger), metrics.Hooks())
*/
package observability
