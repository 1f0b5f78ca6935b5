/*
Package observability provides tools for monitoring the argtree matching engine.

Metrics exposes Prometheus counters as domain.LifecycleHooks, and Combine fans a single
hook set out to several consumers (metrics, audit logging, tests).
*/
package observability
