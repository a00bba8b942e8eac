// Package metrics defines the sinks recording computed production plans.
// PromSink and InfluxSink live in infra/metrics and can be combined with
// NewMultiSink. The service feeds them from the internal event bus so that a
// slow sink never delays a plan response.
package metrics
