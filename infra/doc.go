// Package infra contains technical adapters such as the MQTT setpoint
// client, metrics exporters, the zerolog logger and the Sentry monitor.
// These packages should depend only on the interfaces defined in the core
// packages.
package infra
