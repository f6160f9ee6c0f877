// Package telemetry provides dsl.Observer implementations that export
// render outcomes: Prometheus metrics and OpenTelemetry spans.
//
// Combine both with dsl.Observers:
//
//	obs := dsl.Observers{telemetry.Prometheus(), telemetry.OpenTelemetry()}
//	c := dsl.NewContext(dsl.WithObserver(obs))
package telemetry
