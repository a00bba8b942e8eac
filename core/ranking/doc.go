// Package ranking turns request plants into ranked dispatch records. Each
// plant category has a Strategy computing the plant cost, its available
// power and the merit order used by the allocation engine. Wind turbines
// always rank first, gas-fired plants next and turbojets last.
package ranking
