// Package orchestrator wires UI schema overlays, the submission coordinator,
// the form machine and the renderer registry behind a single constructor.
package orchestrator
