package main

import "testing"

// Registering the Go or process collector twice panics inside MustRegister,
// so registry construction has to stay single-shot.
func TestNewMetricsRegistry(t *testing.T) {
	registry := newMetricsRegistry()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected runtime collector metric families")
	}
}
