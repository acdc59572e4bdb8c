package server

import "testing"

func TestRateLimiterAllowsWithinWindow(t *testing.T) {
	rl := newRateLimiter(3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("request over the limit allowed")
	}
}

func TestRateLimiterSeparatesClients(t *testing.T) {
	rl := newRateLimiter(1)
	defer rl.Stop()

	if !rl.allow("10.0.0.1") {
		t.Fatal("first client denied")
	}
	if !rl.allow("10.0.0.2") {
		t.Fatal("second client denied, windows should be per client")
	}
	if rl.allow("10.0.0.1") {
		t.Fatal("first client allowed over its limit")
	}
}
