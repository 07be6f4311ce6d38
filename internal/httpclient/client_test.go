package httpclient

import (
	"testing"
	"time"
)

func TestNewClientTimeout(t *testing.T) {
	c := NewClient(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s, want 5s", c.Timeout)
	}
}

func TestNewClientNegativeTimeoutMeansNone(t *testing.T) {
	c := NewClient(-time.Second)
	if c.Timeout != 0 {
		t.Fatalf("timeout = %s, want 0", c.Timeout)
	}
}
