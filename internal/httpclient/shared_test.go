package httpclient

import (
	"net/http"
	"testing"
	"time"
)

func TestShared_ReturnsSameInstance(t *testing.T) {
	a := Shared()
	b := Shared()

	if a == nil {
		t.Fatal("Shared() returned nil")
	}
	if a != b {
		t.Error("Shared() returned different instances")
	}
	if a.Transport == nil {
		t.Error("Shared() client has no instrumented transport")
	}
}

func TestGetOrShared(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}

	if got := GetOrShared(custom); got != custom {
		t.Error("GetOrShared() did not return the supplied client")
	}
	if got := GetOrShared(nil); got != Shared() {
		t.Error("GetOrShared(nil) did not return the shared client")
	}
}

func TestWithTimeout(t *testing.T) {
	client := WithTimeout(3 * time.Second)

	if client == Shared() {
		t.Fatal("WithTimeout() returned the shared client")
	}
	if client.Timeout != 3*time.Second {
		t.Errorf("WithTimeout() timeout = %v, want 3s", client.Timeout)
	}
}
