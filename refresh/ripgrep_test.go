package refresh_test

import (
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/refresh"
)

func TestRipgrepScannerUnavailableForMissingBinary(t *testing.T) {
	s := refresh.NewRipgrepScanner("tagstudio-definitely-not-a-real-binary")
	if s.Available() {
		t.Fatal("Available() = true for a binary name that cannot exist on PATH")
	}
}

func TestNewRipgrepScannerDefaultsBinaryName(t *testing.T) {
	s := refresh.NewRipgrepScanner("")
	if s.BinaryName != "rg" {
		t.Fatalf("BinaryName = %q, want %q", s.BinaryName, "rg")
	}
}
