package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestBuildOrderID(t *testing.T) {
	id := uuid.MustParse("123e4567-e89b-42d3-a456-426614174000")

	orderID := BuildOrderID(id)
	if orderID != "BK123e4567e89b4" {
		t.Errorf("BuildOrderID = %q", orderID)
	}
	if len(orderID) != 15 {
		t.Errorf("order id length = %d, gateway caps at 15", len(orderID))
	}

	// Deterministic: a retried session creation reuses the reference.
	if BuildOrderID(id) != orderID {
		t.Error("BuildOrderID is not deterministic")
	}
	if !strings.HasPrefix(orderID, "BK") {
		t.Errorf("missing BK prefix: %q", orderID)
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 50, 50},
		{"25", 50, 25},
		{"abc", 50, 50},
		{"0", 50, 50},
		{"-3", 50, 50},
	}

	for _, tt := range tests {
		if got := ParseInt(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseInt(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}
