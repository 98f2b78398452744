package utils

import "testing"

func TestNormalizePA(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6123-4567", "+50761234567"},
		{"61234567", "+50761234567"},
		{"50761234567", "+50761234567"},
		{"+50761234567", "+50761234567"},
		{"+507 6123 4567", "+50761234567"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		if got := NormalizePA(tt.in); got != tt.want {
			t.Errorf("NormalizePA(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestYappyAlias(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+50761234567", "61234567"},
		{"61234567", "61234567"},
		{"6123-4567", "61234567"},
	}

	for _, tt := range tests {
		if got := YappyAlias(tt.in); got != tt.want {
			t.Errorf("YappyAlias(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
