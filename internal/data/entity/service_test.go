package entity

import "testing"

func TestDepositCentsFixed(t *testing.T) {
	s := &Service{
		PriceCents:         2000,
		DepositType:        DepositTypeFixed,
		DepositAmountCents: 500,
	}
	if got := s.DepositCents(); got != 500 {
		t.Errorf("DepositCents = %d, want 500", got)
	}
}

func TestDepositCentsPercent(t *testing.T) {
	tests := []struct {
		price   int64
		percent int
		want    int64
	}{
		{2000, 25, 500},
		{999, 10, 100},  // 99.9 rounds half up
		{1001, 10, 100}, // 100.1 rounds down
		{1, 1, 1},       // floor at one cent
	}

	for _, tt := range tests {
		s := &Service{
			PriceCents:     tt.price,
			DepositType:    DepositTypePercent,
			DepositPercent: tt.percent,
		}
		if got := s.DepositCents(); got != tt.want {
			t.Errorf("DepositCents(price=%d, pct=%d) = %d, want %d", tt.price, tt.percent, got, tt.want)
		}
	}
}

func TestDepositCentsFloor(t *testing.T) {
	s := &Service{DepositType: DepositTypeFixed, DepositAmountCents: 0}
	if got := s.DepositCents(); got != 1 {
		t.Errorf("DepositCents = %d, want floor of 1", got)
	}
}
