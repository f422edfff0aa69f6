package commission

import "testing"

func TestIsActiveDriver(t *testing.T) {
	cases := []struct {
		name       string
		total, pct float64
		status     string
		want       bool
	}{
		{"at threshold", 1000, 5, "Approved", true},
		{"not approved", 1000, 5, "Pending", false},
		{"under threshold", 999, 5, "Approved", false},
		{"zero amount", 0, 50, "Approved", false},
		{"rejected", 10000, 50, "Rejected", false},
		{"well above", 10000, 10, "Approved", true},
	}
	for _, tc := range cases {
		if got := IsActiveDriver(tc.total, tc.pct, tc.status); got != tc.want {
			t.Fatalf("%s: IsActiveDriver(%v, %v, %q) = %v, want %v",
				tc.name, tc.total, tc.pct, tc.status, got, tc.want)
		}
	}
}

func TestShouldSendInvoice(t *testing.T) {
	cases := []struct {
		name                       string
		newPct, newAmt, oldPct, oldAmt any
		want                       bool
	}{
		{"no change", 10, 500, 10, 500, false},
		{"zero percentage", 0, 500, 10, 500, false},
		{"zero amount", 10, 0, 10, 500, false},
		{"percentage changed", 15, 500, 10, 500, true},
		{"amount changed", 10, 600, 10, 500, true},
		{"both changed", 15, 600, 10, 500, true},
		{"string zero equals numeric zero", "0", 500, 10, 500, false},
		{"coerced equal strings", "10", "500", 10, 500, false},
		{"coerced changed string", "15", "500", 10, 500, true},
		{"first time set", 10, 500, 0, 0, true},
	}
	for _, tc := range cases {
		if got := ShouldSendInvoice(tc.newPct, tc.newAmt, tc.oldPct, tc.oldAmt); got != tc.want {
			t.Fatalf("%s: ShouldSendInvoice(%v, %v, %v, %v) = %v, want %v",
				tc.name, tc.newPct, tc.newAmt, tc.oldPct, tc.oldAmt, got, tc.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{0, 0},
		{"0", 0},
		{" 12.5 ", 12.5},
		{"garbage", 0},
		{float32(2.5), 2.5},
		{int64(7), 7},
	}
	for _, tc := range cases {
		if got := ToNumber(tc.in); got != tc.want {
			t.Fatalf("ToNumber(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAgentAmount(t *testing.T) {
	if got := AgentAmount(1000, 20); got != 200 {
		t.Fatalf("AgentAmount(1000, 20) = %v, want 200", got)
	}
}
