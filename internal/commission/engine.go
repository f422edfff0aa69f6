package commission

import (
	"strconv"
	"strings"
)

// activeThreshold is the minimum agent commission, in currency units, for a
// driver to count as an active loader.
const activeThreshold = 50

// ToNumber coerces loosely-typed loader fields to float64. Strings are
// parsed numerically, so "0" and 0 compare equal; anything unparseable
// counts as zero.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	case nil:
		return 0
	default:
		return 0
	}
}

// AgentAmount is the loader's cut: totalAmount * percentage / 100.
func AgentAmount(totalAmount, percentage float64) float64 {
	return totalAmount * percentage / 100
}

// IsActiveDriver reports whether a driver counts as active: approved status
// and an agent commission of at least the threshold. Used server-side for
// stats and mirrored client-side for badges; this is the single source of
// truth for the rule.
func IsActiveDriver(totalAmount, percentage float64, status string) bool {
	return status == "Approved" && AgentAmount(totalAmount, percentage) >= activeThreshold
}

// ShouldSendInvoice decides whether a loader-field update warrants a fresh
// invoice: both new values non-zero, and at least one of them changed
// against the prior persisted values. Inputs are coerced before comparison.
func ShouldSendInvoice(newPercentage, newAmount, oldPercentage, oldAmount any) bool {
	np, na := ToNumber(newPercentage), ToNumber(newAmount)
	op, oa := ToNumber(oldPercentage), ToNumber(oldAmount)
	if np == 0 || na == 0 {
		return false
	}
	return np != op || na != oa
}
