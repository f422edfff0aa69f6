package dialer

import (
	"errors"
	"net/url"
	"strings"
)

// The browser-side auto-dial agent is an external collaborator living inside
// the calling provider's own page. Only its boundary is modeled here: the
// URL-hash handoff it consumes and the narrow capability it needs from the
// host page. The concrete DOM automation is a swappable adapter maintained
// alongside the provider's UI.

var ErrBadHandoff = errors.New("malformed handoff fragment")

// Handoff is the decoded #autocall=<digits>&token=<credential> signal.
type Handoff struct {
	Digits string
	Token  string
}

// ParseHandoff decodes a URL hash fragment, with or without the leading '#'.
func ParseHandoff(fragment string) (Handoff, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	values, err := url.ParseQuery(fragment)
	if err != nil {
		return Handoff{}, errors.Join(ErrBadHandoff, err)
	}
	h := Handoff{
		Digits: values.Get("autocall"),
		Token:  values.Get("token"),
	}
	if h.Digits == "" || h.Token == "" {
		return Handoff{}, ErrBadHandoff
	}
	for _, r := range h.Digits {
		if r < '0' || r > '9' {
			return Handoff{}, ErrBadHandoff
		}
	}
	return h, nil
}

// KeypadDriver is the capability the agent needs from the provider page.
// Implementations click the on-screen keypad and watch for the in-call UI
// state; they are expected to break when the third-party markup changes and
// must be replaceable without touching the rest of the agent.
type KeypadDriver interface {
	PressDigit(d byte) error
	Dial() error
	// InCall reports whether the page shows an ongoing-call indicator.
	InCall() bool
}

// DialSequence drives the keypad digit by digit and presses dial once.
// The caller reports the answered state exactly once via the metrics
// endpoint; keypad failures abort the sequence but must not panic the page.
func DialSequence(k KeypadDriver, digits string) error {
	for i := 0; i < len(digits); i++ {
		if err := k.PressDigit(digits[i]); err != nil {
			return err
		}
	}
	return k.Dial()
}
