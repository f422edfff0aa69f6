package dialer

import (
	"errors"
	"testing"
)

func TestParseHandoff(t *testing.T) {
	h, err := ParseHandoff("#autocall=15550102030&token=abc.def.ghi")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if h.Digits != "15550102030" || h.Token != "abc.def.ghi" {
		t.Fatalf("unexpected handoff: %+v", h)
	}
}

func TestParseHandoffWithoutHash(t *testing.T) {
	h, err := ParseHandoff("autocall=555&token=x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if h.Digits != "555" {
		t.Fatalf("unexpected digits: %s", h.Digits)
	}
}

func TestParseHandoffRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"#autocall=555",            // no token
		"#token=x",                 // no digits
		"#autocall=55a5&token=x",   // non-digit phone
		"#autocall=%zz&token=x",    // broken encoding
	}
	for _, fragment := range cases {
		if _, err := ParseHandoff(fragment); !errors.Is(err, ErrBadHandoff) {
			t.Fatalf("fragment %q: expected ErrBadHandoff, got %v", fragment, err)
		}
	}
}

type fakeKeypad struct {
	pressed []byte
	dialed  bool
	failAt  int
}

func (k *fakeKeypad) PressDigit(d byte) error {
	if k.failAt > 0 && len(k.pressed)+1 == k.failAt {
		return errors.New("button not found")
	}
	k.pressed = append(k.pressed, d)
	return nil
}

func (k *fakeKeypad) Dial() error {
	k.dialed = true
	return nil
}

func (k *fakeKeypad) InCall() bool { return k.dialed }

func TestDialSequencePressesEveryDigitThenDials(t *testing.T) {
	k := &fakeKeypad{}
	if err := DialSequence(k, "5550102030"); err != nil {
		t.Fatalf("dial sequence: %v", err)
	}
	if string(k.pressed) != "5550102030" {
		t.Fatalf("expected all digits pressed in order, got %q", string(k.pressed))
	}
	if !k.dialed {
		t.Fatal("dial was never pressed")
	}
}

func TestDialSequenceAbortsOnKeypadFailure(t *testing.T) {
	k := &fakeKeypad{failAt: 3}
	if err := DialSequence(k, "555"); err == nil {
		t.Fatal("expected keypad failure to surface")
	}
	if k.dialed {
		t.Fatal("dial must not be pressed after a keypad failure")
	}
}
