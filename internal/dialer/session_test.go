package dialer

import (
	"testing"

	"github.com/Abubakar4101/call-center-crm-sub000/internal/contacts"
)

func threeContacts() []contacts.Contact {
	return []contacts.Contact{
		{ID: 1, Name: "Alice", Phone: "111"},
		{ID: 2, Name: "Bob", Phone: "222"},
		{ID: 3, Name: "Carol", Phone: "333"},
	}
}

func TestNextWhenNotRunning(t *testing.T) {
	s := &Session{}
	res := s.Next()
	if res.Message != MsgNotRunning {
		t.Fatalf("expected %q, got %q", MsgNotRunning, res.Message)
	}
	if res.Contact != nil {
		t.Fatalf("expected no contact, got %+v", res.Contact)
	}
}

func TestStartDialsFirstContact(t *testing.T) {
	s := &Session{}
	res := s.Start(threeContacts())
	if res.Contact == nil || res.Contact.ID != 1 {
		t.Fatalf("start should return first contact, got %+v", res.Contact)
	}
	if s.current != 1 {
		t.Fatalf("expected cursor 1 after start, got %d", s.current)
	}
}

func TestNextAdvancesCursor(t *testing.T) {
	s := &Session{}
	s.Start(threeContacts())

	res := s.Next()
	if res.Contact == nil || res.Contact.ID != 2 {
		t.Fatalf("expected second contact, got %+v", res.Contact)
	}
	if s.current != 2 {
		t.Fatalf("expected cursor 2, got %d", s.current)
	}
}

// Prev rewinds two then delegates to Next: from cursor 2 it lands back on
// the first contact with cursor 1.
func TestPrevStepsBackOne(t *testing.T) {
	s := &Session{}
	s.Start(threeContacts()) // cursor 1
	s.Next()                 // cursor 2

	res := s.Prev()
	if res.Contact == nil || res.Contact.ID != 1 {
		t.Fatalf("expected first contact again, got %+v", res.Contact)
	}
	if s.current != 1 {
		t.Fatalf("expected cursor 1 after prev, got %d", s.current)
	}
}

func TestPrevReplaysFirstContact(t *testing.T) {
	s := &Session{}
	s.Start(threeContacts()) // cursor 1

	res := s.Prev()
	if res.Contact == nil || res.Contact.ID != 1 {
		t.Fatalf("prev at the first position should replay contact 1, got %+v", res.Contact)
	}
	if s.current != 1 {
		t.Fatalf("cursor must not go negative, got %d", s.current)
	}
}

func TestExhaustedListIsSoftCondition(t *testing.T) {
	s := &Session{}
	list := threeContacts()
	s.Start(list)
	s.Next()
	s.Next()

	res := s.Next()
	if res.Message != MsgNoMoreContacts {
		t.Fatalf("expected %q, got %q", MsgNoMoreContacts, res.Message)
	}
	if s.current != len(list) {
		t.Fatalf("exhausted next must not mutate cursor, got %d", s.current)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := &Session{}
	s.Stop()
	s.Start(threeContacts())
	s.Stop()
	s.Stop()

	res := s.Next()
	if res.Message != MsgNotRunning {
		t.Fatalf("expected %q after stop, got %q", MsgNotRunning, res.Message)
	}
}

func TestStopDoesNotMutateCursor(t *testing.T) {
	s := &Session{}
	s.Start(threeContacts())
	before := s.current
	s.Stop()
	s.Next()
	if s.current != before {
		t.Fatalf("cursor moved while stopped: %d -> %d", before, s.current)
	}
}

func TestFiveContactEndToEnd(t *testing.T) {
	list := make([]contacts.Contact, 5)
	for i := range list {
		list[i] = contacts.Contact{ID: i + 1, Phone: "555"}
	}

	s := &Session{}
	res := s.Start(list)
	for i := 2; i <= 5; i++ {
		res = s.Next()
		if res.Contact == nil || res.Contact.ID != i {
			t.Fatalf("expected contact %d, got %+v", i, res.Contact)
		}
	}
	res = s.Next()
	if res.Message != MsgNoMoreContacts {
		t.Fatalf("sixth next should report %q, got %q", MsgNoMoreContacts, res.Message)
	}
}

func TestCurrentDoesNotAdvance(t *testing.T) {
	s := &Session{}
	s.Start(threeContacts()) // cursor 1

	for i := 0; i < 3; i++ {
		res := s.Current()
		if res.Contact == nil || res.Contact.ID != 1 {
			t.Fatalf("current should replay the last dialed contact, got %+v", res.Contact)
		}
	}
	if s.current != 1 {
		t.Fatalf("current must not move the cursor, got %d", s.current)
	}
}

func TestCurrentWhenNotRunning(t *testing.T) {
	s := &Session{}
	if res := s.Current(); res.Message != MsgNotRunning {
		t.Fatalf("expected %q, got %q", MsgNotRunning, res.Message)
	}
}

func TestRegistryScopesSessions(t *testing.T) {
	r := NewRegistry()
	a := r.Get("tenant-a", "staff-1")
	b := r.Get("tenant-b", "staff-1")
	if a == b {
		t.Fatal("sessions for different tenants must not be shared")
	}
	if a != r.Get("tenant-a", "staff-1") {
		t.Fatal("same tenant/staff must resolve to the same session")
	}

	a.Start(threeContacts())
	if res := b.Next(); res.Message != MsgNotRunning {
		t.Fatalf("foreign session should be untouched, got %q", res.Message)
	}
}
