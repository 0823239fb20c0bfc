package session

import (
	"regexp"
	"testing"

	"crestgold_backend/internal/config"

	"github.com/benbjohnson/clock"
)

func TestStoreCreateMintsUniqueIDs(t *testing.T) {
	mock := clock.NewMock()
	st := NewStore(config.DefaultEconomy(), mock)

	idPattern := regexp.MustCompile(`^USER_\d{5}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := st.Create()
		if !idPattern.MatchString(s.ID) {
			t.Fatalf("id %q does not match USER_ddddd", s.ID)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if st.Count() != 200 {
		t.Fatalf("Count() = %d; want 200", st.Count())
	}
}

func TestStoreGetAndFind(t *testing.T) {
	mock := clock.NewMock()
	st := NewStore(config.DefaultEconomy(), mock)

	s := st.Create()
	got, ok := st.Get(s.ID)
	if !ok || got != s {
		t.Fatalf("Get(%q) = %v, %v", s.ID, got, ok)
	}
	if _, ok := st.Get("USER_00000"); ok {
		t.Fatal("Get returned a session for an unknown id")
	}

	def, _ := s.Upgrade("starter-rig")
	req, err := s.Book.AddDeposit(s.ID, def, "proof_a")
	if err != nil {
		t.Fatalf("AddDeposit() error = %v", err)
	}

	owner, found, ok := st.FindDeposit(req.ID)
	if !ok || owner != s || found.ID != req.ID {
		t.Fatalf("FindDeposit(%q) = %v, %v, %v", req.ID, owner, found, ok)
	}
	if _, _, ok := st.FindDeposit("NOPE1234"); ok {
		t.Fatal("FindDeposit matched an unknown id")
	}
}

func TestStoreCloseAll(t *testing.T) {
	mock := clock.NewMock()
	st := NewStore(config.DefaultEconomy(), mock)

	a, b := st.Create(), st.Create()
	st.CloseAll()
	if !a.Closed() || !b.Closed() {
		t.Fatal("CloseAll left sessions open")
	}
}
