package sessions

import "testing"

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore()

	token, s := st.Create()
	if token == "" || s == nil {
		t.Fatal("expected token and session")
	}
	if s.ID() == token {
		t.Fatal("session id must not double as the bearer token")
	}

	got, ok := st.Get(token)
	if !ok || got != s {
		t.Fatalf("lookup returned %v, %v", got, ok)
	}
	if _, ok := st.Get("unknown"); ok {
		t.Fatal("unknown token must miss")
	}

	st.Create()
	if st.Count() != 2 {
		t.Fatalf("count %d, want 2", st.Count())
	}
}
