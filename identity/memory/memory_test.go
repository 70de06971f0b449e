package memory

import (
	"errors"
	"testing"

	"github.com/tontinelabs/tontine/types"
)

func TestBind_FirstComeImmutable(t *testing.T) {
	r := New()
	var agent types.AgentID
	agent[0] = 1
	var alice, bob types.Address
	alice[0] = 1
	bob[0] = 2

	if _, ok := r.Owner(agent); ok {
		t.Fatal("unbound agent should have no owner")
	}

	if err := r.Bind(agent, alice); err != nil {
		t.Fatalf("bind: %v", err)
	}
	owner, ok := r.Owner(agent)
	if !ok || owner != alice {
		t.Fatalf("owner = %v, %v, want alice", owner, ok)
	}

	// Rebinding is rejected, even by the current owner.
	if err := r.Bind(agent, bob); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("err = %v, want ErrAlreadyBound", err)
	}
	if err := r.Bind(agent, alice); !errors.Is(err, ErrAlreadyBound) {
		t.Errorf("err = %v, want ErrAlreadyBound", err)
	}
	if owner, _ := r.Owner(agent); owner != alice {
		t.Errorf("owner changed to %v", owner)
	}
}
