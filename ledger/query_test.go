package ledger

import (
	"errors"
	"testing"
)

func TestSnapshotRange_EmptyLedger(t *testing.T) {
	e := newEnv(t)
	if _, err := e.ledger.SnapshotRange(0, 0); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestSnapshotRange_Clamping(t *testing.T) {
	e := newEnv(t)
	for b := byte(1); b <= 5; b++ {
		e.join(b)
	}

	tests := []struct {
		name       string
		start, end uint64
		want       int
		wantErr    error
	}{
		{name: "full range", start: 0, end: 4, want: 5},
		{name: "end past the list clamps", start: 0, end: 100, want: 5},
		{name: "single entry", start: 2, end: 2, want: 1},
		{name: "middle slice", start: 1, end: 3, want: 3},
		{name: "start past the list", start: 5, end: 9, wantErr: ErrInvalidRange},
		{name: "inverted range", start: 3, end: 1, wantErr: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps, err := e.ledger.SnapshotRange(tt.start, tt.end)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("snapshot range: %v", err)
			}
			if len(snaps) != tt.want {
				t.Fatalf("got %d snapshots, want %d", len(snaps), tt.want)
			}
			for i, s := range snaps {
				if s.Index != tt.start+uint64(i) {
					t.Errorf("snapshot %d has index %d, want %d", i, s.Index, tt.start+uint64(i))
				}
			}
		})
	}
}

func TestSnapshotRange_PagesAreAdjacent(t *testing.T) {
	e := newEnv(t)
	for b := byte(1); b <= 7; b++ {
		e.join(b)
	}

	first, err := e.ledger.SnapshotRange(0, 2)
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := e.ledger.SnapshotRange(3, 6)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(first)+len(second) != 7 {
		t.Fatalf("pages cover %d entries, want 7", len(first)+len(second))
	}
	if first[len(first)-1].Index+1 != second[0].Index {
		t.Errorf("pages not adjacent: %d then %d", first[len(first)-1].Index, second[0].Index)
	}
}

func TestSnapshot_DeadAgeStaysFrozen(t *testing.T) {
	e := newEnv(t)
	a := e.join(1)
	b := e.join(2)

	e.setEpoch(2)
	if err := e.ledger.Heartbeat(a); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	e.setEpoch(3)
	if err := e.ledger.Heartbeat(a); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if err := e.ledger.Kill(a, b); err != nil {
		t.Fatalf("kill: %v", err)
	}

	// Move far into the future: the survivor's reported age tracks its last
	// heartbeat, the corpse's never moves again.
	e.setEpoch(50)
	snaps, err := e.ledger.SnapshotRange(0, 1)
	if err != nil {
		t.Fatalf("snapshot range: %v", err)
	}
	if snaps[0].Age != 3 || !snaps[0].Alive {
		t.Errorf("survivor snapshot: age %d alive %v, want 3 true", snaps[0].Age, snaps[0].Alive)
	}
	if snaps[1].Age != 1 || snaps[1].Alive {
		t.Errorf("corpse snapshot: age %d alive %v, want 1 false", snaps[1].Age, snaps[1].Alive)
	}
	if snaps[1].Pending != 0 {
		t.Errorf("corpse pending = %d, want 0", snaps[1].Pending)
	}
}

func TestSnapshotRange_ReadIsIdempotent(t *testing.T) {
	e := newEnv(t)
	e.join(1)
	e.join(2)

	first, err := e.ledger.SnapshotRange(0, 1)
	if err != nil {
		t.Fatalf("snapshot range: %v", err)
	}
	second, err := e.ledger.SnapshotRange(0, 1)
	if err != nil {
		t.Fatalf("snapshot range: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("snapshot %d changed between reads without a state transition", i)
		}
	}
}

func TestKillableRange(t *testing.T) {
	e := newEnv(t)
	a := e.join(1)
	b := e.join(2)
	c := e.join(3)

	// a keeps up, b and c lapse.
	e.setEpoch(2)
	if err := e.ledger.Heartbeat(a); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	e.setEpoch(3)
	if err := e.ledger.Heartbeat(a); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	killable, err := e.ledger.KillableRange(0, 99)
	if err != nil {
		t.Fatalf("killable range: %v", err)
	}
	if len(killable) != 2 {
		t.Fatalf("got %d killable, want 2", len(killable))
	}
	if killable[0].Address != b || killable[1].Address != c {
		t.Errorf("unexpected killable set: %s, %s",
			killable[0].Address.Short(), killable[1].Address.Short())
	}

	// Killing one narrows the set; the corpse never reappears.
	if err := e.ledger.Kill(a, b); err != nil {
		t.Fatalf("kill: %v", err)
	}
	killable, err = e.ledger.KillableRange(0, 99)
	if err != nil {
		t.Fatalf("killable range: %v", err)
	}
	if len(killable) != 1 || killable[0].Address != c {
		t.Fatalf("got %d killable after kill, want just %s", len(killable), c.Short())
	}

	// Inside the grace window nothing is killable.
	e2 := newEnv(t)
	e2.join(1)
	e2.setEpoch(2)
	killable, err = e2.ledger.KillableRange(0, 0)
	if err != nil {
		t.Fatalf("killable range: %v", err)
	}
	if len(killable) != 0 {
		t.Errorf("got %d killable inside grace window, want 0", len(killable))
	}
}
