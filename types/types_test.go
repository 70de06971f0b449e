package types

import "testing"

func TestParticipantAge(t *testing.T) {
	tests := []struct {
		name string
		p    Participant
		want uint64
	}{
		{"never registered", Participant{}, 0},
		{"fresh registration", Participant{BirthEpoch: 5, LastEpoch: 5, Alive: true}, 1},
		{"three epochs alive", Participant{BirthEpoch: 5, LastEpoch: 7, Alive: true}, 3},
		{"dead keeps frozen age", Participant{BirthEpoch: 5, LastEpoch: 7, Alive: false}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Age(); got != tt.want {
				t.Errorf("Age() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParticipantKillable(t *testing.T) {
	p := Participant{BirthEpoch: 10, LastEpoch: 10, Alive: true}

	tests := []struct {
		name string
		now  Epoch
		want bool
	}{
		{"registration epoch", 10, false},
		{"grace epoch", 11, false},
		{"first lapsed epoch", 12, true},
		{"long lapsed", 20, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Killable(tt.now); got != tt.want {
				t.Errorf("Killable(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}

	dead := Participant{BirthEpoch: 10, LastEpoch: 10, Alive: false}
	if dead.Killable(20) {
		t.Error("dead participant should not be killable")
	}
}

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("0x0102030405060708090a0b0c0d0e0f1011121314")
	if err != nil {
		t.Fatalf("parse address: %v", err)
	}
	if addr[0] != 0x01 || addr[19] != 0x14 {
		t.Errorf("unexpected bytes: %x", addr)
	}

	// Without prefix
	same, err := ParseAddress("0102030405060708090a0b0c0d0e0f1011121314")
	if err != nil {
		t.Fatalf("parse address without prefix: %v", err)
	}
	if same != addr {
		t.Error("prefixed and unprefixed parse should agree")
	}

	if _, err := ParseAddress("0xdeadbeef"); err == nil {
		t.Error("expected error for short address")
	}
	if _, err := ParseAddress("zz02030405060708090a0b0c0d0e0f1011121314"); err == nil {
		t.Error("expected error for non-hex address")
	}
}

func TestParseAgentID(t *testing.T) {
	id, err := ParseAgentID("0x" + "ab" + "00000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("parse agent id: %v", err)
	}
	if id[0] != 0xab {
		t.Errorf("unexpected first byte: %x", id[0])
	}
	if _, err := ParseAgentID("0xabcd"); err == nil {
		t.Error("expected error for short agent id")
	}
}
