// internal/status/snapshot_test.go
package status

import "testing"

func TestSnapshot_ObserveRecovery(t *testing.T) {
	var s Snapshot

	if !s.Observe(ResponseTimedOut) {
		t.Fatalf("expected change on first error")
	}
	if s.Health != HealthError || s.LastErrorCode != 0xE2 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if s.Observe(ResponseTimedOut) {
		t.Fatalf("same error must not report change")
	}

	s.Tick()
	s.Tick()
	if s.SecondsInError != 2 {
		t.Fatalf("expected 2 seconds in error, got %d", s.SecondsInError)
	}

	if !s.Observe(nil) {
		t.Fatalf("expected change on recovery")
	}
	if s != (Snapshot{Health: HealthOK}) {
		t.Fatalf("expected clean OK snapshot, got %+v", s)
	}

	s.Tick()
	if s.SecondsInError != 0 {
		t.Fatalf("tick must not count while healthy")
	}
}

func TestSnapshot_TickSaturates(t *testing.T) {
	s := Snapshot{Health: HealthError, SecondsInError: SecondsInErrorMax}
	s.Tick()
	if s.SecondsInError != SecondsInErrorMax {
		t.Fatalf("counter wrapped: %d", s.SecondsInError)
	}
}

func TestEncode_FixedKeys(t *testing.T) {
	out := Encode(Info{ClientID: "growatt1500", Version: "v1", UptimeSec: 42, ModbusUpdate: 10, StatusUpdate: 300},
		Snapshot{Health: HealthError, LastErrorCode: 226, SecondsInError: 3})

	want := `{"uptime":42,"clientid":"growatt1500","version":"v1","modbusUpdate":10,"statusUpdate":300,"health":2,"lastError":226,"secondsInError":3}`
	if out != want {
		t.Fatalf("got  %s\nwant %s", out, want)
	}
}
