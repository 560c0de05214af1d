package control

import (
	"testing"
)

func TestConfigStoreSnapshotIsCopy(t *testing.T) {
	cs := NewConfigStore()
	cs.SetConfig(map[string]any{"ring.capacity": 10})
	snap := cs.GetSnapshot()
	snap["ring.capacity"] = 99
	if cs.GetSnapshot()["ring.capacity"] != 10 {
		t.Error("snapshot mutation leaked into the store")
	}
	cs.SetConfig(map[string]any{"consumers": 2})
	if got := cs.GetSnapshot(); len(got) != 2 {
		t.Errorf("merge lost keys: %v", got)
	}
}

func TestMetricsRegistry(t *testing.T) {
	mr := NewMetricsRegistry()
	if !mr.Updated().IsZero() {
		t.Error("fresh registry must have zero update time")
	}
	mr.Set("ring.puts", uint64(3))
	mr.Set("ring.puts", uint64(4))
	if got := mr.GetSnapshot()["ring.puts"]; got != uint64(4) {
		t.Errorf("ring.puts=%v", got)
	}
	if mr.Updated().IsZero() {
		t.Error("Set must stamp the update time")
	}
}

func TestDebugProbes(t *testing.T) {
	dp := NewDebugProbes()
	RegisterPlatformProbes(dp)
	n := 0
	dp.RegisterProbe("ring.len", func() any { n++; return n })
	if v, ok := dp.Probe("ring.len"); !ok || v != 1 {
		t.Errorf("Probe=(%v,%v)", v, ok)
	}
	if _, ok := dp.Probe("missing"); ok {
		t.Error("unknown probe reported present")
	}
	state := dp.DumpState()
	if state["ring.len"] != 2 || state["platform.cpus"] == nil {
		t.Errorf("DumpState=%v", state)
	}
	names := dp.Names()
	if len(names) != 3 || names[0] != "platform.cpus" {
		t.Errorf("Names=%v", names)
	}
}
