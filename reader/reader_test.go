package reader

import "testing"

func TestParseMillidegrees(t *testing.T) {
	c, err := parseMillidegrees("48312\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != 48.312 {
		t.Errorf("got %v, want 48.312", c)
	}
	if _, err := parseMillidegrees("hot"); err == nil {
		t.Error("expected error for non-numeric content")
	}
}

func TestBuildMemory(t *testing.T) {
	const mb = 1024 * 1024
	m := buildMemory(1024*mb, 256*mb, 512*mb)

	if m.TotalMB != 1024 || m.FreeMB != 256 || m.AvailableMB != 512 {
		t.Errorf("conversion wrong: %+v", m)
	}
	// Used is total minus available, not total minus free.
	if m.UsedMB != 512 {
		t.Errorf("used = %v, want 512", m.UsedMB)
	}
	if m.UsedPercent != 50 {
		t.Errorf("used percent = %v, want 50", m.UsedPercent)
	}
}

func TestBuildMemoryZeroTotal(t *testing.T) {
	m := buildMemory(0, 0, 0)
	if m.UsedPercent != 0 {
		t.Errorf("zero total must not divide: %v", m.UsedPercent)
	}
}
