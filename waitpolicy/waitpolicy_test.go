package waitpolicy

import "testing"

func TestMakeKnownTags(t *testing.T) {
	for _, tag := range []string{TagBurn, TagYield, TagPause} {
		s, ok := Make(tag)
		if !ok || s == nil {
			t.Fatalf("Make(%q) = (%v, %v), want a strategy and true", tag, s, ok)
		}
		s() // must not panic
	}
}

func TestMakeUnknownTag(t *testing.T) {
	s, ok := Make("burst")
	if ok || s != nil {
		t.Fatalf("Make(%q) = (%v, %v), want (nil, false)", "burst", s, ok)
	}
}
