package versions

import "testing"

func TestBothBundlesBuildWithoutDuplicateHandlers(t *testing.T) {
	for _, tag := range []Tag{Tag20120307, Tag20220406} {
		if _, err := BundleFor(tag); err != nil {
			t.Fatalf("%s: unexpected error: %v", tag, err)
		}
	}
}

func TestUnsupportedVersionIsError(t *testing.T) {
	if _, err := BundleFor(Tag("19990101")); err == nil {
		t.Fatal("expected an error for an unsupported version tag")
	}
}
