package assets

import "time"

// DebugManifest is a non-persisted snapshot of VFS state, built on
// demand for the debug relay.
type DebugManifest struct {
	GeneratedAt time.Time           `json:"generatedAt"`
	Archives    []string            `json:"archives"` // probe order, highest priority first
	EntryCounts map[string]int      `json:"entryCounts"`
	LuaPatch    *LuaPatchResult     `json:"luaPatch,omitempty"`
	Misses      []string            `json:"recentMisses,omitempty"`
}

// entryLister is implemented by archive kinds that can enumerate their
// contents (NativeArchive, FolderArchive); used only for manifest
// building, not part of the Archive interface itself since a future
// streaming archive kind might not support it cheaply.
type entryLister interface {
	Entries() []string
}

// BuildDebugManifest snapshots the loader's current archive stack. now
// is passed in rather than read from time.Now() so callers in tests can
// produce deterministic output.
func BuildDebugManifest(loader *Loader, now time.Time, luaPatch *LuaPatchResult, recentMisses []string) *DebugManifest {
	names := loader.ArchiveNames()
	counts := make(map[string]int, len(names))

	loader.mu.Lock()
	archives := loader.archives
	loader.mu.Unlock()

	for _, a := range archives {
		if lister, ok := a.(entryLister); ok {
			counts[a.Name()] = len(lister.Entries())
		}
	}

	return &DebugManifest{
		GeneratedAt: now,
		Archives:    names,
		EntryCounts: counts,
		LuaPatch:    luaPatch,
		Misses:      recentMisses,
	}
}
