package assets

import (
	"fmt"
)

// Lua 5.1 bytecode files begin with this signature (LUA_SIGNATURE in
// lundump.h: ESC 'L' 'u' 'a'). Anything else inside a .lub entry is
// assumed to be plain Lua source text.
var luaBytecodeMagic = []byte{0x1B, 'L', 'u', 'a'}

// LuaFileStatus classifies one .lub entry found while scanning the
// loaded archives during the startup normalization pass.
type LuaFileStatus int

const (
	LuaFileIsSource LuaFileStatus = iota
	LuaFileIsBytecode
	LuaFileReadError
)

// classifyLuaFile sniffs data's first bytes to tell compiled bytecode
// from source text, rather than trusting the file extension alone.
func classifyLuaFile(data []byte) LuaFileStatus {
	if len(data) >= len(luaBytecodeMagic) {
		match := true
		for i, b := range luaBytecodeMagic {
			if data[i] != b {
				match = false
				break
			}
		}
		if match {
			return LuaFileIsBytecode
		}
	}
	return LuaFileIsSource
}

// LuaPatchResult summarizes one run of NormalizeLuaFiles, for the debug
// manifest and for logging.
type LuaPatchResult struct {
	// SourceEntries already contained normalized Lua source and needed
	// no action.
	SourceEntries []string
	// BytecodeEntries were compiled bytecode; this pass does not
	// decompile them (no decompiler is in scope), it only records which
	// entries would need one.
	BytecodeEntries []string
	// Errors maps an entry name to the read error encountered.
	Errors map[string]error
	// Skipped is true when a sibling lua_files.grf/lua_files archive
	// was already registered, so no scan or rebuild ran.
	Skipped bool
}

// luaArchiveNames are the two well-known sibling names NormalizeLuaFiles
// checks for before doing any work.
var luaArchiveNames = map[string]bool{
	"lua_files.grf": true,
	"lua_files":     true,
}

// NormalizeLuaFiles implements the startup Lua normalization pass: if
// one of the already-registered archives is named lua_files.grf or
// lua_files, normalization has already happened for this install and
// the pass is a no-op. Otherwise it walks every .lub entry reachable
// through entries (collected by the caller from each archive that
// exposes an Entries() []string method), classifies each one, and — for
// archives that support it — builds a new highest-priority archive at
// outputPath containing only the entries this pass could read, and
// registers it with loader.AddArchive itself.
func NormalizeLuaFiles(loader *Loader, entries map[string][]byte, outputPath string) (*LuaPatchResult, error) {
	for _, name := range loader.ArchiveNames() {
		if luaArchiveNames[name] {
			return &LuaPatchResult{Skipped: true}, nil
		}
	}

	result := &LuaPatchResult{Errors: map[string]error{}}
	normalized := make(map[string][]byte)

	for name, data := range entries {
		if !hasExtension(name, ".lub") {
			continue
		}
		switch classifyLuaFile(data) {
		case LuaFileIsSource:
			result.SourceEntries = append(result.SourceEntries, name)
			normalized[name] = data
		case LuaFileIsBytecode:
			result.BytecodeEntries = append(result.BytecodeEntries, name)
			// No decompiler in scope; carry the
			// original bytecode bytes forward unchanged so the archive
			// still resolves the entry, it just isn't source-normalized.
			normalized[name] = data
		}
	}

	if len(normalized) == 0 {
		return result, nil
	}

	if err := WriteNativeArchive(outputPath, normalized); err != nil {
		return nil, fmt.Errorf("write normalized lua archive: %w", err)
	}
	archive, err := OpenNativeArchive(outputPath)
	if err != nil {
		return nil, fmt.Errorf("reopen normalized lua archive: %w", err)
	}
	loader.AddArchive(archive)
	return result, nil
}
