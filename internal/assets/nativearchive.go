package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zlib"
)

// Native archive flags. MixCrypt and similar encryption flags are
// recognized but not decoded; entries carrying them fail
// lookup rather than being silently skipped from the index, so a caller
// sees an error naming the unsupported flag instead of a confusing absence.
const (
	entryFlagMixCrypt   uint32 = 0x01
	entryFlagDES        uint32 = 0x02
	entryFlagSupported         = 0 // baseline: zlib/DEFLATE only
)

const nativeArchiveMagic = "VKGR"
const nativeArchiveVersion = 1

// nativeEntry is one central-directory record: name, compressed and
// real sizes, flags, and the byte offset of its compressed blob in the
// archive body. Modeled on the MPQ block-table entry shape (offset,
// compressed size, real size, flags) seen in the icza/mpq reference
// implementation, simplified to this protocol's single-hash-per-name
// directory (no MPQ-style hash collision table needed here).
type nativeEntry struct {
	Name           string
	CompressedSize uint32
	RealSize       uint32
	Flags          uint32
	Offset         uint32
}

// NativeArchive is the legacy-container archive kind: a
// header, a compressed central directory, and a concatenation of
// per-file DEFLATE-compressed blobs.
type NativeArchive struct {
	name    string
	data    []byte // whole file, body offsets are absolute into this slice
	entries map[string]nativeEntry
}

// OpenNativeArchive reads and validates path's header and central
// directory, and builds the case-insensitive lookup index.
func OpenNativeArchive(path string) (*NativeArchive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open native archive %s: %w", path, err)
	}
	archive, err := parseNativeArchive(path, data)
	if err != nil {
		return nil, err
	}
	return archive, nil
}

func parseNativeArchive(name string, data []byte) (*NativeArchive, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("%s: too small to be a native archive (%s)", name, humanize.Bytes(uint64(len(data))))
	}
	if string(data[0:4]) != nativeArchiveMagic {
		return nil, fmt.Errorf("%s: bad magic %q", name, data[0:4])
	}
	version := binary.LittleEndian.Uint32(data[4:8])
	if version != nativeArchiveVersion {
		return nil, fmt.Errorf("%s: unsupported archive version %d", name, version)
	}
	dirOffset := binary.LittleEndian.Uint32(data[8:12])
	dirCompressedSize := binary.LittleEndian.Uint32(data[12:16])
	if int(dirOffset+dirCompressedSize) > len(data) {
		return nil, fmt.Errorf("%s: central directory extends past end of file", name)
	}

	dirReader, err := zlib.NewReader(bytes.NewReader(data[dirOffset : dirOffset+dirCompressedSize]))
	if err != nil {
		return nil, fmt.Errorf("%s: inflate central directory: %w", name, err)
	}
	defer dirReader.Close()
	dirBytes, err := io.ReadAll(dirReader)
	if err != nil {
		return nil, fmt.Errorf("%s: read central directory: %w", name, err)
	}

	entries, err := decodeCentralDirectory(dirBytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	index := make(map[string]nativeEntry, len(entries))
	for _, e := range entries {
		index[strings.ToLower(e.Name)] = e
	}
	return &NativeArchive{name: name, data: data, entries: index}, nil
}

func decodeCentralDirectory(b []byte) ([]nativeEntry, error) {
	var entries []nativeEntry
	off := 0
	for off < len(b) {
		if off+2 > len(b) {
			return nil, fmt.Errorf("truncated central directory")
		}
		nameLen := int(binary.LittleEndian.Uint16(b[off:]))
		off += 2
		if off+nameLen+16 > len(b) {
			return nil, fmt.Errorf("truncated central directory entry")
		}
		name := string(b[off : off+nameLen])
		off += nameLen
		entries = append(entries, nativeEntry{
			Name:           name,
			CompressedSize: binary.LittleEndian.Uint32(b[off:]),
			RealSize:       binary.LittleEndian.Uint32(b[off+4:]),
			Flags:          binary.LittleEndian.Uint32(b[off+8:]),
			Offset:         binary.LittleEndian.Uint32(b[off+12:]),
		})
		off += 16
	}
	return entries, nil
}

func (a *NativeArchive) Name() string { return a.name }

// Get implements Archive. An entry carrying an unsupported flag (e.g.
// MixCrypt) fails lookup rather than returning undecoded ciphertext.
func (a *NativeArchive) Get(path string) ([]byte, bool, error) {
	e, ok := a.entries[path]
	if !ok {
		return nil, false, nil
	}
	if e.Flags&(entryFlagMixCrypt|entryFlagDES) != 0 {
		return nil, false, fmt.Errorf("%s: entry %s uses an unsupported encryption flag 0x%x", a.name, e.Name, e.Flags)
	}
	if int(e.Offset+e.CompressedSize) > len(a.data) {
		return nil, false, fmt.Errorf("%s: entry %s extends past end of archive", a.name, e.Name)
	}
	blob := a.data[e.Offset : e.Offset+e.CompressedSize]
	r, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, false, fmt.Errorf("%s: inflate %s: %w", a.name, e.Name, err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("%s: read %s: %w", a.name, e.Name, err)
	}
	return out, true, nil
}

// Entries lists the archive's file names, for the debug manifest.
func (a *NativeArchive) Entries() []string {
	names := make([]string, 0, len(a.entries))
	for name := range a.entries {
		names = append(names, name)
	}
	return names
}

// WriteNativeArchive builds a new archive at path from files (name →
// uncompressed bytes), DEFLATE-compressing each blob and the central
// directory itself. Used by the Lua-patch pass to save the normalized
// lua_files.grf archive.
func WriteNativeArchive(path string, files map[string][]byte) error {
	var body bytes.Buffer
	var dir bytes.Buffer
	entries := make([]nativeEntry, 0, len(files))

	for name, raw := range files {
		offset := uint32(body.Len())
		var compressed bytes.Buffer
		zw := zlib.NewWriter(&compressed)
		if _, err := zw.Write(raw); err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compress %s: %w", name, err)
		}
		body.Write(compressed.Bytes())
		entries = append(entries, nativeEntry{
			Name:           name,
			CompressedSize: uint32(compressed.Len()),
			RealSize:       uint32(len(raw)),
			Offset:         offset,
		})
	}

	for _, e := range entries {
		binary.Write(&dir, binary.LittleEndian, uint16(len(e.Name)))
		dir.WriteString(e.Name)
		binary.Write(&dir, binary.LittleEndian, e.CompressedSize)
		binary.Write(&dir, binary.LittleEndian, e.RealSize)
		binary.Write(&dir, binary.LittleEndian, e.Flags)
		binary.Write(&dir, binary.LittleEndian, e.Offset)
	}

	var compressedDir bytes.Buffer
	zw := zlib.NewWriter(&compressedDir)
	if _, err := zw.Write(dir.Bytes()); err != nil {
		return fmt.Errorf("compress central directory: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress central directory: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(nativeArchiveMagic)
	binary.Write(&out, binary.LittleEndian, uint32(nativeArchiveVersion))
	dirOffset := uint32(16 + body.Len())
	binary.Write(&out, binary.LittleEndian, dirOffset)
	binary.Write(&out, binary.LittleEndian, uint32(compressedDir.Len()))
	out.Write(body.Bytes())
	out.Write(compressedDir.Bytes())

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write native archive %s: %w", path, err)
	}
	return nil
}
