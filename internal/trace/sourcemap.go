package trace

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// RemappedLine is a post-remap source location.
type RemappedLine struct {
	File string
	Line int
}

// SourceMapper translates a compiled script location back to its original
// source. Implementations are supplied by the host; FileSourceMapper is
// the default for the standard dist/ layout.
type SourceMapper interface {
	// MapLine remaps (owning plugin, compiled source file, line) to the
	// original file and line. ok is false when no mapping is known.
	MapLine(plugin, source string, line int) (RemappedLine, bool)
}

// MapSuffix is appended to a compiled file name to locate its source map.
const MapSuffix = ".map"

// ErrBadSourceMap is returned when a map file cannot be decoded.
var ErrBadSourceMap = errors.New("malformed source map")

// FileSourceMapper reads standard source map v3 files emitted next to the
// compiled output (foo.lua -> foo.lua.map). Decoded maps are cached per
// compiled file.
type FileSourceMapper struct {
	distDir string

	mu    sync.Mutex
	cache map[string]*lineMap
}

// NewFileSourceMapper creates a mapper rooted at a plugin's dist directory.
func NewFileSourceMapper(distDir string) *FileSourceMapper {
	return &FileSourceMapper{
		distDir: distDir,
		cache:   make(map[string]*lineMap),
	}
}

// MapLine implements SourceMapper.
func (m *FileSourceMapper) MapLine(plugin, source string, line int) (RemappedLine, bool) {
	lm, err := m.load(source)
	if err != nil {
		return RemappedLine{}, false
	}
	return lm.lookup(line)
}

// load returns the decoded map for a compiled file, reading it on first use.
func (m *FileSourceMapper) load(source string) (*lineMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if lm, ok := m.cache[source]; ok {
		if lm == nil {
			return nil, ErrBadSourceMap
		}
		return lm, nil
	}

	path := source + MapSuffix
	if !strings.HasPrefix(source, m.distDir) {
		path = m.distDir + string(os.PathSeparator) + source + MapSuffix
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.cache[source] = nil
		return nil, err
	}

	lm, err := decodeSourceMap(data)
	m.cache[source] = lm
	if err != nil {
		return nil, err
	}
	return lm, nil
}

// lineMap maps generated line numbers (1-based) to original locations.
type lineMap struct {
	lines map[int]RemappedLine
}

func (lm *lineMap) lookup(line int) (RemappedLine, bool) {
	loc, ok := lm.lines[line]
	return loc, ok
}

// decodeSourceMap decodes the sources and mappings fields of a source map
// v3 document at line granularity: each generated line is attributed to
// the original location of its first mapped segment.
func decodeSourceMap(data []byte) (*lineMap, error) {
	mappings := gjson.GetBytes(data, "mappings")
	sourcesField := gjson.GetBytes(data, "sources")
	if !mappings.Exists() || !sourcesField.IsArray() {
		return nil, ErrBadSourceMap
	}

	var sources []string
	for _, s := range sourcesField.Array() {
		sources = append(sources, s.String())
	}

	lm := &lineMap{lines: make(map[int]RemappedLine)}

	// Segment fields are deltas accumulated across the whole mappings
	// string, except the generated column which resets per line.
	srcIdx, srcLine := 0, 0
	for genLine, group := range strings.Split(mappings.String(), ";") {
		first := true
		for _, seg := range strings.Split(group, ",") {
			if seg == "" {
				continue
			}
			fields, err := decodeVLQ(seg)
			if err != nil {
				return nil, err
			}
			if len(fields) < 4 {
				continue
			}
			srcIdx += fields[1]
			srcLine += fields[2]
			if first && srcIdx >= 0 && srcIdx < len(sources) {
				lm.lines[genLine+1] = RemappedLine{
					File: sources[srcIdx],
					Line: srcLine + 1,
				}
				first = false
			}
		}
	}
	return lm, nil
}

const vlqChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var vlqTable = buildVLQTable()

func buildVLQTable() [256]int8 {
	var tbl [256]int8
	for i := range tbl {
		tbl[i] = -1
	}
	for i, c := range vlqChars {
		tbl[c] = int8(i)
	}
	return tbl
}

// decodeVLQ decodes one base64 VLQ segment into its signed fields.
func decodeVLQ(seg string) ([]int, error) {
	var fields []int
	value, shift := 0, 0
	for i := 0; i < len(seg); i++ {
		digit := vlqTable[seg[i]]
		if digit < 0 {
			return nil, ErrBadSourceMap
		}
		value |= int(digit&31) << shift
		if digit&32 != 0 {
			shift += 5
			continue
		}
		// Low bit carries the sign.
		if value&1 != 0 {
			fields = append(fields, -(value >> 1))
		} else {
			fields = append(fields, value>>1)
		}
		value, shift = 0, 0
	}
	if shift != 0 {
		return nil, ErrBadSourceMap
	}
	return fields, nil
}
