// Package diffparse reconstructs line-addressable file content from
// unified-diff text. Only added lines are kept; each kept line is mapped
// back to its line number in the new file version so findings can be
// attributed precisely.
package diffparse

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

const oldFileMarker = "--- a/"

// FilePatch holds the added lines of one file, concatenated in diff order,
// plus the mapping from each added line's 0-based index within Added to its
// 1-based line number in the new file version.
type FilePatch struct {
	Added   string
	LineMap map[int]int
}

// parser threads the running state of a single left-to-right scan.
type parser struct {
	result  map[string]*FilePatch
	path    string
	added   strings.Builder
	lineMap map[int]int
	index   int // next added-line index within the accumulated text
	newLine int // current line number in the new file version
}

// Parse converts one or more concatenated unified-diff blocks into a map
// from file path to FilePatch. Files whose diff contains no added lines are
// omitted. Malformed input never fails: unrecognized lines and orphan or
// broken hunk headers are skipped without touching parser state.
func Parse(patch string) map[string]*FilePatch {
	p := &parser{result: map[string]*FilePatch{}}
	for _, line := range strings.Split(patch, "\n") {
		switch {
		case strings.HasPrefix(line, oldFileMarker):
			p.flush()
			p.path = line[len(oldFileMarker):]
		case strings.HasPrefix(line, "+++"):
			// informational; the active path was set by the old-file marker
		case strings.HasPrefix(line, "@@"):
			if m := hunkHeaderRe.FindStringSubmatch(line); m != nil && p.path != "" {
				start, err := strconv.Atoi(m[1])
				if err == nil {
					p.newLine = start
				}
			}
		case p.path == "":
			// content before any file marker; nothing to attribute it to
		case strings.HasPrefix(line, "+"):
			p.added.WriteString(line[1:])
			p.added.WriteByte('\n')
			if p.lineMap == nil {
				p.lineMap = map[int]int{}
			}
			p.lineMap[p.index] = p.newLine
			p.index++
			p.newLine++
		case strings.HasPrefix(line, " "):
			p.newLine++
		}
		// removed lines do not exist in the new version; no counter change
	}
	p.flush()
	return p.result
}

// flush moves the in-progress file section into the result map and resets
// per-file state. Sections that accumulated no added content are dropped.
func (p *parser) flush() {
	if p.path != "" && p.added.Len() > 0 {
		p.result[p.path] = &FilePatch{Added: p.added.String(), LineMap: p.lineMap}
	}
	p.path = ""
	p.added.Reset()
	p.lineMap = nil
	p.index = 0
	p.newLine = 0
}
