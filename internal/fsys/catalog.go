package fsys

import (
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// EditablePattern lists the file names the editor opens, matched against the
// lower-cased name. Names shorter than five bytes are never editable, so the
// three-letter extensions need a character in front while ".json" stands alone.
const EditablePattern = "{?*.ini,?*.cfg,?*.txt,*.json,?*.xml}"

var editable = glob.MustCompile(EditablePattern)

// IsEditable reports whether name has an openable extension, ignoring case.
func IsEditable(name string) bool {
	return editable.Match(strings.ToLower(name))
}

// Catalog turns a raw listing into what the browser shows: dot entries and
// non-editable files are dropped, at most MaxEntries are kept in source order,
// long names are cut, and the result is sorted directories first, then by
// case-insensitive name.
func Catalog(raw []Entry) []Entry {
	out := make([]Entry, 0, min(len(raw), MaxEntries))
	for _, e := range raw {
		if len(out) >= MaxEntries {
			break
		}
		if e.Name == "" || e.Name == "." || e.Name == ".." {
			continue
		}
		if !e.IsDir && !IsEditable(e.Name) {
			continue
		}
		if len(e.Name) > MaxNameLen {
			e.Name = e.Name[:MaxNameLen]
		}
		out = append(out, e)
	}
	SortEntries(out)
	return out
}

// SortEntries orders directories before files and names case-insensitively.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}
