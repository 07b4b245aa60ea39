package cardset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/decksmith/decksmith/internal/card"
)

// Results collects everything a lint pass found wrong with a set file.
type Results struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the set file is usable. Warnings do not count.
func (r Results) OK() bool {
	return len(r.Errors) == 0
}

// Linter checks a set file for problems a build would trip over, plus
// softer issues worth flagging. Unlike Load it keeps going after the
// first finding.
type Linter struct {
	Path    string
	Results Results
}

func NewLinter(path string) *Linter {
	return &Linter{Path: path}
}

// Lint runs every check. It returns an error only when the file itself
// cannot be read or parsed; findings land in Results.
func (l *Linter) Lint() (Results, error) {
	file, err := decodeFile(l.Path)
	if err != nil {
		return l.Results, err
	}

	l.lintMetadata(file)
	l.lintCards(file)

	return l.Results, nil
}

func (l *Linter) lintMetadata(file File) {
	if file.Name == "" {
		l.Results.Errors = append(l.Results.Errors, "set name is required")
	}
	if file.Shape != "" {
		if _, err := card.ParseShape(file.Shape); err != nil {
			l.Results.Errors = append(l.Results.Errors,
				fmt.Sprintf("set shape: %v", err))
		}
	}
	if file.Back != "" && !looksFetchable(file.Back) {
		l.Results.Warnings = append(l.Results.Warnings,
			fmt.Sprintf("set back image %q is not an http(s) or file URL; the simulator may not load it", file.Back))
	}
}

func (l *Linter) lintCards(file File) {
	if len(file.Cards) == 0 {
		l.Results.Errors = append(l.Results.Errors, "no cards defined")
		return
	}

	names := make([]string, 0, len(file.Cards))
	for name := range file.Cards {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := map[string]string{}
	for _, name := range names {
		entry := file.Cards[name]

		if prev, ok := seen[foldName(name)]; ok {
			l.Results.Errors = append(l.Results.Errors,
				fmt.Sprintf("cards %q and %q differ only in case", prev, name))
		} else {
			seen[foldName(name)] = name
		}

		if entry.Front == "" {
			l.Results.Errors = append(l.Results.Errors,
				fmt.Sprintf("card %q has no front image", name))
		} else if !looksFetchable(entry.Front) {
			l.Results.Warnings = append(l.Results.Warnings,
				fmt.Sprintf("card %q: front image %q is not an http(s) or file URL; the simulator may not load it", name, entry.Front))
		}

		if entry.Back == "" && file.Back == "" {
			l.Results.Errors = append(l.Results.Errors,
				fmt.Sprintf("card %q has no back image and the set defines no default back", name))
		} else if entry.Back != "" && !looksFetchable(entry.Back) {
			l.Results.Warnings = append(l.Results.Warnings,
				fmt.Sprintf("card %q: back image %q is not an http(s) or file URL; the simulator may not load it", name, entry.Back))
		}

		if entry.Shape != "" {
			if _, err := card.ParseShape(entry.Shape); err != nil {
				l.Results.Errors = append(l.Results.Errors,
					fmt.Sprintf("card %q: %v", name, err))
			}
		}
	}
}

func looksFetchable(ref string) bool {
	for _, prefix := range []string{"http://", "https://", "file://"} {
		if strings.HasPrefix(ref, prefix) {
			return true
		}
	}
	return false
}
