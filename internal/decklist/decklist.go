// Package decklist reads plain-text decklists: one card per line, with an
// optional leading count ("4x Lightning Bolt", "4 Lightning Bolt" or just
// "Lightning Bolt"). Blank lines and lines starting with # are ignored.
package decklist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/decksmith/decksmith/internal/card"
)

// Entry is one decklist line: a resolved card and how many copies of it the
// deck contains.
type Entry struct {
	Card  card.Card
	Count int
}

// Errors underlying ParseError for malformed lines.
var (
	ErrEmptyName = errors.New("card name is empty")
	ErrZeroCount = errors.New("card count is zero")
)

// ParseError describes a decklist line that could not be turned into a card.
// Line and Column are 1-based; zero means unknown. Content carries the
// offending line as written.
type ParseError struct {
	Line    int
	Column  int
	Content string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	switch {
	case e.Line > 0 && e.Column > 0:
		fmt.Fprintf(&b, "line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		fmt.Fprintf(&b, "line %d", e.Line)
	case e.Column > 0:
		fmt.Fprintf(&b, "column %d", e.Column)
	default:
		b.WriteString("decklist")
	}
	if e.Content != "" {
		fmt.Fprintf(&b, " (%q)", e.Content)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLine parses a single decklist line and resolves its card name through
// r. The returned error is always a *ParseError; its Line field is left for
// the caller to fill in.
func ParseLine(line string, r card.Resolver) (Entry, error) {
	count, name, perr := splitLine(line)
	if perr != nil {
		return Entry{}, perr
	}
	c, err := r.Resolve(name)
	if err != nil {
		return Entry{}, &ParseError{Content: line, Err: err}
	}
	return Entry{Card: c, Count: count}, nil
}

// splitLine splits a line into its count and card name. Lines that do not
// start with a digit are a bare card name with count 1.
func splitLine(line string) (int, string, *ParseError) {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	if i == len(line) {
		return 0, "", &ParseError{Content: line, Err: ErrEmptyName}
	}
	if line[i] < '0' || line[i] > '9' {
		return 1, strings.TrimSpace(line[i:]), nil
	}

	j := i
	for j < len(line) && line[j] >= '0' && line[j] <= '9' {
		j++
	}
	countStr := line[i:j]

	nameStart := j
	if j < len(line) {
		switch line[j] {
		case 'x', 'X':
			nameStart = j + 1
		case ' ', '\t':
			k := j
			for k < len(line) && (line[k] == ' ' || line[k] == '\t') {
				k++
			}
			// A lone x between count and name is a separator ("4 x Bolt"),
			// but only when whitespace or end of line follows, so that
			// names like "xenograft" survive.
			if k < len(line) && (line[k] == 'x' || line[k] == 'X') &&
				(k+1 == len(line) || line[k+1] == ' ' || line[k+1] == '\t') {
				nameStart = k + 1
			} else {
				nameStart = k
			}
		default:
			return 0, "", &ParseError{
				Column:  j + 1,
				Content: line,
				Err:     fmt.Errorf("unexpected character %q in card count", rune(line[j])),
			}
		}
	}

	count, err := strconv.Atoi(countStr)
	if err != nil {
		return 0, "", &ParseError{Content: line, Err: fmt.Errorf("bad card count %q: %w", countStr, err)}
	}
	if count == 0 {
		return 0, "", &ParseError{Content: line, Err: ErrZeroCount}
	}

	name := strings.TrimSpace(line[nameStart:])
	if name == "" {
		return 0, "", &ParseError{Content: line, Err: ErrEmptyName}
	}
	return count, name, nil
}

// Parse reads a decklist and resolves every entry through r. It stops at the
// first bad line and returns a *ParseError annotated with that line's number
// and content. A card name may appear on only one line; copies belong in the
// line's count.
func Parse(rd io.Reader, r card.Resolver) ([]Entry, error) {
	scanner := bufio.NewScanner(rd)
	var entries []Entry
	seen := make(map[string]int)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entry, err := ParseLine(line, r)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Line = lineNum
				return nil, perr
			}
			return nil, &ParseError{Line: lineNum, Content: line, Err: err}
		}
		name := entry.Card.Name()
		if first, dup := seen[name]; dup {
			return nil, &ParseError{
				Line:    lineNum,
				Content: line,
				Err:     fmt.Errorf("card %q already listed on line %d", name, first),
			}
		}
		seen[name] = lineNum
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: lineNum + 1, Err: fmt.Errorf("read decklist: %w", err)}
	}
	return entries, nil
}

// ParseFile opens path and parses it with Parse.
func ParseFile(path string, r card.Resolver) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open decklist: %w", err)
	}
	defer f.Close()
	return Parse(f, r)
}

// Expand flattens entries into the deck's card sequence, repeating each card
// Count times in listed order.
func Expand(entries []Entry) []card.Card {
	var cards []card.Card
	for _, e := range entries {
		for i := 0; i < e.Count; i++ {
			cards = append(cards, e.Card)
		}
	}
	return cards
}
