package quizparser

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// minOptionRunes is the shortest option text kept; anything shorter is noise.
const minOptionRunes = 2

// span is a half-open byte range of a block.
type span struct {
	start, end int
}

// optionCandidate is one marker occurrence before validation.
type optionCandidate struct {
	letter string
	text   string
	span   span
}

// optionExtraction is the validated output of one pattern family.
type optionExtraction struct {
	options []domain.Option
	spans   []span
}

// ExtractOptions recovers the ordered, deduplicated options of a block.
//
// Pattern families are tried in order and the first one that yields a
// valid option wins:
//
//  1. lowercase markers anywhere on a line ("a) text", "b. text")
//  2. the uppercase variant of 1
//  3. line-anchored markers, any case, where the text may sit on the
//     following line
//
// When a letter recurs the first text wins. An empty result is not an
// error; the assembler decides whether the block survives.
func ExtractOptions(block string, letters *LetterSet) []domain.Option {
	return extractOptions(block, letters).options
}

func extractOptions(block string, letters *LetterSet) optionExtraction {
	ext, _, _ := firstMatch(block, optionStrategies(letters))
	return ext
}

func optionStrategies(letters *LetterSet) []strategy[optionExtraction] {
	validated := func(find func(string) []optionCandidate) func(string) (optionExtraction, bool) {
		return func(block string) (optionExtraction, bool) {
			ext := validateCandidates(find(block), letters)
			return ext, len(ext.options) > 0
		}
	}
	return []strategy[optionExtraction]{
		{name: "inline_lower", run: validated(func(b string) []optionCandidate {
			return inlineCandidates(b, letters.inlineLower)
		})},
		{name: "inline_upper", run: validated(func(b string) []optionCandidate {
			return inlineCandidates(b, letters.inlineUpper)
		})},
		{name: "line_anchored", run: validated(func(b string) []optionCandidate {
			return lineAnchoredCandidates(b, letters.lineAnchored)
		})},
	}
}

// inlineCandidates slices the block between consecutive markers. An
// option's text runs to the next marker or the end of its line, whichever
// comes first.
func inlineCandidates(block string, marker *regexp.Regexp) []optionCandidate {
	matches := inlineMarkers(block, marker)
	out := make([]optionCandidate, 0, len(matches))
	for i, m := range matches {
		markerStart, markerEnd := m[2], m[3]
		end := len(block)
		if i+1 < len(matches) {
			end = matches[i+1][2]
		}
		if nl := strings.IndexByte(block[markerEnd:end], '\n'); nl >= 0 {
			end = markerEnd + nl
		}
		out = append(out, optionCandidate{
			letter: block[m[4]:m[5]],
			text:   block[markerEnd:end],
			span:   span{start: markerStart, end: end},
		})
	}
	return out
}

// inlineMarkers returns the marker matches of block that open an option.
// A "." delimiter counts only when a blank or the end of the block follows
// and some text sits before the next marker on the same line, so the "C."
// of "Vitamin C. B) Iron" stays part of the option text.
func inlineMarkers(block string, marker *regexp.Regexp) [][]int {
	all := marker.FindAllStringSubmatchIndex(block, -1)
	kept := make([][]int, 0, len(all))
	for i, m := range all {
		markerEnd := m[3]
		if block[markerEnd-1] == '.' {
			if markerEnd < len(block) && !isBlank(block[markerEnd]) {
				continue
			}
			next := len(block)
			if i+1 < len(all) {
				next = all[i+1][2]
			}
			rest := block[markerEnd:next]
			if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
				rest = rest[:nl]
			}
			if strings.TrimSpace(rest) == "" {
				continue
			}
		}
		kept = append(kept, m)
	}
	return kept
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// lineAnchoredCandidates takes lines that begin with a marker. A marker
// alone on its line takes the next non-blank line as its text.
func lineAnchoredCandidates(block string, marker *regexp.Regexp) []optionCandidate {
	matches := marker.FindAllStringSubmatchIndex(block, -1)
	out := make([]optionCandidate, 0, len(matches))
	for _, m := range matches {
		c := optionCandidate{
			letter: block[m[2]:m[3]],
			text:   block[m[4]:m[5]],
			span:   span{start: m[0], end: m[1]},
		}
		if strings.TrimSpace(c.text) == "" {
			if text, end, ok := nextNonBlankLine(block, m[1]); ok && marker.FindStringIndex(text) == nil {
				c.text = text
				c.span.end = end
			}
		}
		out = append(out, c)
	}
	return out
}

// nextNonBlankLine returns the first non-blank line after offset and the
// offset where it ends.
func nextNonBlankLine(block string, offset int) (string, int, bool) {
	pos := offset
	for pos < len(block) {
		if block[pos] == '\n' {
			pos++
		}
		end := strings.IndexByte(block[pos:], '\n')
		if end < 0 {
			end = len(block)
		} else {
			end += pos
		}
		line := block[pos:end]
		if strings.TrimSpace(line) != "" {
			return line, end, true
		}
		if end == pos {
			pos++
			continue
		}
		pos = end
	}
	return "", 0, false
}

// validateCandidates cleans candidate text, drops noise and duplicates,
// and keeps encounter order.
func validateCandidates(cands []optionCandidate, letters *LetterSet) optionExtraction {
	var ext optionExtraction
	seen := make(map[domain.Letter]bool, len(cands))
	for _, c := range cands {
		text := cleanOptionText(c.text, letters)
		if !isValidOptionText(text) {
			continue
		}
		key := letters.Canonical(c.letter)
		ext.spans = append(ext.spans, c.span)
		if seen[key] {
			continue
		}
		seen[key] = true
		ext.options = append(ext.options, domain.Option{Key: key, Text: text})
	}
	return ext
}

// cleanOptionText trims the text and strips a trailing fragment that looks
// like the start of the next option.
func cleanOptionText(text string, letters *LetterSet) string {
	text = strings.TrimSpace(text)
	for {
		cut := letters.trailing.ReplaceAllString(text, "")
		if cut == text {
			break
		}
		text = strings.TrimSpace(cut)
	}
	return strings.Join(strings.Fields(text), " ")
}

// isValidOptionText rejects empty, too-short, and question-marker texts.
func isValidOptionText(text string) bool {
	if utf8.RuneCountInString(text) < minOptionRunes {
		return false
	}
	return !hasNumberingPrefix(text)
}

// removeSpans deletes the given ranges from s. Overlapping ranges are merged.
func removeSpans(s string, spans []span) string {
	if len(spans) == 0 {
		return s
	}
	sorted := append([]span(nil), spans...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for _, sp := range sorted {
		if sp.end <= pos {
			continue
		}
		if sp.start >= pos {
			b.WriteString(s[pos:sp.start])
			b.WriteByte(' ')
		}
		pos = sp.end
	}
	if pos < len(s) {
		b.WriteString(s[pos:])
	}
	return b.String()
}
