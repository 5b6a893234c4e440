package quizparser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/lessonquiz/internal/core/domain"
)

// Segmentation strategy names.
const (
	SegmentNumbered   = "numbered"
	SegmentUnnumbered = "unnumbered"
)

// minFallbackOptions is how many valid options an unnumbered block needs
// to count as a question.
const minFallbackOptions = 2

// Block is the text attributed to one question during segmentation.
type Block struct {
	// Ordinal is the 1-based question number, explicit or synthesised.
	Ordinal int

	// Text is the block body without its numbering marker.
	Text string
}

// Segmentation is the output of Segment.
type Segmentation struct {
	Blocks      []Block
	Strategy    string
	Diagnostics []domain.Diagnostic
}

// Segment splits a questions region into one block per question.
//
// Numbered markers ("Q1.", "1.", "Question 1:", "MCQ 1)") are used when
// present; blocks are sorted by number and a repeated number keeps the
// later block. Only when no marker exists are blocks inferred from the
// lines that open an option list.
func Segment(region string, letters *LetterSet) Segmentation {
	seg, name, ok := firstMatch(region, []strategy[Segmentation]{
		{name: SegmentNumbered, run: segmentNumbered},
		{name: SegmentUnnumbered, run: func(s string) (Segmentation, bool) {
			return segmentUnnumbered(s, letters)
		}},
	})
	if !ok {
		return Segmentation{}
	}
	seg.Strategy = name
	return seg
}

// segmentNumbered keys blocks by their marker number.
func segmentNumbered(region string) (Segmentation, bool) {
	markers := findNumberedMarkers(region)
	if len(markers) == 0 {
		return Segmentation{}, false
	}

	var seg Segmentation
	byOrdinal := make(map[int]Block, len(markers))
	for i, m := range markers {
		end := len(region)
		if i+1 < len(markers) {
			end = markers[i+1].start
		}
		if _, dup := byOrdinal[m.ordinal]; dup {
			seg.Diagnostics = append(seg.Diagnostics, domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.DiagDuplicateOrdinal,
				Ordinal:  m.ordinal,
				Message:  fmt.Sprintf("question %d appears more than once; the later one was kept", m.ordinal),
			})
		}
		byOrdinal[m.ordinal] = Block{Ordinal: m.ordinal, Text: region[m.end:end]}
	}

	seg.Blocks = make([]Block, 0, len(byOrdinal))
	for _, b := range byOrdinal {
		seg.Blocks = append(seg.Blocks, b)
	}
	sort.Slice(seg.Blocks, func(i, j int) bool {
		return seg.Blocks[i].Ordinal < seg.Blocks[j].Ordinal
	})
	return seg, true
}

// segmentUnnumbered starts a new block at each line that opens an option
// list ("a)", "A)", "a.", "A."). The question stem is the run of lines
// between the previous block's options and answer lines and the opening
// marker. Blocks with fewer than two valid options are discarded.
func segmentUnnumbered(region string, letters *LetterSet) (Segmentation, bool) {
	lines := strings.Split(region, "\n")

	var opens []int
	for i, line := range lines {
		if isFirstOptionLine(line) {
			opens = append(opens, i)
		}
	}
	if len(opens) == 0 {
		return Segmentation{}, false
	}

	var seg Segmentation
	start := 0
	for k, open := range opens {
		limit := len(lines)
		if k+1 < len(opens) {
			limit = opens[k+1]
		}
		end := limit
		if k+1 < len(opens) {
			end = tailEnd(lines, open, limit, letters)
		}
		text := strings.Join(lines[start:end], "\n")
		start = end

		if len(ExtractOptions(text, letters)) < minFallbackOptions {
			continue
		}
		seg.Blocks = append(seg.Blocks, Block{Ordinal: len(seg.Blocks) + 1, Text: text})
	}
	return seg, len(seg.Blocks) > 0
}

// tailEnd returns the index one past the last option, answer, or blank
// line of the list that opens at line open, without reaching limit.
func tailEnd(lines []string, open, limit int, letters *LetterSet) int {
	end := open + 1
	for i := open + 1; i < limit; i++ {
		line := lines[i]
		switch {
		case strings.TrimSpace(line) == "":
			continue
		case letters.isOptionLine(line) || letters.isAnswerLine(line):
			end = i + 1
		default:
			return end
		}
	}
	return end
}

// isFirstOptionLine reports whether line opens an option list.
func isFirstOptionLine(line string) bool {
	s := strings.TrimLeft(line, " \t")
	s = strings.TrimPrefix(s, "(")
	if len(s) < 2 {
		return false
	}
	return (s[0] == 'a' || s[0] == 'A') && (s[1] == ')' || s[1] == '.')
}
