// Package transcript parses raw PDF transcript text into structured,
// confidence-scored course records.
package transcript

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrUnreadableText is returned when the extracted text is too short to be a
// real transcript (scanned or image-only PDFs).
var ErrUnreadableText = errors.New("could not read transcript text")

// Policy configures the minimum-grade threshold. The default accepts only
// A+ and A; AcceptAMinus widens the eligible set to include A-.
type Policy struct {
	AcceptAMinus bool
}

type EligibleCourse struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Grade      string `json:"grade"`
	Confidence string `json:"confidence"`
}

type RejectedCourse struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	Grade  string `json:"grade"`
	Reason string `json:"reason"`
}

type Result struct {
	Eligible    []EligibleCourse `json:"eligible"`
	NonEligible []RejectedCourse `json:"non_eligible"`
	RawLength   int              `json:"raw_length"`
	ProcessedAt time.Time        `json:"processed_at"`
}

var (
	// A course code alone on a line, as many PDF extractors split records.
	codeLineRe = regexp.MustCompile(`^[A-Za-z]{2,6}\d{3,4}(?:-[A-Za-z]{1,2})?$`)

	// One combined record: code, non-greedy title, then grade type and grade
	// glued to the title with no separating whitespace (PDF extraction
	// artifact). Longer grade tokens come first in the alternation.
	rowRe = regexp.MustCompile(`^([A-Za-z]{2,6}\d{3,4}(?:-[A-Za-z]{1,2})?)\s+(.+?)(LG|CR|PF|NG|TR|LC)(A\+|A-|A|B\+|B-|B|C\+|C-|C|D\+|D-|D|F|P|NG|TR|WIP|IP)`)

	// Stricter code shape used for eligibility, looser than the tight
	// canonical shape used for scoring.
	strictCodeRe = regexp.MustCompile(`^[A-Za-z]{2,6}\d{3,4}(?:-[A-Za-z]{1,3})?$`)
	tightCodeRe  = regexp.MustCompile(`^[A-Za-z]{3}\d{4}$`)

	multiSpaceRe = regexp.MustCompile(` {2,}`)

	normalizer = strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", `"`, "”", `"`,
		" ", " ",
		"–", "-", "—", "-",
	)
)

// gradeRanks orders letter grades for deduplication and upsert comparison.
// Grades outside the map rank 0.
var gradeRanks = map[string]int{
	"A+": 4,
	"A":  3,
	"A-": 2,
	"B+": 1,
	"B":  0,
}

// GradeRank returns the numeric rank of a letter grade, unseen grades rank 0.
func GradeRank(grade string) int {
	return gradeRanks[grade]
}

// Normalize cleans curly quotes, non-breaking spaces and dashes, collapses
// runs of spaces and returns the non-empty trimmed lines.
func Normalize(raw string) []string {
	cleaned := normalizer.Replace(raw)
	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(multiSpaceRe.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Recombine joins records that PDF extraction split across two lines: a
// course code alone followed by the title/grade details. Lines that are not
// a lone course code are dropped from the combined stream.
func Recombine(lines []string) []string {
	var combined []string
	for i := 0; i < len(lines); i++ {
		if codeLineRe.MatchString(lines[i]) && i+1 < len(lines) {
			combined = append(combined, lines[i]+" "+lines[i+1])
			i++
		}
	}
	return combined
}

type row struct {
	code      string
	title     string
	gradeType string
	grade     string
}

// parseRow applies the combined-record pattern. Lines that do not match are
// silently skipped by the caller.
func parseRow(line string) (row, bool) {
	m := rowRe.FindStringSubmatch(line)
	if m == nil {
		return row{}, false
	}
	return row{
		code:      m[1],
		title:     strings.TrimSpace(m[2]),
		gradeType: m[3],
		grade:     m[4],
	}, true
}

// minimumGrade reports whether the grade meets the configured threshold.
func (p Policy) minimumGrade(grade string) bool {
	switch grade {
	case "A+", "A":
		return true
	case "A-":
		return p.AcceptAMinus
	}
	return false
}

// confidence scores an eligible row: code shape (3/2/1) + title quality (2/1)
// + grade strength (2/1), mapped to high (>=6), medium (>=4), low.
func confidence(r row) string {
	score := 0
	switch {
	case tightCodeRe.MatchString(r.code):
		score += 3
	case strictCodeRe.MatchString(r.code):
		score += 2
	default:
		score++
	}
	switch n := len(r.title); {
	case n >= 6 && n <= 99:
		score += 2
	case n > 0:
		score++
	}
	switch r.grade {
	case "A+", "A", "A-":
		score += 2
	default:
		score++
	}
	switch {
	case score >= 6:
		return "high"
	case score >= 4:
		return "medium"
	default:
		return "low"
	}
}

// Extract runs the full pipeline over raw PDF text.
func Extract(raw string, pol Policy) (*Result, error) {
	if len(strings.TrimSpace(raw)) < 20 {
		return nil, ErrUnreadableText
	}

	res := &Result{
		Eligible:    []EligibleCourse{},
		NonEligible: []RejectedCourse{},
		RawLength:   len(raw),
		ProcessedAt: time.Now().UTC(),
	}

	for _, line := range Recombine(Normalize(raw)) {
		r, ok := parseRow(line)
		if !ok {
			continue
		}
		switch {
		case r.gradeType != "LG":
			res.reject(r, fmt.Sprintf("not letter-graded (type: %s)", r.gradeType))
		case !strictCodeRe.MatchString(r.code):
			res.reject(r, "invalid course code format")
		case !pol.minimumGrade(r.grade):
			res.reject(r, "grade below minimum")
		default:
			res.accept(r)
		}
	}
	return res, nil
}

// accept adds an eligible row, deduplicating by course code: a later
// occurrence replaces an earlier one only when its grade outranks it.
func (res *Result) accept(r row) {
	for i, e := range res.Eligible {
		if e.Code == r.code {
			if GradeRank(r.grade) > GradeRank(e.Grade) {
				res.Eligible[i] = EligibleCourse{
					Code:       r.code,
					Title:      r.title,
					Grade:      r.grade,
					Confidence: confidence(r),
				}
			}
			return
		}
	}
	res.Eligible = append(res.Eligible, EligibleCourse{
		Code:       r.code,
		Title:      r.title,
		Grade:      r.grade,
		Confidence: confidence(r),
	})
}

// reject adds a non-eligible row, first occurrence per course code wins.
func (res *Result) reject(r row, reason string) {
	for _, n := range res.NonEligible {
		if n.Code == r.code {
			return
		}
	}
	res.NonEligible = append(res.NonEligible, RejectedCourse{
		Code:   r.code,
		Title:  r.title,
		Grade:  r.grade,
		Reason: reason,
	})
}

// ConfidenceBreakdown counts eligible rows per confidence band.
func (res *Result) ConfidenceBreakdown() map[string]int {
	breakdown := map[string]int{"high": 0, "medium": 0, "low": 0}
	for _, e := range res.Eligible {
		breakdown[e.Confidence]++
	}
	return breakdown
}
