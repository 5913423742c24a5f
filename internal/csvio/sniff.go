package csvio

import "strings"

const (
	sniffSampleSize = 8192
	sniffMaxLines   = 10
)

// sniffCandidates in preference order; comma wins ties.
var sniffCandidates = []rune{',', '\t', ';', '|'}

// sniffDelimiter picks the candidate delimiter that appears on every
// sampled line, preferring the one with the most occurrences and, on a
// tie, the one whose count is consistent across lines. A sample with no
// candidate at all falls back to comma.
func sniffDelimiter(sample string) rune {
	lines := sniffLines(sample)
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestLeast, bestConsistent := 0, false
	for _, cand := range sniffCandidates {
		least, consistent := delimiterStats(lines, cand)
		if least == 0 {
			continue
		}
		if bestLeast == 0 || least > bestLeast || (least == bestLeast && consistent && !bestConsistent) {
			best, bestLeast, bestConsistent = cand, least, consistent
		}
	}
	return best
}

// delimiterStats returns the smallest per-line occurrence count of d and
// whether every line has the same count.
func delimiterStats(lines []string, d rune) (int, bool) {
	least := -1
	consistent := true
	for _, line := range lines {
		count := strings.Count(line, string(d))
		if least == -1 {
			least = count
			continue
		}
		if count != least {
			consistent = false
		}
		if count < least {
			least = count
		}
	}
	return least, consistent
}

// sniffLines splits the sample into up to sniffMaxLines non-empty lines,
// dropping a trailing line that may have been cut mid-record.
func sniffLines(sample string) []string {
	raw := strings.Split(sample, "\n")
	if len(raw) > 1 && !strings.HasSuffix(sample, "\n") {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == sniffMaxLines {
			break
		}
	}
	return lines
}
