package config

import (
	"fmt"
	"strconv"
	"strings"

	snoderrors "github.com/snodectl/snodectl/pkg/errors"
)

// maxHostlistNodes caps a single expansion so a typo such as n[1-999999]
// cannot allocate an unbounded node list.
const maxHostlistNodes = 4096

// ExpandHostlist expands Slurm hostlist expressions ("n[1-3,7]",
// "r[1-2]c[01-02]") into a flat node list, preserving input order. Plain
// names pass through unchanged. Range bounds whose start carries a leading
// zero keep that zero padding: "n[01-03]" yields n01, n02, n03.
func ExpandHostlist(patterns []string) ([]string, error) {
	var nodes []string

	for _, pattern := range patterns {
		parts, err := splitOutsideBrackets(pattern)
		if err != nil {
			return nil, err
		}

		for _, part := range parts {
			expanded, err := expandPattern(part)
			if err != nil {
				return nil, err
			}

			nodes = append(nodes, expanded...)
			if len(nodes) > maxHostlistNodes {
				return nil, snoderrors.NewValidationError("nodes",
					fmt.Sprintf("hostlist expands to more than %d nodes", maxHostlistNodes), nil)
			}
		}
	}

	return nodes, nil
}

// splitOutsideBrackets splits a pattern on commas that sit outside bracket
// groups, so "n[1,3],m1" becomes ["n[1,3]", "m1"].
func splitOutsideBrackets(pattern string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0

	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, snoderrors.NewValidationError("nodes",
					fmt.Sprintf("unbalanced brackets in %q", pattern), nil)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, pattern[start:i])
				start = i + 1
			}
		}
	}

	if depth != 0 {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("unbalanced brackets in %q", pattern), nil)
	}

	parts = append(parts, pattern[start:])

	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, snoderrors.NewValidationError("nodes",
				fmt.Sprintf("empty node name in %q", pattern), nil)
		}
	}

	return parts, nil
}

func expandPattern(pattern string) ([]string, error) {
	open := strings.IndexByte(pattern, '[')
	if open < 0 {
		if !nodeNamePattern.MatchString(pattern) {
			return nil, snoderrors.NewValidationError("nodes",
				fmt.Sprintf("invalid node name %q", pattern), nil)
		}
		return []string{pattern}, nil
	}

	closeOffset := strings.IndexByte(pattern[open:], ']')
	if closeOffset < 0 {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("unbalanced brackets in %q", pattern), nil)
	}
	end := open + closeOffset

	rangeSpec := pattern[open+1 : end]
	if rangeSpec == "" {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("empty range in %q", pattern), nil)
	}
	if strings.ContainsRune(rangeSpec, '[') {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("nested brackets in %q", pattern), nil)
	}

	prefix := pattern[:open]
	suffix := pattern[end+1:]

	var nodes []string
	for _, elem := range strings.Split(rangeSpec, ",") {
		numbers, err := expandRangeElement(elem, pattern)
		if err != nil {
			return nil, err
		}

		for _, num := range numbers {
			expanded, err := expandPattern(prefix + num + suffix)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, expanded...)
		}
	}

	return nodes, nil
}

func expandRangeElement(elem, pattern string) ([]string, error) {
	if elem == "" {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("empty range element in %q", pattern), nil)
	}

	startText, endText, isRange := strings.Cut(elem, "-")
	if !isRange {
		if _, err := strconv.Atoi(elem); err != nil {
			return nil, snoderrors.NewValidationError("nodes",
				fmt.Sprintf("non-numeric range element %q in %q", elem, pattern), nil)
		}
		return []string{elem}, nil
	}

	start, err := strconv.Atoi(startText)
	if err != nil {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("non-numeric range bound %q in %q", startText, pattern), nil)
	}
	end, err := strconv.Atoi(endText)
	if err != nil {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("non-numeric range bound %q in %q", endText, pattern), nil)
	}

	if start > end {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("descending range %q in %q", elem, pattern), nil)
	}
	if end-start+1 > maxHostlistNodes {
		return nil, snoderrors.NewValidationError("nodes",
			fmt.Sprintf("range %q in %q expands to more than %d nodes", elem, pattern, maxHostlistNodes), nil)
	}

	width := 0
	if len(startText) > 1 && startText[0] == '0' {
		width = len(startText)
	}

	numbers := make([]string, 0, end-start+1)
	for v := start; v <= end; v++ {
		if width > 0 {
			numbers = append(numbers, fmt.Sprintf("%0*d", width, v))
		} else {
			numbers = append(numbers, strconv.Itoa(v))
		}
	}

	return numbers, nil
}
