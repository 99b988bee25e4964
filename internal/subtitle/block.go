package subtitle

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"
)

// group of consecutive non-blank lines, with the file line number of
// its first line
type block struct {
	line  int
	lines []string
}

func scanBlocks(r io.Reader) ([]block, error) {
	scanner := bufio.NewScanner(r)

	var blocks []block
	var current block
	lineNum := 0

	flush := func() {
		if len(current.lines) > 0 {
			blocks = append(blocks, current)
		}
		current = block{}
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if len(current.lines) == 0 {
			current.line = lineNum
		}
		current.lines = append(current.lines, line)
	}
	flush()

	return blocks, scanner.Err()
}

func clockTime(hours, minutes, seconds, millis string) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
