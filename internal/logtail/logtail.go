package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file has no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		count = min(count+1, maxLines)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count < maxLines {
		copy(lines, ring[:count])
		return lines, nil
	}
	for i := 0; i < count; i++ {
		lines[i] = ring[(next+i)%maxLines]
	}
	return lines, nil
}

// Level is the severity of a log line.
type Level int

const (
	LevelUnknown Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Names printed by the text formatter of charmbracelet/log.
var levelTokens = map[string]Level{
	"DEBU": LevelDebug,
	"INFO": LevelInfo,
	"WARN": LevelWarn,
	"ERRO": LevelError,
	"FATA": LevelFatal,
}

// LevelOf returns the level token found among the first fields of line.
// Continuation lines are LevelUnknown.
func LevelOf(line string) Level {
	fields := strings.Fields(line)
	for _, f := range fields[:min(len(fields), 4)] {
		if lvl, ok := levelTokens[f]; ok {
			return lvl
		}
	}
	return LevelUnknown
}

// Filter keeps the lines at or above minLevel. Lines without a level take
// the level of the line before them.
func Filter(lines []string, minLevel Level) []string {
	var out []string
	current := LevelUnknown
	for _, line := range lines {
		if lvl := LevelOf(line); lvl != LevelUnknown {
			current = lvl
		}
		if current >= minLevel {
			out = append(out, line)
		}
	}
	return out
}
