// pkg/gridmap/loader.go
package gridmap

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// FormatError описывает ошибку формата файла уровня. Row == 0 - строка заголовка.
type FormatError struct {
	Row    int
	Reason string
}

func (e *FormatError) Error() string {
	if e.Row == 0 {
		return "level format: header: " + e.Reason
	}
	return fmt.Sprintf("level format: row %d: %s", e.Row, e.Reason)
}

type loadOptions struct {
	solid string
}

// Option настраивает загрузку.
type Option func(*loadOptions)

// WithSolid задаёт набор глифов стен.
func WithSolid(glyphs string) Option {
	return func(o *loadOptions) { o.solid = glyphs }
}

// LoadFile открывает и разбирает файл уровня.
func LoadFile(path string, opts ...Option) (*GridMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file: %w", err)
	}
	defer f.Close()

	m, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load разбирает уровень: первая строка "rows cols", затем rows строк по cols символов.
// Пустые строки допустимы только до заголовка и после последней строки карты;
// внутри карты каждая строка считается рядом. 'p' - старт (клетка становится пустой), 'X' - финиш.
func Load(r io.Reader, opts ...Option) (*GridMap, error) {
	o := loadOptions{solid: DefaultSolid}
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	var (
		header string
		lines  = make([]string, 0, 32)
	)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if header == "" {
			if strings.TrimSpace(line) != "" {
				header = line
			}
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read level: %w", err)
	}
	if header == "" {
		return nil, &FormatError{Reason: "missing \"rows cols\" header"}
	}

	rows, cols, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	// хвостовые пустые строки не считаются рядами
	for len(lines) > rows && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	body := lines
	if len(body) > rows {
		return nil, &FormatError{Row: rows + 1, Reason: fmt.Sprintf("too many rows, want %d", rows)}
	}

	m := newGridMap(rows, cols, o.solid)
	startSeen, endSeen := false, false
	for y, line := range body {
		if len(line) != cols {
			return nil, &FormatError{Row: y + 1, Reason: fmt.Sprintf("has %d columns, want %d", len(line), cols)}
		}
		for x := 0; x < cols; x++ {
			c := Cell{x, y}
			switch g := line[x]; g {
			case StartGlyph:
				if startSeen {
					return nil, &FormatError{Row: y + 1, Reason: "duplicate start 'p'"}
				}
				startSeen = true
				m.Start = c
				m.set(c, Empty)
			case EndGlyph:
				if endSeen {
					return nil, &FormatError{Row: y + 1, Reason: "duplicate end 'X'"}
				}
				endSeen = true
				m.End = c
				m.set(c, g)
			default:
				m.set(c, g)
			}
		}
	}
	if len(body) < rows {
		return nil, &FormatError{Row: len(body) + 1, Reason: fmt.Sprintf("too few rows: got %d, want %d", len(body), rows)}
	}
	if !startSeen {
		return nil, &FormatError{Reason: "no start 'p' in level"}
	}
	if !endSeen {
		return nil, &FormatError{Reason: "no end 'X' in level"}
	}
	return m, nil
}

func parseHeader(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, &FormatError{Reason: fmt.Sprintf("want \"rows cols\", got %q", line)}
	}
	rows, err := strconv.Atoi(fields[0])
	if err != nil || rows <= 0 {
		return 0, 0, &FormatError{Reason: fmt.Sprintf("bad row count %q", fields[0])}
	}
	cols, err := strconv.Atoi(fields[1])
	if err != nil || cols <= 0 {
		return 0, 0, &FormatError{Reason: fmt.Sprintf("bad column count %q", fields[1])}
	}
	return rows, cols, nil
}
