package main

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dustin/go-humanize"
)

var errResource = errors.New("resource exhausted")

const defaultBufferLimit = 64 * humanize.MiByte

type separators struct {
	delim byte
	col   byte
	row   byte
}

func defaultSeparators() separators {
	return separators{
		delim: ' ',
		col:   ' ',
		row:   '\n',
	}
}

// nextField returns the field starting at or after cursor and the offset to
// resume from. Runs of delim collapse into a single boundary, so ok is false
// only when nothing but delimiters remain.
func nextField(record string, cursor int, delim byte) (string, int, bool) {
	if cursor < 0 {
		cursor = 0
	}

	start := cursor
	for start < len(record) && record[start] == delim {
		start++
	}
	if start >= len(record) {
		return "", len(record), false
	}

	end := start
	for end < len(record) && record[end] != delim {
		end++
	}

	next := end
	if next < len(record) {
		next++
	}

	return record[start:end], next, true
}

// fields yields the fields of record in order, stopping once only
// delimiters remain.
func fields(record string, delim byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		cursor := 0
		for {
			field, next, ok := nextField(record, cursor, delim)
			if !ok || !yield(field) {
				return
			}
			cursor = next
		}
	}
}

func bufferSize(records []string) uint64 {
	var n uint64
	for _, r := range records {
		n += uint64(len(r))
	}

	// one column separator between each record and a trailing row separator
	return n + uint64(len(records))
}

type columnizer struct {
	sep         separators
	bufferLimit uint64
}

// write emits one row per generation. Every row is assembled in a single
// buffer, sized up front, and handed to out with one Write call.
func (c columnizer) write(out io.Writer, records []string) error {
	if len(records) == 0 {
		return nil
	}

	size := bufferSize(records)
	if c.bufferLimit > 0 && size > c.bufferLimit {
		return fmt.Errorf(
			"%w: output buffer needs %s, limit is %s",
			errResource,
			humanize.IBytes(size),
			humanize.IBytes(c.bufferLimit),
		)
	}

	buf := make([]byte, 0, size)

	pulls := make([]func() (string, bool), len(records))
	for i, r := range records {
		next, stop := iter.Pull(fields(r, c.sep.delim))
		defer stop()
		pulls[i] = next
	}

	for {
		buf = buf[:0]
		found := 0

		for _, next := range pulls {
			field, ok := next()
			if !ok {
				continue
			}

			if found > 0 {
				buf = append(buf, c.sep.col)
			}
			buf = append(buf, field...)
			found++
		}

		if found == 0 {
			return nil
		}

		buf = append(buf, c.sep.row)
		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
}
