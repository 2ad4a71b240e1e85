// Package loader reads and writes the CSV shape the pipeline exchanges
// with upstream collection tooling.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"loom/internal/core"
)

// Column names recognized in input CSVs. Header matching is
// case-insensitive and ignores surrounding whitespace.
const (
	ColumnPlatform       = "platform"
	ColumnKeyword        = "keyword"
	ColumnAuthor         = "author"
	ColumnURL            = "url"
	ColumnCaption        = "caption"
	ColumnCleanedCaption = "cleaned_caption"
)

// ContractError reports an input CSV that is missing a required column.
type ContractError struct {
	Column string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("expected column %q in the input CSV", e.Column)
}

// ReadCleaned parses a cleaned-captions CSV into posts. The
// cleaned_caption column is required; platform, keyword, author, url,
// and caption are optional and default to empty strings.
func ReadCleaned(r io.Reader) ([]core.Post, error) {
	return read(r, ColumnCleanedCaption)
}

// ReadRaw parses a raw-captions CSV into posts. The caption column is
// required; the cleaned_caption column is filled in by the cleaning
// stage afterwards.
func ReadRaw(r io.Reader) ([]core.Post, error) {
	return read(r, ColumnCaption)
}

func read(r io.Reader, required string) ([]core.Post, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, missing cells read as ""

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ContractError{Column: required}
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols[required]; !ok {
		return nil, &ContractError{Column: required}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var posts []core.Post
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		posts = append(posts, core.Post{
			Platform:       core.Platform(strings.TrimSpace(field(record, ColumnPlatform))),
			Keyword:        field(record, ColumnKeyword),
			Author:         field(record, ColumnAuthor),
			URL:            field(record, ColumnURL),
			RawCaption:     field(record, ColumnCaption),
			CleanedCaption: field(record, ColumnCleanedCaption),
		})
	}
	return posts, nil
}

// WriteCleaned writes posts as a cleaned-captions CSV suitable for
// ReadCleaned or for handing back to downstream tooling.
func WriteCleaned(w io.Writer, posts []core.Post) error {
	cw := csv.NewWriter(w)
	header := []string{
		ColumnPlatform, ColumnKeyword, ColumnAuthor,
		ColumnURL, ColumnCaption, ColumnCleanedCaption,
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, p := range posts {
		record := []string{
			string(p.Platform), p.Keyword, p.Author,
			p.URL, p.RawCaption, p.CleanedCaption,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write CSV record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
