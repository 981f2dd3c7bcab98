package csvfeed

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"time"

	perr "csvconnector/internal/platform/errors"
	"csvconnector/internal/services/connector/domain"
)

// now is the clock seam for ingested_at
var now = time.Now

// Parser implements domain.Parser for comma separated text
type Parser struct{}

// NewParser returns a Parser
func NewParser() *Parser { return &Parser{} }

// Parse reads the header and every data row of p into one batch stamped with a single ingested_at
func (p *Parser) Parse(ctx context.Context, pl domain.Payload) (domain.Batch, error) {
	if pl.Empty() {
		return domain.Batch{}, perr.ErrNoContent
	}
	if err := ctx.Err(); err != nil {
		return domain.Batch{}, perr.Wrap(err, perr.ErrorCodeParse, "parse canceled")
	}
	ingestedAt := now().UTC()

	header, rows, err := readRows(pl.Body)
	if err != nil {
		return domain.Batch{}, err
	}
	cols := normalizeHeader(header)

	kinds := make([]domain.Kind, len(cols))
	cells := make([]string, len(rows))
	for c := range cols {
		for r, row := range rows {
			cells[r] = row[c]
		}
		kinds[c] = inferKind(cells)
	}

	// an existing ingested_at column is overwritten in place
	stampAt := -1
	for i, c := range cols {
		if c == domain.IngestedAtField {
			stampAt = i
			break
		}
	}

	recs := make([]domain.Record, len(rows))
	for r, row := range rows {
		width := len(cols)
		if stampAt < 0 {
			width++
		}
		rec := make(domain.Record, 0, width)
		for c, name := range cols {
			if c == stampAt {
				rec = append(rec, domain.Field{Key: name, Value: ingestedAt})
				continue
			}
			rec = append(rec, domain.Field{Key: name, Value: convert(kinds[c], row[c])})
		}
		if stampAt < 0 {
			rec = append(rec, domain.Field{Key: domain.IngestedAtField, Value: ingestedAt})
		}
		recs[r] = rec
	}

	return domain.Batch{
		Columns:    cols,
		Kinds:      kinds,
		Records:    recs,
		IngestedAt: ingestedAt,
	}, nil
}

// readRows returns the header and the data rows; every row has the header's width
func readRows(body string) ([]string, [][]string, error) {
	r := csv.NewReader(strings.NewReader(body))
	r.Comment = '#'
	r.FieldsPerRecord = -1

	var header []string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil, perr.Parsef("no header row")
		}
		if err != nil {
			return nil, nil, csvErr(err)
		}
		if blankLine(rec) {
			continue
		}
		header = rec
		break
	}
	width := len(header)

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, csvErr(err)
		}
		if blankLine(rec) {
			continue
		}
		if len(rec) != width {
			line, _ := r.FieldPos(0)
			return nil, nil, perr.Parsef("line %d: expected %d fields, got %d", line, width, len(rec))
		}
		rows = append(rows, rec)
	}
	return header, rows, nil
}

// blankLine reports a line holding only whitespace
func blankLine(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}

func csvErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return perr.Wrapf(err, perr.ErrorCodeParse, "line %d: %v", pe.Line, pe.Err)
	}
	return perr.Wrap(err, perr.ErrorCodeParse, "read csv")
}
