package ingestion

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/guttosm/tradesync/internal/domain/models"
	"github.com/guttosm/tradesync/internal/logger"
)

// DefaultHeaderLines is the number of report metadata lines preceding the table header.
const DefaultHeaderLines = 4

// Column names of the broker "operations" export, as they appear after decoding.
const (
	colAsset      = "Ativo"
	colOpenTime   = "Abertura"
	colCloseTime  = "Fechamento"
	colDuration   = "Tempo Operação"
	colBuyQty     = "Qtd Compra"
	colSide       = "Lado"
	colBuyPrice   = "Preço Compra"
	colSellPrice  = "Preço Venda"
	colOpResult   = "Res. Operação"
	fieldSep      = ';'
	idPrefix      = "trade-"
	replacementCh = utf8.RuneError
)

// requiredColumns must all be present in the table header; other columns are ignored.
var requiredColumns = []string{
	colAsset,
	colOpenTime,
	colCloseTime,
	colDuration,
	colBuyQty,
	colSide,
	colBuyPrice,
	colSellPrice,
	colOpResult,
}

// DecodeOptions controls how a source buffer is turned into records.
//
// Fields:
//   - HeaderLines: metadata lines skipped before the table header (0 uses DefaultHeaderLines).
//   - Strict: drop rows whose numeric or timestamp fields do not parse instead of
//     degrading them to zero / verbatim values.
type DecodeOptions struct {
	HeaderLines int
	Strict      bool
}

// DecodeResult is the outcome of decoding one source file.
type DecodeResult struct {
	Records []models.TradeRecord
	Dropped int  // rows skipped because they could not be mapped
	Lossy   bool // byte-to-text decoding replaced at least one invalid sequence
}

// Decode converts a Windows-1252 encoded broker export into trade records.
//
// Behavior:
//   - Decodes bytes tolerantly; replacements are flagged and logged, never fatal.
//   - Skips the first HeaderLines lines, then reads a ";"-delimited table with a header row.
//   - Drops rows whose field count differs from the header (logged per row).
//   - Ids are "trade-<name>-<row index>" where the index counts every data row,
//     dropped ones included.
//
// The only error returned is ErrMissingColumns (wrapped in a *RowParseError) when
// the header lacks a required column. Empty input or input with no table yields
// an empty result.
func Decode(name string, data []byte, opts DecodeOptions) (DecodeResult, error) {
	var res DecodeResult

	headerLines := opts.HeaderLines
	if headerLines <= 0 {
		headerLines = DefaultHeaderLines
	}

	text, lossy := decodeWindows1252(data)
	res.Lossy = lossy
	if lossy {
		logger.L().Warn().Str("file", name).Msg("lossy decode: invalid byte sequences replaced")
	}

	table := skipLines(text, headerLines)

	r := csv.NewReader(bytes.NewReader(table))
	r.Comma = fieldSep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly against the header

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, &RowParseError{File: name, Row: -1, Line: headerLines + 1, Reason: "unreadable header", Err: err}
	}

	index, missing := indexColumns(header)
	if len(missing) > 0 {
		return res, &RowParseError{
			File:   name,
			Row:    -1,
			Line:   headerLines + 1,
			Reason: "invalid header",
			Err:    fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")),
		}
	}

	for row := 0; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line := headerLines + currentLine(r, err)
		if err != nil {
			res.Dropped++
			logRowError(&RowParseError{File: name, Row: row, Line: line, Reason: "malformed row", Err: err})
			continue
		}
		if len(rec) != len(header) {
			res.Dropped++
			logRowError(&RowParseError{
				File:   name,
				Row:    row,
				Line:   line,
				Reason: fmt.Sprintf("field count mismatch: expected %d got %d", len(header), len(rec)),
			})
			continue
		}

		tr, reason := recordToTrade(rec, index, opts.Strict)
		if reason != "" {
			res.Dropped++
			logRowError(&RowParseError{File: name, Row: row, Line: line, Reason: reason})
			continue
		}
		tr.ID = idPrefix + name + "-" + strconv.Itoa(row)
		res.Records = append(res.Records, tr)
	}

	return res, nil
}

// recordToTrade maps one table row into a TradeRecord using the header index.
// In lenient mode it never fails; in strict mode it returns a non-empty reason
// for the first field that had to fall back.
func recordToTrade(rec []string, index map[string]int, strict bool) (models.TradeRecord, string) {
	var t models.TradeRecord

	t.Asset = rec[index[colAsset]]
	t.Duration = rec[index[colDuration]]
	t.Side = rec[index[colSide]]

	var ok bool
	if t.OpenTime, ok = reformatTimestamp(rec[index[colOpenTime]]); !ok && strict {
		return t, "invalid " + colOpenTime
	}
	if t.CloseTime, ok = reformatTimestamp(rec[index[colCloseTime]]); !ok && strict {
		return t, "invalid " + colCloseTime
	}

	numbers := []struct {
		col string
		dst *float64
	}{
		{colBuyQty, &t.Quantity},
		{colBuyPrice, &t.OpenPrice},
		{colSellPrice, &t.ClosePrice},
		{colOpResult, &t.Result},
	}
	for _, n := range numbers {
		if *n.dst, ok = parseLocaleNumber(rec[index[n.col]]); !ok && strict {
			return t, "invalid " + n.col
		}
	}

	// Both attributes come from "Qtd Compra" in this export format.
	t.Contracts = t.Quantity

	// Filled by a later enrichment step.
	t.Brokerage = 0
	t.B3Fees = 0

	return t, ""
}

// decodeWindows1252 converts legacy single-byte text to UTF-8 and reports
// whether any replacement character had to be produced.
func decodeWindows1252(data []byte) ([]byte, bool) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		out = bytes.ToValidUTF8(data, []byte(string(replacementCh)))
		return out, true
	}
	// Windows-1252 cannot encode U+FFFD, so any occurrence is a substitution.
	return out, bytes.ContainsRune(out, replacementCh)
}

// skipLines drops the first n lines of text.
func skipLines(text []byte, n int) []byte {
	for i := 0; i < n; i++ {
		nl := bytes.IndexByte(text, '\n')
		if nl < 0 {
			return nil
		}
		text = text[nl+1:]
	}
	return text
}

// indexColumns maps each required column to its position in the header and
// lists the ones that are absent.
func indexColumns(header []string) (map[string]int, []string) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	return index, missing
}

// currentLine returns the table line of the record just read (or of the parse error).
func currentLine(r *csv.Reader, err error) int {
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return pe.Line
		}
		return 0
	}
	line, _ := r.FieldPos(0)
	return line
}

func logRowError(err *RowParseError) {
	logger.L().Warn().
		Str("file", err.File).
		Int("row", err.Row).
		Int("line", err.Line).
		Err(err).
		Msg("row parse failed")
}
