package ingestion

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const (
	metadata    = "Conta: 12345\nCliente: Teste\nData Inicial: 15/03/2024\nData Final: 15/03/2024\n"
	tableHeader = "Ativo;Abertura;Fechamento;Tempo Operação;Qtd Compra;Qtd Venda;Lado;Preço Compra;Preço Venda;Res. Operação\n"
	winfutRow   = "WINFUT;15/03/2024 09:05:00;15/03/2024 09:10:00;5min;1;1;Compra;120.500,00;120.600,00;100,00\n"
	wdoRow      = "WDOFUT;15/03/2024 10:00:00;15/03/2024 10:30:00;30min;2;2;Venda;5.010,50;5.000,00;-210,00\n"
)

// win1252 encodes a UTF-8 test fixture the way the broker exports it.
func win1252(t *testing.T, s string) []byte {
	t.Helper()
	b, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return b
}

func TestDecode_ExampleRow(t *testing.T) {
	res, err := Decode("march.csv", win1252(t, metadata+tableHeader+winfutRow), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.False(t, res.Lossy)
	assert.Zero(t, res.Dropped)

	tr := res.Records[0]
	assert.Equal(t, "trade-march.csv-0", tr.ID)
	assert.Equal(t, "WINFUT", tr.Asset)
	assert.Equal(t, "2024-03-15T09:05:00", tr.OpenTime)
	assert.Equal(t, "2024-03-15T09:10:00", tr.CloseTime)
	assert.Equal(t, "5min", tr.Duration)
	assert.Equal(t, "Compra", tr.Side)
	assert.InDelta(t, 120500.00, tr.OpenPrice, 1e-9)
	assert.InDelta(t, 120600.00, tr.ClosePrice, 1e-9)
	assert.InDelta(t, 100.0, tr.Result, 1e-9)
	assert.InDelta(t, 1.0, tr.Quantity, 1e-9)
	assert.Equal(t, tr.Quantity, tr.Contracts)
	assert.Zero(t, tr.Brokerage)
	assert.Zero(t, tr.B3Fees)
}

func TestDecode_TableDriven(t *testing.T) {
	cases := []struct {
		name        string
		content     string
		opts        DecodeOptions
		wantRecords int
		wantDropped int
		wantErr     error
		wantIDs     []string
	}{
		{
			name:        "two valid rows",
			content:     metadata + tableHeader + winfutRow + wdoRow,
			wantRecords: 2,
			wantIDs:     []string{"trade-f.csv-0", "trade-f.csv-1"},
		},
		{
			name:        "malformed rows dropped, indexes kept",
			content:     metadata + tableHeader + winfutRow + "broken;row\n" + wdoRow + "a;b;c;d;e;f;g;h;i;j;k\n",
			wantRecords: 2,
			wantDropped: 2,
			wantIDs:     []string{"trade-f.csv-0", "trade-f.csv-2"},
		},
		{
			name:        "lenient degrades bad numbers",
			content:     metadata + tableHeader + "WINFUT;15/03/2024 09:05:00;15/03/2024 09:10:00;5min;x;1;Compra;abc;;--\n",
			wantRecords: 1,
		},
		{
			name:        "strict drops bad numbers",
			content:     metadata + tableHeader + winfutRow + "WINFUT;15/03/2024 09:05:00;15/03/2024 09:10:00;5min;x;1;Compra;abc;;--\n",
			opts:        DecodeOptions{Strict: true},
			wantRecords: 1,
			wantDropped: 1,
		},
		{
			name:        "strict drops bad timestamps",
			content:     metadata + tableHeader + "WINFUT;15-03-2024;15/03/2024 09:10:00;5min;1;1;Compra;1,0;1,0;0,0\n",
			opts:        DecodeOptions{Strict: true},
			wantRecords: 0,
			wantDropped: 1,
		},
		{
			name:        "header only",
			content:     metadata + tableHeader,
			wantRecords: 0,
		},
		{
			name:        "metadata only",
			content:     metadata,
			wantRecords: 0,
		},
		{
			name:        "empty buffer",
			content:     "",
			wantRecords: 0,
		},
		{
			name:    "missing columns",
			content: metadata + "Ativo;Abertura\nWINFUT;15/03/2024 09:05:00\n",
			wantErr: ErrMissingColumns,
		},
		{
			name:        "crlf line endings",
			content:     strings.ReplaceAll(metadata+tableHeader+winfutRow, "\n", "\r\n"),
			wantRecords: 1,
		},
		{
			name:        "custom header lines",
			content:     "only one metadata line\n" + tableHeader + winfutRow,
			opts:        DecodeOptions{HeaderLines: 1},
			wantRecords: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Decode("f.csv", win1252(t, tc.content), tc.opts)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				var rpe *RowParseError
				require.True(t, errors.As(err, &rpe))
				assert.Equal(t, -1, rpe.Row)
				assert.Empty(t, res.Records)
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Records, tc.wantRecords)
			assert.Equal(t, tc.wantDropped, res.Dropped)
			if tc.wantIDs != nil {
				var ids []string
				for _, r := range res.Records {
					ids = append(ids, r.ID)
				}
				assert.Equal(t, tc.wantIDs, ids)
			}
		})
	}
}

func TestDecode_LenientZeroesUnparsableNumbers(t *testing.T) {
	row := "WINFUT;15/03/2024 09:05:00;bad;5min;x;1;Compra;abc;;--\n"
	res, err := Decode("f.csv", win1252(t, metadata+tableHeader+row), DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	tr := res.Records[0]
	assert.Zero(t, tr.Quantity)
	assert.Zero(t, tr.OpenPrice)
	assert.Zero(t, tr.ClosePrice)
	assert.Zero(t, tr.Result)
	assert.Equal(t, "bad", tr.CloseTime)
}

func TestDecode_HeaderDecodedFromWindows1252(t *testing.T) {
	// Raw bytes: "Preço" uses 0xE7 for "ç" and "Operação" uses 0xE7 and 0xE3.
	raw := win1252(t, metadata+tableHeader+winfutRow)
	assert.NotContains(t, string(raw), "ç")

	res, err := Decode("f.csv", raw, DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
}

func TestDecodeWindows1252(t *testing.T) {
	out, lossy := decodeWindows1252([]byte{'P', 'r', 'e', 0xE7, 'o'})
	assert.Equal(t, "Preço", string(out))
	assert.False(t, lossy)
}

func TestSkipLines(t *testing.T) {
	assert.Equal(t, "c\n", string(skipLines([]byte("a\nb\nc\n"), 2)))
	assert.Nil(t, skipLines([]byte("a\nb"), 4))
	assert.Equal(t, "a\n", string(skipLines([]byte("a\n"), 0)))
}
