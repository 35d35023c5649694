package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestCodecRoundTripEmpty(t *testing.T) {
	data, err := Encode(&Ledger{})
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Equal(t, 0.0, got.LastBalance())
}

func TestCodecRoundTripRows(t *testing.T) {
	l := &Ledger{Rows: []Row{
		{
			Date:              "01.02.25",
			Name:              "rent",
			In:                int64p(1000),
			Percent:           int64p(10),
			AmountWithPercent: float64p(1100),
			Balance:           1100,
		},
		{
			Date:    "02.02.25",
			Name:    "food",
			Out:     int64p(200),
			Balance: 900,
		},
		{
			Date:              "03.02.25",
			Name:              "salary",
			In:                int64p(105),
			Percent:           int64p(10),
			AmountWithPercent: float64p(115.5),
			Balance:           1015.5,
		},
	}}

	data, err := Encode(l)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, l.Rows, got.Rows)

	// in-row fields stay absent on the out-row, not zero
	assert.Nil(t, got.Rows[1].In)
	assert.Nil(t, got.Rows[1].Percent)
	assert.Nil(t, got.Rows[1].AmountWithPercent)
	assert.Nil(t, got.Rows[0].Out)
}

// Balances accumulate float dust from the /100 divisions; the codec must
// reproduce them bit-for-bit, not at display precision.
func TestCodecRoundTripFloatPrecision(t *testing.T) {
	l := &Ledger{Rows: []Row{
		{
			Date:              "01.02.25",
			Name:              "dust",
			In:                int64p(1),
			Percent:           int64p(-70),
			AmountWithPercent: float64p(0.30000000000000004),
			Balance:           0.30000000000000004,
		},
		{
			Date:    "02.02.25",
			Name:    "large",
			Out:     int64p(123456789012),
			Balance: -123456789011.7,
		},
	}}

	data, err := Encode(l)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, l.Rows, got.Rows)
	assert.Equal(t, 0.30000000000000004, got.Rows[0].Balance)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not a spreadsheet"))
	require.ErrorIs(t, err, ErrDecode)
}

func TestDecodeRejectsMissingColumns(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Foo", "Bar"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = Decode(buf.Bytes())
	require.ErrorIs(t, err, ErrDecode)
}

// Column order in the file is not significant: the mapping is header-implied.
func TestDecodeMapsColumnsByHeader(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Balance", "Name", "Date", "Out", "In", "Percent", "Amount with %"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1100, "rent", "01.02.25", nil, 1000, 10, 1100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Decode(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got.Rows, 1)

	row := got.Rows[0]
	assert.Equal(t, "rent", row.Name)
	assert.Equal(t, "01.02.25", row.Date)
	require.NotNil(t, row.In)
	assert.Equal(t, int64(1000), *row.In)
	assert.Nil(t, row.Out)
	assert.Equal(t, 1100.0, row.Balance)
}

func TestDecodeRejectsNonNumericAmount(t *testing.T) {
	f := excelize.NewFile()
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"01.02.25", "rent", "10abc", 10, 1100, nil, 1100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = Decode(buf.Bytes())
	require.ErrorIs(t, err, ErrDecode)
}
