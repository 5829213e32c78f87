package types

import (
	"errors"
	"testing"

	fuzzheaders "github.com/AdaLogics/go-fuzz-headers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testQuote returns a TDX quote with a distinct bit pattern in every field.
func testQuote() Quote {
	fill := func(buf []byte, seed byte) {
		for i := range buf {
			buf[i] = seed + byte(i)
		}
	}

	quote := Quote{
		Header: QuoteHeader{
			Version:            5,
			AttestationKeyType: 2,
			TEEType:            TEETypeTDX,
		},
		Body: QuoteBody{
			BodyType: 3,
			Size:     TDReport15Size,
		},
	}
	fill(quote.Header.Reserved1[:], 0x10)
	fill(quote.Header.Reserved2[:], 0x20)
	fill(quote.Header.QEVendorID[:], 0x30)
	fill(quote.Header.UserData[:], 0x40)

	report := &quote.Body.Report
	fill(report.TEETCBSVN[:], 0x01)
	fill(report.MRSEAM[:], 0x02)
	fill(report.MRSIGNERSEAM[:], 0x03)
	fill(report.SEAMAttributes[:], 0x04)
	fill(report.TDAttributes[:], 0x05)
	fill(report.XFAM[:], 0x06)
	fill(report.MRTD[:], 0x07)
	fill(report.MRCONFIGID[:], 0x08)
	fill(report.MROWNER[:], 0x09)
	fill(report.MROWNERCONFIG[:], 0x0A)
	fill(report.RTMR[0][:], 0x0B)
	fill(report.RTMR[1][:], 0x0C)
	fill(report.RTMR[2][:], 0x0D)
	fill(report.RTMR[3][:], 0x0E)
	fill(report.ReportData[:], 0x0F)
	fill(report.TEETCBSVN2[:], 0x50)
	fill(report.MRSERVICETD[:], 0x60)

	return quote
}

func TestParseQuote(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quote := testQuote()
	rawQuote := quote.Marshal()

	parsedQuote, err := ParseQuote(rawQuote[:])
	require.NoError(err)
	assert.Equal(quote, parsedQuote)
}

func TestParseQuoteFieldOffsets(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quote := testQuote()
	rawQuote := quote.Marshal()

	parsedQuote, err := ParseQuote(rawQuote[:])
	require.NoError(err)

	// Spot check documented offsets against the raw buffer.
	assert.EqualValues(rawQuote[12:28], parsedQuote.Header.QEVendorID[:])
	assert.EqualValues(rawQuote[54:70], parsedQuote.Body.Report.TEETCBSVN[:])
	assert.EqualValues(rawQuote[174:182], parsedQuote.Body.Report.TDAttributes[:])
	assert.EqualValues(rawQuote[190:238], parsedQuote.Body.Report.MRTD[:])
	assert.EqualValues(rawQuote[382:430], parsedQuote.Body.Report.RTMR[0][:])
	assert.EqualValues(rawQuote[574:638], parsedQuote.Body.Report.ReportData[:])
	assert.EqualValues(rawQuote[638:654], parsedQuote.Body.Report.TEETCBSVN2[:])
	assert.EqualValues(rawQuote[654:702], parsedQuote.Body.Report.MRSERVICETD[:])
}

func TestParseQuoteSGXTEEType(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quote := testQuote()
	quote.Header.TEEType = TEETypeSGX
	rawQuote := quote.Marshal()

	parsedQuote, err := ParseQuote(rawQuote[:])
	require.NoError(err)
	assert.Equal(TEETypeSGX, parsedQuote.Header.TEEType)
}

func TestParseQuoteIgnoresTrailingData(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quote := testQuote()
	rawQuote := quote.Marshal()
	withSignature := append(rawQuote[:], make([]byte, 4096)...)

	parsedQuote, err := ParseQuote(withSignature)
	require.NoError(err)
	assert.Equal(quote, parsedQuote)
}

func TestParseQuoteTooShort(t *testing.T) {
	quote := testQuote()
	rawQuote := quote.Marshal()

	testCases := map[string]int{
		"empty":            0,
		"header only":      QuoteHeaderSize,
		"body cut off":     300,
		"one byte missing": QuoteMinSize - 1,
	}

	for name, length := range testCases {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := ParseQuote(rawQuote[:length])
			assert.ErrorIs(err, ErrQuoteTooShort)
		})
	}
}

func TestParseQuoteUnsupportedTEEType(t *testing.T) {
	quote := testQuote()

	testCases := map[string]uint32{
		"type 1":       0x1,
		"type 0x80":    0x80,
		"type 0x82":    0x82,
		"all bits set": 0xFFFFFFFF,
	}

	for name, teeType := range testCases {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			quote.Header.TEEType = TEEType(teeType)
			rawQuote := quote.Marshal()

			_, err := ParseQuote(rawQuote[:])
			assert.ErrorIs(err, ErrUnsupportedTEEType)
			assert.NotErrorIs(err, ErrQuoteTooShort)
		})
	}
}

func TestQEVendorUUID(t *testing.T) {
	assert := assert.New(t)

	// Intel's QE vendor ID
	header := QuoteHeader{
		QEVendorID: [16]byte{0x93, 0x9a, 0x72, 0x33, 0xf7, 0x9c, 0x4c, 0xa9, 0x94, 0x0a, 0x0d, 0xb3, 0xdf, 0x74, 0xbb, 0x8e},
	}
	assert.Equal("939a7233-f79c-4ca9-940a-0db3df74bb8e", header.QEVendorUUID().String())
}

func TestTEETypeString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("SGX", TEETypeSGX.String())
	assert.Equal("TDX", TEETypeTDX.String())
	assert.Equal("unknown (0x42)", TEEType(0x42).String())
}

func FuzzParseQuote(f *testing.F) {
	quote := testQuote()
	rawQuote := quote.Marshal()
	f.Add(rawQuote[:])
	f.Fuzz(func(t *testing.T, a []byte) {
		assert := assert.New(t)
		assert.NotPanics(func() { _, _ = ParseQuote(a) })
	})
}

func FuzzMarshalParseQuote(f *testing.F) {
	f.Fuzz(func(t *testing.T, a []byte) {
		assert := assert.New(t)

		target := Quote{}
		fuzzConsumer := fuzzheaders.NewConsumer(a)
		if err := fuzzConsumer.GenerateStruct(&target); err != nil {
			return
		}
		target.Header.TEEType = TEETypeTDX

		rawQuote := target.Marshal()
		parsedQuote, err := ParseQuote(rawQuote[:])
		assert.NoError(err)
		assert.Equal(target, parsedQuote)
	})
}

func TestParseQuoteNoPartialResult(t *testing.T) {
	assert := assert.New(t)

	quote := testQuote()
	quote.Header.TEEType = TEEType(0x42)
	rawQuote := quote.Marshal()

	parsedQuote, err := ParseQuote(rawQuote[:])
	assert.True(errors.Is(err, ErrUnsupportedTEEType))
	assert.Equal(Quote{}, parsedQuote)
}
