package types

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalQuoteJSON(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	quote := testQuote()
	quoteJSON, err := json.Marshal(quote)
	require.NoError(err)

	var decoded map[string]any
	require.NoError(json.Unmarshal(quoteJSON, &decoded))

	header := decoded["header"].(map[string]any)
	assert.EqualValues(5, header["version"])
	assert.Equal("TDX", header["teeType"])
	assert.Equal(quote.Header.QEVendorUUID().String(), header["qeVendorID"])
	assert.Equal(hex.EncodeToString(quote.Header.UserData[:]), header["userData"])

	body := decoded["body"].(map[string]any)
	assert.EqualValues(3, body["bodyType"])
	report := body["report"].(map[string]any)
	assert.Equal(hex.EncodeToString(quote.Body.Report.MRTD[:]), report["mrTd"])
	assert.Equal(hex.EncodeToString(quote.Body.Report.MRSERVICETD[:]), report["mrServiceTd"])

	tdAttributes := report["tdAttributes"].(map[string]any)
	assert.Equal(hex.EncodeToString(quote.Body.Report.TDAttributes[:]), tdAttributes["raw"])
	flags := tdAttributes["flags"].(map[string]any)
	assert.Contains(flags, "tud")
	assert.Contains(flags, "sec")
	assert.Contains(flags, "other")
}
