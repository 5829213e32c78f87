package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	testCases := map[string]struct {
		attributes TDAttributes
		want       TDAttributesFlags
	}{
		"all zero": {
			attributes: TDAttributes{},
			want:       TDAttributesFlags{},
		},
		"all ones": {
			attributes: TDAttributes{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			want: TDAttributesFlags{
				TUD:   TUDFlags{Debug: true, Reserved: 0x7F},
				SEC:   SECFlags{Reserved: 0x7FFFF, SEPTVEDisable: true, PKS: true, KL: true},
				Other: OtherFlags{Reserved: 0x7FFFFFFF, Perfmon: true},
			},
		},
		"debug bit": {
			attributes: TDAttributes{0x01, 0, 0, 0, 0, 0, 0, 0},
			want: TDAttributesFlags{
				TUD: TUDFlags{Debug: true},
			},
		},
		"tud reserved bits": {
			attributes: TDAttributes{0xFE, 0, 0, 0, 0, 0, 0, 0},
			want: TDAttributesFlags{
				TUD: TUDFlags{Reserved: 0x7F},
			},
		},
		"sept ve disable (bit 27)": {
			attributes: TDAttributes{0, 0, 0, 0x08, 0, 0, 0, 0},
			want: TDAttributesFlags{
				SEC: SECFlags{SEPTVEDisable: true},
			},
		},
		"unnamed gap bits 28-29 set no flag": {
			attributes: TDAttributes{0, 0, 0, 0x30, 0, 0, 0, 0},
			want:       TDAttributesFlags{},
		},
		"pks (bit 30)": {
			attributes: TDAttributes{0, 0, 0, 0x40, 0, 0, 0, 0},
			want: TDAttributesFlags{
				SEC: SECFlags{PKS: true},
			},
		},
		"kl (bit 31)": {
			attributes: TDAttributes{0, 0, 0, 0x80, 0, 0, 0, 0},
			want: TDAttributesFlags{
				SEC: SECFlags{KL: true},
			},
		},
		"sec reserved bits 8-26": {
			attributes: TDAttributes{0, 0xFF, 0xFF, 0x07, 0, 0, 0, 0},
			want: TDAttributesFlags{
				SEC: SECFlags{Reserved: 0x7FFFF},
			},
		},
		"perfmon (bit 63)": {
			attributes: TDAttributes{0, 0, 0, 0, 0, 0, 0, 0x80},
			want: TDAttributesFlags{
				Other: OtherFlags{Perfmon: true},
			},
		},
		"other reserved bits 32-62": {
			attributes: TDAttributes{0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0x7F},
			want: TDAttributesFlags{
				Other: OtherFlags{Reserved: 0x7FFFFFFF},
			},
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.want, tc.attributes.Decompose())
		})
	}
}

func TestDecomposeIsPure(t *testing.T) {
	assert := assert.New(t)

	attributes := TDAttributes{0x01, 0x23, 0x45, 0x67, 0x89, 0xAB, 0xCD, 0xEF}
	assert.Equal(attributes.Decompose(), attributes.Decompose())
}
