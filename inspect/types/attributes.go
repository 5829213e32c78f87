package types

import "encoding/binary"

/*
   TD attributes bit layout, little-endian over the full 64 bit word:

     TUD   (bits  0- 7): guest debuggability
     SEC   (bits  8-31): security relevant features; bits 28-29 carry no name
     OTHER (bits 32-63): remaining feature bits

   Based on the TDATTRIBUTES definition in the Intel TDX module spec:
   https://cdrdv2.intel.com/v1/dl/getContent/733575
*/

// bitRange is a named range of bits inside the TD attributes word.
type bitRange struct {
	offset uint // position of the lowest bit
	width  uint // number of bits
}

func (b bitRange) extract(word uint64) uint64 {
	return (word >> b.offset) & (uint64(1)<<b.width - 1)
}

func (b bitRange) isSet(word uint64) bool {
	return b.extract(word) != 0
}

var (
	tudDebug    = bitRange{offset: 0, width: 1}
	tudReserved = bitRange{offset: 1, width: 7}

	secReserved      = bitRange{offset: 8, width: 19}
	secSEPTVEDisable = bitRange{offset: 27, width: 1}
	// bits 28-29 are not assigned a name
	secPKS = bitRange{offset: 30, width: 1}
	secKL  = bitRange{offset: 31, width: 1}

	otherReserved = bitRange{offset: 32, width: 31}
	otherPerfmon  = bitRange{offset: 63, width: 1}
)

// TDAttributes is the raw TD attributes field of a TD report.
type TDAttributes [8]byte

// TUDFlags are the trust domain under debug bits of the TD attributes.
type TUDFlags struct {
	Debug    bool  `json:"debug"`
	Reserved uint8 `json:"reserved"`
}

// SECFlags are the security relevant bits of the TD attributes.
type SECFlags struct {
	Reserved      uint32 `json:"reserved"`
	SEPTVEDisable bool   `json:"septVEDisable"`
	PKS           bool   `json:"pks"`
	KL            bool   `json:"kl"`
}

// OtherFlags are the remaining bits of the TD attributes.
type OtherFlags struct {
	Reserved uint32 `json:"reserved"`
	Perfmon  bool   `json:"perfmon"`
}

// TDAttributesFlags is the decoded view over a TD attributes field.
type TDAttributesFlags struct {
	TUD   TUDFlags   `json:"tud"`
	SEC   SECFlags   `json:"sec"`
	Other OtherFlags `json:"other"`
}

// Decompose extracts the named flag groups from the TD attributes.
// Reserved ranges are surfaced as integers instead of being dropped,
// so unexpected bits stay visible to a human inspecting the quote.
func (a TDAttributes) Decompose() TDAttributesFlags {
	word := binary.LittleEndian.Uint64(a[:])

	return TDAttributesFlags{
		TUD: TUDFlags{
			Debug:    tudDebug.isSet(word),
			Reserved: uint8(tudReserved.extract(word)),
		},
		SEC: SECFlags{
			Reserved:      uint32(secReserved.extract(word)),
			SEPTVEDisable: secSEPTVEDisable.isSet(word),
			PKS:           secPKS.isSet(word),
			KL:            secKL.isSet(word),
		},
		Other: OtherFlags{
			Reserved: uint32(otherReserved.extract(word)),
			Perfmon:  otherPerfmon.isSet(word),
		},
	}
}
