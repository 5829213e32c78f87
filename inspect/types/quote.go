package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

/*
   TDX (Quote v5 / TD report 1.5) Quote parser
   Based on:
   https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/main/QuoteGeneration/quote_wrapper/common/inc/sgx_quote_5.h
   https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/main/QuoteGeneration/quote_wrapper/common/inc/sgx_report2.h
*/

const (
	// TEETypeSGX is the type number referenced in the Quote header for SGX quotes.
	TEETypeSGX TEEType = 0x0

	// TEETypeTDX is the type number referenced in the Quote header for TDX quotes.
	TEETypeTDX TEEType = 0x81

	// QuoteHeaderSize is the size of the quote header in bytes.
	QuoteHeaderSize = 48

	// TDReport15Size is the size of a TD report 1.5 quote body in bytes.
	TDReport15Size = 648

	// QuoteBodySize is the size of a quote body in bytes: the 6 byte
	// body type/size descriptor followed by the TD report.
	QuoteBodySize = 6 + TDReport15Size

	// QuoteMinSize is the number of bytes the fixed portion of a v5 quote occupies.
	// Any trailing data (e.g. the signature's certification data) is not consumed by ParseQuote.
	QuoteMinSize = QuoteHeaderSize + QuoteBodySize
)

// Decoding errors returned by ParseQuote.
var (
	// ErrQuoteTooShort is returned when the raw quote buffer ends before the fixed quote layout is satisfied.
	ErrQuoteTooShort = errors.New("quote structure is too short to be parsed")

	// ErrUnsupportedTEEType is returned when the quote header references a TEE type other than SGX or TDX.
	ErrUnsupportedTEEType = errors.New("unsupported TEE type in quote header")
)

// TEEType identifies the TEE platform a quote was generated on.
type TEEType uint32

// String returns the common name of the TEE type.
func (t TEEType) String() string {
	switch t {
	case TEETypeSGX:
		return "SGX"
	case TEETypeTDX:
		return "TDX"
	default:
		return fmt.Sprintf("unknown (%#x)", uint32(t))
	}
}

// QuoteHeader is the header of an SGX/TDX quote compatible with v5 of the TrustedPlatform API.
type QuoteHeader struct {
	Version            uint16
	AttestationKeyType uint16
	TEEType            TEEType // 0x0 = SGX, 0x81 = TDX
	Reserved1          [2]byte
	Reserved2          [2]byte
	QEVendorID         [16]byte
	UserData           [20]byte
}

// QEVendorUUID returns the Quoting Enclave vendor ID in its canonical UUID form.
// Intel's QE vendor ID is 939a7233-f79c-4ca9-940a-0db3df74bb8e.
func (qh QuoteHeader) QEVendorUUID() uuid.UUID {
	return uuid.UUID(qh.QEVendorID)
}

// TDReport15 is a TD report 1.5 for Intel TDX platforms, originally passed into the quote for signing.
// Compared to the 1.0 report it carries a second TEE TCB SVN and the service TD measurement.
type TDReport15 struct {
	TEETCBSVN      [16]byte
	MRSEAM         [48]byte    // SHA384
	MRSIGNERSEAM   [48]byte    // SHA384
	SEAMAttributes [8]byte
	TDAttributes   TDAttributes
	XFAM           [8]byte
	MRTD           [48]byte    // SHA384
	MRCONFIGID     [48]byte    // SHA384
	MROWNER        [48]byte    // SHA384
	MROWNERCONFIG  [48]byte    // SHA384
	RTMR           [4][48]byte // 4x SHA384 - runtime measurements
	ReportData     [64]byte
	TEETCBSVN2     [16]byte
	MRSERVICETD    [48]byte    // SHA384
}

// QuoteBody is the body of a v5 quote: a body type discriminator, the declared
// body size and the TD report itself.
//
// Size is recorded as declared in the quote but is advisory: the TD report is
// always read with the fixed TD report 1.5 layout. Callers that care about
// malformed or future body variants should compare Size against TDReport15Size.
type QuoteBody struct {
	BodyType uint16
	Size     uint32
	Report   TDReport15
}

// Quote is an SGX/TDX quote compatible with v5 of the TrustedPlatform API.
type Quote struct {
	Header QuoteHeader `json:"header"`
	Body   QuoteBody   `json:"body"`
}

// ParseQuote parses the fixed portion of an Intel TDX v5 quote.
// The expected input is the complete quote; trailing bytes after the fixed
// 702 byte region (i.e. the quote's signature data) are ignored.
func ParseQuote(rawQuote []byte) (Quote, error) {
	quoteLength := len(rawQuote)
	if quoteLength < QuoteMinSize {
		return Quote{}, fmt.Errorf("%w (received: %d bytes, need at least: %d bytes)", ErrQuoteTooShort, quoteLength, QuoteMinSize)
	}

	quoteHeader := QuoteHeader{
		Version:            binary.LittleEndian.Uint16(rawQuote[0:2]),
		AttestationKeyType: binary.LittleEndian.Uint16(rawQuote[2:4]),
		TEEType:            TEEType(binary.LittleEndian.Uint32(rawQuote[4:8])),
		Reserved1:          [2]byte(rawQuote[8:10]),
		Reserved2:          [2]byte(rawQuote[10:12]),
		QEVendorID:         [16]byte(rawQuote[12:28]),
		UserData:           [20]byte(rawQuote[28:48]),
	}

	if quoteHeader.TEEType != TEETypeSGX && quoteHeader.TEEType != TEETypeTDX {
		return Quote{}, fmt.Errorf("%w (expected TEEType: %#x or %#x, got: %#x)", ErrUnsupportedTEEType, uint32(TEETypeSGX), uint32(TEETypeTDX), uint32(quoteHeader.TEEType))
	}

	body := QuoteBody{
		BodyType: binary.LittleEndian.Uint16(rawQuote[48:50]),
		Size:     binary.LittleEndian.Uint32(rawQuote[50:54]),
		Report: TDReport15{
			TEETCBSVN:      [16]byte(rawQuote[54:70]),
			MRSEAM:         [48]byte(rawQuote[70:118]),
			MRSIGNERSEAM:   [48]byte(rawQuote[118:166]),
			SEAMAttributes: [8]byte(rawQuote[166:174]),
			TDAttributes:   TDAttributes(rawQuote[174:182]),
			XFAM:           [8]byte(rawQuote[182:190]),
			MRTD:           [48]byte(rawQuote[190:238]),
			MRCONFIGID:     [48]byte(rawQuote[238:286]),
			MROWNER:        [48]byte(rawQuote[286:334]),
			MROWNERCONFIG:  [48]byte(rawQuote[334:382]),
			RTMR:           [4][48]byte{[48]byte(rawQuote[382:430]), [48]byte(rawQuote[430:478]), [48]byte(rawQuote[478:526]), [48]byte(rawQuote[526:574])},
			ReportData:     [64]byte(rawQuote[574:638]),
			TEETCBSVN2:     [16]byte(rawQuote[638:654]),
			MRSERVICETD:    [48]byte(rawQuote[654:702]),
		},
	}

	return Quote{
		Header: quoteHeader,
		Body:   body,
	}, nil
}
