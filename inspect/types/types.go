/*
# TDX Quote Data Types

This package contains the data types and parsing functions for the fixed
portion of Intel TDX v5 quotes.

## Quote format

	To give a *rough* understanding of how the fixed portion of a v5 TDX
	quote is laid out, see the graphic below. All offsets are from the
	start of the raw quote, all integers are little-endian.

	          Quote
	        ParseQuote
	┌───────────────────────────┐ 0
	│        QuoteHeader        │
	│        (48 bytes)         │
	│                           │
	│  Version          u16    │
	│  AttestationKeyType u16  │
	│  TEEType          u32    │  0x0 = SGX, 0x81 = TDX
	│  Reserved1        [2]    │
	│  Reserved2        [2]    │
	│  QEVendorID       [16]   │  canonical UUID form for display
	│  UserData         [20]   │
	├───────────────────────────┤ 48
	│   BodyType        u16    │
	│   Size            u32    │  declared body size, advisory only
	├───────────────────────────┤ 54
	│        TDReport15         │
	│        (648 bytes)        │
	│                           │
	│  TEETCBSVN        [16]   │
	│  MRSEAM           [48]   │
	│  MRSIGNERSEAM     [48]   │
	│  SEAMAttributes   [8]    │
	│  TDAttributes     [8]    │  see Decompose for the bit layout
	│  XFAM             [8]    │
	│  MRTD             [48]   │
	│  MRCONFIGID       [48]   │
	│  MROWNER          [48]   │
	│  MROWNERCONFIG    [48]   │
	│  RTMR0..RTMR3     4x[48] │
	│  ReportData       [64]   │
	│  TEETCBSVN2       [16]   │
	│  MRSERVICETD      [48]   │
	├───────────────────────────┤ 702
	│   signature data          │  variable length, not parsed here
	└───────────────────────────┘
*/
package types
