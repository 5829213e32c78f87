package types

import (
	"encoding/binary"
)

// Marshal serializes an SGX/TDX Quote v5 header (QuoteHeader) into its binary representation typically found in a raw quote.
func (qh *QuoteHeader) Marshal() [QuoteHeaderSize]byte {
	version := make([]byte, 2)
	attestationKeyType := make([]byte, 2)
	teeType := make([]byte, 4)
	binary.LittleEndian.PutUint16(version, qh.Version)
	binary.LittleEndian.PutUint16(attestationKeyType, qh.AttestationKeyType)
	binary.LittleEndian.PutUint32(teeType, uint32(qh.TEEType))

	var result [QuoteHeaderSize]byte
	copy(result[0:2], version)
	copy(result[2:4], attestationKeyType)
	copy(result[4:8], teeType)
	copy(result[8:10], qh.Reserved1[:])
	copy(result[10:12], qh.Reserved2[:])
	copy(result[12:28], qh.QEVendorID[:])
	copy(result[28:48], qh.UserData[:])

	return result
}

// Marshal serializes a TD report 1.5 (TDReport15) into its binary representation typically found in a raw quote.
func (tr *TDReport15) Marshal() [TDReport15Size]byte {
	var result [TDReport15Size]byte
	copy(result[0:16], tr.TEETCBSVN[:])
	copy(result[16:64], tr.MRSEAM[:])
	copy(result[64:112], tr.MRSIGNERSEAM[:])
	copy(result[112:120], tr.SEAMAttributes[:])
	copy(result[120:128], tr.TDAttributes[:])
	copy(result[128:136], tr.XFAM[:])
	copy(result[136:184], tr.MRTD[:])
	copy(result[184:232], tr.MRCONFIGID[:])
	copy(result[232:280], tr.MROWNER[:])
	copy(result[280:328], tr.MROWNERCONFIG[:])
	copy(result[328:376], tr.RTMR[0][:])
	copy(result[376:424], tr.RTMR[1][:])
	copy(result[424:472], tr.RTMR[2][:])
	copy(result[472:520], tr.RTMR[3][:])
	copy(result[520:584], tr.ReportData[:])
	copy(result[584:600], tr.TEETCBSVN2[:])
	copy(result[600:648], tr.MRSERVICETD[:])

	return result
}

// Marshal serializes a quote body (QuoteBody) into its binary representation typically found in a raw quote.
func (qb *QuoteBody) Marshal() [QuoteBodySize]byte {
	bodyType := make([]byte, 2)
	size := make([]byte, 4)
	binary.LittleEndian.PutUint16(bodyType, qb.BodyType)
	binary.LittleEndian.PutUint32(size, qb.Size)

	report := qb.Report.Marshal()

	var result [QuoteBodySize]byte
	copy(result[0:2], bodyType)
	copy(result[2:6], size)
	copy(result[6:], report[:])

	return result
}

// Marshal serializes the fixed portion of a quote (Quote) into its binary representation.
// The result is a valid input for ParseQuote.
func (q *Quote) Marshal() [QuoteMinSize]byte {
	header := q.Header.Marshal()
	body := q.Body.Marshal()

	var result [QuoteMinSize]byte
	copy(result[0:QuoteHeaderSize], header[:])
	copy(result[QuoteHeaderSize:], body[:])

	return result
}
