package types

import (
	"encoding/hex"
	"encoding/json"
)

// hexBytes renders opaque byte arrays as hex strings in JSON output
// instead of Go's default base64 encoding.
type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h))
}

// MarshalJSON serializes the quote header with opaque fields hex encoded,
// the TEE type by name and the QE vendor ID in canonical UUID form.
func (qh QuoteHeader) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Version            uint16   `json:"version"`
		AttestationKeyType uint16   `json:"attestationKeyType"`
		TEEType            string   `json:"teeType"`
		Reserved1          hexBytes `json:"reserved1"`
		Reserved2          hexBytes `json:"reserved2"`
		QEVendorID         string   `json:"qeVendorID"`
		UserData           hexBytes `json:"userData"`
	}{
		Version:            qh.Version,
		AttestationKeyType: qh.AttestationKeyType,
		TEEType:            qh.TEEType.String(),
		Reserved1:          qh.Reserved1[:],
		Reserved2:          qh.Reserved2[:],
		QEVendorID:         qh.QEVendorUUID().String(),
		UserData:           qh.UserData[:],
	})
}

// MarshalJSON serializes the TD report with all measurement and attribute fields hex encoded.
func (tr TDReport15) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TEETCBSVN      hexBytes     `json:"teeTcbSvn"`
		MRSEAM         hexBytes     `json:"mrSeam"`
		MRSIGNERSEAM   hexBytes     `json:"mrSignerSeam"`
		SEAMAttributes hexBytes     `json:"seamAttributes"`
		TDAttributes   TDAttributes `json:"tdAttributes"`
		XFAM           hexBytes     `json:"xfam"`
		MRTD           hexBytes     `json:"mrTd"`
		MRCONFIGID     hexBytes     `json:"mrConfigID"`
		MROWNER        hexBytes     `json:"mrOwner"`
		MROWNERCONFIG  hexBytes     `json:"mrOwnerConfig"`
		RTMR0          hexBytes     `json:"rtmr0"`
		RTMR1          hexBytes     `json:"rtmr1"`
		RTMR2          hexBytes     `json:"rtmr2"`
		RTMR3          hexBytes     `json:"rtmr3"`
		ReportData     hexBytes     `json:"reportData"`
		TEETCBSVN2     hexBytes     `json:"teeTcbSvn2"`
		MRSERVICETD    hexBytes     `json:"mrServiceTd"`
	}{
		TEETCBSVN:      tr.TEETCBSVN[:],
		MRSEAM:         tr.MRSEAM[:],
		MRSIGNERSEAM:   tr.MRSIGNERSEAM[:],
		SEAMAttributes: tr.SEAMAttributes[:],
		TDAttributes:   tr.TDAttributes,
		XFAM:           tr.XFAM[:],
		MRTD:           tr.MRTD[:],
		MRCONFIGID:     tr.MRCONFIGID[:],
		MROWNER:        tr.MROWNER[:],
		MROWNERCONFIG:  tr.MROWNERCONFIG[:],
		RTMR0:          tr.RTMR[0][:],
		RTMR1:          tr.RTMR[1][:],
		RTMR2:          tr.RTMR[2][:],
		RTMR3:          tr.RTMR[3][:],
		ReportData:     tr.ReportData[:],
		TEETCBSVN2:     tr.TEETCBSVN2[:],
		MRSERVICETD:    tr.MRSERVICETD[:],
	})
}

// MarshalJSON serializes the TD attributes as their raw hex value plus the decomposed flag groups.
func (a TDAttributes) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Raw   string            `json:"raw"`
		Flags TDAttributesFlags `json:"flags"`
	}{
		Raw:   hex.EncodeToString(a[:]),
		Flags: a.Decompose(),
	})
}

// MarshalJSON serializes the quote body.
func (qb QuoteBody) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BodyType uint16     `json:"bodyType"`
		Size     uint32     `json:"size"`
		Report   TDReport15 `json:"report"`
	}{
		BodyType: qb.BodyType,
		Size:     qb.Size,
		Report:   qb.Report,
	})
}
