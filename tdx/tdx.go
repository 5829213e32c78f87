//go:build linux
// +build linux

// Package tdx reads attestation data from the Intel TDX guest device.
package tdx

import (
	"encoding/binary"
	"fmt"
	"os"
	"unsafe"

	"github.com/vtolstov/go-ioctl"
	"golang.org/x/sys/unix"
)

const (
	// GuestDevice is the path to the TDX guest device.
	GuestDevice = "/dev/tdx-guest"
	// requestBufferSize is the size of the quote request buffer.
	// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/71557c7d1d869b6bd6f95566c051cbd098549509/QuoteGeneration/quote_wrapper/tdx_attest/tdx_attest.c#L103
	requestBufferSize = 4 * 4 * 1024
	// tdReportSize is the size of a TDREPORT as returned by the guest device.
	tdReportSize = 1024
	// quoteRequestHeaderSize is the size of the serialized tdx_quote_hdr that leads the request blob.
	quoteRequestHeaderSize = 24
	// qgsMessageHeaderSize is the size of a serialized QGS message header.
	qgsMessageHeaderSize = 16
)

// QGS message types: https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/09666b3b14147145232ea4f28d85762ca5da3c5d/QuoteGeneration/quote_wrapper/qgs_msg_lib/inc/qgs_msg_lib.h#L63-L69
const (
	qgsGetQuoteRequestType = iota
	qgsGetQuoteResponseType
	qgsGetCollateralRequestType
	qgsGetCollateralResponseType
)

// IOCTL calls for report and quote generation
// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/c057b236790834cf7e547ebf90da91c53c7ed7f9/QuoteGeneration/quote_wrapper/tdx_attest/tdx_attest.c#L53-L56
var (
	requestReport = ioctl.IOWR('T', 0x01, 8)
	requestQuote  = ioctl.IOR('T', 0x02, 8)
)

// Device is a handle to the TDX guest device.
type Device interface {
	Fd() uintptr
}

// Open opens the TDX guest device.
// The returned file must be closed by the caller once all requests are done.
func Open() (*os.File, error) {
	return os.Open(GuestDevice)
}

// ReadMeasurements reads the MRTD and RTMRs of a TDX guest.
func ReadMeasurements(tdx Device) ([5][48]byte, error) {
	// TDX does not support directly reading RTMRs.
	// Instead, create a report with zeroed user data,
	// and read the RTMRs and MRTD from the report.
	report, err := createReport(tdx, [64]byte{})
	if err != nil {
		return [5][48]byte{}, fmt.Errorf("creating report: %w", err)
	}

	// MRTD is located at offset 528 in the report.
	// RTMRs start at offset 720. All measurements are 48 bytes long.
	measurements := [5][48]byte{
		[48]byte(report[528:576]), // MRTD
		[48]byte(report[720:768]), // RTMR0
		[48]byte(report[768:816]), // RTMR1
		[48]byte(report[816:864]), // RTMR2
		[48]byte(report[864:912]), // RTMR3
	}

	return measurements, nil
}

// GenerateQuote generates a TDX quote for the given user data.
// User data may not be longer than 64 bytes.
func GenerateQuote(tdx Device, userData []byte) ([]byte, error) {
	if len(userData) > 64 {
		return nil, fmt.Errorf("user data must not be longer than 64 bytes, received %d bytes", len(userData))
	}

	var reportData [64]byte
	copy(reportData[:], userData)
	tdReport, err := createReport(tdx, reportData)
	if err != nil {
		return nil, fmt.Errorf("creating report: %w", err)
	}

	// The kernel expects one contiguous blob: a 24 byte tdx_quote_hdr (version,
	// status, input and output length) directly followed by the request payload,
	// here a 4 byte big-endian length prefix and a QGS GET_QUOTE_REQ message
	// wrapping the TDREPORT. The guest device writes the response back into the
	// same payload region.
	// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/71557c7d1d869b6bd6f95566c051cbd098549509/QuoteGeneration/quote_wrapper/tdx_attest/tdx_attest.c#L84-L95
	// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/09666b3b14147145232ea4f28d85762ca5da3c5d/QuoteGeneration/quote_wrapper/qgs_msg_lib/inc/qgs_msg_lib.h#L79-L84
	messageSize := uint32(qgsMessageHeaderSize + 8 + tdReportSize)
	blob := make([]byte, requestBufferSize)
	binary.LittleEndian.PutUint64(blob[0:8], 1)               // version
	binary.LittleEndian.PutUint64(blob[8:16], 0)              // status
	binary.LittleEndian.PutUint32(blob[16:20], 4+messageSize) // input length
	binary.LittleEndian.PutUint32(blob[20:24], 0)             // output length

	payload := blob[quoteRequestHeaderSize:]
	binary.BigEndian.PutUint32(payload[0:4], messageSize)
	binary.LittleEndian.PutUint16(payload[4:6], 1)                       // major version
	binary.LittleEndian.PutUint16(payload[6:8], 0)                       // minor version
	binary.LittleEndian.PutUint32(payload[8:12], qgsGetQuoteRequestType) // message type
	binary.LittleEndian.PutUint32(payload[12:16], messageSize)           // size of the whole message, header included
	binary.LittleEndian.PutUint32(payload[16:20], 0)                     // error code
	binary.LittleEndian.PutUint32(payload[20:24], tdReportSize)          // report size
	binary.LittleEndian.PutUint32(payload[24:28], 0)                     // id list size
	copy(payload[28:], tdReport[:])

	request := quoteRequest{
		blob:   uintptr(unsafe.Pointer(&blob[0])),
		length: requestBufferSize,
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, tdx.Fd(), requestQuote, uintptr(unsafe.Pointer(&request))); errno != 0 {
		return nil, fmt.Errorf("generating quote: %w", errno)
	}

	return parseQuoteResponse(payload)
}

// parseQuoteResponse extracts the raw quote from a QGS GET_QUOTE_RESP message.
// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/09666b3b14147145232ea4f28d85762ca5da3c5d/QuoteGeneration/quote_wrapper/qgs_msg_lib/inc/qgs_msg_lib.h#L86-L91
func parseQuoteResponse(data []byte) ([]byte, error) {
	if len(data) < 4+qgsMessageHeaderSize+8 {
		return nil, fmt.Errorf("quote response is too short to be parsed (received: %d bytes)", len(data))
	}
	message := data[4:] // skip the 4 byte length prefix

	messageType := binary.LittleEndian.Uint32(message[4:8])
	if messageType != qgsGetQuoteResponseType {
		return nil, fmt.Errorf("quote response has unexpected message type %d", messageType)
	}
	if errorCode := binary.LittleEndian.Uint32(message[12:16]); errorCode != 0 {
		return nil, fmt.Errorf("quote generation service returned error code %#x", errorCode)
	}

	selectedIDSize := binary.LittleEndian.Uint32(message[qgsMessageHeaderSize : qgsMessageHeaderSize+4])
	quoteSize := binary.LittleEndian.Uint32(message[qgsMessageHeaderSize+4 : qgsMessageHeaderSize+8])
	quoteStart := uint64(qgsMessageHeaderSize) + 8 + uint64(selectedIDSize)
	quoteEnd := quoteStart + uint64(quoteSize)
	if quoteEnd > uint64(len(message)) {
		return nil, fmt.Errorf("quote response declares %d quote bytes at offset %d, buffer only holds %d bytes", quoteSize, quoteStart, len(message))
	}

	return message[quoteStart:quoteEnd], nil
}

func createReport(tdx Device, reportData [64]byte) ([tdReportSize]byte, error) {
	var tdReport [tdReportSize]byte
	request := reportRequest{
		subtype:          0,
		reportData:       &reportData,
		reportDataLength: 64,
		tdReport:         &tdReport,
		tdReportLength:   tdReportSize,
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, tdx.Fd(), requestReport, uintptr(unsafe.Pointer(&request))); errno != 0 {
		return [tdReportSize]byte{}, fmt.Errorf("creating TDX report: %w", errno)
	}
	return tdReport, nil
}

/*
reportRequest is the structure used to create TDX reports.

	#
	# Reference: Structure of tdx_report_req
	#
	# struct tdx_report_req {
	#        __u8  subtype;
	#        __u64 reportdata;
	#        __u32 rpd_len;
	#        __u64 tdreport;
	#        __u32 tdr_len;
	# };
	#
*/
type reportRequest struct {
	subtype          uint8
	reportData       *[64]byte
	reportDataLength uint32
	tdReport         *[tdReportSize]byte
	tdReportLength   uint32
}

// quoteRequest is the argument of the quote generation ioctl. blob points at a
// single contiguous buffer holding the serialized tdx_quote_hdr and its payload
// (Intel defines the payload as "__u64 data[0]" behind the header and uses
// malloc to reserve more memory underneath).
// https://github.com/intel/SGXDataCenterAttestationPrimitives/blob/c057b236790834cf7e547ebf90da91c53c7ed7f9/QuoteGeneration/quote_wrapper/tdx_attest/tdx_attest.c#L82-L95
type quoteRequest struct {
	blob   uintptr
	length uintptr // size_t / uint64_t
}
