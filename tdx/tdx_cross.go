//go:build !linux
// +build !linux

// Package tdx reads attestation data from the Intel TDX guest device.
package tdx

import (
	"errors"
	"os"
)

// GuestDevice is the path to the TDX guest device.
const GuestDevice = "/dev/tdx-guest"

// Device is a handle to the TDX guest device.
type Device interface {
	Fd() uintptr
}

// Open opens the TDX guest device.
func Open() (*os.File, error) {
	return nil, errors.New("opening the TDX guest device is only supported on linux")
}

// ReadMeasurements reads the MRTD and RTMRs of a TDX guest.
func ReadMeasurements(_ Device) ([5][48]byte, error) {
	return [5][48]byte{}, errors.New("reading measurements is only supported on linux")
}

// GenerateQuote generates a TDX quote for the given user data.
// User data may not be longer than 64 bytes.
func GenerateQuote(_ Device, _ []byte) ([]byte, error) {
	return nil, errors.New("generating quotes is only supported on linux")
}
