package biofmt_api

import "errors"

var (
	ErrMalformedHeaderLine = errors.New("malformed structured header line")
	ErrUnknownLevel        = errors.New("unknown validation level")
	ErrNegativeSetting     = errors.New("setting cannot be negative")
	ErrUnknownFormat       = errors.New("unknown format")
	ErrUnknownDocument     = errors.New("document is not open")
	ErrStaleRevision       = errors.New("revision must increase")
	ErrNoDataLine          = errors.New("line is not a VCF data line with a FORMAT column")
)
