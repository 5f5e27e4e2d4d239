package storage

import "bytes"

// Format is a recognized video container format.
type Format int

const (
	FormatUnrecognized Format = iota
	FormatMP4
	FormatWebM
)

// Container signatures. This is a closed allow-list checked against the
// leading bytes only; it is a coarse gate, not a security boundary.
var (
	mp4Magic  = []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70}
	webmMagic = []byte{0x1a, 0x45, 0xdf, 0xa3}
)

// DetectContainerFormat inspects the leading bytes of buf and reports the
// container format. Buffers shorter than a signature never match it.
func DetectContainerFormat(buf []byte) Format {
	switch {
	case bytes.HasPrefix(buf, mp4Magic):
		return FormatMP4
	case bytes.HasPrefix(buf, webmMagic):
		return FormatWebM
	}
	return FormatUnrecognized
}

func (f Format) String() string {
	switch f {
	case FormatMP4:
		return "mp4"
	case FormatWebM:
		return "webm"
	default:
		return "unrecognized"
	}
}
