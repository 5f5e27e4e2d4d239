package storage

import "testing"

func TestDetectContainerFormat(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want Format
	}{
		{
			name: "mp4 signature",
			buf:  []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70},
			want: FormatMP4,
		},
		{
			name: "mp4 signature with trailing payload",
			buf:  []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70, 0xde, 0xad, 0xbe, 0xef},
			want: FormatMP4,
		},
		{
			name: "webm signature",
			buf:  []byte{0x1a, 0x45, 0xdf, 0xa3},
			want: FormatWebM,
		},
		{
			name: "webm signature with trailing payload",
			buf:  []byte{0x1a, 0x45, 0xdf, 0xa3, 0x01, 0x02},
			want: FormatWebM,
		},
		{
			name: "zip signature",
			buf:  []byte{0x50, 0x4b, 0x03, 0x04},
			want: FormatUnrecognized,
		},
		{
			name: "truncated mp4 signature",
			buf:  []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79},
			want: FormatUnrecognized,
		},
		{
			name: "truncated webm signature",
			buf:  []byte{0x1a, 0x45, 0xdf},
			want: FormatUnrecognized,
		},
		{
			name: "empty buffer",
			buf:  nil,
			want: FormatUnrecognized,
		},
		{
			name: "single byte",
			buf:  []byte{0x1a},
			want: FormatUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectContainerFormat(tt.buf); got != tt.want {
				t.Errorf("DetectContainerFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtensionFromMIME(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"video/mp4", "mp4"},
		{"video/webm", "webm"},
		{"image/jpeg", "jpeg"},
		{"mp4", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtensionFromMIME(tt.mime); got != tt.want {
			t.Errorf("ExtensionFromMIME(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}
