package mutf8

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"golang.org/x/text/transform"
)

func TestEncoding_Decode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "hello", "hello"},
		{"modified_nul", "a\xC0\x80b", "a\x00b"},
		{"raw_nul", "a\x00b", "a\x00b"},
		{"two_byte", "h\xC3\xA9", "hé"},
		{"surrogate_pair", "\xED\xA0\xBD\xED\xB8\x80", "😀"},
		{"four_byte", "\xF0\x9F\x98\x80", "😀"},
		{"lone_high", "\xED\xA0\xBDx", "\uFFFDx"},
		{"lone_high_at_end", "x\xED\xA0\xBD", "x\uFFFD"},
		{"lone_low", "\xED\xB8\x80", "\uFFFD"},
		{"truncated_tail", "x\xC3", "xÃ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := transform.String(Encoding.NewDecoder(), tt.in)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Errorf("decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncoding_Encode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "hello", "hello"},
		{"nul", "a\x00b", "a\xC0\x80b"},
		{"two_byte", "hé", "h\xC3\xA9"},
		{"supplementary", "😀", "\xED\xA0\xBD\xED\xB8\x80"},
		{"invalid_utf8", "a\xFFb", "a\xEF\xBF\xBDb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := transform.String(Encoding.NewEncoder(), tt.in)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if got != tt.want {
				t.Errorf("encode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncoding_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"nul\x00inside",
		"ünïcödé €uro",
		"emoji 😀 and 𝄞 clef",
		strings.Repeat("é😀\x00", 500),
	}

	for _, in := range inputs {
		encoded, _, err := transform.String(Encoding.NewEncoder(), in)
		if err != nil {
			t.Fatalf("encode %q: %v", in, err)
		}
		if strings.IndexByte(encoded, 0) >= 0 {
			t.Errorf("encode %q: output contains a zero byte", in)
		}
		decoded, _, err := transform.String(Encoding.NewDecoder(), encoded)
		if err != nil {
			t.Fatalf("decode %q: %v", encoded, err)
		}
		if decoded != in {
			t.Errorf("round trip %q = %q", in, decoded)
		}
	}
}

func TestEncoding_Streaming(t *testing.T) {
	in := strings.Repeat("a\xC0\x80\xED\xA0\xBD\xED\xB8\x80\xC3\xA9", 64)
	want := strings.Repeat("a\x00😀é", 64)

	r := transform.NewReader(iotest.OneByteReader(strings.NewReader(in)), Encoding.NewDecoder())
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != want {
		t.Errorf("streamed decode mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestEncoding_String(t *testing.T) {
	if s, ok := Encoding.(interface{ String() string }); !ok || s.String() != "MUTF-8" {
		t.Errorf("Encoding does not describe itself as MUTF-8")
	}
}

func TestRepairer(t *testing.T) {
	in := "a\xC0\x80b\nh\x00i\x00\n\xED\xA0\xBD\xED\xB8\x80"
	want := "ab\nh\x00i\x00\n😀"

	got, _, err := transform.String(Repairer, in)
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if got != want {
		t.Errorf("Repairer(%q) = %q, want %q", in, got, want)
	}

	r := transform.NewReader(iotest.HalfReader(strings.NewReader(in)), Repairer)
	streamed, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(streamed) != want {
		t.Errorf("streamed Repairer = %q, want %q", streamed, want)
	}
}

func TestRepairer_LongLine(t *testing.T) {
	long := strings.Repeat("x", maxRepairChunk*2+10)
	pair := "\xED\xA0\xBD\xED\xB8\x80" // U+1F600 as MUTF-8

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", long + "\xC0\x80é", long + "é"},
		{"two-byte across cut", "a" + strings.Repeat("é", 3000), "a" + strings.Repeat("é", 3000)},
		{"four-byte across cut", "ab" + strings.Repeat("😀", 1500), "ab" + strings.Repeat("😀", 1500)},
		{"three-byte across cut", "xy" + strings.Repeat("€", 2000), "xy" + strings.Repeat("€", 2000)},
		{"surrogate pair across cut", strings.Repeat("x", maxRepairChunk-3) + pair + "y", strings.Repeat("x", maxRepairChunk-3) + "😀y"},
		{"nul across cut", strings.Repeat("x", maxRepairChunk-1) + "\xC0\x80y", strings.Repeat("x", maxRepairChunk-1) + "y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(transform.NewReader(strings.NewReader(tt.in), Repairer))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				i := 0
				for i < len(got) && i < len(tt.want) && got[i] == tt.want[i] {
					i++
				}
				t.Errorf("got %d bytes, want %d; first difference at byte %d", len(got), len(tt.want), i)
			}
		})
	}
}

func TestRepairer_CutOnBoundary(t *testing.T) {
	src := []byte("a" + strings.Repeat("é", 3000))
	dst := make([]byte, len(src))

	nDst, nSrc, err := Repairer.Transform(dst, src, false)
	if err != transform.ErrShortSrc {
		t.Fatalf("err = %v, want ErrShortSrc", err)
	}
	if nSrc != maxRepairChunk-1 || nDst != nSrc {
		t.Errorf("nDst, nSrc = %d, %d, want %d, %d", nDst, nSrc, maxRepairChunk-1, maxRepairChunk-1)
	}
}
