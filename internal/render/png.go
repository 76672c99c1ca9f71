package render

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"

	"golang.org/x/text/encoding/charmap"
)

// Text chunk keywords written to every comic.
const (
	KeyTranscript = "transcript"
	KeyComment    = "Comment"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// ihdrEnd is the offset just past the IHDR chunk, which png.Encode always
// writes first with its fixed 13 byte payload.
const ihdrEnd = 8 + 4 + 4 + 13 + 4

// ErrNotPNG is returned when decoding data without a PNG signature.
var ErrNotPNG = errors.New("not a PNG file")

// EncodeOptions control PNG output.
type EncodeOptions struct {
	// ForWeb writes a paletted image at best compression.
	ForWeb bool
}

// EncodePNG writes img as PNG with text embedded under the transcript and
// Comment keywords, each once as Latin-1 tEXt and once as UTF-8 iTXt.
func EncodePNG(w io.Writer, img image.Image, text string, opts EncodeOptions) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if opts.ForWeb {
		img = ForWeb(img)
		enc.CompressionLevel = png.BestCompression
	}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	data := buf.Bytes()

	var chunks bytes.Buffer
	writeChunk(&chunks, "iTXt", itxt(KeyTranscript, text))
	writeChunk(&chunks, "tEXt", textChunk(KeyTranscript, text))
	writeChunk(&chunks, "tEXt", textChunk(KeyComment, text))
	writeChunk(&chunks, "iTXt", itxt(KeyComment, text))

	for _, part := range [][]byte{data[:ihdrEnd], chunks.Bytes(), data[ihdrEnd:]} {
		if _, err := w.Write(part); err != nil {
			return fmt.Errorf("writing png: %w", err)
		}
	}
	return nil
}

func writeChunk(w *bytes.Buffer, kind string, payload []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(payload)))
	w.Write(n[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(kind))
	crc.Write(payload)
	w.WriteString(kind)
	w.Write(payload)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	w.Write(n[:])
}

func textChunk(key, text string) []byte {
	b := append([]byte(key), 0)
	return append(b, Latin1(text)...)
}

// itxt builds an uncompressed iTXt payload with no language tag and the
// keyword repeated as its translation.
func itxt(key, text string) []byte {
	b := append([]byte(key), 0, 0, 0, 0)
	b = append(b, key...)
	b = append(b, 0)
	return append(b, text...)
}

// Latin1 encodes text as ISO-8859-1, replacing unencodable runes with '?'.
func Latin1(text string) []byte {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

// TextChunk is one text entry read back from a PNG.
type TextChunk struct {
	Kind    string // tEXt or iTXt
	Keyword string
	Text    string
}

// ReadText returns the tEXt and iTXt entries of a PNG stream in file order.
// tEXt payloads are decoded from Latin-1.
func ReadText(r io.Reader) ([]TextChunk, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading png: %w", err)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, ErrNotPNG
	}

	var out []TextChunk
	for p := len(pngSignature); p+8 <= len(data); {
		n := int(binary.BigEndian.Uint32(data[p:]))
		kind := string(data[p+4 : p+8])
		end := p + 8 + n + 4
		if n < 0 || end > len(data) {
			return nil, fmt.Errorf("reading png: truncated %s chunk", kind)
		}
		payload := data[p+8 : p+8+n]
		switch kind {
		case "tEXt":
			key, val, _ := bytes.Cut(payload, []byte{0})
			text, err := charmap.ISO8859_1.NewDecoder().Bytes(val)
			if err != nil {
				return nil, fmt.Errorf("decoding tEXt: %w", err)
			}
			out = append(out, TextChunk{Kind: kind, Keyword: string(key), Text: string(text)})
		case "iTXt":
			key, rest, _ := bytes.Cut(payload, []byte{0})
			if len(rest) >= 2 && rest[0] == 0 {
				rest = rest[2:]
				_, rest, _ = bytes.Cut(rest, []byte{0}) // language tag
				_, rest, _ = bytes.Cut(rest, []byte{0}) // translated keyword
				out = append(out, TextChunk{Kind: kind, Keyword: string(key), Text: string(rest)})
			}
		case "IEND":
			return out, nil
		}
		p = end
	}
	return out, nil
}
