package tabledb

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"
)

// This file contains the format used to binary-encode a Record for
// storage: a hand-rolled length-prefixed scheme.

func encBinaryString(s string) []byte {
	enc := make([]byte, 0)

	chCount := 0
	for _, ch := range s {
		chBuf := make([]byte, utf8.UTFMax)
		byteLen := utf8.EncodeRune(chBuf, ch)
		enc = append(enc, chBuf[:byteLen]...)
		chCount++
	}

	countBytes := encBinaryInt(chCount)
	enc = append(countBytes, enc...)

	return enc
}

func encBinaryInt(i int) []byte {
	enc := make([]byte, 8)
	binary.PutVarint(enc, int64(i))
	return enc
}

// returns the string followed by bytes consumed
func decBinaryString(data []byte) (string, int, error) {
	if len(data) < 8 {
		return "", 0, fmt.Errorf("unexpected end of data")
	}
	runeCount, _, err := decBinaryInt(data)
	if err != nil {
		return "", 0, fmt.Errorf("decoding string rune count: %w", err)
	}
	data = data[8:]

	if runeCount < 0 {
		return "", 0, fmt.Errorf("string rune count < 0")
	}

	readBytes := 8

	var sb strings.Builder

	for i := 0; i < runeCount; i++ {
		ch, bytesRead := utf8.DecodeRune(data)
		if ch == utf8.RuneError {
			if bytesRead == 0 {
				return "", 0, fmt.Errorf("unexpected end of data in string")
			} else if bytesRead == 1 {
				return "", 0, fmt.Errorf("invalid UTF-8 encoding in string")
			} else {
				return "", 0, fmt.Errorf("invalid unicode replacement character in rune")
			}
		}

		sb.WriteRune(ch)
		readBytes += bytesRead
		data = data[bytesRead:]
	}

	return sb.String(), readBytes, nil
}

// will always read 8 bytes but does return len
func decBinaryInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("data does not contain 8 bytes")
	}

	val, read := binary.Varint(data[:8])
	if read == 0 {
		return 0, 0, fmt.Errorf("input buffer too small, should never happen")
	} else if read < 0 {
		return 0, 0, fmt.Errorf("input buffer contains value larger than 64 bits, should never happen")
	}
	return int(val), 8, nil
}

// MarshalBinary encodes everything but Fingerprint (stored in its own
// indexed column by the sqlite repository) and Created (stored in its own
// integer column so Recent can ORDER BY it directly).
func (r Record) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, encBinaryString(r.Canonical)...)
	data = append(data, encBinaryString(r.Directive)...)
	data = append(data, encBinaryString(r.Verdict)...)
	data = append(data, encBinaryString(r.Classification)...)
	return data, nil
}

func (r *Record) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	r.Canonical, n, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("canonical: %w", err)
	}
	data = data[n:]

	r.Directive, n, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("directive: %w", err)
	}
	data = data[n:]

	r.Verdict, n, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("verdict: %w", err)
	}
	data = data[n:]

	r.Classification, _, err = decBinaryString(data)
	if err != nil {
		return fmt.Errorf("classification: %w", err)
	}

	return nil
}
