package swap

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// EncodeEntries produces the persisted form of a generated table: msgpack, zstd-compressed.
func EncodeEntries(entries []Entry) ([]byte, error) {
	raw, err := msgpack.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding swap entries: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	defer enc.Close()

	return enc.EncodeAll(raw, nil), nil
}

// DecodeEntries reverses EncodeEntries.
func DecodeEntries(blob []byte) ([]Entry, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing swap entries: %w", err)
	}

	var entries []Entry
	if err := msgpack.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decoding swap entries: %w", err)
	}
	return entries, nil
}
