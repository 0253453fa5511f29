// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/lexorient/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalRow serializes a MatrixRow to bytes.
// Layout: index, term, value count, values (fixed 8 bytes each).
func MarshalRow(row *core.MatrixRow) []byte {
	size := varint.Int.Size(row.Index) +
		ord.String.Size(row.Term) +
		varint.Int.Size(len(row.Values)) +
		len(row.Values)*raw.Float64.Size(0)
	buf := make([]byte, size)

	n := varint.Int.Marshal(row.Index, buf)
	n += ord.String.Marshal(row.Term, buf[n:])
	n += varint.Int.Marshal(len(row.Values), buf[n:])
	for _, v := range row.Values {
		n += raw.Float64.Marshal(v, buf[n:])
	}
	return buf
}

// UnmarshalRow deserializes a MatrixRow from bytes.
func UnmarshalRow(data []byte) (*core.MatrixRow, error) {
	var (
		row core.MatrixRow
		n   int
		err error
	)

	row.Index, n, err = varint.Int.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: row index: %w", ErrSerializationFailed, err)
	}

	term, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: row term: %w", ErrSerializationFailed, err)
	}
	row.Term = term
	n += m

	count, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: value count: %w", ErrSerializationFailed, err)
	}
	n += m

	width := raw.Float64.Size(0)
	if count < 0 || count*width > len(data)-n {
		return nil, fmt.Errorf("%w: row %q declares %d values", ErrTruncatedData, term, count)
	}

	row.Values = make([]float64, count)
	for i := range row.Values {
		row.Values[i], m, err = raw.Float64.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: value %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
	}
	return &row, nil
}

// MarshalManifest serializes a MatrixManifest to bytes.
// Timestamps are stored as Unix microseconds.
func MarshalManifest(manifest *core.MatrixManifest) []byte {
	inserted := manifest.InsertedAt.UnixMicro()
	updated := manifest.UpdatedAt.UnixMicro()

	size := varint.Uint64.Size(uint64(manifest.Id)) +
		ord.String.Size(manifest.Name) +
		varint.Int.Size(len(manifest.Columns)) +
		varint.Int.Size(manifest.Rows) +
		varint.Int64.Size(inserted) +
		varint.Int64.Size(updated) +
		varint.Uint64.Size(manifest.Generation)
	for _, c := range manifest.Columns {
		size += ord.String.Size(c)
	}
	buf := make([]byte, size)

	n := varint.Uint64.Marshal(uint64(manifest.Id), buf)
	n += ord.String.Marshal(manifest.Name, buf[n:])
	n += varint.Int.Marshal(len(manifest.Columns), buf[n:])
	for _, c := range manifest.Columns {
		n += ord.String.Marshal(c, buf[n:])
	}
	n += varint.Int.Marshal(manifest.Rows, buf[n:])
	n += varint.Int64.Marshal(inserted, buf[n:])
	n += varint.Int64.Marshal(updated, buf[n:])
	varint.Uint64.Marshal(manifest.Generation, buf[n:])
	return buf
}

// UnmarshalManifest deserializes a MatrixManifest from bytes.
func UnmarshalManifest(data []byte) (*core.MatrixManifest, error) {
	var manifest core.MatrixManifest

	id, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest id: %w", ErrSerializationFailed, err)
	}
	manifest.Id = core.ID(id)

	name, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: manifest name: %w", ErrSerializationFailed, err)
	}
	manifest.Name = name
	n += m

	count, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: column count: %w", ErrSerializationFailed, err)
	}
	n += m
	// Every column costs at least one length byte.
	if count < 0 || count > len(data)-n {
		return nil, fmt.Errorf("%w: manifest declares %d columns", ErrTruncatedData, count)
	}

	manifest.Columns = make([]string, count)
	for i := range manifest.Columns {
		manifest.Columns[i], m, err = ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: column %d: %w", ErrSerializationFailed, i, err)
		}
		n += m
	}

	manifest.Rows, m, err = varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: row count: %w", ErrSerializationFailed, err)
	}
	n += m

	inserted, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: inserted at: %w", ErrSerializationFailed, err)
	}
	n += m

	updated, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: updated at: %w", ErrSerializationFailed, err)
	}
	n += m

	manifest.Generation, _, err = varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: generation: %w", ErrSerializationFailed, err)
	}

	manifest.InsertedAt = time.UnixMicro(inserted).UTC()
	manifest.UpdatedAt = time.UnixMicro(updated).UTC()
	return &manifest, nil
}
