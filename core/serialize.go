package core

import (
	"errors"
	"math"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// ErrMalformedRecord indicates serialized bytes that cannot be decoded into a
// valid record.
var ErrMalformedRecord = errors.New("malformed serialized record")

// IDMUS serializes IDs in MUS format.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

// ChunkRecordMUS serializes ChunkRecords in MUS format. Timestamps are stored
// as Unix microseconds; vectors as a length-prefixed list of float32 bit
// patterns.
var ChunkRecordMUS = chunkRecordMUS{}

type chunkRecordMUS struct{}

func (chunkRecordMUS) Marshal(r ChunkRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Text, bs[n:])
	n += ord.String.Marshal(r.SourceURL, bs[n:])
	n += ord.String.Marshal(r.Title, bs[n:])
	n += ord.String.Marshal(r.Domain, bs[n:])
	n += ord.String.Marshal(r.PublishDate, bs[n:])
	n += varint.Int.Marshal(r.ChunkIndex, bs[n:])
	n += varint.Int.Marshal(r.TotalChunks, bs[n:])
	n += varint.Int.Marshal(len(r.Vector), bs[n:])
	for _, f := range r.Vector {
		n += varint.Uint32.Marshal(math.Float32bits(f), bs[n:])
	}
	n += varint.Int64.Marshal(r.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(r.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (chunkRecordMUS) Unmarshal(bs []byte) (r ChunkRecord, n int, err error) {
	var n1 int
	r.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	if r.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.SourceURL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.Domain, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.PublishDate, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.ChunkIndex, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if r.TotalChunks, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var vecLen int
	if vecLen, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if vecLen < 0 {
		err = ErrMalformedRecord
		return
	}
	if vecLen > 0 {
		r.Vector = make([]float32, vecLen)
		for i := 0; i < vecLen; i++ {
			var bits uint32
			if bits, n1, err = varint.Uint32.Unmarshal(bs[n:]); err != nil {
				return
			}
			n += n1
			r.Vector[i] = math.Float32frombits(bits)
		}
	}
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	r.InsertedAt = time.UnixMicro(micros).UTC()
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	r.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (chunkRecordMUS) Size(r ChunkRecord) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.Text)
	size += ord.String.Size(r.SourceURL)
	size += ord.String.Size(r.Title)
	size += ord.String.Size(r.Domain)
	size += ord.String.Size(r.PublishDate)
	size += varint.Int.Size(r.ChunkIndex)
	size += varint.Int.Size(r.TotalChunks)
	size += varint.Int.Size(len(r.Vector))
	for _, f := range r.Vector {
		size += varint.Uint32.Size(math.Float32bits(f))
	}
	size += varint.Int64.Size(r.InsertedAt.UnixMicro())
	size += varint.Int64.Size(r.UpdatedAt.UnixMicro())
	return size
}
