package constraint

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/zkcalc/internal/ioutils"
)

// ToBytes serializes the constraint system to a byte slice.
func (system *System) ToBytes() ([]byte, error) {
	// we prepare and write 3 distinct blocks of data;
	// that allows for a more efficient serialization/deserialization (+ parallelism)
	var queries, equality []byte
	var g errgroup.Group
	g.Go(func() error {
		var err error
		queries, err = system.queriesToBytes()
		return err
	})
	g.Go(func() error {
		var err error
		equality, err = system.equalityToBytes()
		return err
	})
	body, err := system.toBytes()
	if err != nil {
		return nil, err
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// header
	h := header{
		queriesLen:  uint64(len(queries)),
		equalityLen: uint64(len(equality)),
		bodyLen:     uint64(len(body)),
	}

	// write header
	buf := h.toBytes()
	buf = append(buf, queries...)
	buf = append(buf, equality...)
	buf = append(buf, body...)

	return buf, nil
}

// FromBytes deserializes the constraint system from a byte slice. It returns
// the number of bytes read and an error if the data does not describe a
// system this binary can process.
func (system *System) FromBytes(data []byte) (int, error) {
	if len(data) < headerLen {
		return 0, errors.New("invalid data length")
	}

	// read the header which contains the length of each section
	h := new(header)
	h.fromBytes(data)

	if len(data) < headerLen+int(h.queriesLen)+int(h.equalityLen)+int(h.bodyLen) {
		return 0, errors.New("invalid data length")
	}

	// read the sections in parallel
	var g errgroup.Group
	g.Go(func() error {
		return system.queriesFromBytes(data[headerLen : headerLen+h.queriesLen])
	})

	g.Go(func() error {
		return system.equalityFromBytes(data[headerLen+h.queriesLen : headerLen+h.queriesLen+h.equalityLen])
	})

	// CBOR decoding of the constraint system (except what we do directly in binary)
	ts := getTagSet()
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecModeWithTags(ts)

	if err != nil {
		return 0, err
	}
	decoder := dm.NewDecoder(bytes.NewReader(data[headerLen+h.queriesLen+h.equalityLen : headerLen+h.queriesLen+h.equalityLen+h.bodyLen]))

	if err := decoder.Decode(&system); err != nil {
		return 0, err
	}

	if err := system.CheckSerializationHeader(); err != nil {
		return 0, err
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return headerLen + int(h.queriesLen) + int(h.equalityLen) + int(h.bodyLen), nil
}

// WriteTo encodes the system into w.
func (system *System) WriteTo(w io.Writer) (int64, error) {
	data, err := system.ToBytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom decodes a system from r, consuming exactly the bytes the
// encoding occupies.
func (system *System) ReadFrom(r io.Reader) (int64, error) {
	var hBuf [headerLen]byte
	read, err := io.ReadFull(r, hBuf[:])
	if err != nil {
		return int64(read), err
	}

	h := new(header)
	h.fromBytes(hBuf[:])

	data := make([]byte, uint64(headerLen)+h.queriesLen+h.equalityLen+h.bodyLen)
	copy(data, hBuf[:])
	n, err := io.ReadFull(r, data[headerLen:])
	if err != nil {
		return int64(read + n), err
	}

	consumed, err := system.FromBytes(data)
	return int64(consumed), err
}

// Fingerprint returns a digest of the serialized system. The encoding is
// deterministic, so two systems with the same shape fingerprint identically.
func (system *System) Fingerprint() ([32]byte, error) {
	data, err := system.ToBytes()
	if err != nil {
		return [32]byte{}, err
	}
	return blake2b.Sum256(data), nil
}

func (system *System) toBytes() ([]byte, error) {
	// CBOR encoding of the constraint system (except what we do directly in binary)
	ts := getTagSet()
	enc, err := cbor.CoreDetEncOptions().EncModeWithTags(ts)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	encoder := enc.NewEncoder(buf)

	// encode our object
	err = encoder.Encode(system)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

const headerLen = 3 * 8

type header struct {
	// length in bytes of each section
	queriesLen  uint64
	equalityLen uint64
	bodyLen     uint64
}

func (h *header) toBytes() []byte {
	buf := make([]byte, 0, headerLen+h.queriesLen+h.equalityLen+h.bodyLen)

	buf = binary.LittleEndian.AppendUint64(buf, h.queriesLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.equalityLen)
	buf = binary.LittleEndian.AppendUint64(buf, h.bodyLen)

	return buf
}

func (h *header) fromBytes(buf []byte) {
	h.queriesLen = binary.LittleEndian.Uint64(buf[:8])
	h.equalityLen = binary.LittleEndian.Uint64(buf[8:16])
	h.bodyLen = binary.LittleEndian.Uint64(buf[16:24])
}

func (system *System) queriesToBytes() ([]byte, error) {
	// queries always target advice columns; only index and shift are stored.
	sColumn := make([]uint32, len(system.Queries))
	sShift := make([]uint32, len(system.Queries))
	for i, q := range system.Queries {
		sColumn[i] = uint32(q.Column.Index)
		sShift[i] = uint32(int32(q.Shift))
	}

	var buf bytes.Buffer
	buf.Grow(4 * len(system.Queries) * 2)

	buf32, err := ioutils.CompressAndWriteUints32(&buf, sColumn, nil)
	if err != nil {
		return nil, err
	}
	_, err = ioutils.CompressAndWriteUints32(&buf, sShift, buf32)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (system *System) queriesFromBytes(in []byte) error {
	r := bytes.NewReader(in)
	_, sColumn, err := ioutils.ReadAndDecompressUints32(r)
	if err != nil {
		return err
	}
	_, sShift, err := ioutils.ReadAndDecompressUints32(r)
	if err != nil {
		return err
	}
	if len(sColumn) != len(sShift) {
		return errors.New("invalid queries section")
	}

	system.Queries = make([]ColumnAccess, len(sColumn))
	for i := range system.Queries {
		system.Queries[i] = ColumnAccess{
			Column: Column{Index: int(sColumn[i]), Kind: ColumnAdvice},
			Shift:  Rotation(int32(sShift[i])),
		}
	}

	return nil
}

func (system *System) equalityToBytes() ([]byte, error) {
	sKind := make([]uint32, len(system.Equality))
	sIndex := make([]uint32, len(system.Equality))
	for i, c := range system.Equality {
		sKind[i] = uint32(c.Kind)
		sIndex[i] = uint32(c.Index)
	}

	var buf bytes.Buffer
	buf.Grow(4 * len(system.Equality) * 2)

	buf32, err := ioutils.CompressAndWriteUints32(&buf, sKind, nil)
	if err != nil {
		return nil, err
	}
	_, err = ioutils.CompressAndWriteUints32(&buf, sIndex, buf32)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (system *System) equalityFromBytes(in []byte) error {
	r := bytes.NewReader(in)
	_, sKind, err := ioutils.ReadAndDecompressUints32(r)
	if err != nil {
		return err
	}
	_, sIndex, err := ioutils.ReadAndDecompressUints32(r)
	if err != nil {
		return err
	}
	if len(sKind) != len(sIndex) {
		return errors.New("invalid equality section")
	}

	system.Equality = make([]Column, len(sKind))
	for i := range system.Equality {
		system.Equality[i] = Column{Index: int(sIndex[i]), Kind: ColumnKind(sKind[i])}
	}

	return nil
}

func getTagSet() cbor.TagSet {
	ts := cbor.NewTagSet()
	// https://www.iana.org/assignments/cbor-tags/cbor-tags.xhtml
	// 65536-15309735 Unassigned
	tagNum := uint64(5310200)
	addType := func(t reflect.Type) {
		if err := ts.Add(
			cbor.TagOptions{EncTag: cbor.EncTagRequired, DecTag: cbor.DecTagRequired},
			t,
			tagNum,
		); err != nil {
			panic(err)
		}
		tagNum++
	}

	addType(reflect.TypeOf(Add{}))
	addType(reflect.TypeOf(Sub{}))
	addType(reflect.TypeOf(Mul{}))
	addType(reflect.TypeOf(Constant{}))
	addType(reflect.TypeOf(ColumnAccess{}))
	addType(reflect.TypeOf(SelectorAccess{}))

	return ts
}
