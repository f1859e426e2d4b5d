package midi

import "encoding/binary"

func (d *decoder) need(n int) error {
	if d.offset < 0 || len(d.buf)-d.offset < n {
		return ErrNeedMoreData
	}
	return nil
}

func (d *decoder) peekByte() (byte, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	return d.buf[d.offset], nil
}

// add offset
func (d *decoder) readByte() (byte, error) {
	b, err := d.peekByte()
	if err == nil {
		d.offset++
	}
	return b, err
}

func (d *decoder) bytes(n int) ([]byte, error) {
	if err := d.need(n); err != nil {
		return nil, err
	}
	b := d.buf[d.offset : d.offset+n]
	d.offset += n
	return b, nil
}

func (d *decoder) uint16() (uint16, error) {
	b, err := d.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) uint32() (uint32, error) {
	b, err := d.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) chunkID() ([4]byte, error) {
	var id [4]byte
	b, err := d.bytes(4)
	if err != nil {
		return id, err
	}
	copy(id[:], b)
	return id, nil
}

// varLen returns the variable length value at the exact parser location.
func (d *decoder) varLen() (uint32, error) {
	if d.offset < 0 || d.offset > len(d.buf) {
		return 0, ErrNeedMoreData
	}
	val, n, err := decodeVarint(d.buf[d.offset:])
	if err != nil {
		return 0, err
	}
	d.offset += n
	return val, nil
}

// lengthPrefixed reads a variable length quantity followed by that many bytes.
func (d *decoder) lengthPrefixed() ([]byte, error) {
	n, err := d.varLen()
	if err != nil {
		return nil, err
	}
	b, err := d.bytes(int(n))
	if err != nil {
		return nil, err
	}
	return cloneBytes(b), nil
}
