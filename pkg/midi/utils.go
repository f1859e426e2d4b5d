package midi

// MaxVLQ is the largest value a four byte variable length quantity can hold.
const MaxVLQ = 0x0FFFFFFF

const maxVLQLen = 4

// DecodeVLQ reads one variable length quantity starting at offset and returns
// its value and the number of bytes consumed.
func DecodeVLQ(buf []byte, offset int) (uint32, int, error) {
	d := decoder{buf: buf, offset: offset}
	val, err := d.varLen()
	if err != nil {
		return 0, 0, truncated(err, "variable length quantity", offset)
	}
	return val, d.offset - offset, nil
}

// EncodeVLQ returns the minimal big-endian base-128 encoding of v.
func EncodeVLQ(v uint32) []byte {
	return AppendVLQ(nil, v)
}

// AppendVLQ appends the encoding of v to dst.
func AppendVLQ(dst []byte, v uint32) []byte {
	var tmp [5]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7F)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7F) | 0x80
	}
	return append(dst, tmp[i:]...)
}

func decodeVarint(buf []byte) (x uint32, n int, err error) {
	for n < len(buf) {
		if n == maxVLQLen {
			return 0, 0, ErrVLQTooLong
		}
		b := buf[n]
		x = x<<7 | uint32(b&0x7F)
		n++
		if b&0x80 == 0 {
			return x, n, nil
		}
	}
	if n == maxVLQLen {
		return 0, 0, ErrVLQTooLong
	}
	return 0, 0, ErrNeedMoreData
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
