package watermark

// rsframe.go wraps the byte-oriented RSCodec (rs.go) in bit-buffer
// framing: pack to bytes, encode/decode, unpack back to bits.

// rsEncodeBits appends 8*k parity bits to data (which must already hold
// a multiple of 8 bits), returning a len(data)+8k bit codeword.
func rsEncodeBits(rs RSCodec, data *BitBuffer, k int) (*BitBuffer, error) {
	if k == 0 {
		return data, nil
	}
	raw, err := data.Bytes()
	if err != nil {
		return nil, err
	}
	coded, err := rs.Encode(raw, k)
	if err != nil {
		return nil, err
	}
	return BitBufferFromBytes(coded), nil
}

// rsDecodeBits is the inverse of rsEncodeBits: it unpacks codeword to
// bytes, corrects up to k/2 byte errors, and returns the leading data
// bits.
func rsDecodeBits(rs RSCodec, codeword *BitBuffer, k int) (*BitBuffer, error) {
	if k == 0 {
		return codeword, nil
	}
	raw, err := codeword.Bytes()
	if err != nil {
		return nil, err
	}
	data, err := rs.Decode(raw, k)
	if err != nil {
		return nil, err
	}
	return BitBufferFromBytes(data), nil
}
