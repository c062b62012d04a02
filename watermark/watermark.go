package watermark

// Watermark is the DCT watermarking codec configured by Parameters. A
// Watermark is immutable and safe for concurrent use: every
// Embed/Extract call allocates its own working grids and buffers.
type Watermark struct {
	params   Parameters
	capacity Capacity
}

// New validates params and derives its capacity, returning
// ErrInvalidParameters if the combination is unusable.
func New(params Parameters) (*Watermark, error) {
	cap, err := params.derive()
	if err != nil {
		return nil, err
	}
	return &Watermark{params: params, capacity: cap}, nil
}

// Capacity returns the payload sizes this Watermark supports.
func (w *Watermark) Capacity() Capacity {
	return w.capacity
}

func (w *Watermark) rs() RSCodec {
	if w.params.RS != nil {
		return w.params.RS
	}
	return NewRSCodec()
}

// Embed embeds an arbitrary bit payload into img in place. Payloads
// longer than Capacity().MaxBitsData are truncated; shorter payloads
// are zero-padded.
func (w *Watermark) Embed(img Image, bits *BitBuffer) error {
	return w.embedBits(img, bits)
}

// EmbedText normalizes, encodes, and embeds a text payload into img in
// place.
func (w *Watermark) EmbedText(img Image, text string) error {
	bits := encodeText(text, w.capacity.MaxTextLen)
	return w.embedBits(img, bits)
}

// ExtractData recovers the raw data bit payload from img.
func (w *Watermark) ExtractData(img Image) (*BitBuffer, error) {
	return w.extractBits(img)
}

// ExtractText recovers and decodes a text payload from img.
func (w *Watermark) ExtractText(img Image) (string, error) {
	bits, err := w.extractBits(img)
	if err != nil {
		return "", err
	}
	return decodeText(bits, w.capacity.MaxTextLen)
}
