package watermark

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// debugDump writes grid as a raw row-major byte stream (one byte per
// cell, clamped to 0-255) to a uniquely named file under the system
// temp directory, when Parameters.Debug is set, for offline inspection
// of the raw mark/coefficient matrices. A write failure is deliberately
// swallowed: debug dumps must never turn a successful embed/extract
// into an error.
func (w *Watermark) debugDump(label string, grid [][]int) {
	if !w.params.Debug {
		return
	}
	var buf bytes.Buffer
	for _, row := range grid {
		for _, v := range row {
			buf.WriteByte(byte(ClampByte(v)))
		}
	}
	name := filepath.Join(os.TempDir(), "watermark-"+label+"-"+uuid.NewString()+".raw")
	_ = os.WriteFile(name, buf.Bytes(), 0o644)
}
