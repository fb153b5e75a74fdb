package writer

// MemWriter captures heap images in memory.
type MemWriter struct {
	Buf []byte
}

// WriteImage stores a copy of buf.
func (w *MemWriter) WriteImage(buf []byte) error {
	w.Buf = append(w.Buf[:0], buf...)
	return nil
}

var (
	_ Writer = (*FileWriter)(nil)
	_ Writer = (*MemWriter)(nil)
)
