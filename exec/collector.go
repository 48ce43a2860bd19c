package exec

import (
	"bytes"
	"sync"
)

// OutputCollector is an io.Writer that accumulates one output stream of a
// process. Chunks are appended in arrival order. When maxBuf is positive only
// the last maxBuf bytes are retained; total byte and line counts stay accurate
// after trimming.
//
// It is safe for concurrent use. Write after Close is a no-op.
type OutputCollector struct {
	mu            sync.Mutex
	buf           []byte
	total         int64
	totalNewlines int
	closed        bool
	maxBuf        int
}

// NewOutputCollector creates a collector retaining at most maxBuf bytes.
// A maxBuf of zero or less retains everything.
func NewOutputCollector(maxBuf int) *OutputCollector {
	return &OutputCollector{maxBuf: maxBuf}
}

// Write implements io.Writer. Writes after Close are no-ops.
func (c *OutputCollector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return len(p), nil
	}

	n := len(p)
	c.total += int64(n)
	c.totalNewlines += bytes.Count(p, []byte{'\n'})
	c.buf = append(c.buf, p...)

	// Copy to release the old backing array.
	if c.maxBuf > 0 && len(c.buf) > c.maxBuf {
		trimmed := make([]byte, c.maxBuf)
		copy(trimmed, c.buf[len(c.buf)-c.maxBuf:])
		c.buf = trimmed
	}

	return n, nil
}

// Bytes returns a copy of the retained content.
func (c *OutputCollector) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf...)
}

// String returns the retained content as a string.
func (c *OutputCollector) String() string {
	return string(c.Bytes())
}

// TotalBytes returns the total number of bytes written, including trimmed ones.
func (c *OutputCollector) TotalBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalNewlines returns the total number of newlines written.
func (c *OutputCollector) TotalNewlines() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalNewlines
}

// Trimmed reports whether earlier output was dropped to respect maxBuf.
func (c *OutputCollector) Trimmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total > int64(len(c.buf))
}

// Close stops the collector. Subsequent writes are discarded.
func (c *OutputCollector) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
