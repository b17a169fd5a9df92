package handler

import (
	"bytes"
	"sync"
)

// encodeBuffers recycles scratch buffers for response encoding so steady
// request traffic does not allocate a fresh buffer per response.
var encodeBuffers = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

func borrowBuffer() *bytes.Buffer {
	return encodeBuffers.Get().(*bytes.Buffer)
}

func releaseBuffer(buf *bytes.Buffer) {
	buf.Reset()
	encodeBuffers.Put(buf)
}
