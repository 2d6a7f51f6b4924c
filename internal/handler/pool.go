package handler

import (
	"bytes"
	"sync"
)

// bufferPool recycles JSON encoding buffers. Sensor listings carry every
// item's attributes, so buffers start larger than a typical error body.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	buf.Reset()
	bufferPool.Put(buf)
}
