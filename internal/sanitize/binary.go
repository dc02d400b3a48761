package sanitize

import (
	"bytes"
	"io"
	"os"
)

// sniffLength defines the number of leading bytes inspected when detecting binary content.
const sniffLength = 1024

// IsBinaryContent reports whether data contains a NUL byte.
func IsBinaryContent(data []byte) bool {
	return bytes.IndexByte(data, 0) >= 0
}

// IsBinary reads up to sniffLength bytes from the file at path and reports whether it
// should be treated as binary. Files that cannot be opened or read count as binary.
//
// #nosec G304
func IsBinary(path string) bool {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return true
	}
	defer fileHandle.Close()

	buffer := make([]byte, sniffLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return true
	}
	return IsBinaryContent(buffer[:bytesRead])
}
