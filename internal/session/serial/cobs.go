// internal/session/serial/cobs.go
package serial

import "errors"

var errCOBS = errors.New("cobs: invalid encoding")

// cobsEncode stuffs src so the result contains no zero bytes.
// Delimiters are not added.
func cobsEncode(src []byte) []byte {
	dst := make([]byte, 1, len(src)+len(src)/254+2)
	codeIdx := 0
	code := byte(1)

	for _, b := range src {
		if b == 0 {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
			continue
		}
		dst = append(dst, b)
		code++
		if code == 0xFF {
			dst[codeIdx] = code
			codeIdx = len(dst)
			dst = append(dst, 0)
			code = 1
		}
	}
	dst[codeIdx] = code
	return dst
}

// cobsDecode reverses cobsEncode. src must not contain the delimiter.
func cobsDecode(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, errCOBS
	}

	dst := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		code := int(src[i])
		if code == 0 {
			return nil, errCOBS
		}
		i++

		end := i + code - 1
		if end > len(src) {
			return nil, errCOBS
		}
		for _, b := range src[i:end] {
			if b == 0 {
				return nil, errCOBS
			}
		}
		dst = append(dst, src[i:end]...)
		i = end

		if code < 0xFF && i < len(src) {
			dst = append(dst, 0)
		}
	}
	return dst, nil
}
