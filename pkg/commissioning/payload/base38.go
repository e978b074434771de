package payload

const base38Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-."

// charsPerChunk is the output length for 1, 2 and 3 input bytes.
var charsPerChunk = [3]int{2, 4, 5}

// Base38Encode encodes data in little-endian chunks of up to three bytes,
// least significant digit first.
func Base38Encode(data []byte) string {
	out := make([]byte, 0, (len(data)/3+1)*5)
	for len(data) > 0 {
		n := min(3, len(data))
		var v uint32
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint32(data[i])
		}
		for i := 0; i < charsPerChunk[n-1]; i++ {
			out = append(out, base38Alphabet[v%38])
			v /= 38
		}
		data = data[n:]
	}
	return string(out)
}
