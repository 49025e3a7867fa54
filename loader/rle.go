package loader

import "encoding/base64"

// DecodeOpcodes reverses the sparse-insertion RLE encoding described in
// spec.md §4.B.i: b64 decodes to a raw byte sequence, and ins is a flat
// list of (position, value) pairs to be spliced into that sequence at the
// given insertion points. Inserted values may exceed 255, so the result is
// a slice of int rather than bytes.
func DecodeOpcodes(b64 string, ins []int) ([]int, error) {
	// strip the padding the payload's base64 alphabet omits only
	// inconsistently; StdEncoding.DecodeString tolerates a bare '='-free
	// string via WithPadding(NoPadding).
	data, err := base64.StdEncoding.WithPadding(base64.NoPadding).DecodeString(stripPadding(b64))
	if err != nil {
		return nil, err
	}

	pairs := append(append([]int{}, ins...), maxInt, maxInt, maxInt, maxInt)

	out := make([]int, 0, len(data)+len(ins)/2)
	k := 0
	pi := 0
	nextPair := func() (int, int) {
		e, w := pairs[pi], pairs[pi+1]
		pi += 2
		return e, w
	}
	e, w := nextPair()

	for _, c := range data {
		for k == e {
			out = append(out, w)
			k++
			e, w = nextPair()
		}
		out = append(out, int(c))
		k++
	}
	for k == e {
		out = append(out, w)
		k++
		e, w = nextPair()
	}
	return out, nil
}

const maxInt = int(^uint(0) >> 1)

func stripPadding(s string) string {
	i := len(s)
	for i > 0 && s[i-1] == '=' {
		i--
	}
	return s[:i]
}
