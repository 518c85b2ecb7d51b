// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"bytes"
	"testing"
)

func TestSwapSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
		in    []byte
		want  []byte
		ok    bool
	}{
		{name: "8-bit untouched", width: 1, in: []byte{1, 2}, want: []byte{1, 2}, ok: true},
		{name: "16-bit", width: 2, in: []byte{1, 2, 3, 4}, want: []byte{2, 1, 4, 3}, ok: true},
		{name: "24-bit", width: 3, in: []byte{1, 2, 3, 4, 5, 6}, want: []byte{3, 2, 1, 6, 5, 4}, ok: true},
		{name: "32-bit", width: 4, in: []byte{1, 2, 3, 4}, want: []byte{4, 3, 2, 1}, ok: true},
		{name: "64-bit", width: 8, in: []byte{1, 2, 3, 4, 5, 6, 7, 8}, want: []byte{8, 7, 6, 5, 4, 3, 2, 1}, ok: true},
		{name: "unknown width", width: 5, in: []byte{1, 2, 3, 4, 5}, want: []byte{1, 2, 3, 4, 5}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := append([]byte(nil), tt.in...)
			if ok := SwapSamples(buf, tt.width); ok != tt.ok {
				t.Errorf("SwapSamples ok = %v, want %v", ok, tt.ok)
			}
			if !bytes.Equal(buf, tt.want) {
				t.Errorf("SwapSamples = %v, want %v", buf, tt.want)
			}
		})
	}
}

func TestSwapTwiceIsIdentity(t *testing.T) {
	t.Parallel()

	orig := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23}
	for _, width := range []int{2, 3, 4, 8} {
		buf := append([]byte(nil), orig...)
		SwapSamples(buf, width)
		SwapSamples(buf, width)

		if !bytes.Equal(buf, orig) {
			t.Errorf("double swap at width %d = %v", width, buf)
		}
	}
}
