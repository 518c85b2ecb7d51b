// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrInvalidRate, "sample rate must be positive"},
		{ErrUnknownFormat, "no decoder registered for format"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}

		wrapped := fmt.Errorf("reading: %w", tt.err)
		if !errors.Is(wrapped, tt.err) {
			t.Errorf("errors.Is(%v) failed through wrapping", tt.err)
		}
	}

	if errors.Is(ErrInvalidDstSize, ErrInvalidRate) || errors.Is(ErrUnknownFormat, ErrInvalidRate) {
		t.Error("distinct sentinels compare equal")
	}
}
