package crypt

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckIterations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		iterations int
		valid      bool
	}{
		{MinIterations, true},
		{MaxIterations, true},
		{MinIterations + 1, true},
		{MinIterations - 1, false},
		{MaxIterations + 1, false},
		{0, false},
		{-50, false},
	}

	for _, tt := range tests {
		err := CheckIterations(tt.iterations)
		if tt.valid && err != nil {
			t.Errorf("CheckIterations(%d) error = %v, want nil", tt.iterations, err)
		}

		if !tt.valid && !errors.Is(err, ErrIterationsOutOfRange) {
			t.Errorf("CheckIterations(%d) error = %v, want ErrIterationsOutOfRange", tt.iterations, err)
		}
	}
}

func TestCheckKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		want  string
		valid bool
	}{
		{"32 zero bytes", strings.Repeat("00", 32), strings.Repeat("00", 32), true},
		{"uppercase hex", strings.Repeat("AB", 32), strings.Repeat("AB", 32), true},
		{"longer than minimum", strings.Repeat("cd", 48), strings.Repeat("cd", 48), true},
		{"surrounding whitespace", " \t" + strings.Repeat("00", 32) + "\n", strings.Repeat("00", 32), true},
		{"31 bytes", strings.Repeat("00", 31), "", false},
		{"odd number of digits", strings.Repeat("00", 32) + "0", "", false},
		{"not hex at all", "litecrypt", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckKey(tt.key)

			if tt.valid {
				if err != nil {
					t.Fatalf("CheckKey() error = %v, want nil", err)
				}

				if got != tt.want {
					t.Errorf("CheckKey() = %q, want %q", got, tt.want)
				}

				return
			}

			if !errors.Is(err, ErrKeyFormat) {
				t.Errorf("CheckKey() error = %v, want ErrKeyFormat", err)
			}
		})
	}
}
