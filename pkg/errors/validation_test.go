package errors

import (
	"math"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "YRI", false},
		{"with underscore", "pop_1", false},
		{"unicode", "Denisovan-ανθρωπος", false},

		{"empty", "", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("id", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !IsValueError(err) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeValue)
			}
		})
	}
}

func TestValidateTime(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		allowInf bool
		wantErr  bool
	}{
		{"zero", 0, false, false},
		{"positive", 1e9, false, false},
		{"inf allowed", math.Inf(1), true, false},

		{"inf rejected", math.Inf(1), false, true},
		{"negative", -1e-9, true, true},
		{"negative inf", math.Inf(-1), true, true},
		{"nan", math.NaN(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTime("time", tt.input, tt.allowInf)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTime(%v, %v) error = %v, wantErr %v", tt.input, tt.allowInf, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	for _, v := range []float64{-10000, -1, -1e-9, 0, math.Inf(1), math.NaN()} {
		if err := ValidateSize("initial_size", v); err == nil {
			t.Errorf("ValidateSize(%v) = nil, want error", v)
		}
	}
	for _, v := range []float64{1e-9, 1, 1e12} {
		if err := ValidateSize("initial_size", v); err != nil {
			t.Errorf("ValidateSize(%v) = %v, want nil", v, err)
		}
	}
}

func TestValidateFraction(t *testing.T) {
	for _, v := range []float64{-1e-9, 1.2, math.Inf(1), math.NaN()} {
		if err := ValidateFraction("selfing_rate", v); err == nil {
			t.Errorf("ValidateFraction(%v) = nil, want error", v)
		}
	}
	for _, v := range []float64{0, 0.5, 1} {
		if err := ValidateFraction("selfing_rate", v); err != nil {
			t.Errorf("ValidateFraction(%v) = %v, want nil", v, err)
		}
	}
}

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantErr    bool
	}{
		{"finite", 100, 20, false},
		{"infinite start", math.Inf(1), 0, false},

		{"empty", 1, 1, true},
		{"reversed", 1, 2, true},
		{"infinite end", math.Inf(1), math.Inf(1), true},
		{"negative end", 10, -1, true},
		{"negative start", -1, -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInterval("epoch", tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInterval(%v, %v) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}
