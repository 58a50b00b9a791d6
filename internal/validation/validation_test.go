package validation

import (
	"strings"
	"testing"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Savings", false},
		{"with spaces", "  Travel fund ", false},
		{"empty", "", true},
		{"only spaces", "   ", true},
		{"too long", strings.Repeat("a", 101), true},
		{"control char", "bad\x00name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccountName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"USD", false},
		{"jpy", false},
		{"", false},
		{"XYZ", true},
		{"US", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateCurrency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCurrency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAmounts(t *testing.T) {
	if err := ValidateAmount(1); err != nil {
		t.Errorf("ValidateAmount(1) = %v", err)
	}
	if err := ValidateAmount(0); err == nil {
		t.Error("ValidateAmount(0) should fail")
	}
	if err := ValidateAmount(-5); err == nil {
		t.Error("ValidateAmount(-5) should fail")
	}
	if err := ValidateInitialBalance(0); err != nil {
		t.Errorf("ValidateInitialBalance(0) = %v", err)
	}
	if err := ValidateInitialBalance(-1); err == nil {
		t.Error("ValidateInitialBalance(-1) should fail")
	}
}

func TestValidateIdempotencyKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"empty", "", false},
		{"uuid", "5f0c7e8e-3b1f-4c1e-9a55-0b6a3f7b2d11", false},
		{"with space", "order 42", true},
		{"non ascii", "clé", true},
		{"too long", strings.Repeat("k", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdempotencyKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdempotencyKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMetadata(t *testing.T) {
	if err := ValidateMetadata(map[string]string{"order": "42"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMetadata(map[string]string{" ": "x"}); err == nil {
		t.Error("blank key should fail")
	}

	many := make(map[string]string)
	for i := 0; i < 21; i++ {
		many[strings.Repeat("k", i+1)] = "v"
	}
	if err := ValidateMetadata(many); err == nil {
		t.Error("too many keys should fail")
	}
}

func TestFirst(t *testing.T) {
	if err := First(nil, nil); err != nil {
		t.Errorf("First(nil, nil) = %v", err)
	}
	err := First(nil, ValidateAmount(0), ValidateAccountName(""))
	if err == nil || !strings.Contains(err.Error(), "amount") {
		t.Errorf("First returned %v, want the amount error", err)
	}
}
