package flags

import "testing"

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    int
		wantErr bool
	}{
		{9002, false},
		{1, false},
		{65535, false},
		{0, true},
		{-1, true},
		{65536, true},
	}
	for _, tt := range tests {
		if err := ValidatePort(tt.port); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePort(%d) error = %v, wantErr %v", tt.port, err, tt.wantErr)
		}
	}
}

func TestValidateLimit(t *testing.T) {
	if err := ValidateLimit(0); err != nil {
		t.Errorf("ValidateLimit(0) error = %v", err)
	}
	if err := ValidateLimit(-5); err == nil {
		t.Error("ValidateLimit(-5) expected error")
	}
}

func TestValidateEncoding(t *testing.T) {
	for _, ok := range []string{"utf-8", "UTF-8", "utf8"} {
		if err := ValidateEncoding(ok); err != nil {
			t.Errorf("ValidateEncoding(%q) error = %v", ok, err)
		}
	}
	for _, bad := range []string{"latin-1", "utf-16", ""} {
		if err := ValidateEncoding(bad); err == nil {
			t.Errorf("ValidateEncoding(%q) expected error", bad)
		}
	}
}
