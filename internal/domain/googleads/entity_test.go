package googleads

import "testing"

func TestNormalizeCustomerID(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"1234567890", "1234567890", true},
		{"123-456-7890", "1234567890", true},
		{" 123-456-7890 ", "1234567890", true},
		{"", "", false},
		{"---", "", false},
		{"12ab", "", false},
		{"customers/123", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeCustomerID(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeCustomerID(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
