package areas

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  熊谷市 ", "熊谷市"},
		{"-", ""},
		{"—", ""},
		{"ｰ", ""},
		{"－", ""},
		{"NaN", ""},
		{"", ""},
		{"大字的場", "大字的場"},
		{"- -", "- -"}, // only a lone dash is a placeholder
	}
	for _, tt := range tests {
		if got := sanitize(tt.in); got != tt.want {
			t.Errorf("sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"33,520", 33520},
		{"1,000", 1000},
		{"500", 500},
		{"12.9", 12},
		{"1,234.5", 1234},
		{"", 0},
		{"-", 0},
		{"ｰ", 0},
		{"NaN", 0},
		{"abc", 0},
		{" 42 ", 42},
	}
	for _, tt := range tests {
		if got := parseInt(tt.in); got != tt.want {
			t.Errorf("parseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		oaza  string
		aza   string
		strip bool
		want  string
	}{
		{"both fragments", "岩神町", "1丁目", false, "岩神町 1丁目"},
		{"strip oaza prefix", "大字的場", "", true, "的場"},
		{"strip aza prefix on first", "字南原", "", true, "南原"},
		{"strip aza prefix on second", "岩神町", "字北浦", true, "岩神町 北浦"},
		{"strip both prefixes", "大字的場", "字北浦", true, "的場 北浦"},
		{"prefix kept when disabled", "大字的場", "", false, "大字的場"},
		{"prefix stripped once only", "大字大字町", "", true, "大字町"},
		{"only finer fragment", "", "銀座1丁目", true, "銀座1丁目"},
		{"both empty", "", "", true, ""},
		{"dash fragments are empty", "-", "—", true, ""},
		{"whitespace collapsed", "岩神町 ", " 1丁目", false, "岩神町 1丁目"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.oaza, tt.aza, tt.strip); got != tt.want {
				t.Errorf("DisplayName(%q, %q, %v) = %q, want %q",
					tt.oaza, tt.aza, tt.strip, got, tt.want)
			}
		})
	}
}
