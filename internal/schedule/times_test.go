package schedule

import "testing"

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2", "02:00", true}, // bare hour below 12 is AM
		{"2 PM", "14:00", true},
		{"2:30pm", "14:30", true},
		{"2:30 PM", "14:30", true},
		{"10 AM", "10:00", true},
		{"12 PM", "12:00", true},
		{"12 AM", "00:00", true},
		{"14:30", "14:30", true}, // 24-hour input without marker
		{"17", "17:00", true},
		{"at 5 pm", "17:00", true},
		{"9:05", "09:05", true},
		{"25", "", false},
		{"13 PM", "", false},
		{"2:75", "", false},
		{"noonish", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseClockTime(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseClockTime(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExtractClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Schedule for tomorrow at 3 PM", "15:00", true},
		{"book me at 2:30pm on friday", "14:30", true},
		{"meeting @ 11", "11:00", true},
		{"book something next week", "", false},
	}

	for _, tt := range tests {
		got, ok := ExtractClockTime(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ExtractClockTime(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
