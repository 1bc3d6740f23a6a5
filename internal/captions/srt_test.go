package captions

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{59.9996, "00:01:00,000"},
		{3661.5, "01:01:01,500"},
		{-3, "00:00:00,000"},
		{36000.042, "10:00:00,042"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSRT(t *testing.T) {
	got := FormatSRT([]Segment{
		{Text: "こんにちは。", StartTime: 0, EndTime: 10},
		{Text: " second line ", StartTime: 10, EndTime: 12.345},
	})
	want := "1\n00:00:00,000 --> 00:00:10,000\nこんにちは。\n\n" +
		"2\n00:00:10,000 --> 00:00:12,345\nsecond line\n\n"
	if got != want {
		t.Fatalf("unexpected srt:\n%q\nwant:\n%q", got, want)
	}
}

func TestFormatSRTEmpty(t *testing.T) {
	if got := FormatSRT(nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
