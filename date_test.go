package plaidsheets

import (
	"testing"
	"time"
)

func TestDateDecode(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid",
			value: "2000-12-24",
			want:  time.Date(2000, 12, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "wrongFormat",
			value:   "24/12/2000",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := &Date{}
			if err := got.Decode(tt.value); (err != nil) != tt.wantErr {
				t.Fatalf("Date.Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && time.Time(*got) != tt.want {
				t.Errorf("Date.Decode() got = %v, want %v", time.Time(*got), tt.want)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	got := DateOnly(time.Date(2024, 3, 15, 23, 59, 59, 123, time.UTC))
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	got := FormatDate(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))
	if got != "2024-01-05" {
		t.Errorf("FormatDate() = %s, want 2024-01-05", got)
	}
}
