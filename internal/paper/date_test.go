package paper

import (
	"testing"
	"time"
)

func TestPartialDateResolve(t *testing.T) {
	tests := []struct {
		name string
		date PartialDate
		want time.Time
	}{
		{
			name: "year only expands to January 1",
			date: PartialDate{Year: 2021},
			want: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "year and month expand to first of month",
			date: PartialDate{Year: 2021, Month: 3},
			want: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "full date passes through",
			date: PartialDate{Year: 2021, Month: 3, Day: 15},
			want: time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Resolve(); !got.Equal(tt.want) {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPartialDateString(t *testing.T) {
	tests := []struct {
		date PartialDate
		want string
	}{
		{PartialDate{}, ""},
		{PartialDate{Year: 2021}, "2021"},
		{PartialDate{Year: 2021, Month: 3}, "2021-03"},
		{PartialDate{Year: 2021, Month: 3, Day: 5}, "2021-03-05"},
	}
	for _, tt := range tests {
		if got := tt.date.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMetadataIsEmpty(t *testing.T) {
	if !(Metadata{}).IsEmpty() {
		t.Error("zero Metadata should be empty")
	}
	md := Metadata{Title: String("A Title")}
	if md.IsEmpty() {
		t.Error("Metadata with a title should not be empty")
	}
	// A present-but-empty list still counts as a contribution.
	md = Metadata{Keywords: []string{}}
	if md.IsEmpty() {
		t.Error("Metadata with an empty keywords list should not be empty")
	}
}
