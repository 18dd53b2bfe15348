package heuristic

import (
	"reflect"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "longest qualifying line wins",
			text: "Short header\nA Comprehensive Study of Spectral Graph Partitioning\nJ. Smith\n",
			want: "A Comprehensive Study of Spectral Graph Partitioning",
		},
		{
			name: "boilerplate is skipped",
			text: "Journal of Combinatorics, Volume 12 Issue 3\nOn the Chromatic Number of Random Graphs\nA. Jones\n",
			want: "On the Chromatic Number of Random Graphs",
		},
		{
			name: "journal in a title is not boilerplate",
			text: "A Survey of Journal Ranking Methods and Their Uses\nB. Author\n",
			want: "A Survey of Journal Ranking Methods and Their Uses",
		},
		{
			name: "running head with volume and pages is skipped",
			text: "Journal of Machine Learning Research Vol. 22 No. 4 pp. 1-30\nDeep Kernel Methods for Structured Data\n",
			want: "Deep Kernel Methods for Structured Data",
		},
		{
			name: "copyright line is skipped",
			text: "Copyright 2021 by the authors, all rights reserved\nEfficient Algorithms for Submodular Maximization\n",
			want: "Efficient Algorithms for Submodular Maximization",
		},
		{
			name: "nothing qualifies",
			text: "p. 12\n(3)\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := FromText(tt.text)
			got := ""
			if md.Title != nil {
				got = *md.Title
			}
			if got != tt.want {
				t.Errorf("title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "semicolon separated",
			text: "Some title\nKeywords: graph theory; combinatorics\n",
			want: []string{"graph theory", "combinatorics"},
		},
		{
			name: "comma separated with Index Terms marker",
			text: "Index Terms: machine learning, optimization, neural networks\n",
			want: []string{"machine learning", "optimization", "neural networks"},
		},
		{
			name: "bare marker pulls the next line",
			text: "Keywords:\nbayesian inference; variational methods\n",
			want: []string{"bayesian inference", "variational methods"},
		},
		{
			name: "no marker yields nothing",
			text: "An abstract about graphs with no marker line at all.\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := FromText(tt.text)
			if !reflect.DeepEqual(md.Keywords, tt.want) {
				t.Errorf("keywords = %v, want %v", md.Keywords, tt.want)
			}
		})
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "single year",
			text: "Published in 2019.",
			want: 2019,
		},
		{
			name: "most frequent year wins",
			text: "Received 2018. Revised 2019. Accepted 2019. Published 2019.",
			want: 2019,
		},
		{
			name: "tie broken by first occurrence",
			text: "Submitted 2017, published 2018. See also the 2017 and 2018 editions.",
			want: 2017,
		},
		{
			name: "implausible years ignored",
			text: "As shown in 1642 and confirmed in 2890, nothing here counts except 1998.",
			want: 1998,
		},
		{
			name: "no year",
			text: "No dates anywhere in this text.",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := FromText(tt.text)
			got := 0
			if md.Year != nil {
				got = *md.Year
			}
			if got != tt.want {
				t.Errorf("year = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtractAuthors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "explicit marker",
			text: "A Study of Things in General and Specific\nAuthors: Jane Doe, John Smith and Alice Jones\n",
			want: []string{"Jane Doe", "John Smith", "Alice Jones"},
		},
		{
			name: "line under the title",
			text: "An Extremely Long and Informative Paper Title Line\nJane Doe; John Smith\nSome University, USA\n",
			want: []string{"Jane Doe", "John Smith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := FromText(tt.text)
			if !reflect.DeepEqual(md.Authors, tt.want) {
				t.Errorf("authors = %v, want %v", md.Authors, tt.want)
			}
		})
	}
}

func TestExtractAbstract(t *testing.T) {
	text := "A Title Long Enough To Be Picked Up Properly\n" +
		"Abstract: We study the behavior of random structures\nunder perturbation.\n\n" +
		"Introduction\nThe rest of the paper.\n"
	md := FromText(text)
	if md.Abstract == nil {
		t.Fatal("expected an abstract")
	}
	want := "We study the behavior of random structures under perturbation."
	if *md.Abstract != want {
		t.Errorf("abstract = %q, want %q", *md.Abstract, want)
	}
}

func TestExtractAffiliationsAndCountries(t *testing.T) {
	text := "A Sufficiently Long Title For The Title Heuristic\n" +
		"Jane Doe\n" +
		"Department of Computer Science, Example University, USA\n"
	md := FromText(text)
	if len(md.Affiliations) != 1 {
		t.Fatalf("affiliations = %v, want one entry", md.Affiliations)
	}
	if !reflect.DeepEqual(md.Countries, []string{"USA"}) {
		t.Errorf("countries = %v, want [USA]", md.Countries)
	}
}

func TestMalformedInputNeverFails(t *testing.T) {
	for _, text := range []string{"", "\n\n\n", "\x00\x01\x02", "   "} {
		md := FromText(text)
		if md.Authors != nil || md.Keywords != nil {
			t.Errorf("FromText(%q) should degrade to empty, got %+v", text, md)
		}
	}
}
