package normalize

import (
	"testing"
)

func TestCollapseSpace(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "Avocat", want: "Avocat"},
		{name: "newlines and tabs", input: "  Directrice\n\tcommerciale  ", want: "Directrice commerciale"},
		{name: "only whitespace", input: " \n ", want: ""},
		{name: "no-break space", input: "Cabinet\u00a0Martin", want: "Cabinet Martin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CollapseSpace(tt.input); got != tt.want {
				t.Errorf("CollapseSpace(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanSpecialSpaces(t *testing.T) {
	got := CleanSpecialSpaces("1\u202f000\u00a0EUR\n")
	if got != "1 000 EUR " {
		t.Errorf("CleanSpecialSpaces() = %q", got)
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Société Générale", want: "Societe Generale"},
		{input: "ŒUVRE FRANÇAISE", want: "OEUVRE FRANCAISE"},
		{input: "Ørsted Łódź Đakovo", want: "Orsted Lodz Dakovo"},
		{input: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FoldAccents(tt.input); got != tt.want {
				t.Errorf("FoldAccents(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "15/03/2021 10:22:41", want: "2021-03-15"},
		{input: "15/03/2021", want: "2021-03-15"},
		{input: " 01/12/2019 ", want: "2019-12-01"},
		{input: "2020-07-01", want: "2020-07-01"},
		{input: "", wantErr: true},
		{input: "31/02/2021", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
