package util

import "testing"

func TestDownloadFileName(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		context string
		ext     string
		want    string
	}{
		{name: "company", prefix: "cover-letter", context: "Acme Corp", ext: "txt", want: "cover-letter-acme-corp.txt"},
		{name: "collapses whitespace", prefix: "resume", context: "  Big \t Data   Inc ", ext: ".pdf", want: "resume-big-data-inc.pdf"},
		{name: "no context", prefix: "resume", context: "", ext: "pdf", want: "resume.pdf"},
		{name: "strips separators", prefix: "resume", context: "A/B Labs", ext: "pdf", want: "resume-ab-labs.pdf"},
		{name: "empty", prefix: "", context: "", ext: "", want: "document"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := DownloadFileName(tt.prefix, tt.context, tt.ext); got != tt.want {
				t.Fatalf("DownloadFileName(%q, %q, %q) = %q, want %q", tt.prefix, tt.context, tt.ext, got, tt.want)
			}
		})
	}
}
