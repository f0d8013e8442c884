package tracker

import "testing"

func TestExtractFilePath(t *testing.T) {
	tests := []struct {
		name        string
		windowTitle string
		appName     string
		want        string
	}{
		{
			name:        "filename before dash separator",
			windowTitle: "report.docx - Microsoft Word",
			appName:     "Microsoft Word",
			want:        "report.docx",
		},
		{
			name:        "filename before pipe separator",
			windowTitle: "main.go | studytimer",
			appName:     "Terminal",
			want:        "main.go",
		},
		{
			name:        "first segment without extension is ignored",
			windowTitle: "Inbox - Mail",
			appName:     "Mail",
			want:        "",
		},
		{
			name:        "notes titles are note names",
			windowTitle: "Chemistry revision",
			appName:     "Notes",
			want:        "Chemistry revision",
		},
		{
			name:        "obsidian title is the note name",
			windowTitle: "IB Physics IA",
			appName:     "Obsidian",
			want:        "IB Physics IA",
		},
		{
			name:        "bare obsidian window has no note",
			windowTitle: "Obsidian",
			appName:     "Obsidian",
			want:        "",
		},
		{
			name:        "empty title",
			windowTitle: "",
			appName:     "Obsidian",
			want:        "",
		},
		{
			name:        "no separator and not a notes app",
			windowTitle: "some window",
			appName:     "Finder",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFilePath(tt.windowTitle, tt.appName); got != tt.want {
				t.Fatalf("ExtractFilePath(%q, %q) = %q, want %q", tt.windowTitle, tt.appName, got, tt.want)
			}
		})
	}
}
