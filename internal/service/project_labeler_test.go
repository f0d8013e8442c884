package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractProjectName(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		pageTitle string
		want      string
	}{
		{
			name: "kognity course path",
			url:  "https://app.kognity.com/study/app/ibdp-chemistry-2016/sid-123/book",
			want: "IB Chemistry",
		},
		{
			name:      "kognity subject from title",
			url:       "https://app.kognity.com/study/overview",
			pageTitle: "Kognity - Biology overview",
			want:      "IB Biology",
		},
		{
			name: "kognity without any hint",
			url:  "https://app.kognity.com/study/overview",
			want: "Kognity",
		},
		{
			name: "github owner and repo",
			url:  "https://github.com/gin-gonic/gin/issues/42",
			want: "gin-gonic/gin",
		},
		{
			name: "github root",
			url:  "https://github.com/",
			want: "GitHub",
		},
		{
			name:      "google docs title stripped",
			url:       "https://docs.google.com/document/d/abc/edit",
			pageTitle: "Extended Essay Draft - Google Docs",
			want:      "Extended Essay Draft",
		},
		{
			name: "google slides fallback",
			url:  "https://docs.google.com/presentation/d/abc/edit",
			want: "Google Slides",
		},
		{
			name: "google drive outside known products",
			url:  "https://docs.google.com/forms/d/abc",
			want: "Google Drive",
		},
		{
			name:      "notion title before separator",
			url:       "https://www.notion.so/workspace/page-abc",
			pageTitle: "TOK Exhibition | Notion",
			want:      "TOK Exhibition",
		},
		{
			name: "overleaf project slug",
			url:  "https://www.overleaf.com/project/64ab/physics-ia-draft",
			want: "Physics Ia Draft",
		},
		{
			name: "wikipedia topic",
			url:  "https://en.wikipedia.org/wiki/Haber_process",
			want: "Wikipedia: Haber process",
		},
		{
			name: "wikipedia without topic",
			url:  "https://en.wikipedia.org/",
			want: "Wikipedia",
		},
		{
			name:      "canvas assignment title",
			url:       "https://school.canvas.instructure.com/courses/1/assignments/2",
			pageTitle: "Lab Report 3",
			want:      "Lab Report 3",
		},
		{
			name: "stack overflow fixed label",
			url:  "https://stackoverflow.com/questions/11227809",
			want: "Stack Overflow",
		},
		{
			name: "unknown domain falls back to first label",
			url:  "https://quizlet.com/set/123",
			want: "Quizlet",
		},
		{
			name: "empty url",
			url:  "",
			want: "",
		},
		{
			name: "unparseable url",
			url:  "://bad",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractProjectName(tt.url, tt.pageTitle); got != tt.want {
				t.Fatalf("ExtractProjectName(%q, %q) = %q, want %q", tt.url, tt.pageTitle, got, tt.want)
			}
		})
	}
}

// 标签超过上限时必须回退到平台兜底名，而不是截断后输出。
func TestExtractProjectNameLengthGuard(t *testing.T) {
	longTitle := strings.Repeat("a", maxProjectNameLength+10) + " - Google Docs"
	got := ExtractProjectName("https://docs.google.com/document/d/abc/edit", longTitle)
	if got != "Google Docs" {
		t.Fatalf("expected fallback label for oversized title, got %q", got)
	}
}

func TestExtractProjectNameCanvasTruncates(t *testing.T) {
	longTitle := strings.Repeat("b", maxProjectNameLength+20)
	got := ExtractProjectName("https://school.canvas.instructure.com/courses/1", longTitle)
	if len(got) != maxProjectNameLength {
		t.Fatalf("expected truncation to %d chars, got %d", maxProjectNameLength, len(got))
	}
}

// 截断与首字母大写都按符文进行，多字节标题不能产出非法 UTF-8。
func TestExtractProjectNameMultibyteSafe(t *testing.T) {
	longTitle := strings.Repeat("数", maxProjectNameLength+5)
	got := ExtractProjectName("https://school.canvas.instructure.com/courses/1", longTitle)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated label is not valid UTF-8: %q", got)
	}
	if utf8.RuneCountInString(got) != maxProjectNameLength {
		t.Fatalf("expected %d runes, got %d", maxProjectNameLength, utf8.RuneCountInString(got))
	}

	if got := ExtractProjectName("https://école-notes.fr/page", ""); got != "École-notes" {
		t.Fatalf("expected rune-aware capitalization, got %q", got)
	}
}
