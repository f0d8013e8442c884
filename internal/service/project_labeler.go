package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxProjectNameLength 限制标签长度，保证展示友好。
const maxProjectNameLength = 50

var (
	kognityCourseRe  = regexp.MustCompile(`/app/([^/]+)`)
	overleafProjRe   = regexp.MustCompile(`/project/[^/]+/([^/?]+)`)
	wikipediaTopicRe = regexp.MustCompile(`/wiki/([^#?]+)`)
)

// kognitySubjects 用于从页面标题兜底识别科目。
var kognitySubjects = []string{
	"Chemistry", "Biology", "Physics", "Mathematics", "Math",
	"English", "History", "Economics",
}

// ExtractProjectName 从网址与页面标题推导一个人类可读的项目/文档标签。
// 纯函数：任何内部失败都返回空串，绝不报错；输出长度有上限。
// 规则整体形状是"优先取清洗后的标题，兜底用平台名"。
func ExtractProjectName(rawURL, pageTitle string) string {
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	domain := strings.TrimPrefix(parsed.Host, "www.")
	if domain == "" {
		return ""
	}

	path := parsed.Path

	switch {
	case strings.Contains(domain, "kognity.com"):
		return kognityProject(rawURL, pageTitle)

	case strings.Contains(domain, "github.com"):
		parts := splitPath(path)
		if len(parts) >= 2 {
			return fmt.Sprintf("%s/%s", parts[0], parts[1])
		}
		return "GitHub"

	case strings.Contains(domain, "docs.google.com"):
		return googleDocsProject(rawURL, pageTitle)

	case strings.Contains(domain, "notion.so"):
		if pageTitle != "" && strings.Contains(pageTitle, "Notion") {
			name := strings.TrimSpace(strings.SplitN(pageTitle, "|", 2)[0])
			if name != "" && len(name) < maxProjectNameLength {
				return name
			}
		}
		return "Notion"

	case strings.Contains(domain, "overleaf.com"):
		if match := overleafProjRe.FindStringSubmatch(rawURL); match != nil {
			return titleWords(strings.ReplaceAll(match[1], "-", " "))
		}
		if pageTitle != "" && strings.Contains(pageTitle, "Overleaf") {
			name := strings.TrimSpace(strings.ReplaceAll(pageTitle, "- Overleaf", ""))
			if name != "" && len(name) < maxProjectNameLength {
				return name
			}
		}
		return "Overleaf"

	case strings.Contains(domain, "canvas.instructure.com"), strings.Contains(domain, "canvas"):
		if pageTitle != "" && !strings.Contains(pageTitle, "Canvas") {
			return truncate(pageTitle, maxProjectNameLength)
		}
		return "Canvas LMS"

	case strings.Contains(domain, "moodle"):
		if pageTitle != "" && !strings.Contains(pageTitle, "Moodle") {
			return truncate(pageTitle, maxProjectNameLength)
		}
		return "Moodle"

	case strings.Contains(domain, "managebac.com"):
		if pageTitle != "" && !strings.Contains(pageTitle, "ManageBac") {
			return truncate(pageTitle, maxProjectNameLength)
		}
		return "ManageBac"

	case strings.Contains(domain, "ibdocuments.com"):
		return "IB Documents"

	case strings.Contains(domain, "stackoverflow.com"):
		return "Stack Overflow"

	case strings.Contains(domain, "wikipedia.org"):
		if match := wikipediaTopicRe.FindStringSubmatch(rawURL); match != nil {
			topic := strings.ReplaceAll(match[1], "_", " ")
			if len(topic) < maxProjectNameLength {
				return "Wikipedia: " + topic
			}
		}
		return "Wikipedia"

	case strings.Contains(domain, "khanacademy.org"):
		return "Khan Academy"

	case strings.Contains(domain, "coursera.org"):
		if pageTitle != "" && !strings.Contains(pageTitle, "Coursera") {
			return truncate(pageTitle, maxProjectNameLength)
		}
		return "Coursera"
	}

	// 默认使用域名首段的标题化形式
	return titleWords(strings.SplitN(domain, ".", 2)[0])
}

// kognityProject 解析课程平台的课程路径，例如
// /study/app/ibdp-chemistry-2016/... -> "IB Chemistry"。
func kognityProject(rawURL, pageTitle string) string {
	if match := kognityCourseRe.FindStringSubmatch(rawURL); match != nil {
		course := match[1]
		course = strings.ReplaceAll(course, "ibdp-", "ib ")
		course = strings.ReplaceAll(course, "ibmyp-", "ib myp ")
		course = strings.ReplaceAll(course, "-2016", "")
		course = strings.ReplaceAll(course, "-", " ")
		course = titleWords(course)
		return strings.Replace(course, "Ib", "IB", 1)
	}

	// 路径没匹配上时扫描标题里的科目关键词
	if pageTitle != "" {
		lower := strings.ToLower(pageTitle)
		for _, subject := range kognitySubjects {
			if strings.Contains(lower, strings.ToLower(subject)) {
				return "IB " + subject
			}
		}
	}

	return "Kognity"
}

// googleDocsProject 按路径区分文档类型，标题可用时去掉产品后缀。
func googleDocsProject(rawURL, pageTitle string) string {
	type product struct {
		pathSegment string
		suffix      string
		fallback    string
	}

	products := []product{
		{"/document/", " - Google Docs", "Google Docs"},
		{"/presentation/", " - Google Slides", "Google Slides"},
		{"/spreadsheets/", " - Google Sheets", "Google Sheets"},
	}

	for _, p := range products {
		if !strings.Contains(rawURL, p.pathSegment) {
			continue
		}
		if pageTitle != "" && pageTitle != p.fallback {
			name := strings.TrimSpace(strings.ReplaceAll(pageTitle, p.suffix, ""))
			if name != "" && len(name) < maxProjectNameLength {
				return name
			}
		}
		return p.fallback
	}

	return "Google Drive"
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// titleWords 把每个单词首字母大写，其余小写。按符文处理，多字节字符不被拆散。
func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}

// truncate 按符文截断，避免把多字节字符切出非法 UTF-8。
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
