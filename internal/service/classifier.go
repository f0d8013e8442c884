package service

import (
	"net/url"
	"strings"

	"github.com/studytimer/internal/config"
)

// Category 表示一次采样的归类结果。
type Category int

const (
	// CategoryNone 表示不参与统计的活动
	CategoryNone Category = iota
	// CategoryStudy 表示学习活动
	CategoryStudy
	// CategoryProcrastination 表示摸鱼活动
	CategoryProcrastination
)

// String 返回类别的可读名称。
func (c Category) String() string {
	switch c {
	case CategoryStudy:
		return "study"
	case CategoryProcrastination:
		return "procrastination"
	default:
		return "none"
	}
}

// WebsiteCategory 表示网址归类结果。
type WebsiteCategory string

const (
	WebsiteStudy           WebsiteCategory = "study"
	WebsiteProcrastination WebsiteCategory = "procrastination"
	WebsiteUnknown         WebsiteCategory = "unknown"
)

// Classifier 根据注入的名单把采样映射为类别，纯函数、无副作用。
// 判定顺序：摸鱼应用名单无条件优先，其次学习应用名单，
// 学习名单中的浏览器在拿到网址时再按网址细分。
type Classifier struct {
	studyApps               map[string]struct{}
	procrastinationApps     map[string]struct{}
	browsers                map[string]struct{}
	studyWebsites           []string
	procrastinationWebsites []string
}

// NewClassifier 基于名单配置构造分类器。
func NewClassifier(cfg *config.TrackingConfig) *Classifier {
	return &Classifier{
		studyApps:               toSet(cfg.StudyApps),
		procrastinationApps:     toSet(cfg.ProcrastinationApps),
		browsers:                toSet(cfg.Browsers),
		studyWebsites:           cfg.StudyWebsites,
		procrastinationWebsites: cfg.ProcrastinationWebsites,
	}
}

// Classify 把应用名与可选网址映射为类别。
// 摸鱼应用名单的命中会短路后续所有判断，即使窗口内容是学习网站；
// 名单之外的应用一律返回 CategoryNone，绝不默认算作学习。
func (c *Classifier) Classify(appName, rawURL string) Category {
	if _, ok := c.procrastinationApps[appName]; ok {
		return CategoryProcrastination
	}

	if _, ok := c.studyApps[appName]; !ok {
		return CategoryNone
	}

	if c.IsBrowser(appName) && rawURL != "" {
		switch c.CategorizeWebsite(rawURL) {
		case WebsiteStudy:
			return CategoryStudy
		case WebsiteProcrastination:
			return CategoryProcrastination
		default:
			return CategoryNone
		}
	}

	// 非浏览器学习应用，或浏览器拿不到网址时按普通学习应用处理
	return CategoryStudy
}

// IsBrowser 判断应用是否为受支持的浏览器。
func (c *Classifier) IsBrowser(appName string) bool {
	_, ok := c.browsers[appName]
	return ok
}

// CategorizeWebsite 按子串匹配归类网址：先查学习名单再查摸鱼名单，先中先得。
// 学习名单同时匹配域名与完整网址，因此支持带路径的条目
// （如 docs.google.com/presentation）；摸鱼名单只匹配域名。
func (c *Classifier) CategorizeWebsite(rawURL string) WebsiteCategory {
	if rawURL == "" {
		return WebsiteUnknown
	}

	domain := extractDomain(rawURL)
	if domain == "" {
		return WebsiteUnknown
	}

	for _, site := range c.studyWebsites {
		if strings.Contains(domain, site) || strings.Contains(rawURL, site) {
			return WebsiteStudy
		}
	}

	for _, site := range c.procrastinationWebsites {
		if strings.Contains(domain, site) {
			return WebsiteProcrastination
		}
	}

	return WebsiteUnknown
}

// extractDomain 提取网址的主机名，解析失败返回空串。
// 采样器偶尔会给出缺少 scheme 的网址，此时补一个再解析。
func extractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if parsed.Host == "" && !strings.Contains(rawURL, "://") {
		parsed, err = url.Parse("https://" + rawURL)
		if err != nil {
			return ""
		}
	}
	return parsed.Host
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
