package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// viper 配置键
const (
	keyStudyApps               = "study_apps"
	keyProcrastinationApps     = "procrastination_apps"
	keyStudyWebsites           = "study_websites"
	keyProcrastinationWebsites = "procrastination_websites"
	keyBrowsers                = "browsers"
	keyQuotes                  = "quotes"
)

// TrackingConfig 是注入分类器与标注器的不可变名单配置。
// 名单均来自用户可编辑的 YAML 文件，首次运行时写出默认值。
type TrackingConfig struct {
	StudyApps               []string
	ProcrastinationApps     []string
	StudyWebsites           []string
	ProcrastinationWebsites []string
	Browsers                []string
	Quotes                  []string
}

// LoadTracking 读取（必要时先创建）名单配置文件。
func LoadTracking(configPath string) (*TrackingConfig, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setTrackingDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read tracking config: %w", err)
		}
		// 首次运行：把默认名单写出，方便用户按自己的学习习惯修改
		if err := v.WriteConfig(); err != nil {
			return nil, fmt.Errorf("write default tracking config: %w", err)
		}
	}

	return &TrackingConfig{
		StudyApps:               v.GetStringSlice(keyStudyApps),
		ProcrastinationApps:     v.GetStringSlice(keyProcrastinationApps),
		StudyWebsites:           v.GetStringSlice(keyStudyWebsites),
		ProcrastinationWebsites: v.GetStringSlice(keyProcrastinationWebsites),
		Browsers:                v.GetStringSlice(keyBrowsers),
		Quotes:                  v.GetStringSlice(keyQuotes),
	}, nil
}

func setTrackingDefaults(v *viper.Viper) {
	v.SetDefault(keyStudyApps, []string{
		"Obsidian",
		"Notes",
		"Google Chrome",
		"Safari",
		"Firefox",
		"Arc",
		"Comet",
		"Microsoft Word",
		"Microsoft Excel",
		"Microsoft PowerPoint",
		"Pages",
		"Numbers",
		"Keynote",
		"Preview",
		"Skim",
		"PyCharm",
		"Xcode",
		"Terminal",
		"iTerm",
		"iTerm2",
		"Notion",
		"Bear",
		"Evernote",
		"GoodNotes",
		"Notability",
	})
	v.SetDefault(keyProcrastinationApps, []string{
		"Code",
	})
	v.SetDefault(keyStudyWebsites, []string{
		"docs.google.com/document",
		"docs.google.com/presentation",
		"docs.google.com/spreadsheets",
		"drive.google.com",
		"classroom.google.com",
		"overleaf.com",
		"notion.so",
		"github.com",
		"stackoverflow.com",
		"scholar.google.com",
		"wikipedia.org",
		"coursera.org",
		"khanacademy.org",
		"quizlet.com",
		"canvas.instructure.com",
		"moodle",
		"blackboard",
		"ibdocuments.com",
		"ibo.org",
		"managebac.com",
		"app.kognity.com",
		"kognity.com",
	})
	v.SetDefault(keyProcrastinationWebsites, []string{
		"youtube.com",
		"reddit.com",
		"twitter.com",
		"instagram.com",
		"tiktok.com",
		"facebook.com",
		"netflix.com",
		"twitch.tv",
		"discord.com",
	})
	v.SetDefault(keyBrowsers, []string{
		"Google Chrome",
		"Safari",
		"Firefox",
		"Arc",
		"Comet",
	})
	v.SetDefault(keyQuotes, []string{
		"Theory of Knowledge: Is this really studying, or are you just procrastinating philosophically?",
		"CAS Hours: 0. Study Hours: Also approaching 0. Coincidence?",
		"Extended Essay: The only essay that's truly extended... indefinitely.",
		"Your study time is inversely proportional to your exam proximity.",
		"IB Learner Profile: Balanced? Let's check your study-to-Netflix ratio first.",
		"Remember: 45 points requires slightly more than 45 minutes of study.",
		"Internal Assessments: Because external stress wasn't enough.",
		"Sleep is IB Optional.",
	})
}
