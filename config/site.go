package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// Site is the static profile of the portfolio: who owns it, where it lives
// and the bits of content that are not translated.
type Site struct {
	BaseURL       string            `yaml:"base_url"`
	Owner         string            `yaml:"owner"`
	Contact       SiteContact       `yaml:"contact"`
	ResumePath    string            `yaml:"resume_path"`
	Social        []SocialLink      `yaml:"social"`
	ProjectImages map[string]string `yaml:"project_images"`
	Sitemap       SitemapConfig     `yaml:"sitemap"`
	Robots        []RobotsRule      `yaml:"robots"`
}

type SiteContact struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type SitemapConfig struct {
	ChangeFrequency string  `yaml:"change_frequency"`
	DefaultPriority float64 `yaml:"default_priority"`
	LocalePriority  float64 `yaml:"locale_priority"`
}

type RobotsRule struct {
	UserAgent  string   `yaml:"user_agent"`
	Allow      string   `yaml:"allow"`
	Disallow   []string `yaml:"disallow"`
	CrawlDelay int      `yaml:"crawl_delay"`
}

// LoadSite decodes the site profile. An empty path selects the embedded profile.
func LoadSite(path string) (*Site, error) {
	data := defaultSite
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read site profile: %w", err)
		}
		data = raw
	}
	return ParseSite(data)
}

// ParseSite decodes a YAML site profile and fills defaults.
func ParseSite(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("parse site profile: %w", err)
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	if site.BaseURL == "" {
		return nil, fmt.Errorf("parse site profile: base_url is required")
	}
	if site.Sitemap.ChangeFrequency == "" {
		site.Sitemap.ChangeFrequency = "monthly"
	}
	if site.Sitemap.DefaultPriority == 0 {
		site.Sitemap.DefaultPriority = 1.0
	}
	if site.Sitemap.LocalePriority == 0 {
		site.Sitemap.LocalePriority = 0.8
	}
	return &site, nil
}

// ProjectImage returns the public path of a project image, or "" when the key is unknown.
func (s *Site) ProjectImage(key string) string {
	if s == nil || key == "" {
		return ""
	}
	return s.ProjectImages[key]
}
