package domain

import "context"

// Page holds the props of every section of the home page for one locale.
type Page struct {
	Locale        Locale
	Meta          PageMeta
	Alternates    []Alternate
	Hero          HeroSection
	About         AboutSection
	Work          WorkSection
	Contact       ContactSection
	Navigation    NavigationSection
	Footer        FooterSection
	CookieConsent CookieConsentSection
}

type PageMeta struct {
	Title       string
	Description string
	Canonical   string
}

// Alternate is the same page in another locale, used by the language switcher and hreflang links.
type Alternate struct {
	Locale  Locale
	URL     string
	Current bool
}

type HeroSection struct {
	HeroMessages
}

type AboutSection struct {
	AboutMessages
}

type WorkSection struct {
	Title      string
	Featured   string
	NoProjects string
	Projects   []ProjectCard
}

// ProjectCard is a project with its image path resolved.
type ProjectCard struct {
	Project
	Image string
}

type ContactSection struct {
	ContactMessages
	// Endpoint is where the form posts its JSON payload.
	Endpoint string
}

type NavigationSection struct {
	NavigationMessages
	ResumeURL string
}

type FooterSection struct {
	FooterMessages
	Owner  string
	Nav    NavigationMessages
	Social []SocialLink
}

type SocialLink struct {
	Name string
	URL  string
}

type CookieConsentSection struct {
	CookieConsentMessages
	CookieName    string
	ExpiresInDays int
}

// PageUsecase assembles section props for a resolved locale.
type PageUsecase interface {
	Compose(ctx context.Context, locale Locale) (*Page, error)
}
