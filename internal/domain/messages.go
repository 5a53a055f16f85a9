package domain

import (
	"errors"
	"fmt"
)

// Namespace names as they appear at the top level of a message file.
const (
	NamespaceHero          = "Hero"
	NamespaceAbout         = "About"
	NamespaceWork          = "Work"
	NamespaceContact       = "Contact"
	NamespaceNavigation    = "Navigation"
	NamespaceFooter        = "Footer"
	NamespaceCookieConsent = "CookieConsent"
)

// ErrMissingNamespace marks a structurally broken message file.
var ErrMissingNamespace = errors.New("message namespace missing")

// Dictionary is the decoded message file of one locale.
// A nil namespace means the file does not contain it at all.
type Dictionary struct {
	Hero          *HeroMessages          `json:"Hero" validate:"required"`
	About         *AboutMessages         `json:"About" validate:"required"`
	Work          *WorkMessages          `json:"Work" validate:"required"`
	Contact       *ContactMessages       `json:"Contact" validate:"required"`
	Navigation    *NavigationMessages    `json:"Navigation" validate:"required"`
	Footer        *FooterMessages        `json:"Footer" validate:"required"`
	CookieConsent *CookieConsentMessages `json:"CookieConsent" validate:"required"`
}

// RequireNamespaces fails on the first namespace that is absent.
func (d *Dictionary) RequireNamespaces() error {
	if d == nil {
		return fmt.Errorf("%w: dictionary is empty", ErrMissingNamespace)
	}
	checks := []struct {
		name    string
		present bool
	}{
		{NamespaceHero, d.Hero != nil},
		{NamespaceAbout, d.About != nil},
		{NamespaceWork, d.Work != nil},
		{NamespaceContact, d.Contact != nil},
		{NamespaceNavigation, d.Navigation != nil},
		{NamespaceFooter, d.Footer != nil},
		{NamespaceCookieConsent, d.CookieConsent != nil},
	}
	for _, c := range checks {
		if !c.present {
			return fmt.Errorf("%w: %s", ErrMissingNamespace, c.name)
		}
	}
	return nil
}

type HeroMessages struct {
	Greeting    string `json:"greeting" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle" validate:"required"`
	Description string `json:"description" validate:"required"`
	CTAText     string `json:"ctaText" validate:"required"`
	CTA2Text    string `json:"cta2Text" validate:"required"`
}

type AboutMessages struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Technologies  []string `json:"technologies" validate:"required,min=1"`
	TechListIntro string   `json:"tech_list_intro" validate:"required"`
}

type WorkMessages struct {
	Title      string    `json:"title" validate:"required"`
	Featured   string    `json:"featured" validate:"required"`
	NoProjects string    `json:"no_projects" validate:"required"`
	Projects   []Project `json:"projects" validate:"dive"`
}

type Project struct {
	ID           string       `json:"id" validate:"required"`
	Title        string       `json:"title" validate:"required"`
	Description  string       `json:"description" validate:"required"`
	Technologies []string     `json:"technologies"`
	Links        ProjectLinks `json:"links"`
	ImageKey     string       `json:"imageKey,omitempty"`
	Featured     bool         `json:"featured,omitempty"`
}

type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
	Live   string `json:"live,omitempty"`
	Demo   string `json:"demo,omitempty"`
}

type ContactMessages struct {
	Title              string             `json:"title" validate:"required"`
	Description        string             `json:"description" validate:"required"`
	Name               string             `json:"name" validate:"required"`
	NamePlaceholder    string             `json:"name_placeholder" validate:"required"`
	Email              string             `json:"email" validate:"required"`
	EmailPlaceholder   string             `json:"email_placeholder" validate:"required"`
	Message            string             `json:"message" validate:"required"`
	MessagePlaceholder string             `json:"message_placeholder" validate:"required"`
	SendButton         string             `json:"send_button" validate:"required"`
	SendingButton      string             `json:"sending_button" validate:"required"`
	SentButton         string             `json:"sent_button" validate:"required"`
	ToastSuccess       string             `json:"toast_success" validate:"required"`
	ToastError         string             `json:"toast_error" validate:"required"`
	Validation         ValidationMessages `json:"validation"`
}

type ValidationMessages struct {
	NameRequired    string `json:"name_required" validate:"required"`
	EmailInvalid    string `json:"email_invalid" validate:"required"`
	MessageRequired string `json:"message_required" validate:"required"`
}

type NavigationMessages struct {
	About          string `json:"about" validate:"required"`
	Work           string `json:"work" validate:"required"`
	Contact        string `json:"contact" validate:"required"`
	Resume         string `json:"resume" validate:"required"`
	DownloadResume string `json:"download_resume" validate:"required"`
}

type FooterMessages struct {
	Description    string `json:"description" validate:"required"`
	Navigation     string `json:"navigation" validate:"required"`
	Connect        string `json:"connect" validate:"required"`
	RightsReserved string `json:"rights_reserved" validate:"required"`
	BuiltWith      string `json:"built_with" validate:"required"`
	BackToTop      string `json:"back_to_top" validate:"required"`
}

type CookieConsentMessages struct {
	Message    string `json:"message" validate:"required"`
	ButtonText string `json:"button_text" validate:"required"`
}
