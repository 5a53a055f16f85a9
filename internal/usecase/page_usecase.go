package usecase

import (
	"context"
	"fmt"

	"portfolio-web/config"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"
)

const (
	ContactEndpoint          = "/api/send"
	CookieConsentName        = "portfolio-cookie-consent"
	CookieConsentExpiresDays = 150
)

// MessageLoader is the part of the message store the composer needs.
type MessageLoader interface {
	Load(ctx context.Context, locale domain.Locale) (*domain.Dictionary, error)
}

type pageUsecase struct {
	messages MessageLoader
	resolver *routing.Resolver
	site     *config.Site
}

// NewPageUsecase creates the page composer
func NewPageUsecase(messages MessageLoader, resolver *routing.Resolver, site *config.Site) domain.PageUsecase {
	return &pageUsecase{
		messages: messages,
		resolver: resolver,
		site:     site,
	}
}

// Compose loads the locale's messages and copies each namespace into its section props.
func (uc *pageUsecase) Compose(ctx context.Context, locale domain.Locale) (*domain.Page, error) {
	dict, err := uc.messages.Load(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	// A whole namespace missing means a broken message file, not a content gap
	if err := dict.RequireNamespaces(); err != nil {
		return nil, fmt.Errorf("compose %s page: %w", locale, err)
	}

	alternates := uc.alternates(locale)
	canonical := ""
	for _, a := range alternates {
		if a.Current {
			canonical = a.URL
		}
	}

	nav := *dict.Navigation

	page := &domain.Page{
		Locale: locale,
		Meta: domain.PageMeta{
			Title:       uc.site.Owner + " | " + dict.Hero.Title,
			Description: dict.Hero.Description,
			Canonical:   canonical,
		},
		Alternates: alternates,
		Hero:       domain.HeroSection{HeroMessages: *dict.Hero},
		About:      domain.AboutSection{AboutMessages: *dict.About},
		Work: domain.WorkSection{
			Title:      dict.Work.Title,
			Featured:   dict.Work.Featured,
			NoProjects: dict.Work.NoProjects,
			Projects:   uc.projectCards(dict.Work.Projects),
		},
		Contact: domain.ContactSection{
			ContactMessages: *dict.Contact,
			Endpoint:        ContactEndpoint,
		},
		Navigation: domain.NavigationSection{
			NavigationMessages: nav,
			ResumeURL:          uc.site.ResumePath,
		},
		Footer: domain.FooterSection{
			FooterMessages: *dict.Footer,
			Owner:          uc.site.Owner,
			Nav:            nav,
			Social:         uc.social(),
		},
		CookieConsent: domain.CookieConsentSection{
			CookieConsentMessages: *dict.CookieConsent,
			CookieName:            CookieConsentName,
			ExpiresInDays:         CookieConsentExpiresDays,
		},
	}
	return page, nil
}

func (uc *pageUsecase) alternates(current domain.Locale) []domain.Alternate {
	locales := uc.resolver.Registry().Locales()
	out := make([]domain.Alternate, 0, len(locales))
	for _, l := range locales {
		out = append(out, domain.Alternate{
			Locale:  l,
			URL:     uc.site.BaseURL + uc.resolver.LocalizedPath(l, "/"),
			Current: l == current,
		})
	}
	return out
}

func (uc *pageUsecase) projectCards(projects []domain.Project) []domain.ProjectCard {
	cards := make([]domain.ProjectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, domain.ProjectCard{
			Project: p,
			Image:   uc.site.ProjectImage(p.ImageKey),
		})
	}
	return cards
}

func (uc *pageUsecase) social() []domain.SocialLink {
	links := make([]domain.SocialLink, 0, len(uc.site.Social))
	for _, s := range uc.site.Social {
		links = append(links, domain.SocialLink{Name: s.Name, URL: s.URL})
	}
	return links
}
