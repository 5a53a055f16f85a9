package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"portfolio-web/config"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"
	"portfolio-web/internal/usecase"
	"portfolio-web/pkg/apperror"
	"portfolio-web/pkg/email"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock email provider
type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendContactEmail(ctx context.Context, data email.ContactEmailData) (*email.Receipt, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*email.Receipt), args.Error(1)
}

func (m *MockSender) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockSender) Provider() string {
	return "mock"
}

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %T", err)
	return appErr.Code
}

func TestContactRelay(t *testing.T) {
	meta := domain.ContactMeta{IP: "203.0.113.7", RequestID: "req-1"}

	t.Run("Should reject a request without message and never call the provider", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, nil)

		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com"}, meta)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		sender.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should treat whitespace-only fields as missing", func(t *testing.T) {
		sender := new(MockSender)
		uc := usecase.NewContactUsecase(sender, nil)

		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{Name: "  ", Email: "jane@example.com", Message: "Hello"}, meta)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		sender.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should pass the provider payload through on success", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("SendContactEmail", mock.Anything, email.ContactEmailData{
			SenderName: "Jane", SenderEmail: "jane@example.com", Message: "Hello there",
		}).Return(&email.Receipt{ID: "msg_1", Raw: []byte(`{"id":"msg_1"}`)}, nil).Once()

		uc := usecase.NewContactUsecase(sender, nil)
		receipt, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{
			Name: " Jane ", Email: "jane@example.com", Message: "Hello there\n",
		}, meta)

		require.NoError(t, err)
		assert.Equal(t, "msg_1", receipt.ID)
		assert.JSONEq(t, `{"id":"msg_1"}`, string(receipt.Raw))
		sender.AssertExpectations(t)
	})

	t.Run("Should hide provider errors behind a generic 500", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(true)
		sender.On("SendContactEmail", mock.Anything, mock.Anything).Return(nil, errors.New("resend: 401 key re_secret")).Once()

		uc := usecase.NewContactUsecase(sender, nil)
		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "Hello"}, meta)

		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusInternalServerError, appErr.Code)
		assert.Equal(t, usecase.MsgSendFailed, appErr.Detail)
		assert.NotContains(t, appErr.Message, "re_secret")
		sender.AssertNumberOfCalls(t, "SendContactEmail", 1)
	})

	t.Run("Should answer 503 when no provider is configured", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("IsConfigured").Return(false)

		uc := usecase.NewContactUsecase(sender, nil)
		_, err := uc.SendContactMessage(context.Background(), &domain.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "Hello"}, meta)

		assert.Equal(t, http.StatusServiceUnavailable, appErrCode(t, err))
		assert.ErrorIs(t, err, email.ErrNotConfigured)
		sender.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
	})
}

type stubLoader struct {
	dict *domain.Dictionary
	err  error
}

func (s stubLoader) Load(_ context.Context, _ domain.Locale) (*domain.Dictionary, error) {
	return s.dict, s.err
}

func testDictionary() *domain.Dictionary {
	return &domain.Dictionary{
		Hero:  &domain.HeroMessages{Greeting: "Hi", Title: "Developer", Description: "I build things"},
		About: &domain.AboutMessages{Title: "About", Technologies: []string{"Go"}},
		Work: &domain.WorkMessages{Title: "Work", Projects: []domain.Project{
			{ID: "kta", Title: "KTA", ImageKey: "kta"},
		}},
		Contact:       &domain.ContactMessages{Title: "Contact"},
		Navigation:    &domain.NavigationMessages{About: "About", Work: "Work"},
		Footer:        &domain.FooterMessages{Description: "Footer"},
		CookieConsent: &domain.CookieConsentMessages{Message: "Cookies", ButtonText: "OK"},
	}
}

func TestPageComposer(t *testing.T) {
	registry, err := domain.NewLocaleRegistry(domain.AllLocales(), domain.LocaleEN, domain.PrefixAlways)
	require.NoError(t, err)
	resolver := routing.NewResolver(registry)
	site := &config.Site{
		BaseURL:       "https://example.com",
		Owner:         "Jane Doe",
		ResumePath:    "/static/resume.pdf",
		ProjectImages: map[string]string{"kta": "/static/optimized/kta.jpg"},
		Social:        []config.SocialLink{{Name: "GitHub", URL: "https://github.com/jane"}},
	}

	t.Run("Should map every namespace into its section", func(t *testing.T) {
		uc := usecase.NewPageUsecase(stubLoader{dict: testDictionary()}, resolver, site)

		page, err := uc.Compose(context.Background(), domain.LocaleCS)
		require.NoError(t, err)

		assert.Equal(t, domain.LocaleCS, page.Locale)
		assert.Equal(t, "Jane Doe | Developer", page.Meta.Title)
		assert.Equal(t, "https://example.com/cs", page.Meta.Canonical)
		assert.Equal(t, usecase.ContactEndpoint, page.Contact.Endpoint)
		assert.Equal(t, "/static/resume.pdf", page.Navigation.ResumeURL)

		wantAlternates := []domain.Alternate{
			{Locale: domain.LocaleEN, URL: "https://example.com/en"},
			{Locale: domain.LocaleCS, URL: "https://example.com/cs", Current: true},
			{Locale: domain.LocaleSK, URL: "https://example.com/sk"},
		}
		if diff := cmp.Diff(wantAlternates, page.Alternates); diff != "" {
			t.Errorf("alternates mismatch (-want +got):\n%s", diff)
		}

		wantCards := []domain.ProjectCard{{
			Project: domain.Project{ID: "kta", Title: "KTA", ImageKey: "kta"},
			Image:   "/static/optimized/kta.jpg",
		}}
		if diff := cmp.Diff(wantCards, page.Work.Projects); diff != "" {
			t.Errorf("project cards mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]domain.SocialLink{{Name: "GitHub", URL: "https://github.com/jane"}}, page.Footer.Social); diff != "" {
			t.Errorf("social mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Should copy namespaces instead of sharing them", func(t *testing.T) {
		dict := testDictionary()
		uc := usecase.NewPageUsecase(stubLoader{dict: dict}, resolver, site)

		page, err := uc.Compose(context.Background(), domain.LocaleEN)
		require.NoError(t, err)
		page.Hero.Title = "changed"
		assert.Equal(t, "Developer", dict.Hero.Title)
	})

	t.Run("Should fail when a namespace is missing", func(t *testing.T) {
		dict := testDictionary()
		dict.Footer = nil
		uc := usecase.NewPageUsecase(stubLoader{dict: dict}, resolver, site)

		_, err := uc.Compose(context.Background(), domain.LocaleEN)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingNamespace)
		assert.Contains(t, err.Error(), "Footer")
	})

	t.Run("Should propagate loader errors", func(t *testing.T) {
		uc := usecase.NewPageUsecase(stubLoader{err: errors.New("boom")}, resolver, site)
		_, err := uc.Compose(context.Background(), domain.LocaleEN)
		assert.Error(t, err)
	})
}

func TestHealth(t *testing.T) {
	uc := usecase.NewHealthUsecase("resend", true, map[string]usecase.Pinger{
		"redis":    usecase.PingFunc(func(context.Context) error { return nil }),
		"database": usecase.PingFunc(func(context.Context) error { return errors.New("down") }),
		"skipped":  nil,
	})

	status := uc.Check(context.Background())
	assert.Equal(t, map[string]string{
		"status":   "ok",
		"email":    "resend",
		"redis":    "up",
		"database": "down",
	}, status)
}
