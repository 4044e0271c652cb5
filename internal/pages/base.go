package pages

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

const (
	homeLink      = "a[href='/']:text-is('Cinescope')"
	allMoviesLink = "a[href='/movies']:text-is('Все фильмы')"
)

// BasePage carries the header navigation present on every Cinescope page.
type BasePage struct {
	PageAction

	HomeURL string
}

func NewBasePage(page playwright.Page, homeURL string, opts ...Option) BasePage {
	return BasePage{
		PageAction: newPageAction(page, opts...),
		HomeURL:    HomeURL(homeURL),
	}
}

// URL resolves path against the home URL.
func (b *BasePage) URL(path string) string {
	return b.HomeURL + strings.TrimPrefix(path, "/")
}

func (b *BasePage) GoToHome() error {
	if err := b.Click(homeLink); err != nil {
		return err
	}

	return b.WaitRedirect(b.HomeURL)
}

func (b *BasePage) GoToAllMovies() error {
	if err := b.Click(allMoviesLink); err != nil {
		return err
	}

	return b.WaitRedirect(b.URL("movies"))
}

// HomeURL normalizes a base URL so paths can be appended directly.
func HomeURL(raw string) string {
	if strings.HasSuffix(raw, "/") {
		return raw
	}

	return raw + "/"
}
