package pages

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ozontech/allure-go/pkg/allure"
	"github.com/playwright-community/playwright-go"
)

const (
	defaultWait    = 10 * time.Second
	validationWait = 5 * time.Second
	popupWait      = 2 * time.Second
)

// Attacher receives screenshots. provider.T from allure-go satisfies it.
type Attacher interface {
	WithNewAttachment(name string, mimeType allure.MimeType, content []byte)
}

// PageAction holds the element-level operations every page object shares.
type PageAction struct {
	Page playwright.Page

	expect   playwright.PlaywrightAssertions
	attacher Attacher
}

type Option func(*PageAction)

// WithAttacher makes Screenshot attach its PNG to the running report.
func WithAttacher(a Attacher) Option {
	return func(p *PageAction) {
		p.attacher = a
	}
}

func newPageAction(page playwright.Page, opts ...Option) PageAction {
	p := PageAction{
		Page:   page,
		expect: playwright.NewPlaywrightAssertions(ms(defaultWait)),
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

func (p *PageAction) Open(url string) error {
	if _, err := p.Page.Goto(url); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	return nil
}

func (p *PageAction) Fill(selector, text string) error {
	if err := p.Page.Locator(selector).Fill(text); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}

	return nil
}

func (p *PageAction) Click(selector string) error {
	if err := p.Page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}

	return nil
}

func (p *PageAction) ClearField(selector string) error {
	return p.Fill(selector, "")
}

// WaitRedirect waits for the page to reach url and checks it landed exactly
// there.
func (p *PageAction) WaitRedirect(url string) error {
	if err := p.WaitForURL(url); err != nil {
		return err
	}

	if current := p.Page.URL(); current != url {
		return fmt.Errorf("expected redirect to %s, got %s", url, current)
	}

	return nil
}

func (p *PageAction) WaitForURL(url string) error {
	err := p.Page.WaitForURL(url, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(ms(defaultWait)),
	})
	if err != nil {
		return fmt.Errorf("wait for url %s: %w", url, err)
	}

	return nil
}

func (p *PageAction) AssertURLContains(path string) error {
	if current := p.Page.URL(); !strings.Contains(current, path) {
		return fmt.Errorf("url %s does not contain %s", current, path)
	}

	return nil
}

func (p *PageAction) AssertURLNotContains(path string) error {
	if current := p.Page.URL(); strings.Contains(current, path) {
		return fmt.Errorf("url %s contains %s", current, path)
	}

	return nil
}

func (p *PageAction) Text(selector string) (string, error) {
	text, err := p.Page.Locator(selector).TextContent()
	if err != nil {
		return "", fmt.Errorf("text of %s: %w", selector, err)
	}

	return text, nil
}

func (p *PageAction) IsVisible(selector string) bool {
	visible, err := p.Page.Locator(selector).IsVisible()
	return err == nil && visible
}

func (p *PageAction) IsTextPresent(text string) bool {
	return p.IsVisible("text=" + text)
}

func (p *PageAction) WaitForLoad() error {
	err := p.Page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if err != nil {
		return fmt.Errorf("wait for network idle: %w", err)
	}

	return nil
}

func (p *PageAction) WaitForElement(selector string, state *playwright.WaitForSelectorState) error {
	if state == nil {
		state = playwright.WaitForSelectorStateVisible
	}

	err := p.Page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(ms(defaultWait)),
	})
	if err != nil {
		return fmt.Errorf("wait for %s to be %s: %w", selector, *state, err)
	}

	return nil
}

func (p *PageAction) ExpectVisible(selector string) error {
	return p.expect.Locator(p.Page.Locator(selector)).ToBeVisible()
}

func (p *PageAction) ExpectHidden(selector string) error {
	return p.expect.Locator(p.Page.Locator(selector)).ToBeHidden()
}

func (p *PageAction) WaitForText(text string) error {
	err := p.Page.GetByText(text).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(defaultWait)),
	})
	if err != nil {
		return fmt.Errorf("wait for text %q: %w", text, err)
	}

	return nil
}

func (p *PageAction) ExpectText(text string) error {
	return p.expect.Locator(p.Page.GetByText(text).First()).ToBeVisible()
}

// ValidationMessage returns the error hint rendered right after the field,
// or "" when there is none.
func (p *PageAction) ValidationMessage(selector string) string {
	hint := p.Page.Locator(ValidationSelector(selector))
	if visible, err := hint.IsVisible(); err != nil || !visible {
		return ""
	}

	text, err := hint.TextContent()
	if err != nil {
		return ""
	}

	return text
}

// AssertValidationMessage checks the field has a visible hint containing
// expected. An empty expected only checks visibility.
func (p *PageAction) AssertValidationMessage(selector, expected string) error {
	hint := p.Page.Locator(ValidationSelector(selector))

	// the hint may already be there, so a timeout here is not fatal
	_ = hint.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(validationWait)),
	})

	if !p.IsVisible(ValidationSelector(selector)) {
		return fmt.Errorf("no validation message for %s", selector)
	}

	if expected == "" {
		return nil
	}

	actual, err := hint.TextContent()
	if err != nil {
		return fmt.Errorf("read validation message for %s: %w", selector, err)
	}

	if !strings.Contains(actual, expected) {
		return fmt.Errorf("validation message for %s: expected %q, got %q", selector, expected, actual)
	}

	return nil
}

// PopupAppearsAndDisappears waits for a toast with text to show up and then
// go away.
func (p *PageAction) PopupAppearsAndDisappears(text string) error {
	toast := p.Page.GetByText(text).First()

	err := toast.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(defaultWait)),
	})
	if err != nil {
		return fmt.Errorf("notification %q did not appear: %w", text, err)
	}

	err = toast.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(ms(defaultWait)),
	})
	if err != nil {
		return fmt.Errorf("notification %q did not disappear: %w", text, err)
	}

	return nil
}

// PopupShown only waits for the toast to appear.
func (p *PageAction) PopupShown(text string) error {
	toast := p.Page.GetByText(text, playwright.PageGetByTextOptions{Exact: playwright.Bool(false)})

	err := toast.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(popupWait)),
	})
	if err != nil {
		return fmt.Errorf("notification %q did not appear: %w", text, err)
	}

	return nil
}

// Screenshot captures the full page and attaches it when an Attacher is set.
func (p *PageAction) Screenshot(name string) ([]byte, error) {
	png, err := p.Page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot: %w", err)
	}

	if p.attacher != nil {
		p.attacher.WithNewAttachment(ScreenshotName(name), allure.Png, png)
	}

	return png, nil
}

func (p *PageAction) count(selector string) (int, error) {
	n, err := p.Page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", selector, err)
	}

	return n, nil
}

var errNoElements = errors.New("no matching elements")

// ValidationSelector addresses the hint element rendered after a form field.
func ValidationSelector(field string) string {
	return field + " + .text-red-500"
}

func ScreenshotName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Screenshot"
	}

	return name
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}
