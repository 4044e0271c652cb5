package pages

import (
	"fmt"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	MsgReviewCreated = "Отзыв успешно создан"
	MsgReviewDeleted = "Отзыв успешно удален"

	DefaultReviewText = "Тестовый отзыв"
)

const (
	detailsButtonText  = "Подробнее"
	reviewTextarea     = "textarea"
	reviewSubmit       = "button:has-text('Отправить')"
	reviewMenuButton   = ".lucide-more-vertical"
	reviewDeleteOption = "[role='menuitem']:has-text('Удалить')"
	reviewItems        = "div.p-6.pt-0"
	reviewTexts        = "div.p-6.pt-0 p"
	ratingControls     = "select, [role='combobox']"
)

type ReviewPage struct {
	BasePage

	now func() time.Time
}

func NewReviewPage(page playwright.Page, homeURL string, opts ...Option) *ReviewPage {
	return &ReviewPage{BasePage: NewBasePage(page, homeURL, opts...), now: time.Now}
}

// GoToMovieDetails clicks the first visible "Подробнее" button on the current
// listing and waits for the movie page.
func (r *ReviewPage) GoToMovieDetails() error {
	if err := r.WaitForLoad(); err != nil {
		return err
	}

	buttons := r.Page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{Name: detailsButtonText})
	n, err := buttons.Count()
	if err != nil || n == 0 {
		buttons = r.Page.Locator("text=" + detailsButtonText)
		if n, err = buttons.Count(); err != nil {
			return fmt.Errorf("count details buttons: %w", err)
		}
	}

	if n == 0 {
		return fmt.Errorf("%q buttons: %w", detailsButtonText, errNoElements)
	}

	target := buttons.First()
	for i := range n {
		if visible, _ := buttons.Nth(i).IsVisible(); visible {
			target = buttons.Nth(i)
			break
		}
	}

	if err := target.Click(); err != nil {
		return fmt.Errorf("click %q: %w", detailsButtonText, err)
	}

	if err := r.WaitForURL("**/movies/**"); err != nil {
		return err
	}

	if err := r.WaitForLoad(); err != nil {
		return err
	}

	return r.AssertURLContains("/movies/")
}

func (r *ReviewPage) CreateReview(text string, rating int) error {
	err := r.Page.Locator(reviewTextarea).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(validationWait)),
	})
	if err != nil {
		return fmt.Errorf("review form: %w", err)
	}

	if err := r.Fill(reviewTextarea, text); err != nil {
		return err
	}

	if err := r.selectRating(rating); err != nil {
		return err
	}

	if err := r.ExpectVisible(reviewSubmit); err != nil {
		return err
	}

	if err := r.Click(reviewSubmit); err != nil {
		return err
	}

	return r.WaitForLoad()
}

// CreateUniqueReview suffixes base with the current unix time and returns the
// text it posted.
func (r *ReviewPage) CreateUniqueReview(base string, rating int) (string, error) {
	text := UniqueReviewText(base, r.now())

	return text, r.CreateReview(text, rating)
}

func (r *ReviewPage) selectRating(rating int) error {
	value := strconv.Itoa(rating)

	_ = r.Page.Locator(ratingControls).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(validationWait)),
	})

	selects := r.Page.Locator("select")
	if n, _ := selects.Count(); n > 0 {
		if _, err := selects.First().SelectOption(playwright.SelectOptionValues{Values: &[]string{value}}); err != nil {
			return fmt.Errorf("select rating %d: %w", rating, err)
		}
		return nil
	}

	option := r.Page.GetByRole(*playwright.AriaRoleOption, playwright.PageGetByRoleOptions{Name: value})
	if n, _ := option.Count(); n > 0 {
		if err := option.First().Click(); err != nil {
			return fmt.Errorf("pick rating %d: %w", rating, err)
		}
	}

	return nil
}

// DeleteReview opens the menu of the review at index and picks "Удалить".
// An index past the end falls back to the first review.
func (r *ReviewPage) DeleteReview(index int) error {
	menus := r.Page.Locator(reviewMenuButton)

	n, err := menus.Count()
	if err != nil {
		return fmt.Errorf("count review menus: %w", err)
	}

	if n == 0 {
		return fmt.Errorf("review menus: %w", errNoElements)
	}

	if index < 0 || index >= n {
		index = 0
	}

	menu := menus.Nth(index)
	if visible, _ := menu.IsVisible(); !visible {
		return fmt.Errorf("review menu %d is not visible", index)
	}

	if err := menu.Click(); err != nil {
		return fmt.Errorf("open review menu %d: %w", index, err)
	}

	option := r.Page.Locator(reviewDeleteOption).First()
	if err := option.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(validationWait)),
	}); err != nil {
		return fmt.Errorf("delete option: %w", err)
	}

	return option.Click()
}

func (r *ReviewPage) AssertCreated() error {
	return r.PopupShown(MsgReviewCreated)
}

func (r *ReviewPage) AssertDeleted() error {
	return r.PopupShown(MsgReviewDeleted)
}

// HasReview reports whether a review with text becomes visible within 5s.
func (r *ReviewPage) HasReview(text string) bool {
	review := r.Page.Locator(reviewTexts, playwright.PageLocatorOptions{HasText: text})

	err := review.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(ms(validationWait)),
	})

	return err == nil
}

func (r *ReviewPage) FormVisible() bool {
	return r.IsVisible(reviewTextarea) && r.IsVisible(reviewSubmit)
}

func (r *ReviewPage) AssertFormVisible() error {
	if !r.IsVisible(reviewTextarea) {
		return fmt.Errorf("review textarea is not visible")
	}

	if !r.IsVisible(reviewSubmit) {
		return fmt.Errorf("review submit button is not visible")
	}

	return nil
}

func (r *ReviewPage) Count() (int, error) {
	return r.count(reviewItems)
}

func (r *ReviewPage) FirstReviewText() string {
	text, err := r.Page.Locator(reviewTexts).First().TextContent()
	if err != nil {
		return ""
	}

	return text
}

func UniqueReviewText(base string, now time.Time) string {
	if base == "" {
		base = DefaultReviewText
	}

	return fmt.Sprintf("%s _%d", base, now.Unix())
}
