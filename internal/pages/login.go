package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

const (
	MsgLoggedIn       = "Вы вошли в аккаунт"
	MsgBadCredentials = "Неверная почта или пароль"
)

const (
	loginEmailInput    = "input[name='email']"
	loginPasswordInput = "input[name='password']"
	loginSubmit        = "button[type='submit']"
	loginRegisterLink  = "a[href='/register']:text-is('Зарегистрироваться')"
	validationHints    = ".text-red-500.text-sm.mt-1"
)

type LoginPage struct {
	BasePage
}

func NewLoginPage(page playwright.Page, homeURL string, opts ...Option) *LoginPage {
	return &LoginPage{BasePage: NewBasePage(page, homeURL, opts...)}
}

func (l *LoginPage) PageURL() string {
	return l.URL("login")
}

func (l *LoginPage) Open() error {
	if err := l.PageAction.Open(l.PageURL()); err != nil {
		return err
	}

	return l.WaitForLoad()
}

// Submit fills the form and clicks the button without waiting for a result.
func (l *LoginPage) Submit(email, password string) error {
	if err := l.Fill(loginPasswordInput, password); err != nil {
		return err
	}

	if err := l.Fill(loginEmailInput, email); err != nil {
		return err
	}

	return l.Click(loginSubmit)
}

// Login submits the form and waits for the success notification.
func (l *LoginPage) Login(email, password string) error {
	if err := l.Submit(email, password); err != nil {
		return err
	}

	return l.WaitForText(MsgLoggedIn)
}

func (l *LoginPage) GoToRegister() error {
	if err := l.Click(loginRegisterLink); err != nil {
		return err
	}

	return l.WaitRedirect(l.URL("register"))
}

func (l *LoginPage) AssertRedirectedHome() error {
	return l.WaitRedirect(l.HomeURL)
}

func (l *LoginPage) AssertStayOnLoginPage() error {
	return l.AssertURLContains("/login")
}

func (l *LoginPage) AssertLoggedInPopup() error {
	return l.PopupAppearsAndDisappears(MsgLoggedIn)
}

func (l *LoginPage) AssertErrorPopup() error {
	return l.PopupShown(MsgBadCredentials)
}

func (l *LoginPage) AssertEmailValidation(expected string) error {
	return l.AssertValidationMessage(loginEmailInput, expected)
}

func (l *LoginPage) AssertPasswordValidation(expected string) error {
	return l.AssertValidationMessage(loginPasswordInput, expected)
}

func (l *LoginPage) EmailValidationText() string {
	return l.ValidationMessage(loginEmailInput)
}

func (l *LoginPage) PasswordValidationText() string {
	return l.ValidationMessage(loginPasswordInput)
}

// AssertValidationShown checks at least one field hint is on the page.
func (l *LoginPage) AssertValidationShown() error {
	n, err := l.count(validationHints)
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("validation messages: %w", errNoElements)
	}

	return nil
}
