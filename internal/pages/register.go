package pages

import "github.com/playwright-community/playwright-go"

const MsgConfirmEmail = "Подтвердите свою почту"

const (
	registerFullNameInput = "input[name='fullName']"
	registerEmailInput    = "input[name='email']"
	registerPasswordInput = "input[name='password']"
	registerRepeatInput   = "input[name='passwordRepeat']"
	registerSubmit        = "button[type='submit']"
	registerSignInLink    = "a[href='/login']:text-is('Войти')"
)

type RegisterPage struct {
	BasePage
}

func NewRegisterPage(page playwright.Page, homeURL string, opts ...Option) *RegisterPage {
	return &RegisterPage{BasePage: NewBasePage(page, homeURL, opts...)}
}

func (r *RegisterPage) PageURL() string {
	return r.URL("register")
}

func (r *RegisterPage) Open() error {
	return r.PageAction.Open(r.PageURL())
}

func (r *RegisterPage) Register(fullName, email, password, confirm string) error {
	fields := []struct{ selector, value string }{
		{registerFullNameInput, fullName},
		{registerEmailInput, email},
		{registerPasswordInput, password},
		{registerRepeatInput, confirm},
	}

	for _, f := range fields {
		if err := r.Fill(f.selector, f.value); err != nil {
			return err
		}
	}

	return r.Click(registerSubmit)
}

func (r *RegisterPage) GoToLogin() error {
	if err := r.Click(registerSignInLink); err != nil {
		return err
	}

	return r.WaitRedirect(r.URL("login"))
}

func (r *RegisterPage) AssertRedirectedToLogin() error {
	return r.WaitRedirect(r.URL("login"))
}

func (r *RegisterPage) AssertConfirmEmailPopup() error {
	return r.PopupAppearsAndDisappears(MsgConfirmEmail)
}
