package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/TuranHaqverdiyev/Kredit/internal/gateway"
	"github.com/TuranHaqverdiyev/Kredit/internal/wizard"
)

// Fixed durations for the simulated capture and the result auto-exit.
const (
	kycCaptureSeconds = 3
	resultExitSeconds = 5
)

// Messages for async operations and timers
type opDoneMsg struct{}

type countdownTickMsg struct{}

type kycTickMsg struct{}

type resultTickMsg struct{}

type pollTickMsg struct{}

type pollResultMsg struct {
	result *gateway.LoanResult
	step   wizard.Step
	done   bool
}

// identity screen focus slots
const (
	focusFIN = iota
	focusPhone
)

// AppModel is the top-level model driving the application wizard. It owns
// the state machine and renders one screen per wizard step. Exactly one
// backend call is in flight at a time: Busy disables every control that
// could start another.
//
// While an operation command runs, the goroutine executing it owns the live
// session. The update loop and View read only the view snapshot during that
// window; the snapshot is refreshed once the operation's completion message
// arrives.
type AppModel struct {
	Machine *wizard.Machine
	Fetcher wizard.ResultFetcher

	// Session state as of the last moment no operation was in flight
	view wizard.Session

	PollInterval time.Duration

	// In-flight guard for mutation calls
	Busy bool

	// Identity inputs
	FINInput   textinput.Model
	PhoneInput textinput.Model
	Focus      int

	// OTP entry
	OTPInput  textinput.Model
	Countdown int
	// RequestID of the challenge the countdown belongs to
	SeenChallenge string

	// Personal info screen cursor (0=terms, 1=privacy, 2=submit)
	ConsentCursor int

	// Video KYC capture state
	Recording   bool
	CaptureLeft int

	// Delivery screen state
	DeliveryCursor int
	CardInput      textinput.Model
	AddressInput   textinput.Model

	// Result screen countdown
	ExitIn int

	// Polling state. PollDone marks the step whose milestone has been
	// reached; moving to a different step re-arms the poller.
	Polling  bool
	PollDone bool
	PollStep wizard.Step

	Spinner spinner.Model

	Width  int
	Height int

	ctx context.Context
}

// NewAppModel creates the wizard UI over a machine and a result fetcher.
func NewAppModel(machine *wizard.Machine, fetcher wizard.ResultFetcher, pollInterval time.Duration) AppModel {
	fin := textinput.New()
	fin.Placeholder = "7ABC123"
	fin.CharLimit = 7
	fin.Width = 20
	fin.Focus()

	phone := textinput.New()
	phone.Placeholder = "501234567"
	phone.CharLimit = 9
	phone.Width = 20
	phone.Prompt = "+994 "

	otp := textinput.New()
	otp.Placeholder = "______"
	otp.CharLimit = 6
	otp.Width = 10

	card := textinput.New()
	card.Placeholder = "4169 **** **** ****"
	card.CharLimit = 16
	card.Width = 30

	address := textinput.New()
	address.Placeholder = "Bakı ş, Heydər Əliyev pr. 1"
	address.CharLimit = 120
	address.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	if pollInterval <= 0 {
		pollInterval = wizard.DefaultPollInterval
	}

	return AppModel{
		Machine:      machine,
		Fetcher:      fetcher,
		view:         *machine.Session,
		PollInterval: pollInterval,
		FINInput:     fin,
		PhoneInput:   phone,
		OTPInput:     otp,
		CardInput:    card,
		AddressInput: address,
		Spinner:      s,
		ctx:          context.Background(),
	}
}

// Init initializes the application
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

func countdownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return countdownTickMsg{} })
}

func kycTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return kycTickMsg{} })
}

func resultTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return resultTickMsg{} })
}

func (m AppModel) pollTick() tea.Cmd {
	return tea.Tick(m.PollInterval, func(time.Time) tea.Msg { return pollTickMsg{} })
}

// opCmd runs a machine operation off the update loop and reports back.
// The operation goroutine owns the live session until opDoneMsg arrives;
// nothing else reads it during that window.
func opCmd(op func() error) tea.Cmd {
	return func() tea.Msg {
		_ = op() // outcome lands in the session error string
		return opDoneMsg{}
	}
}

func (m AppModel) pollCmd() tea.Cmd {
	poller := wizard.NewPoller(m.Fetcher, m.view.ApplicationID, m.view.LoanRequest.Amount)
	step := m.view.Step
	ctx := m.ctx
	return func() tea.Msg {
		result, done := poller.Once(ctx, step)
		return pollResultMsg{result: result, step: step, done: done}
	}
}

// shouldPoll reports whether the current step needs the result resource.
func (m AppModel) shouldPoll() bool {
	s := m.view
	if m.PollDone && m.PollStep == s.Step {
		return false
	}
	return s.Step >= wizard.StepOfferReview &&
		s.ApplicationID != "" &&
		s.Credentials.Authenticated()
}

// startPolling kicks off a poll cycle if one is due and none is running.
func (m *AppModel) startPolling() tea.Cmd {
	if m.Polling || !m.shouldPoll() {
		return nil
	}
	m.Polling = true
	return m.pollCmd()
}

// Update handles all messages and routes them to the current step's screen
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	// Refresh the render snapshot only while no operation goroutine can be
	// mutating the live session.
	if !next.Busy {
		next.view = *next.Machine.Session
	}
	return next, cmd
}

func (m AppModel) update(msg tea.Msg) (AppModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Global quit handler
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case countdownTickMsg:
		if m.Countdown > 0 && m.view.Step == wizard.StepOTPVerify {
			m.Countdown--
			if m.Countdown > 0 {
				return m, countdownTick()
			}
		}
		return m, nil

	case kycTickMsg:
		if !m.Recording {
			return m, nil
		}
		m.CaptureLeft--
		if m.CaptureLeft > 0 {
			return m, kycTick()
		}
		m.Recording = false
		m.Machine.CompleteVideoKYC()
		m.view = *m.Machine.Session
		return m, m.startPolling()

	case resultTickMsg:
		m.ExitIn--
		if m.ExitIn <= 0 {
			return m, tea.Quit
		}
		return m, resultTick()

	case pollTickMsg:
		m.Polling = false
		return m, m.startPolling()

	case pollResultMsg:
		m.view.Offer = msg.result
		if !m.Busy {
			m.Machine.Session.Offer = msg.result
		}
		if msg.done {
			m.Polling = false
			m.PollDone = true
			m.PollStep = msg.step
			return m, nil
		}
		// Schedule the next fetch after the fixed interval
		return m, m.pollTick()

	case opDoneMsg:
		m.Busy = false
		m.view = *m.Machine.Session
		return m.afterOperation()
	}

	return m.updateCurrentStep(msg)
}

// afterOperation reacts to a finished backend call: the machine has already
// moved the step (or recorded the error), the UI follows.
func (m AppModel) afterOperation() (AppModel, tea.Cmd) {
	s := m.Machine.Session

	if s.Abandoned {
		return m, tea.Quit
	}

	var cmds []tea.Cmd
	switch s.Step {
	case wizard.StepOTPVerify:
		if s.RequestID != "" && s.RequestID != m.SeenChallenge {
			m.SeenChallenge = s.RequestID
			m.Countdown = s.TTLSeconds
			cmds = append(cmds, countdownTick())
		}
		if !m.OTPInput.Focused() {
			m.OTPInput.Focus()
			cmds = append(cmds, textinput.Blink)
		}
	case wizard.StepOfferReview:
		cmds = append(cmds, m.Spinner.Tick)
		if cmd := m.startPolling(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case wizard.StepDisclosure:
		// Accepting the offer moved past the OFFER_PENDING milestone;
		// resume watching the result through the signing ceremony.
		if cmd := m.startPolling(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case wizard.StepResult:
		m.ExitIn = resultExitSeconds
		cmds = append(cmds, resultTick())
		if cmd := m.startPolling(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// updateCurrentStep routes messages to the active screen handler
func (m AppModel) updateCurrentStep(msg tea.Msg) (AppModel, tea.Cmd) {
	switch m.view.Step {
	case wizard.StepIdentityEntry:
		return m.updateIdentity(msg)
	case wizard.StepOTPVerify:
		return m.updateOTP(msg)
	case wizard.StepPersonalInfo:
		return m.updatePersonalInfo(msg)
	case wizard.StepAmountSelect:
		return m.updateAmount(msg)
	case wizard.StepOfferReview:
		return m.updateOffer(msg)
	case wizard.StepDisclosure:
		return m.updateDisclosure(msg)
	case wizard.StepContractSign:
		return m.updateContract(msg)
	case wizard.StepVideoKYC:
		return m.updateVideoKYC(msg)
	case wizard.StepDeliverySelect:
		return m.updateDelivery(msg)
	case wizard.StepResult:
		return m.updateResult(msg)
	}
	return m, nil
}

func (m AppModel) updateIdentity(msg tea.Msg) (AppModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.Busy {
			return m, nil
		}
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			if m.Focus == focusFIN {
				m.Focus = focusPhone
				m.FINInput.Blur()
				m.PhoneInput.Focus()
			} else {
				m.Focus = focusFIN
				m.PhoneInput.Blur()
				m.FINInput.Focus()
			}
			return m, textinput.Blink

		case "enter":
			s := m.Machine.Session
			s.LoginFIN = wizard.NormalizeFIN(m.FINInput.Value())
			s.PhoneNumber = wizard.NormalizePhone(m.PhoneInput.Value())
			m.Busy = true
			return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
				return m.Machine.SendOTP(m.ctx)
			}))

		case "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.Focus == focusFIN {
		m.FINInput, cmd = m.FINInput.Update(msg)
	} else {
		m.PhoneInput, cmd = m.PhoneInput.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateOTP(msg tea.Msg) (AppModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.Busy {
			return m, nil
		}
		switch keyMsg.String() {
		case "enter":
			code := m.OTPInput.Value()
			m.Busy = true
			return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
				return m.Machine.VerifyOTP(m.ctx, code)
			}))

		case "ctrl+r":
			m.Busy = true
			m.OTPInput.SetValue("")
			return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
				return m.Machine.ResendOTP(m.ctx)
			}))

		case "esc":
			m.Machine.Back()
			m.OTPInput.SetValue("")
			m.Countdown = 0
			m.OTPInput.Blur()
			m.FINInput.Focus()
			m.Focus = focusFIN
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.OTPInput, cmd = m.OTPInput.Update(msg)
	return m, cmd
}

func (m AppModel) updatePersonalInfo(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy {
		return m, nil
	}

	s := m.Machine.Session
	switch keyMsg.String() {
	case "up", "k":
		if m.ConsentCursor > 0 {
			m.ConsentCursor--
		}
	case "down", "j", "tab":
		if m.ConsentCursor < 2 {
			m.ConsentCursor++
		}
	case " ":
		switch m.ConsentCursor {
		case 0:
			s.TermsAccepted = !s.TermsAccepted
		case 1:
			s.PrivacyAccepted = !s.PrivacyAccepted
		}
	case "enter":
		if m.ConsentCursor < 2 {
			m.ConsentCursor++
			return m, nil
		}
		m.Busy = true
		return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
			return m.Machine.SubmitPersonalInfo(m.ctx)
		}))
	}

	return m, nil
}

func (m AppModel) updateAmount(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy {
		return m, nil
	}

	req := &m.Machine.Session.LoanRequest
	switch keyMsg.String() {
	case "left", "h":
		if req.Amount-100 >= wizard.MinAmount {
			req.Amount -= 100
		}
	case "right", "l":
		if req.Amount+100 <= wizard.MaxAmount {
			req.Amount += 100
		}
	case "down", "j":
		if req.TermMonths > wizard.MinTermMonths {
			req.TermMonths--
		}
	case "up", "k":
		if req.TermMonths < wizard.MaxTermMonths {
			req.TermMonths++
		}
	case "enter":
		m.Busy = true
		return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
			return m.Machine.SubmitAmount(m.ctx)
		}))
	}

	return m, nil
}

func (m AppModel) updateOffer(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy {
		return m, nil
	}

	// No decision until the offer is on screen
	if !m.offerReady() {
		return m, nil
	}

	switch keyMsg.String() {
	case "a", "enter":
		m.Busy = true
		return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
			return m.Machine.AcceptOffer(m.ctx)
		}))
	case "r":
		m.Busy = true
		return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
			return m.Machine.RejectOffer(m.ctx)
		}))
	}

	return m, nil
}

// offerReady reports whether the polled offer has reached the review screen's
// milestone.
func (m AppModel) offerReady() bool {
	offer := m.view.Offer
	return offer != nil && offer.Status.AtLeast(gateway.StatusOfferPending)
}

func (m AppModel) updateDisclosure(msg tea.Msg) (AppModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.Busy {
		if keyMsg.String() == "enter" {
			m.Machine.ConfirmDisclosure()
		}
	}
	return m, nil
}

func (m AppModel) updateContract(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", " ":
		m.Machine.SignContract()
	case "esc":
		m.Machine.Back()
	}
	return m, nil
}

func (m AppModel) updateVideoKYC(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy || m.Recording {
		// Capture is not retryable mid-recording
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "s":
		m.Recording = true
		m.CaptureLeft = kycCaptureSeconds
		return m, tea.Batch(m.Spinner.Tick, kycTick())
	case "esc":
		m.Machine.Back()
	}
	return m, nil
}

func (m AppModel) updateDelivery(msg tea.Msg) (AppModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Busy {
		return m, nil
	}

	s := m.Machine.Session
	switch keyMsg.String() {
	case "up":
		if m.DeliveryCursor > 0 {
			m.DeliveryCursor--
			s.Delivery.Method = deliveryMethods[m.DeliveryCursor]
		}
		return m, m.focusDeliveryInput()
	case "down":
		if m.DeliveryCursor < len(deliveryMethods)-1 {
			m.DeliveryCursor++
			s.Delivery.Method = deliveryMethods[m.DeliveryCursor]
		}
		return m, m.focusDeliveryInput()
	case "1", "2", "3":
		if s.Delivery.Method == wizard.DeliveryBranch {
			s.Delivery.BranchID = keyMsg.String()
			return m, nil
		}
	case "enter":
		s.Delivery.CardNumber = wizard.NormalizeCardNumber(m.CardInput.Value())
		s.Delivery.CourierAddress = strings.TrimSpace(m.AddressInput.Value())
		m.Busy = true
		return m, tea.Batch(m.Spinner.Tick, opCmd(func() error {
			return m.Machine.Finalize(m.ctx)
		}))
	}

	var cmd tea.Cmd
	switch s.Delivery.Method {
	case wizard.DeliveryCard:
		m.CardInput, cmd = m.CardInput.Update(msg)
	case wizard.DeliveryCourier:
		m.AddressInput, cmd = m.AddressInput.Update(msg)
	}
	return m, cmd
}

var deliveryMethods = []wizard.DeliveryMethod{
	wizard.DeliveryCard,
	wizard.DeliveryBranch,
	wizard.DeliveryCourier,
}

// focusDeliveryInput focuses the detail input matching the chosen method.
func (m *AppModel) focusDeliveryInput() tea.Cmd {
	m.CardInput.Blur()
	m.AddressInput.Blur()
	switch m.Machine.Session.Delivery.Method {
	case wizard.DeliveryCard:
		m.CardInput.Focus()
		return textinput.Blink
	case wizard.DeliveryCourier:
		m.AddressInput.Focus()
		return textinput.Blink
	}
	return nil
}

func (m AppModel) updateResult(msg tea.Msg) (AppModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the current step's screen
func (m AppModel) View() string {
	var content, footer string

	switch m.view.Step {
	case wizard.StepIdentityEntry:
		content = m.viewIdentity()
		footer = "tab: sahə dəyiş • enter: OTP göndər • ctrl+c: çıxış"
	case wizard.StepOTPVerify:
		content = m.viewOTP()
		footer = "enter: təsdiqlə • ctrl+r: yenidən göndər • esc: geri • ctrl+c: çıxış"
	case wizard.StepPersonalInfo:
		content = m.viewPersonalInfo()
		footer = "↑/↓: seç • space: işarələ • enter: davam et • ctrl+c: çıxış"
	case wizard.StepAmountSelect:
		content = m.viewAmount()
		footer = "←/→: məbləğ • ↑/↓: müddət • enter: davam et • ctrl+c: çıxış"
	case wizard.StepOfferReview:
		content = m.viewOffer()
		footer = "a/enter: qəbul et • r: imtina et • ctrl+c: çıxış"
	case wizard.StepDisclosure:
		content = m.viewDisclosure()
		footer = "enter: təsdiqlə • ctrl+c: çıxış"
	case wizard.StepContractSign:
		content = m.viewContract()
		footer = "enter: imzala və davam et • esc: geri • ctrl+c: çıxış"
	case wizard.StepVideoKYC:
		content = m.viewVideoKYC()
		footer = "s/enter: çəkilişi başlat • esc: geri • ctrl+c: çıxış"
	case wizard.StepDeliverySelect:
		content = m.viewDelivery()
		footer = "↑/↓: üsul seç • enter: təsdiq et • ctrl+c: çıxış"
	case wizard.StepResult:
		content = m.viewResult()
		footer = "enter/q: çıxış"
	}

	return RenderApplicationContainer(content, footer, m.Width, m.Height)
}

// progressLine renders the step indicator shown on every screen.
func (m AppModel) progressLine() string {
	labels := []string{"Giriş", "OTP", "Məlumatlar", "Məbləğ", "Təklif", "Forma", "Müqavilə", "KYC", "Təsdiq", "Nəticə"}
	current := int(m.view.Step)

	var parts []string
	for i, label := range labels {
		if i == current {
			parts = append(parts, SelectedMenuItemStyle.Render("["+label+"]"))
		} else if i < current {
			parts = append(parts, SuccessBoxStyle.Render("✓"))
		} else {
			parts = append(parts, SubtitleStyle.Render(label))
		}
	}
	return strings.Join(parts, " ") + "\n"
}

// errorLine renders the session error, if any.
func (m AppModel) errorLine() string {
	if m.view.Err == "" {
		return ""
	}
	return RenderError(m.view.Err) + "\n\n"
}

func (m AppModel) busyLine(label string) string {
	if !m.Busy {
		return ""
	}
	return m.Spinner.View() + " " + label + "\n"
}

func (m AppModel) viewIdentity() string {
	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Mobil nömrənin təsdiqi"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Müraciəti davam etdirmək üçün nömrənizi təsdiqləyin"))
	b.WriteString("\n\n")
	b.WriteString(m.errorLine())

	b.WriteString(LabelStyle.Render("FİN kod"))
	b.WriteString("\n")
	b.WriteString(m.FINInput.View())
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render("Telefon nömrəsi"))
	b.WriteString("\n")
	b.WriteString(m.PhoneInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.busyLine("OTP göndərilir..."))

	return b.String()
}

func (m AppModel) viewOTP() string {
	s := m.view

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("OTP təsdiqi"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle(fmt.Sprintf("%s nömrəsinə kod göndərildi", s.WirePhoneNumber())))
	b.WriteString("\n\n")
	b.WriteString(m.errorLine())

	b.WriteString(LabelStyle.Render("OTP kodu"))
	b.WriteString("\n")
	b.WriteString(m.OTPInput.View())
	b.WriteString("\n\n")

	if m.Countdown > 0 {
		b.WriteString(TimerStyle.Render(fmt.Sprintf("Kod %d saniyə ərzində etibarlıdır", m.Countdown)))
		b.WriteString("\n")
	} else if s.OTPSent {
		b.WriteString(SubtitleStyle.Render("Kodun vaxtı bitdi - ctrl+r ilə yenidən göndərin"))
		b.WriteString("\n")
	}
	b.WriteString(m.busyLine("Yoxlanılır..."))

	return b.String()
}

func (m AppModel) viewPersonalInfo() string {
	s := m.view
	info := s.PersonalInfo

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Şəxsi məlumatlar"))
	b.WriteString("\n")
	b.WriteString(m.errorLine())

	details := fmt.Sprintf("  Ad, soyad:      %s %s\n", info.FirstName, info.LastName)
	details += fmt.Sprintf("  FİN:            %s\n", info.FIN)
	details += fmt.Sprintf("  Doğum tarixi:   %s\n", info.DateOfBirth)
	details += fmt.Sprintf("  Ünvan:          %s\n", info.Address)
	details += fmt.Sprintf("  Məşğulluq:      %s\n", info.EmploymentStatus)
	details += fmt.Sprintf("  Aylıq gəlir:    %.0f AZN\n", info.MonthlyIncome)
	details += fmt.Sprintf("  Mövcud öhdəlik: %.0f AZN", info.ExistingMonthlyDebt)
	b.WriteString(RenderInfo(details))
	b.WriteString("\n")

	b.WriteString(RenderMenuItem(checkbox(s.TermsAccepted)+" ASAN Finance razılıq ərizəsi", m.ConsentCursor == 0))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem(checkbox(s.PrivacyAccepted)+" AKB məlumat sorğusu razılığı", m.ConsentCursor == 1))
	b.WriteString("\n")
	b.WriteString(RenderMenuItem("Davam et", m.ConsentCursor == 2))
	b.WriteString("\n\n")
	b.WriteString(m.busyLine("Müraciət göndərilir..."))

	return b.String()
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func (m AppModel) viewAmount() string {
	req := m.view.LoanRequest
	rate := wizard.IndicativeRate(req.Amount, req.TermMonths)
	payment := wizard.MonthlyPayment(req.Amount, rate, req.TermMonths)

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Kredit məbləği"))
	b.WriteString("\n")
	b.WriteString(m.errorLine())

	b.WriteString(LabelStyle.Render(fmt.Sprintf("Məbləğ:  %.0f AZN", req.Amount)))
	b.WriteString("\n")
	b.WriteString(renderSlider(req.Amount, wizard.MinAmount, wizard.MaxAmount))
	b.WriteString("\n\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("Müddət:  %d ay", req.TermMonths)))
	b.WriteString("\n\n")

	estimate := fmt.Sprintf("  Təxmini aylıq ödəniş:   %.0f AZN\n", payment)
	estimate += fmt.Sprintf("  İllik faiz dərəcəsi:    %.1f%%", rate)
	b.WriteString(RenderInfo(estimate))
	b.WriteString("\n")
	b.WriteString(m.busyLine("Göndərilir..."))

	return b.String()
}

// renderSlider draws a coarse position bar for the amount.
func renderSlider(value, min, max float64) string {
	const width = 40
	pos := int((value - min) / (max - min) * width)
	if pos < 0 {
		pos = 0
	}
	if pos > width {
		pos = width
	}
	return "  [" + strings.Repeat("█", pos) + strings.Repeat("░", width-pos) + "]"
}

func (m AppModel) viewOffer() string {
	s := m.view

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Kredit təklifi"))
	b.WriteString("\n")
	b.WriteString(m.errorLine())

	if !m.offerReady() {
		b.WriteString(m.Spinner.View())
		b.WriteString(" Təklif hazırlanır...\n")
		return b.String()
	}

	offer := s.Offer
	details := ""
	if offer.ApprovedAmount != nil {
		details += fmt.Sprintf("  Təsdiq edilən məbləğ:  %.0f AZN\n", *offer.ApprovedAmount)
	}
	if offer.APR != nil {
		details += fmt.Sprintf("  İllik faiz dərəcəsi:   %.1f%%\n", *offer.APR)
	}
	details += fmt.Sprintf("  Müddət:                %d ay", s.LoanRequest.TermMonths)
	b.WriteString(RenderInfo(details))
	b.WriteString("\n")

	b.WriteString(MenuItemStyle.Render("  a - Qəbul edirəm"))
	b.WriteString("\n")
	b.WriteString(MenuItemStyle.Render("  r - İmtina et"))
	b.WriteString("\n\n")
	b.WriteString(m.busyLine("Gözləyin..."))

	return b.String()
}

func (m AppModel) viewDisclosure() string {
	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Məlumat forması"))
	b.WriteString("\n")

	text := "  Kredit müqaviləsi bağlanmazdan əvvəl təqdim olunan\n"
	text += "  məlumat forması ilə tanış olun. Formada kreditin tam\n"
	text += "  dəyəri, faiz dərəcəsi və bütün komissiyalar göstərilib."
	b.WriteString(RenderInfo(text))
	b.WriteString("\n")

	return b.String()
}

func (m AppModel) viewContract() string {
	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Müqavilənin imzalanması"))
	b.WriteString("\n")

	text := "  Kredit müqaviləsinin şərtləri ilə tanış oldum və\n"
	text += "  qəbul edirəm. Enter ilə müqaviləni imzalayın."
	b.WriteString(RenderInfo(text))
	b.WriteString("\n")

	return b.String()
}

func (m AppModel) viewVideoKYC() string {
	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Video identifikasiya"))
	b.WriteString("\n")

	if m.Recording {
		b.WriteString(m.Spinner.View())
		b.WriteString(TimerStyle.Render(fmt.Sprintf(" Çəkiliş gedir... %d", m.CaptureLeft)))
		b.WriteString("\n")
	} else {
		text := "  Şəxsiyyətinizi təsdiqləmək üçün qısa video çəkilişi\n"
		text += "  aparılacaq. Kameraya baxın və başlamaq üçün s basın."
		b.WriteString(RenderInfo(text))
		b.WriteString("\n")
	}

	return b.String()
}

func (m AppModel) viewDelivery() string {
	s := m.view

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderTitle("Kreditin alınması"))
	b.WriteString("\n")
	b.WriteString(RenderSubtitle("Vəsaitin sizə çatdırılma üsulunu seçin"))
	b.WriteString("\n\n")
	b.WriteString(m.errorLine())

	b.WriteString(RenderMenuItem("Kart hesabına köçürmə", s.Delivery.Method == wizard.DeliveryCard))
	b.WriteString("\n")
	if s.Delivery.Method == wizard.DeliveryCard {
		b.WriteString("      " + m.CardInput.View() + "\n")
	}

	b.WriteString(RenderMenuItem("Filialdan götürmə", s.Delivery.Method == wizard.DeliveryBranch))
	b.WriteString("\n")
	if s.Delivery.Method == wizard.DeliveryBranch {
		for i, branch := range branchNames {
			marker := "( )"
			if s.Delivery.BranchID == branchIDs[i] {
				marker = "(•)"
			}
			b.WriteString(fmt.Sprintf("      %s %s - %s\n", marker, branchIDs[i], branch))
		}
	}

	b.WriteString(RenderMenuItem("Kuryer ilə çatdırılma", s.Delivery.Method == wizard.DeliveryCourier))
	b.WriteString("\n")
	if s.Delivery.Method == wizard.DeliveryCourier {
		b.WriteString("      " + m.AddressInput.View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.busyLine("Tamamlanır..."))

	return b.String()
}

var (
	branchIDs   = []string{"1", "2", "3"}
	branchNames = []string{"Mərkəz filialı", "Yasamal filialı", "Nərimanov filialı"}
)

func (m AppModel) viewResult() string {
	s := m.view

	var b strings.Builder
	b.WriteString(m.progressLine())
	b.WriteString(RenderSuccess("Təbriklər!"))
	b.WriteString("\n\n")
	b.WriteString(RenderSubtitle("Kredit müraciətiniz uğurla tamamlandı"))
	b.WriteString("\n\n")

	details := fmt.Sprintf("  Müraciət ID:           %s\n", shortID(s.ApplicationID))
	if s.Offer != nil && s.Offer.ApprovedAmount != nil {
		details += fmt.Sprintf("  Təsdiq edilən məbləğ:  %.0f AZN\n", *s.Offer.ApprovedAmount)
	}
	if s.Offer != nil && s.Offer.APR != nil {
		details += fmt.Sprintf("  İllik faiz dərəcəsi:   %.1f%%\n", *s.Offer.APR)
	}
	details += fmt.Sprintf("  Status:                %s", resultStatus(s.Offer))
	b.WriteString(RenderInfo(details))
	b.WriteString("\n")

	if m.ExitIn > 0 {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d saniyə ərzində proqram bağlanacaq...", m.ExitIn)))
		b.WriteString("\n")
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

func resultStatus(offer *gateway.LoanResult) string {
	if offer == nil {
		return string(gateway.StatusPendingCRM)
	}
	return string(offer.Status)
}
