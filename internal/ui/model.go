package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"docchat/internal/api"
	"docchat/internal/config"
	"docchat/internal/export"
	"docchat/internal/guard"
	"docchat/internal/preview"
	"docchat/internal/session"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// markScrollDelay is how long after the preview loads before the first
// highlighted span is scrolled into view.
const markScrollDelay = 500 * time.Millisecond

type screen int

const (
	screenLogin screen = iota
	screenChat
	screenIngest
)

type chatFocus int

const (
	focusQuestion chatFocus = iota
	focusCitations
	focusPreview
)

type Model struct {
	cfg      config.AppConfig
	client   *api.Client
	sessions *session.Store
	exporter *export.Exporter

	screen screen
	role   session.Role
	authed bool

	width  int
	height int

	// login screen
	username   textinput.Model
	password   textinput.Model
	loginFocus int
	loggingIn  bool
	loginErr   string

	// chat screen
	question  textinput.Model
	answer    viewport.Model
	exchange  *api.ChatResponse
	asked     string
	citeIndex int
	chatFocus chatFocus
	asking    bool
	exporting bool
	chatErr   string

	// preview drawer
	previewOpen  bool
	preview      viewport.Model
	previewNonce int
	previewMark  int

	// ingest screen
	picker    filepicker.Model
	selected  []string
	uploading bool
	building  bool
	ingestMsg string

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	status  string
}

type loginMsg struct {
	sess session.Session
	err  error
}
type askMsg struct {
	question string
	resp     *api.ChatResponse
	err      error
}
type previewMsg struct {
	nonce int
	res   preview.Result
	err   error
}
type scrollMarkMsg struct{ nonce int }
type uploadMsg struct {
	saved []string
	err   error
}
type buildMsg struct{ err error }
type exportMsg struct {
	path string
	err  error
}
type healthMsg struct{ err error }

func NewModel(cfg config.AppConfig, client *api.Client, sessions *session.Store, exporter *export.Exporter) Model {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "Password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	question := textinput.New()
	question.Placeholder = "Ask about your Excel or Word documents..."
	question.CharLimit = 512

	answer := viewport.New(60, 12)
	pv := viewport.New(40, 20)

	picker := filepicker.New()
	picker.AllowedTypes = []string{".xlsx", ".csv", ".docx"}
	if cwd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = cwd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Points

	h := help.New()
	h.ShowAll = false

	m := Model{
		cfg:         cfg,
		client:      client,
		sessions:    sessions,
		exporter:    exporter,
		username:    username,
		password:    password,
		question:    question,
		answer:      answer,
		preview:     pv,
		previewMark: -1,
		picker:      picker,
		spinner:     sp,
		help:        h,
		keys:        defaultKeys(),
	}
	// The guard decides the first screen: chat when a session survives
	// from a previous run, login otherwise.
	m.navigate(guard.RouteChat)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkHealth())
}

// checkHealth probes the backend once on startup so an unreachable or
// misconfigured base URL shows up before the first question.
func (m Model) checkHealth() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return healthMsg{err: client.Health(context.Background())}
	}
}

// =========================================================================
// Commands
// =========================================================================

func (m Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	sessions := m.sessions
	return func() tea.Msg {
		sess, err := client.Login(context.Background(), username, password)
		if err != nil {
			return loginMsg{err: err}
		}
		if err := sessions.Save(sess); err != nil {
			return loginMsg{err: err}
		}
		return loginMsg{sess: sess}
	}
}

func (m Model) askCmd(question string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		resp, err := client.Ask(context.Background(), question)
		return askMsg{question: question, resp: resp, err: err}
	}
}

func (m Model) previewCmd(source string, chunk, nonce, wrapWidth int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		fragment, err := client.PreviewChunk(context.Background(), source, chunk)
		if err != nil {
			return previewMsg{nonce: nonce, err: err}
		}
		res, err := preview.Flatten(fragment, wrapWidth, func(s string) string { return markStyle.Render(s) })
		if err != nil {
			return previewMsg{nonce: nonce, err: err}
		}
		return previewMsg{nonce: nonce, res: res}
	}
}

func scrollMarkCmd(nonce int) tea.Cmd {
	return tea.Tick(markScrollDelay, func(time.Time) tea.Msg {
		return scrollMarkMsg{nonce: nonce}
	})
}

func (m Model) uploadCmd(paths []string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		saved, err := client.UploadDocuments(context.Background(), paths)
		return uploadMsg{saved: saved, err: err}
	}
}

func (m Model) buildCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		return buildMsg{err: client.BuildIndex(context.Background())}
	}
}

func (m Model) exportCmd() tea.Cmd {
	client := m.client
	exporter := m.exporter
	return func() tea.Msg {
		data, err := client.ExportSummary(context.Background())
		if err != nil {
			return exportMsg{err: err}
		}
		path, err := exporter.SaveSummary(data)
		if err != nil {
			return exportMsg{err: err}
		}
		return exportMsg{path: path}
	}
}

// =========================================================================
// Update
// =========================================================================

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case loginMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = errText(msg.err)
			break
		}
		cmds = append(cmds, m.navigate(guard.RouteChat))

	case askMsg:
		m.asking = false
		if msg.err != nil {
			m.chatErr = errText(msg.err)
			break
		}
		// The previous exchange is replaced wholesale.
		m.exchange = msg.resp
		m.asked = msg.question
		m.citeIndex = 0
		m.closePreview()
		m.chatFocus = focusQuestion
		m.question.SetValue("")
		m.resize()
		m.setAnswerContent()

	case previewMsg:
		if msg.nonce != m.previewNonce {
			break
		}
		if msg.err != nil {
			// Preview failures never disturb the main view.
			log.Printf("preview failed: %v", msg.err)
			break
		}
		m.previewOpen = true
		m.chatFocus = focusPreview
		m.previewMark = msg.res.MarkLine
		m.preview.SetContent(msg.res.Text)
		m.preview.GotoTop()
		cmds = append(cmds, scrollMarkCmd(msg.nonce))

	case scrollMarkMsg:
		if msg.nonce != m.previewNonce || !m.previewOpen {
			break
		}
		if m.previewMark >= 0 {
			m.preview.SetYOffset(clampOffset(m.preview, m.previewMark-m.preview.Height/2))
		}

	case uploadMsg:
		m.uploading = false
		if msg.err != nil {
			m.ingestMsg = errText(msg.err)
			break
		}
		m.ingestMsg = "Uploaded: " + strings.Join(msg.saved, ", ")
		m.selected = nil

	case buildMsg:
		m.building = false
		if msg.err != nil {
			m.ingestMsg = errText(msg.err)
			break
		}
		m.ingestMsg = "Index built."

	case healthMsg:
		if msg.err != nil {
			m.status = errText(msg.err)
		}

	case exportMsg:
		m.exporting = false
		if msg.err != nil {
			m.chatErr = errText(msg.err)
			break
		}
		m.status = "Exported: " + msg.path

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.busy() {
		var spin tea.Cmd
		m.spinner, spin = m.spinner.Update(msg)
		cmds = append(cmds, spin)
	}

	if m.screen == screenIngest {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		cmds = append(cmds, cmd)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.toggleSelected(path)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Logout) && m.screen != screenLogin:
		if err := m.sessions.Clear(); err != nil {
			m.status = "Logout failed: " + err.Error()
			return m, nil
		}
		return m, m.navigate(guard.RouteLogin)
	case key.Matches(msg, m.keys.GotoChat) && m.screen != screenLogin:
		return m, m.navigate(guard.RouteChat)
	case key.Matches(msg, m.keys.GotoIngest) && m.screen != screenLogin:
		return m, m.navigate(guard.RouteIngest)
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenChat:
		return m.updateChat(msg)
	case screenIngest:
		return m.updateIngest(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.password.Blur()
			return m, m.username.Focus()
		}
		m.username.Blur()
		return m, m.password.Focus()
	case "enter":
		if m.loginFocus == 0 {
			m.loginFocus = 1
			m.username.Blur()
			return m, m.password.Focus()
		}
		return m, m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.chatFocus == focusPreview && m.previewOpen {
		switch msg.String() {
		case "esc":
			m.closePreview()
			m.chatFocus = focusQuestion
			return m, nil
		case "up", "k":
			m.preview.LineUp(1)
		case "down", "j":
			m.preview.LineDown(1)
		case "pgup", "b":
			m.preview.HalfViewUp()
		case "pgdown", "f":
			m.preview.HalfViewDown()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Export):
		return m, m.submitExport()
	}

	switch msg.String() {
	case "pgup":
		m.answer.HalfViewUp()
		return m, nil
	case "pgdown":
		m.answer.HalfViewDown()
		return m, nil
	}

	if m.chatFocus == focusCitations {
		switch msg.String() {
		case "esc":
			m.chatFocus = focusQuestion
			return m, m.question.Focus()
		case "tab":
			m.chatFocus = focusQuestion
			return m, m.question.Focus()
		case "up", "k":
			if m.citeIndex > 0 {
				m.citeIndex--
			}
			return m, nil
		case "down", "j":
			if m.exchange != nil && m.citeIndex < len(m.exchange.Citations)-1 {
				m.citeIndex++
			}
			return m, nil
		case "enter":
			return m, m.openPreview()
		}
		return m, nil
	}

	switch msg.String() {
	case "enter":
		return m, m.submitAsk()
	case "tab":
		if m.exchange != nil && len(m.exchange.Citations) > 0 {
			m.chatFocus = focusCitations
			m.question.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.question, cmd = m.question.Update(msg)
	return m, cmd
}

func (m Model) updateIngest(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Upload):
		return m, m.submitUpload()
	case key.Matches(msg, m.keys.Build):
		return m, m.submitBuild()
	}
	if msg.String() == "esc" {
		return m, m.navigate(guard.RouteChat)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.toggleSelected(path)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.ingestMsg = fmt.Sprintf("%s is not an Excel or Word document", path)
	}
	return m, cmd
}

// =========================================================================
// Actions
// =========================================================================

func (m *Model) submitLogin() tea.Cmd {
	if m.loggingIn {
		return nil
	}
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		return nil
	}
	m.loggingIn = true
	m.loginErr = ""
	return tea.Batch(m.spinner.Tick, m.loginCmd(username, password))
}

// submitAsk sends the current question. Empty or whitespace-only input is
// a no-op, and the busy flag suppresses duplicate submissions while a
// request is outstanding.
func (m *Model) submitAsk() tea.Cmd {
	question := strings.TrimSpace(m.question.Value())
	if question == "" || m.asking {
		return nil
	}
	m.asking = true
	m.chatErr = ""
	return tea.Batch(m.spinner.Tick, m.askCmd(question))
}

// openPreview requests the source preview for the selected citation. A
// citation missing its source or chunk is not actionable.
func (m *Model) openPreview() tea.Cmd {
	if m.exchange == nil || m.citeIndex >= len(m.exchange.Citations) {
		return nil
	}
	c := m.exchange.Citations[m.citeIndex]
	if !c.Previewable() {
		return nil
	}
	m.previewNonce++
	wrapWidth := m.previewPaneWidth() - 4
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	return tea.Batch(m.spinner.Tick, m.previewCmd(c.Source, *c.Chunk, m.previewNonce, wrapWidth))
}

func (m *Model) submitExport() tea.Cmd {
	if m.exporting {
		return nil
	}
	m.exporting = true
	m.chatErr = ""
	return tea.Batch(m.spinner.Tick, m.exportCmd())
}

func (m *Model) submitUpload() tea.Cmd {
	if len(m.selected) == 0 || m.uploading {
		return nil
	}
	m.uploading = true
	paths := append([]string(nil), m.selected...)
	return tea.Batch(m.spinner.Tick, m.uploadCmd(paths))
}

func (m *Model) submitBuild() tea.Cmd {
	if m.building {
		return nil
	}
	m.building = true
	return tea.Batch(m.spinner.Tick, m.buildCmd())
}

// navigate re-runs the route guard from the session store and switches to
// whatever screen it resolves. Called on startup and on every navigation
// event, including logout.
func (m *Model) navigate(target guard.Route) tea.Cmd {
	sess, ok := m.sessions.Load()
	m.role = sess.Role
	m.authed = ok

	switch guard.Resolve(target, sess, ok) {
	case guard.RouteLogin:
		m.screen = screenLogin
		m.username.SetValue("")
		m.password.SetValue("")
		m.loginErr = ""
		m.loginFocus = 0
		m.password.Blur()
		m.exchange = nil
		m.asked = ""
		m.chatErr = ""
		m.closePreview()
		m.answer.SetContent("")
		return m.username.Focus()
	case guard.RouteIngest:
		m.screen = screenIngest
		m.ingestMsg = ""
		return m.picker.Init()
	default:
		m.screen = screenChat
		m.chatFocus = focusQuestion
		return m.question.Focus()
	}
}

func (m *Model) closePreview() {
	m.previewOpen = false
	m.previewMark = -1
	m.preview.SetContent("")
	m.resize()
}

func (m *Model) toggleSelected(path string) {
	for i, p := range m.selected {
		if p == path {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
			return
		}
	}
	m.selected = append(m.selected, path)
}

func (m *Model) busy() bool {
	return m.loggingIn || m.asking || m.exporting || m.uploading || m.building
}

func (m *Model) setAnswerContent() {
	if m.exchange == nil {
		m.answer.SetContent("")
		return
	}
	wrap := m.answer.Width
	if wrap < 20 {
		wrap = 20
	}
	m.answer.SetContent(renderAnswer(m.exchange.Answer, wrap))
	m.answer.GotoTop()
}

func renderAnswer(answer string, wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(config.DefaultGlamourStyle),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return answer
	}
	out, err := r.Render(answer)
	if err != nil {
		return answer
	}
	return out
}

// errText turns an API error into the string shown to the user: the
// backend's detail verbatim for rejections, the per-operation fallback
// otherwise.
func errText(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return err.Error()
}

func clampOffset(vp viewport.Model, offset int) int {
	if offset < 0 {
		return 0
	}
	maxOffset := vp.TotalLineCount() - vp.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyHeight := m.height - 4
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	chatW := m.chatPaneWidth()
	m.question.Width = chatW - 8

	answerHeight := bodyHeight - 8 - m.citationRows()
	if answerHeight < 4 {
		answerHeight = 4
	}
	m.answer.Width = chatW - 4
	m.answer.Height = answerHeight

	m.preview.Width = m.previewPaneWidth() - 4
	m.preview.Height = bodyHeight - 3

	m.picker.Height = bodyHeight - 8
	if m.picker.Height < 4 {
		m.picker.Height = 4
	}

	m.setAnswerContent()
}

func (m *Model) citationRows() int {
	if m.exchange == nil {
		return 0
	}
	n := len(m.exchange.Citations)
	if n > 5 {
		n = 5
	}
	return n
}

// chatPaneWidth leaves room for the preview drawer, which takes roughly
// half the screen when open.
func (m *Model) chatPaneWidth() int {
	if !m.previewOpen {
		return m.width
	}
	w := m.width - m.previewPaneWidth() - 1
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) previewPaneWidth() int {
	w := m.width * 48 / 100
	if w < 30 {
		w = 30
	}
	return w
}

// =========================================================================
// View
// =========================================================================

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting..."
	}

	var body string
	switch m.screen {
	case screenLogin:
		body = m.loginView()
	case screenIngest:
		body = m.ingestView()
	default:
		body = m.chatView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerLine(),
		body,
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m Model) headerLine() string {
	header := brandStyle.Render("DocChat")
	if m.authed {
		header += "  " + roleStyle.Render(string(m.role))
		nav := "f1 chat"
		if m.role == session.RoleAdmin {
			nav += "  f2 ingest"
		}
		nav += "  ctrl+l logout"
		header += "  " + navStyle.Render(nav)
	}
	return header
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString("Sign in\n\n")
	b.WriteString(m.username.View() + "\n")
	b.WriteString(m.password.View() + "\n")
	if m.loggingIn {
		b.WriteString("\n" + m.spinner.View() + " signing in...")
	}
	if m.loginErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.loginErr))
	}
	return panelStyle(true).Width(m.width - 2).Height(m.bodyHeight()).Render(b.String())
}

func (m Model) chatView() string {
	var b strings.Builder
	b.WriteString(m.question.View() + "\n\n")

	if m.asking {
		b.WriteString(m.spinner.View() + " thinking...\n")
	} else if m.exchange != nil {
		if m.asked != "" {
			b.WriteString(askedStyle.Render("You: "+m.asked) + "\n")
		}
		b.WriteString(m.answer.View() + "\n")
		b.WriteString(m.citationsView())
	}
	if m.chatErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.chatErr))
	}

	chatPane := panelStyle(m.chatFocus != focusPreview).
		Width(m.chatPaneWidth() - 2).
		Height(m.bodyHeight()).
		Render(b.String())
	if !m.previewOpen {
		return chatPane
	}

	previewPane := panelStyle(m.chatFocus == focusPreview).
		Width(m.previewPaneWidth() - 2).
		Height(m.bodyHeight()).
		Render(m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, chatPane, previewPane)
}

func (m Model) citationsView() string {
	if m.exchange == nil || len(m.exchange.Citations) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nSources:\n")
	for i, c := range m.exchange.Citations {
		loc := ""
		if page, ok := c.DisplayPage(); ok {
			loc = fmt.Sprintf(" p.%d", page)
		}
		line := fmt.Sprintf("%s%s  %s", c.Source, loc, shorten(c.Preview, 70))
		if i == m.citeIndex && m.chatFocus != focusQuestion {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) ingestView() string {
	var b strings.Builder
	b.WriteString("Upload documents (.xlsx, .csv, .docx)\n\n")
	b.WriteString(m.picker.View() + "\n")
	if len(m.selected) > 0 {
		b.WriteString("\nSelected: " + strings.Join(m.selected, ", ") + "\n")
	}
	if m.ingestMsg != "" {
		b.WriteString("\n" + m.ingestMsg)
	}
	return panelStyle(true).Width(m.width - 2).Height(m.bodyHeight()).Render(b.String())
}

func (m Model) statusLine() string {
	status := ""
	if m.loggingIn {
		status += "  [signing in]"
	}
	if m.asking {
		status += "  [asking]"
	}
	if m.uploading {
		status += "  [uploading]"
	}
	if m.building {
		status += "  [building index]"
	}
	if m.exporting {
		status += "  [exporting]"
	}
	if m.busy() {
		status = m.spinner.View() + status
	}
	if strings.TrimSpace(m.status) != "" {
		status += "  " + shorten(strings.TrimSpace(m.status), 80)
	}
	return statusStyle.Render(status)
}

func (m Model) bodyHeight() int {
	h := m.height - 4
	if h < 8 {
		h = 8
	}
	return h
}

func shorten(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

var (
	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("108")).
			Padding(0, 1)
	navStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
	askedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))
	markStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("220"))
)

func panelStyle(active bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	if active {
		return lipgloss.NewStyle().
			Border(border, true).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
	}
	return lipgloss.NewStyle().
		Border(border, true).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
}

type keyMap struct {
	GotoChat   key.Binding
	GotoIngest key.Binding
	Submit     key.Binding
	Tab        key.Binding
	Preview    key.Binding
	Esc        key.Binding
	Export     key.Binding
	Upload     key.Binding
	Build      key.Binding
	Logout     key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		GotoChat: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "chat"),
		),
		GotoIngest: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "ingest"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus sources"),
		),
		Preview: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open source"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back/close"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "export summary"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upload selected"),
		),
		Build: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "build index"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Tab, k.Esc, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Tab, k.Preview, k.Esc},
		{k.GotoChat, k.GotoIngest, k.Export},
		{k.Upload, k.Build, k.Logout, k.Quit},
	}
}
