package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultBaseURL = "http://localhost:8080"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type step int

const (
	stepBrowsing step = iota
	stepEnteringUsername
	stepEnteringFirstName
	stepEnteringLastName
	stepConfirmingDelete
)

type userRow struct {
	UID             string `json:"uid"`
	Username        string `json:"username"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	CreatedDateTime string `json:"createdDateTime"`
}

type userPage struct {
	Content       []userRow `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}

type pageLoadedMsg userPage
type userCreatedMsg struct{ username string }
type userDeletedMsg struct{ username string }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

type model struct {
	baseURL      string
	step         step
	page         userPage
	cursor       int
	newUsername  string
	newFirstName string
	currentInput string
	message      string
	quitting     bool
}

func initialModel(baseURL string) model {
	return model{
		baseURL: baseURL,
		step:    stepBrowsing,
	}
}

func (m model) Init() tea.Cmd {
	return loadPage(m.baseURL, 0)
}

func apiClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func loadPage(baseURL string, page int) tea.Cmd {
	return func() tea.Msg {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		resp, err := apiClient().Get(baseURL + "/v1/users?" + q.Encode())
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach %s: %w", baseURL, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return errMsg{fmt.Errorf("list users: unexpected status %d", resp.StatusCode)}
		}

		var p userPage
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return errMsg{fmt.Errorf("decode user page: %w", err)}
		}
		return pageLoadedMsg(p)
	}
}

func createUser(baseURL, username, firstName, lastName string) tea.Cmd {
	return func() tea.Msg {
		payload := map[string]string{
			"username":  username,
			"firstName": firstName,
		}
		if lastName != "" {
			payload["lastName"] = lastName
		}
		jsonData, _ := json.Marshal(payload)

		resp, err := apiClient().Post(baseURL+"/v1/users", "application/json", bytes.NewBuffer(jsonData))
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach %s: %w", baseURL, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("create rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))}
		}
		return userCreatedMsg{username: username}
	}
}

func deleteUser(baseURL string, row userRow) tea.Cmd {
	return func() tea.Msg {
		req, _ := http.NewRequest(http.MethodDelete, baseURL+"/v1/users/"+row.UID, nil)
		resp, err := apiClient().Do(req)
		if err != nil {
			return errMsg{fmt.Errorf("cannot reach %s: %w", baseURL, err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			return errMsg{fmt.Errorf("delete rejected: unexpected status %d", resp.StatusCode)}
		}
		return userDeletedMsg{username: row.Username}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.page = userPage(msg)
		if m.cursor >= len(m.page.Content) {
			m.cursor = 0
		}
		return m, nil

	case userCreatedMsg:
		m.message = successStyle.Render("created user " + msg.username)
		m.step = stepBrowsing
		return m, loadPage(m.baseURL, m.page.Page)

	case userDeletedMsg:
		m.message = successStyle.Render("deleted user " + msg.username)
		m.step = stepBrowsing
		return m, loadPage(m.baseURL, m.page.Page)

	case errMsg:
		m.message = errorStyle.Render(msg.Error())
		m.step = stepBrowsing
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.step {
	case stepBrowsing:
		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.page.Content)-1 {
				m.cursor++
			}
		case "left", "h":
			if m.page.Page > 0 {
				return m, loadPage(m.baseURL, m.page.Page-1)
			}
		case "right", "l":
			if m.page.Page < m.page.TotalPages-1 {
				return m, loadPage(m.baseURL, m.page.Page+1)
			}
		case "r":
			return m, loadPage(m.baseURL, m.page.Page)
		case "n":
			m.message = ""
			m.currentInput = ""
			m.step = stepEnteringUsername
		case "d":
			if len(m.page.Content) > 0 {
				m.message = ""
				m.step = stepConfirmingDelete
			}
		}

	case stepConfirmingDelete:
		switch msg.String() {
		case "y":
			return m, deleteUser(m.baseURL, m.page.Content[m.cursor])
		case "n", "esc":
			m.step = stepBrowsing
		}

	default:
		return m.handleInputKey(msg)
	}
	return m, nil
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.step = stepBrowsing
		m.currentInput = ""
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.currentInput)
		m.currentInput = ""
		switch m.step {
		case stepEnteringUsername:
			m.newUsername = value
			m.step = stepEnteringFirstName
		case stepEnteringFirstName:
			m.newFirstName = value
			m.step = stepEnteringLastName
		case stepEnteringLastName:
			return m, createUser(m.baseURL, m.newUsername, m.newFirstName, value)
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.currentInput) > 0 {
			m.currentInput = m.currentInput[:len(m.currentInput)-1]
		}
		return m, nil

	case tea.KeyRunes, tea.KeySpace:
		m.currentInput += msg.String()
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("user-service admin"))
	b.WriteString("\n")

	switch m.step {
	case stepEnteringUsername:
		b.WriteString(promptStyle.Render("Username: "))
		b.WriteString(m.currentInput + "█\n")
	case stepEnteringFirstName:
		b.WriteString(promptStyle.Render("First name: "))
		b.WriteString(m.currentInput + "█\n")
	case stepEnteringLastName:
		b.WriteString(promptStyle.Render("Last name (optional): "))
		b.WriteString(m.currentInput + "█\n")
	case stepConfirmingDelete:
		row := m.page.Content[m.cursor]
		b.WriteString(errorStyle.Render(fmt.Sprintf("Delete %s? (y/n)", row.Username)))
		b.WriteString("\n")
	default:
		if len(m.page.Content) == 0 {
			b.WriteString(normalStyle.Render("no users"))
			b.WriteString("\n")
		}
		for i, row := range m.page.Content {
			name := row.FirstName
			if row.LastName != "" {
				name += " " + row.LastName
			}
			line := fmt.Sprintf("%-20s %-25s %s", row.Username, name, row.UID)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(normalStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("page %d/%d · %d users total",
			m.page.Page+1, max(m.page.TotalPages, 1), m.page.TotalElements)))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n" + m.message + "\n")
	}
	b.WriteString(dimStyle.Render("\n↑/↓ select · ←/→ page · n new · d delete · r refresh · q quit\n"))
	return b.String()
}

func main() {
	baseURL := os.Getenv("USER_SERVICE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	p := tea.NewProgram(initialModel(baseURL))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
