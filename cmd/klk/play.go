package main

import (
	"context"
	"fmt"
	"time"

	cl "klicks/internal/cli"
	"klicks/internal/config"
	"klicks/internal/game"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	playTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	playTierStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	playStatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	playErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	playHelpStyle   = lipgloss.NewStyle().Faint(true)
)

func newPlayCmd(cfg config.CLIConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Interactive clicker mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, sess, err := activeClient(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			profile, err := client.Profile(ctx, sess.Token)
			if err != nil {
				return err
			}
			m := newPlayModel(client, sess.Token, profile)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

type playModel struct {
	client  *cl.Client
	token   string
	profile game.Profile
	bar     progress.Model
	status  string
	failed  bool
}

type clickMsg struct {
	out game.ClickResult
	err error
}

type collectMsg struct {
	out game.CollectResult
	err error
}

type profileMsg struct {
	out game.Profile
	err error
}

func newPlayModel(client *cl.Client, token string, profile game.Profile) playModel {
	return playModel{
		client:  client,
		token:   token,
		profile: profile,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		status:  "Press space to click.",
	}
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			return m, m.doClick()
		case "c":
			return m, m.doCollect()
		case "r":
			return m, m.doRefresh()
		}

	case clickMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.failed = true
			return m, nil
		}
		m.failed = false
		m.profile.Balance = msg.out.Balance
		if msg.out.TierUp {
			m.profile.Tier = msg.out.Tier
			m.status = fmt.Sprintf("🎉 New privilege: %s!", msg.out.Tier)
			return m, m.doRefresh()
		}
		m.status = fmt.Sprintf("+%s coins", comma(msg.out.Earned))
		return m, nil

	case collectMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.failed = true
			return m, nil
		}
		m.failed = false
		m.profile.Balance = msg.out.Balance
		m.status = fmt.Sprintf("Collected %s coins", comma(msg.out.Collected))
		return m, nil

	case profileMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.failed = true
			return m, nil
		}
		m.failed = false
		m.profile = msg.out
		return m, nil
	}
	return m, nil
}

func (m playModel) View() string {
	var toNext string
	switch {
	case m.profile.NextTierThreshold <= 0:
		toNext = m.bar.ViewAs(1.0) + "  maxed out"
	default:
		ratio := float64(m.profile.Balance) / float64(m.profile.NextTierThreshold)
		if ratio > 1 {
			ratio = 1
		}
		if ratio < 0 {
			ratio = 0
		}
		toNext = m.bar.ViewAs(ratio) + fmt.Sprintf("  next tier at %s", comma(m.profile.NextTierThreshold))
	}

	status := playStatusStyle.Render(m.status)
	if m.failed {
		status = playErrorStyle.Render(m.status)
	}

	return fmt.Sprintf("%s\n\n%s  %s\nBalance: %s coins   Premium: %s gems\n%s\n\n%s\n%s\n",
		playTitleStyle.Render("KLICKS"),
		playTierStyle.Render(m.profile.Tier),
		playStatusStyle.Render(fmt.Sprintf("(reward %s-%s)", comma(m.profile.RewardMin), comma(m.profile.RewardMax))),
		comma(m.profile.Balance),
		comma(m.profile.PremiumBalance),
		toNext,
		status,
		playHelpStyle.Render("space click · c collect · r refresh · q quit"),
	)
}

func (m playModel) doClick() tea.Cmd {
	client, token := m.client, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		out, err := client.Click(ctx, token)
		return clickMsg{out: out, err: err}
	}
}

func (m playModel) doCollect() tea.Cmd {
	client, token := m.client, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		out, err := client.CollectIncome(ctx, token)
		return collectMsg{out: out, err: err}
	}
}

func (m playModel) doRefresh() tea.Cmd {
	client, token := m.client, m.token
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		out, err := client.Profile(ctx, token)
		return profileMsg{out: out, err: err}
	}
}
