package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestPromptsRefuseWhenInteractionIsDisabled(t *testing.T) {
	t.Setenv("REGRAFT_TEST_NO_INTERACTIVE", "1")

	t.Run("text input", func(t *testing.T) {
		_, err := PromptTextInput("Pull request title", "Land feature onto main")
		require.ErrorIs(t, err, ErrInteractiveDisabled)
	})

	t.Run("confirm", func(t *testing.T) {
		_, err := PromptConfirm("Delete the landing branch?", false)
		require.ErrorIs(t, err, ErrInteractiveDisabled)
	})

	t.Run("commit selection", func(t *testing.T) {
		_, err := PromptCommitSelection("Pick commits", []string{"abc1234 fix parser"}, []string{"abc1234"})
		require.ErrorIs(t, err, ErrInteractiveDisabled)
	})

	t.Run("mode selection", func(t *testing.T) {
		_, err := PromptSelectString("Resolution", []string{"baseline", "source", "both"})
		require.ErrorIs(t, err, ErrInteractiveDisabled)
	})

	t.Run("branch selection", func(t *testing.T) {
		_, err := PromptBranchSelection("Source branch", []string{"main", "feature"}, 0)
		require.ErrorIs(t, err, ErrInteractiveDisabled)
	})
}

func TestTextInputModel(t *testing.T) {
	newModel := func() textInputModel {
		ti := textinput.New()
		ti.SetValue("landing/feature")
		return textInputModel{textInput: ti, prompt: "Landing branch"}
	}

	t.Run("enter submits the value", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyEnter})
		final, ok := updated.(textInputModel)
		require.True(t, ok)
		require.True(t, final.done)
		require.NoError(t, final.err)
		require.Equal(t, "landing/feature", final.textInput.Value())
	})

	t.Run("escape cancels", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
		final := updated.(textInputModel)
		require.True(t, final.done)
		require.Error(t, final.err)
	})

	t.Run("view shows the prompt until done", func(t *testing.T) {
		m := newModel()
		require.Contains(t, m.View(), "Landing branch")

		m.done = true
		require.Empty(t, m.View())
	})
}

func TestConfirmModel(t *testing.T) {
	t.Run("y chooses yes", func(t *testing.T) {
		m := confirmModel{prompt: "Proceed?"}
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		final := updated.(confirmModel)
		require.True(t, final.done)
		require.True(t, final.choice)
	})

	t.Run("n overrides a yes default", func(t *testing.T) {
		m := confirmModel{prompt: "Proceed?", choice: true}
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
		final := updated.(confirmModel)
		require.True(t, final.done)
		require.False(t, final.choice)
	})

	t.Run("enter keeps the default", func(t *testing.T) {
		m := confirmModel{prompt: "Proceed?", choice: true}
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		final := updated.(confirmModel)
		require.True(t, final.done)
		require.NoError(t, final.err)
		require.True(t, final.choice)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := confirmModel{prompt: "Proceed?"}
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		final := updated.(confirmModel)
		require.True(t, final.done)
		require.Error(t, final.err)
	})

	t.Run("view shows which side the default is", func(t *testing.T) {
		m := confirmModel{prompt: "Proceed?"}
		require.Contains(t, m.View(), "[y/N]")

		m.choice = true
		require.Contains(t, m.View(), "[Y/n]")
	})
}

func TestBranchSelectModel(t *testing.T) {
	newModel := func() BranchSelectModel {
		m := BranchSelectModel{
			Choices: []string{"main", "feature", "feature-fix"},
			Message: "Pick the source branch",
		}
		m.updateFiltered()
		return m
	}

	t.Run("typing narrows the choices", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fea")})
		final := updated.(BranchSelectModel)
		require.Equal(t, "fea", final.Filter)
		require.Equal(t, []string{"feature", "feature-fix"}, final.Filtered)
	})

	t.Run("backspace widens the filter again", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
		narrowed := updated.(BranchSelectModel)
		require.Empty(t, narrowed.Filtered)

		updated, _ = narrowed.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		final := updated.(BranchSelectModel)
		require.Equal(t, []string{"main", "feature", "feature-fix"}, final.Filtered)
	})

	t.Run("cursor wraps at both ends", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyUp})
		atEnd := updated.(BranchSelectModel)
		require.Equal(t, 2, atEnd.Cursor)

		updated, _ = atEnd.Update(tea.KeyMsg{Type: tea.KeyDown})
		final := updated.(BranchSelectModel)
		require.Equal(t, 0, final.Cursor)
	})

	t.Run("enter selects the highlighted branch", func(t *testing.T) {
		m := newModel()
		m.Cursor = 1
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		final := updated.(BranchSelectModel)
		require.True(t, final.Done)
		require.Equal(t, "feature", final.Selected)
	})

	t.Run("escape cancels", func(t *testing.T) {
		updated, _ := newModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
		final := updated.(BranchSelectModel)
		require.True(t, final.Done)
		require.Error(t, final.Err)
	})

	t.Run("view names the message and the empty filter state", func(t *testing.T) {
		m := newModel()
		require.Contains(t, m.View(), "Pick the source branch")
		require.Contains(t, m.View(), "feature-fix")

		m.Filter = "zz"
		m.updateFiltered()
		require.Contains(t, m.View(), "No branches match")
	})
}
