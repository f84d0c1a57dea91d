package result

func (m Model) View() string {
	return m.panel.Render(m.viewport.View())
}
