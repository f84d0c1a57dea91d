package menu

func (m Model) View() string {
	return m.panel.Render(m.list.View())
}
