package cli

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nconklindev/tabscope/internal/session"
	"github.com/nconklindev/tabscope/internal/ui"
)

func runTUI(a *app, args []string) error {
	dir, _ := os.Getwd()
	sess := session.New()

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		if info.IsDir() {
			dir = arg
			continue
		}
		if added, _ := sess.Add(arg); added == 0 {
			logger.Warn("Skipping file", "path", arg)
		}
	}

	m := ui.InitialModel(ui.Options{
		Dir:     dir,
		Session: sess,
		MaxRows: a.cfg.MaxRows,
		Workers: a.cfg.Workers,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
