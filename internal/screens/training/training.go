package training

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/prostheticlab/myoctl/internal/screen"
	"github.com/prostheticlab/myoctl/internal/ui/components"
	"github.com/prostheticlab/myoctl/internal/ui/layout"
	"github.com/prostheticlab/myoctl/internal/ui/theme"
	"github.com/prostheticlab/myoctl/internal/workflow"
)

// TrainingScreen starts model training and shows the resulting accuracy.
// Once a model exists, training again needs confirmation.
type TrainingScreen struct {
	flow    *workflow.Workflow
	train   components.Button
	retrain components.Button
	spinner components.Spinner
}

var _ screen.Screen = (*TrainingScreen)(nil)

// New creates the training screen over flow.
func New(flow *workflow.Workflow) *TrainingScreen {
	return &TrainingScreen{
		flow:  flow,
		train: components.NewButton("Iniciar Entrenamiento", "Entrenando modelo...", flow.Training.Train),
		retrain: components.NewButton("Volver a entrenar el modelo", "Entrenando modelo...", func() tea.Cmd {
			flow.Training.RequestRetrain()
			return nil
		}),
		spinner: components.NewSpinner(),
	}
}

func (t *TrainingScreen) Init() tea.Cmd {
	return t.spinner.Init()
}

func (t *TrainingScreen) Title() string {
	return "Entrenamiento de IA"
}

func (t *TrainingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var spinCmd tea.Cmd
	t.spinner, spinCmd = t.spinner.Update(msg)

	st := t.flow.State()
	if kmsg, ok := msg.(tea.KeyMsg); ok && st.Session.ConfirmingRetrain {
		key := kmsg.String()
		switch {
		case components.IsConfirmKey(key):
			return t, tea.Batch(spinCmd, t.flow.Training.ConfirmRetrain())
		case components.IsDenyKey(key):
			t.flow.Training.CancelRetrain()
		}
		return t, spinCmd
	}

	var pressCmd tea.Cmd
	if st.Progress.TrainingCompleted {
		t.retrain, pressCmd = withActive(t.retrain, !st.Session.Training).Update(msg)
	} else {
		t.train, pressCmd = withActive(t.train, !st.Session.Training).Update(msg)
	}
	return t, tea.Batch(spinCmd, pressCmd)
}

func withActive(b components.Button, active bool) components.Button {
	b.Active = active
	return b
}

func (t *TrainingScreen) View(width, height int) string {
	st := t.flow.State()
	sess := st.Session

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(t.Title()))
	b.WriteString("\n\n")

	if !st.Progress.TrainingCompleted {
		b.WriteString(theme.Body.Render("Los datos de calibración están listos. Inicia el entrenamiento del modelo."))
		b.WriteString("\n\n")
		b.WriteString(withActive(t.train, !sess.Training).View())
	} else {
		b.WriteString(theme.Done.Render("¡El modelo ha sido entrenado exitosamente!"))
		b.WriteString("\n")
		if !sess.Training {
			b.WriteString(theme.Body.Render("Precisión del modelo: " + formatAccuracy(sess) + "%"))
			b.WriteString("\n")
			if sess.HasAccuracy {
				b.WriteString(components.NewProgressBar("", sess.Accuracy/100, false, min(width-4, 60)).View())
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
		b.WriteString(withActive(t.retrain, !sess.Training).View())
	}
	if sess.Training {
		b.WriteString("  ")
		b.WriteString(t.spinner.View("Esto puede tardar varios minutos"))
	}
	b.WriteString("\n")

	if sess.ConfirmingRetrain {
		b.WriteString("\n")
		b.WriteString(components.ConfirmPrompt("¿Seguro que deseas volver a entrenar el modelo?"))
		b.WriteString("\n")
	}
	if sess.Notice != "" {
		b.WriteString("\n")
		b.WriteString(components.Notice(sess.Notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// formatAccuracy prints the accuracy as the service reported it, or an
// ellipsis while it is unknown.
func formatAccuracy(sess workflow.Session) string {
	if !sess.HasAccuracy {
		return "..."
	}
	return strconv.FormatFloat(sess.Accuracy, 'f', -1, 64)
}

func (t *TrainingScreen) KeyHints() []layout.KeyHint {
	if t.flow.State().Session.ConfirmingRetrain {
		return []layout.KeyHint{
			{Key: "S", Description: "Confirmar"},
			{Key: "N", Description: "Cancelar"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Entrenar"},
		{Key: "Esc", Description: "Volver"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}
