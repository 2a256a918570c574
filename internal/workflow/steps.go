package workflow

// CalibrationStep is one movement the operator performs while the service
// captures EMG data.
type CalibrationStep struct {
	ID          int
	Movement    string
	Description string

	// Completed is reserved for a per-step completion marker. Progress is
	// tracked by Session.CurrentStep; this field is never set.
	Completed bool
}

// calibrationSteps is the capture order. Index equals ID, and the service
// labels each captured sample with it.
var calibrationSteps = [...]CalibrationStep{
	{ID: 0, Movement: "Mano Abierta", Description: "Mantén la mano completamente abierta"},
	{ID: 1, Movement: "Mano Cerrada", Description: "Cierra el puño completamente"},
	{ID: 2, Movement: "Punzada Fina", Description: "Realiza un agarre de precisión"},
	{ID: 3, Movement: "Punzada Gruesa", Description: "Realiza un agarre fuerte"},
	{ID: 4, Movement: "Mano Adentro", Description: "Dobla tu muñeca hacia tu antebrazo"},
	{ID: 5, Movement: "Mano Afuera", Description: "Dobla tu muñeca hacia la parte exterior del brazo"},
}

const (
	// StepCount is the number of calibration movements.
	StepCount = len(calibrationSteps)

	// LastStep is the index whose successful capture completes calibration.
	LastStep = StepCount - 1
)

// Steps returns a copy of the calibration table.
func Steps() [StepCount]CalibrationStep {
	return calibrationSteps
}

// Step returns the step at index i.
func Step(i int) (CalibrationStep, bool) {
	if i < 0 || i >= StepCount {
		return CalibrationStep{}, false
	}
	return calibrationSteps[i], true
}
