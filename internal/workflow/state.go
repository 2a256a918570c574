package workflow

// Section is one of the top-level workflow screens.
type Section int

const (
	SectionMenu Section = iota
	SectionCalibration
	SectionTraining
	SectionExecution
)

func (s Section) String() string {
	switch s {
	case SectionMenu:
		return "menu"
	case SectionCalibration:
		return "calibration"
	case SectionTraining:
		return "training"
	case SectionExecution:
		return "execution"
	}
	return "unknown"
}

// Connectivity is the last known armband link state.
type Connectivity int

const (
	ConnectivityUnknown Connectivity = iota
	Connected
	Disconnected
)

func (c Connectivity) String() string {
	switch c {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	}
	return "unknown"
}

// Session is the volatile part of the workflow state. It is never
// persisted; a restart always begins from NewState.
type Session struct {
	Section     Section
	CurrentStep int

	// Busy flags. Each guards re-entry into one controller's action.
	Collecting   bool
	Training     bool
	Running      bool
	Toggling     bool
	Reconnecting bool
	PoweringOff  bool

	Connectivity Connectivity

	Accuracy    float64
	HasAccuracy bool

	PowerOn            bool
	ConfirmingPowerOff bool
	ConfirmingRetrain  bool

	// Notice is the last operator-facing failure, cleared when a new
	// action starts or the section changes.
	Notice string
}

// State is everything the workflow tracks.
type State struct {
	Session  Session
	Progress Progress
}

// NewState returns the startup state.
func NewState() State {
	return State{
		Session: Session{
			Section: SectionMenu,
			PowerOn: true,
		},
	}
}

// Mutation is a named change to State. Controllers request mutations
// through the Router; nothing else writes State.
type Mutation interface {
	apply(*State)
}

type readinessLoaded struct{ Progress Progress }

func (m readinessLoaded) apply(s *State) { s.Progress = m.Progress }

type sectionEntered struct{ Section Section }

func (m sectionEntered) apply(s *State) {
	s.Session.Section = m.Section
	s.Session.ConfirmingPowerOff = false
	s.Session.ConfirmingRetrain = false
	s.Session.Notice = ""
}

type noticeSet struct{ Notice string }

func (m noticeSet) apply(s *State) { s.Session.Notice = m.Notice }

// Calibration.

type captureStarted struct{}

func (captureStarted) apply(s *State) {
	s.Session.Collecting = true
	s.Session.Notice = ""
}

type captureSucceeded struct{ Step int }

func (m captureSucceeded) apply(s *State) {
	s.Session.Collecting = false
	if m.Step < LastStep {
		s.Session.CurrentStep = m.Step + 1
		return
	}
	s.Progress.CalibrationCompleted = true
}

type captureFailed struct{ Notice string }

func (m captureFailed) apply(s *State) {
	s.Session.Collecting = false
	s.Session.Notice = m.Notice
}

type captureAbandoned struct{}

func (captureAbandoned) apply(s *State) { s.Session.Collecting = false }

// Training.

type trainingStarted struct{}

func (trainingStarted) apply(s *State) {
	s.Session.Training = true
	s.Session.ConfirmingRetrain = false
	s.Session.Notice = ""
}

type trainingSucceeded struct{}

func (trainingSucceeded) apply(s *State) {
	s.Session.Training = false
	s.Progress.TrainingCompleted = true
	s.Progress.ModelReady = true
}

type trainingFailed struct{ Notice string }

func (m trainingFailed) apply(s *State) {
	s.Session.Training = false
	s.Session.Notice = m.Notice
}

type trainingAbandoned struct{}

func (trainingAbandoned) apply(s *State) { s.Session.Training = false }

type retrainPrompt struct{ Open bool }

func (m retrainPrompt) apply(s *State) { s.Session.ConfirmingRetrain = m.Open }

type accuracyLoaded struct{ Value float64 }

func (m accuracyLoaded) apply(s *State) {
	s.Session.Accuracy = m.Value
	s.Session.HasAccuracy = true
}

// Connection.

type reconnectStarted struct{}

func (reconnectStarted) apply(s *State) {
	s.Session.Reconnecting = true
	s.Session.Notice = ""
}

type connectionResolved struct {
	Connected bool
	Notice    string
	Keep      bool // leave Session.Notice untouched
}

func (m connectionResolved) apply(s *State) {
	s.Session.Reconnecting = false
	if m.Connected {
		s.Session.Connectivity = Connected
	} else {
		s.Session.Connectivity = Disconnected
	}
	if !m.Keep {
		s.Session.Notice = m.Notice
	}
}

// Power.

type powerPrompt struct{ Open bool }

func (m powerPrompt) apply(s *State) { s.Session.ConfirmingPowerOff = m.Open }

type poweredOn struct{}

func (poweredOn) apply(s *State) { s.Session.PowerOn = true }

type powerOffStarted struct{}

func (powerOffStarted) apply(s *State) {
	s.Session.PoweringOff = true
	s.Session.Notice = ""
}

type powerOffResolved struct {
	OK     bool
	Notice string
}

func (m powerOffResolved) apply(s *State) {
	s.Session.PoweringOff = false
	s.Session.ConfirmingPowerOff = false
	if m.OK {
		s.Session.PowerOn = false
	}
	s.Session.Notice = m.Notice
}

type powerOffAbandoned struct{}

func (powerOffAbandoned) apply(s *State) {
	s.Session.PoweringOff = false
	s.Session.ConfirmingPowerOff = false
}

// Execution.

type toggleStarted struct{}

func (toggleStarted) apply(s *State) {
	s.Session.Toggling = true
	s.Session.Notice = ""
}

type toggleResolved struct {
	OK     bool
	Notice string
}

func (m toggleResolved) apply(s *State) {
	s.Session.Toggling = false
	if m.OK {
		s.Session.Running = !s.Session.Running
	}
	s.Session.Notice = m.Notice
}

type toggleAbandoned struct{}

func (toggleAbandoned) apply(s *State) { s.Session.Toggling = false }
