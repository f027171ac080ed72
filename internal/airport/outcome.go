package airport

// Outcome is the result of a landing or launch request. The Denied values
// are expected operational refusals, not errors.
type Outcome int

const (
	NoOutcome Outcome = iota
	Cleared
	DeniedWeather
	DeniedHangarFull
	DeniedNotInHangar
	DeniedAlreadyLanded
)

var outcomeNames = map[Outcome]string{
	NoOutcome:           "none",
	Cleared:             "cleared",
	DeniedWeather:       "denied_weather",
	DeniedHangarFull:    "denied_hangar_full",
	DeniedNotInHangar:   "denied_not_in_hangar",
	DeniedAlreadyLanded: "denied_already_landed",
}

// Granted reports whether the request went through
func (o Outcome) Granted() bool {
	return o == Cleared
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return "unknown"
}
