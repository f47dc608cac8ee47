package emotion

// Arc represents the overall shape of an emotional journey.
type Arc string

const (
	ArcAscending      Arc = "ascending"      // Building energy and positivity
	ArcDescending     Arc = "descending"     // Deepening into contemplative states
	ArcWavy           Arc = "wavy"           // Rhythmic emotional oscillation
	ArcStable         Arc = "stable"         // Maintaining a consistent state
	ArcResolution     Arc = "resolution"     // Moving toward peace/clarity
	ArcTransformation Arc = "transformation" // Major emotional shift
)

// ParseArc parses an arc name. The second return value reports whether
// the name was recognized.
func ParseArc(s string) (Arc, bool) {
	switch Arc(s) {
	case ArcAscending, ArcDescending, ArcWavy, ArcStable, ArcResolution, ArcTransformation:
		return Arc(s), true
	}
	return ArcStable, false
}

// TransitionStyle represents how emotions shift between adjacent tracks.
type TransitionStyle string

const (
	TransitionSmooth   TransitionStyle = "smooth"   // Gradual, barely perceptible changes
	TransitionStepwise TransitionStyle = "stepwise" // Clear but gentle transitions
	TransitionContrast TransitionStyle = "contrast" // Deliberate emotional contrasts
	TransitionBridge   TransitionStyle = "bridge"   // Using transitional elements
	TransitionSurprise TransitionStyle = "surprise" // Unexpected but meaningful jumps
)

// ParseTransitionStyle parses a transition style name.
func ParseTransitionStyle(s string) (TransitionStyle, bool) {
	switch TransitionStyle(s) {
	case TransitionSmooth, TransitionStepwise, TransitionContrast, TransitionBridge, TransitionSurprise:
		return TransitionStyle(s), true
	}
	return TransitionSmooth, false
}
