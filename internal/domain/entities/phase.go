package entities

// Phase is one of the four cycle phases.
type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

const (
	minPeriodLength = 3
	maxPeriodLength = 8
	minOvulation    = 10
	lutealDays      = 14
)


func (p Phase) Title() string {
	switch p {
	case PhaseMenstrual:
		return "Menstrual"
	case PhaseFollicular:
		return "Follicular"
	case PhaseOvulatory:
		return "Ovulatory"
	case PhaseLuteal:
		return "Luteal"
	}
	return string(p)
}

func (p Phase) Emoji() string {
	switch p {
	case PhaseMenstrual:
		return "🩸"
	case PhaseFollicular:
		return "🌱"
	case PhaseOvulatory:
		return "🔥"
	case PhaseLuteal:
		return "🌙"
	}
	return ""
}

// Advice returns the built-in tips for the phase.
func (p Phase) Advice() []string {
	switch p {
	case PhaseMenstrual:
		return []string{
			"Take over a chore without being asked.",
			"Keep a heat pad and snacks within reach.",
			"Save big conversations for later.",
		}
	case PhaseFollicular:
		return []string{
			"Say yes to spontaneous plans.",
			"Try something new together.",
			"Back new projects and ideas.",
		}
	case PhaseOvulatory:
		return []string{
			"Plan a date night.",
			"Good window for deeper talks.",
			"Team up on something ambitious.",
		}
	case PhaseLuteal:
		return []string{
			"Keep plans predictable.",
			"Offer comfort food and quiet evenings.",
			"Let small things slide.",
		}
	}
	return nil
}

// Range is an inclusive range of cycle days.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	return r.End - r.Start + 1
}

func (r Range) Contains(day int) bool {
	return day >= r.Start && day <= r.End
}

// PhaseBounds partitions [1, cycle length] into the four phases.
type PhaseBounds struct {
	CycleLength int
	Menstrual   Range
	Follicular  Range
	Ovulatory   Range
	Luteal      Range
}

// Bounds derives phase ranges for a cycle. The period length is clamped to [3,8]
// and the ovulatory window is centered at max(10, L-14). Every range is kept
// non-empty, so each day of the cycle maps to exactly one phase.
func Bounds(cycleLength, periodLength int) PhaseBounds {
	p := min(max(periodLength, minPeriodLength), maxPeriodLength)
	center := max(minOvulation, cycleLength-lutealDays)

	ovStart := max(p+2, center-1)
	ovEnd := max(ovStart, min(cycleLength-1, center+1))

	return PhaseBounds{
		CycleLength: cycleLength,
		Menstrual:   Range{Start: 1, End: p},
		Follicular:  Range{Start: p + 1, End: ovStart - 1},
		Ovulatory:   Range{Start: ovStart, End: ovEnd},
		Luteal:      Range{Start: ovEnd + 1, End: max(ovEnd+1, cycleLength)},
	}
}

func (b PhaseBounds) Range(p Phase) Range {
	switch p {
	case PhaseMenstrual:
		return b.Menstrual
	case PhaseFollicular:
		return b.Follicular
	case PhaseOvulatory:
		return b.Ovulatory
	default:
		return b.Luteal
	}
}

// PhaseOf maps a cycle day to its phase. Days past the ovulatory window are luteal.
func (b PhaseBounds) PhaseOf(day int) Phase {
	switch {
	case day <= b.Menstrual.End:
		return PhaseMenstrual
	case day <= b.Follicular.End:
		return PhaseFollicular
	case day <= b.Ovulatory.End:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}

// Stat names a tracked mood/body level.
type Stat string

const (
	StatEnergy       Stat = "energy"
	StatMood         Stat = "mood"
	StatSocial       Stat = "social"
	StatCravings     Stat = "cravings"
	StatIrritability Stat = "irritability"
	StatFocus        Stat = "focus"
	StatLibido       Stat = "libido"
	StatAnxiety      Stat = "anxiety"
)

// Stats holds levels from 1 (low) to 5 (high).
type Stats struct {
	Energy       int
	Mood         int
	Social       int
	Cravings     int
	Irritability int
	Focus        int
	Libido       int
	Anxiety      int
}

func (s Stats) Level(stat Stat) int {
	switch stat {
	case StatEnergy:
		return s.Energy
	case StatMood:
		return s.Mood
	case StatSocial:
		return s.Social
	case StatCravings:
		return s.Cravings
	case StatIrritability:
		return s.Irritability
	case StatFocus:
		return s.Focus
	case StatLibido:
		return s.Libido
	case StatAnxiety:
		return s.Anxiety
	}
	return 0
}

func baseStats(p Phase) Stats {
	switch p {
	case PhaseMenstrual:
		return Stats{Energy: 2, Mood: 2, Social: 2, Cravings: 4, Irritability: 3, Focus: 2, Libido: 2, Anxiety: 3}
	case PhaseFollicular:
		return Stats{Energy: 4, Mood: 4, Social: 4, Cravings: 2, Irritability: 2, Focus: 4, Libido: 3, Anxiety: 2}
	case PhaseOvulatory:
		return Stats{Energy: 5, Mood: 5, Social: 5, Cravings: 2, Irritability: 1, Focus: 4, Libido: 5, Anxiety: 1}
	default:
		return Stats{Energy: 3, Mood: 3, Social: 3, Cravings: 4, Irritability: 4, Focus: 3, Libido: 3, Anxiety: 3}
	}
}

// StatsFor returns the levels for a cycle day, shifted by how far into its phase the day is.
func (b PhaseBounds) StatsFor(day int) Stats {
	phase := b.PhaseOf(day)
	r := b.Range(phase)
	s := baseStats(phase)

	t := float64(day-r.Start) / float64(max(1, r.End-r.Start))

	switch phase {
	case PhaseMenstrual:
		if t < 0.3 {
			s.Energy = max(1, s.Energy-1)
		}
	case PhaseFollicular:
		if t > 0.6 {
			s.Energy = min(5, s.Energy+1)
		}
		if t > 0.7 {
			s.Libido = min(5, s.Libido+1)
		}
	case PhaseLuteal:
		if t > 0.6 {
			s.Mood = max(1, s.Mood-1)
			s.Focus = max(1, s.Focus-1)
		}
		if t > 0.7 {
			s.Irritability = min(5, s.Irritability+1)
		}
	}

	return s
}

// DayPhase describes one cycle day.
type DayPhase struct {
	Day      int
	Phase    Phase
	Position int // 1-based day within the phase
	Length   int // phase length in days
	Stats    Stats
	Advice   []string
}

// PhaseForDay looks up the phase of a cycle day. It is total over [1, cycleLength].
func PhaseForDay(day, cycleLength, periodLength int) DayPhase {
	return Bounds(cycleLength, periodLength).Day(day)
}

func (b PhaseBounds) Day(day int) DayPhase {
	phase := b.PhaseOf(day)
	r := b.Range(phase)

	return DayPhase{
		Day:      day,
		Phase:    phase,
		Position: day - r.Start + 1,
		Length:   r.Len(),
		Stats:    b.StatsFor(day),
		Advice:   phase.Advice(),
	}
}

// NextPhaseStart returns the first day of the phase after the one containing day,
// or false when day is already in the last phase of the cycle.
func (b PhaseBounds) NextPhaseStart(day int) (int, Phase, bool) {
	r := b.Range(b.PhaseOf(day))
	if r.End >= b.CycleLength {
		return 0, "", false
	}
	next := r.End + 1
	return next, b.PhaseOf(next), true
}
