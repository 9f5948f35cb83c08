package entities

var fallbackCopy = map[string]string{
	"phase_desc_menstrual":  "Menstrual phase: lower energy, more sensitivity. Comfort + calm help most.",
	"phase_desc_follicular": "Follicular phase: energy rises, mood often steadier. Great time for plans and progress.",
	"phase_desc_ovulatory":  "Ovulatory phase: peak social/sexual drive, confidence and communication often stronger.",
	"phase_desc_luteal":     "Luteal phase: energy declines, irritability can rise. Reduce stress, keep things predictable.",
	"help_menstrual":        "Warmth + patience. Keep plans light. Offer food/tea and quiet support.",
	"help_follicular":       "Encourage ideas + movement. Plan something fun. Celebrate momentum.",
	"help_ovulatory":        "Compliments + connection. Great for dates, deeper talks, and teamwork.",
	"help_luteal":           "Reassure, don't debate. Lower demands. Provide space + stability.",
}

// Copy is an immutable snapshot of user-facing texts. Missing keys fall back to built-ins.
type Copy struct {
	texts map[string]string
}

// NewCopy builds a snapshot from overrides; empty override values are ignored.
func NewCopy(overrides map[string]string) Copy {
	texts := make(map[string]string, len(fallbackCopy)+len(overrides))
	for k, v := range fallbackCopy {
		texts[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			texts[k] = v
		}
	}
	return Copy{texts: texts}
}

func (c Copy) Text(key string) string {
	if t, ok := c.texts[key]; ok {
		return t
	}
	return fallbackCopy[key]
}

func (c Copy) Description(p Phase) string {
	return c.Text("phase_desc_" + string(p))
}

func (c Copy) Help(p Phase) string {
	return c.Text("help_" + string(p))
}
