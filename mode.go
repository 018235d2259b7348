package pagegist

// Mode selects the summarization style. The backend interprets it; the
// client only forwards it.
type Mode string

// Mode constants.
const (
	ModeLikeIAm5     Mode = "like_i_am_5"
	ModeDefault      Mode = "default"
	ModeConcise      Mode = "concise"
	ModeDetailed     Mode = "detailed"
	ModeBulletPoints Mode = "bullet_points"
)

// DefaultMode is the mode selected before the user picks one.
const DefaultMode = ModeLikeIAm5

// Modes returns every supported mode in display order.
func Modes() []Mode {
	return []Mode{ModeLikeIAm5, ModeDefault, ModeConcise, ModeDetailed, ModeBulletPoints}
}

// ParseMode returns the mode named s. Returns EINVALID for unknown names.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", Errorf(EINVALID, "unknown mode %q", s)
}

var systemPrompts = map[Mode]string{
	ModeDefault:      "Summarize the following content.",
	ModeLikeIAm5:     "Summarize the following content so that a five-year-old could understand it. Use short sentences and everyday words.",
	ModeConcise:      "Summarize the following content in at most three sentences.",
	ModeDetailed:     "Write a detailed summary of the following content, covering every main point in order.",
	ModeBulletPoints: "Summarize the following content as a short list of bullet points.",
}

// SystemPrompt returns the instruction for mode. Unknown modes get the
// default prompt.
func SystemPrompt(mode Mode) string {
	if p, ok := systemPrompts[mode]; ok {
		return p
	}
	return systemPrompts[ModeDefault]
}
