package lifecycle

// Tone is the badge colour family used by the UI.
type Tone string

const (
	ToneBlue  Tone = "blue"
	ToneGreen Tone = "green"
	ToneAmber Tone = "amber"
	ToneGray  Tone = "gray"
)

// Gender selects the agreement of the French label ("Semé" vs "Semée").
type Gender int

const (
	Masculine Gender = iota
	Feminine
)

// Metadata is the display vocabulary attached to a status.
type Metadata struct {
	Status         Status `json:"status"`
	LabelMasculine string `json:"labelMasculine"`
	LabelFeminine  string `json:"labelFeminine"`
	Tone           Tone   `json:"tone"`
	BadgeClass     string `json:"badgeClass"`
}

var metadata = map[Status]Metadata{
	StatusPlanted: {
		Status:         StatusPlanted,
		LabelMasculine: "Semé",
		LabelFeminine:  "Semée",
		Tone:           ToneBlue,
		BadgeClass:     "bg-blue-100 text-blue-800",
	},
	StatusGrowing: {
		Status:         StatusGrowing,
		LabelMasculine: "En croissance",
		LabelFeminine:  "En croissance",
		Tone:           ToneGreen,
		BadgeClass:     "bg-green-100 text-green-800",
	},
	StatusReady: {
		Status:         StatusReady,
		LabelMasculine: "Prêt à récolter",
		LabelFeminine:  "Prête à récolter",
		Tone:           ToneAmber,
		BadgeClass:     "bg-amber-100 text-amber-800",
	},
	StatusHarvested: {
		Status:         StatusHarvested,
		LabelMasculine: "Récolté",
		LabelFeminine:  "Récoltée",
		Tone:           ToneGray,
		BadgeClass:     "bg-gray-100 text-gray-800",
	},
}

// Describe returns the metadata row for s. The second value is false for
// statuses outside the vocabulary.
func Describe(s Status) (Metadata, bool) {
	m, ok := metadata[s]
	return m, ok
}

// Label returns the French label for s, or the raw value when s is unknown.
func (s Status) Label(g Gender) string {
	m, ok := metadata[s]
	if !ok {
		return string(s)
	}
	if g == Feminine {
		return m.LabelFeminine
	}
	return m.LabelMasculine
}

func (s Status) Tone() Tone {
	return metadata[s].Tone
}

// Catalog lists the metadata for every status in cycle order.
func Catalog() []Metadata {
	out := make([]Metadata, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, metadata[s])
	}
	return out
}
