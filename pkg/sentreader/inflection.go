package sentreader

import "strings"

// Inflection is one morphological transformation between a dictionary lexeme
// and an observed surface.
type Inflection int

const (
	InflPolite Inflection = iota
	InflNegative
	InflPast
	InflTeForm
	InflCausative
	InflPassive
	InflPotential
	InflVolitional
	InflImperative
	InflConditional
	InflTai
)

// Name returns the English name of the inflection.
func (i Inflection) Name() string {
	switch i {
	case InflPolite:
		return "Polite"
	case InflNegative:
		return "Negative"
	case InflPast:
		return "Past"
	case InflTeForm:
		return "Te form"
	case InflCausative:
		return "Causative"
	case InflPassive:
		return "Passive"
	case InflPotential:
		return "Potential"
	case InflVolitional:
		return "Volitional"
	case InflImperative:
		return "Imperative"
	case InflConditional:
		return "Conditional"
	case InflTai:
		return "Tai form"
	}
	return "Unknown"
}

// parseInflections interprets the auxiliary morphemes following a part's head
// as an ordered inflection chain. Repeated auxiliaries (でした after ません)
// collapse onto their first occurrence.
func parseInflections(head *Morpheme, aux []Morpheme) []Inflection {
	var out []Inflection
	add := func(infl Inflection) {
		for _, existing := range out {
			if existing == infl {
				return
			}
		}
		out = append(out, infl)
	}

	if head != nil && strings.Contains(head.ConjForm, "命令") {
		add(InflImperative)
	}

	for i := range aux {
		m := &aux[i]
		switch m.DictForm() {
		case "ます", "です":
			add(InflPolite)
		case "ない", "ぬ", "ん", "ず":
			add(InflNegative)
		case "た", "だ":
			add(InflPast)
		case "させる", "せる":
			add(InflCausative)
		case "られる", "れる":
			add(InflPassive)
		case "たい":
			add(InflTai)
		case "う", "よう":
			add(InflVolitional)
		case "ば":
			add(InflConditional)
		case "て", "で":
			if m.Class == ClassParticle {
				add(InflTeForm)
			}
		}
	}
	return out
}
