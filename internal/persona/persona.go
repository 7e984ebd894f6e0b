package persona

// Mode identifies one of the two fixed personas.
type Mode int

const (
	Eva Mode = iota
	Miku
)

const (
	ModeMiku = "miku"
	ModeEva  = "eva"

	// DefaultMaxTokens caps every completion regardless of persona.
	DefaultMaxTokens = 512
)

// Persona is an immutable prompt and sampling configuration.
type Persona struct {
	Mode         Mode
	Name         string
	SystemPrompt string
	Temperature  float64
	MaxTokens    int
}

var registry = map[Mode]Persona{
	Miku: {
		Mode:         Miku,
		Name:         "Miku",
		SystemPrompt: mikuSystemPrompt,
		Temperature:  0.9,
		MaxTokens:    DefaultMaxTokens,
	},
	Eva: {
		Mode:         Eva,
		Name:         "Eva",
		SystemPrompt: evaSystemPrompt,
		Temperature:  0.5,
		MaxTokens:    DefaultMaxTokens,
	},
}

// Resolve maps a raw mode string to a Mode. Only the exact "miku" identifier
// selects Miku; every other value, including empty and differently-cased
// input, selects Eva.
func Resolve(mode string) Mode {
	if mode == ModeMiku {
		return Miku
	}
	return Eva
}

// Lookup returns the persona for m.
func Lookup(m Mode) Persona {
	if p, ok := registry[m]; ok {
		return p
	}
	return registry[Eva]
}

// For resolves and looks up in one step.
func For(mode string) Persona {
	return Lookup(Resolve(mode))
}

func (m Mode) String() string {
	if m == Miku {
		return ModeMiku
	}
	return ModeEva
}

// All returns every mode in a stable order.
func All() []Mode {
	return []Mode{Miku, Eva}
}
