// Package learn holds the shared learner state: who the user is, which
// persona they chose, and the progress figures that follow them around
// the app.
package learn

import "fmt"

// Persona is the learner track the user picked at onboarding. It tunes
// every prompt the app sends.
type Persona string

const (
	PersonaStudent     Persona = "Student"
	PersonaFresher     Persona = "Fresher"
	PersonaExperienced Persona = "Experienced"
)

// Personas lists every track in selection order.
var Personas = []Persona{PersonaStudent, PersonaFresher, PersonaExperienced}

// ParsePersona maps a stored string back to a Persona.
func ParsePersona(s string) (Persona, error) {
	switch Persona(s) {
	case PersonaStudent, PersonaFresher, PersonaExperienced:
		return Persona(s), nil
	}
	return "", fmt.Errorf("unknown persona %q", s)
}

// Description returns the one-line pitch shown on the persona picker.
func (p Persona) Description() string {
	switch p {
	case PersonaStudent:
		return "School & college subjects, explained from first principles"
	case PersonaFresher:
		return "Land the first job: resumes, interviews, core skills"
	case PersonaExperienced:
		return "Level up: architecture, leadership, career strategy"
	default:
		return ""
	}
}

// Languages the tutor and story screens can respond in.
var Languages = []string{
	"English", "Hindi", "Tamil", "Telugu", "Kannada", "Malayalam",
	"Bengali", "Marathi", "Gujarati", "Punjabi", "Odia",
}

// DefaultLanguage is used until the user cycles to another.
const DefaultLanguage = "English"

// NextLanguage returns the language after cur in the cycle, wrapping
// at the end. Unknown values restart at the default.
func NextLanguage(cur string) string {
	for i, l := range Languages {
		if l == cur {
			return Languages[(i+1)%len(Languages)]
		}
	}
	return DefaultLanguage
}
