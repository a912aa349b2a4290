// Package lessons serves lesson content: a static lookup table first,
// the AI gateway on a miss, with generated lessons cached in memory for
// the rest of the run.
package lessons

import "github.com/careerco/companion/internal/learn"

// subjectsByPersona maps each persona to its subject track.
var subjectsByPersona = map[learn.Persona][]string{
	learn.PersonaStudent: {
		"Physics", "Chemistry", "Biology", "Mathematics", "Computer Science",
		"Humanities", "Geography", "Economics", "English Literature", "Arts",
	},
	learn.PersonaFresher: {
		"Resume Building", "Interview Preparation", "Aptitude Tests", "Data Structures",
		"System Design Basics", "Soft Skills", "Corporate Etiquette", "LinkedIn Growth",
		"Email Writing", "Basic Finance",
	},
	learn.PersonaExperienced: {
		"System Architecture", "Team Leadership", "Project Management", "Agile Methodologies",
		"Cloud Computing", "Strategic Planning", "Negotiation", "Mentorship",
		"Work-Life Balance", "Financial Independence",
	},
}

// Titles is the fixed lesson sequence offered for every subject.
var Titles = []string{
	"Introduction & Fundamentals", "Core Concepts Deep Dive", "Advanced Techniques",
	"Case Studies", "Modern Applications", "Common Pitfalls", "Expert Best Practices",
	"Future Trends", "Practical Workshop", "Final Review",
}

// Subjects returns the subject track for a persona, defaulting to the
// student track for anything unknown.
func Subjects(p learn.Persona) []string {
	if s, ok := subjectsByPersona[p]; ok {
		return s
	}
	return subjectsByPersona[learn.PersonaStudent]
}
