package lessons

// staticLessons holds pre-authored content keyed "Subject-Title".
// Anything missing here is generated on demand.
var staticLessons = map[string]string{
	"Physics-Introduction & Fundamentals": `# Introduction to Physics

Physics is the study of matter, energy, and the interactions between them.

## Core Ideas
- **Motion**: described by displacement, velocity, and acceleration.
- **Forces**: a push or pull; Newton's laws connect force and motion.
- **Energy**: the capacity to do work, conserved across transformations.

## Why It Matters
Every engineered system, from bridges to satellites, is an applied physics
problem. Mastering the fundamentals makes the rest of the track far easier.

**Takeaway**: learn to reason in units and orders of magnitude before
reaching for formulas.`,

	"Mathematics-Introduction & Fundamentals": `# Introduction to Mathematics

Mathematics is the language of patterns and precise reasoning.

## Core Ideas
- **Algebra**: manipulating symbols to solve for unknowns.
- **Geometry**: shapes, space, and measurement.
- **Functions**: rules mapping inputs to outputs, the backbone of modelling.

## Practice
Work small problems daily. Fluency comes from repetition, not memorisation.

**Takeaway**: understand *why* a rule works and you will never need to
memorise it.`,

	"Resume Building-Introduction & Fundamentals": `# Resume Building: The Fundamentals

Your resume has one job: earn an interview in under thirty seconds of
screening.

## Structure
1. **Header** — name, phone, email, LinkedIn.
2. **Summary** — two lines, tailored to the role.
3. **Experience** — bullet points that start with action verbs and end
   with measurable outcomes.
4. **Skills & Education** — keep them scannable.

## Common Mistakes
- Listing duties instead of results.
- One generic resume for every application.

**Takeaway**: quantify everything you can. "Improved build time by 40%"
beats "worked on build tooling".`,

	"System Architecture-Introduction & Fundamentals": `# System Architecture: The Fundamentals

Architecture is the set of decisions that are expensive to change.

## Core Ideas
- **Separation of concerns**: components with one reason to change.
- **Trade-offs**: latency vs consistency, simplicity vs flexibility.
- **Evolution**: good architectures make the next change cheap.

## A Useful Habit
Before drawing boxes, write down the top three qualities the system must
have (e.g. availability, auditability, cost), then let those drive the
design.

**Takeaway**: there are no right architectures, only fitting ones.`,
}

// StaticLesson returns pre-authored content for a subject/title pair.
func StaticLesson(subject, title string) (string, bool) {
	content, ok := staticLessons[subject+"-"+title]
	return content, ok
}
