package learn

// User identifies the signed-in account.
type User struct {
	UID         string
	Username    string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Stage is how far through onboarding the session has progressed.
type Stage int

const (
	// StageAuth means nobody is signed in yet.
	StageAuth Stage = iota
	// StagePersona means a user is signed in but hasn't picked a track.
	StagePersona
	// StageReady means the agents are available.
	StageReady
)

// Progress seeds for a profile with no synced history.
const (
	SeedXP     = 1250
	SeedStreak = 5
)

// Context is the mutable session state shared by every screen. It is
// owned by the UI goroutine; the hooks let a profile syncer mirror
// changes elsewhere without the screens knowing about it.
type Context struct {
	User     *User
	Persona  *Persona
	XP       int
	Streak   int
	Language string

	// OnPersonaChange fires after the persona is set or cleared.
	OnPersonaChange func(p *Persona)
	// OnXPAward fires after XP is added, with the amount awarded.
	OnXPAward func(amount int)
}

// NewContext returns a Context with seeded progress and the default
// language.
func NewContext() *Context {
	return &Context{
		XP:       SeedXP,
		Streak:   SeedStreak,
		Language: DefaultLanguage,
	}
}

// Stage derives the onboarding stage from what has been set so far.
func (c *Context) Stage() Stage {
	switch {
	case c.User == nil:
		return StageAuth
	case c.Persona == nil:
		return StagePersona
	default:
		return StageReady
	}
}

// SetUser records the signed-in user.
func (c *Context) SetUser(u *User) {
	c.User = u
}

// SetPersona selects a track and notifies the hook.
func (c *Context) SetPersona(p Persona) {
	c.Persona = &p
	if c.OnPersonaChange != nil {
		c.OnPersonaChange(c.Persona)
	}
}

// ClearPersona returns the session to the picker and notifies the hook.
func (c *Context) ClearPersona() {
	c.Persona = nil
	if c.OnPersonaChange != nil {
		c.OnPersonaChange(nil)
	}
}

// AddXP awards points. Zero and negative amounts are ignored.
func (c *Context) AddXP(amount int) {
	if amount <= 0 {
		return
	}
	c.XP += amount
	if c.OnXPAward != nil {
		c.OnXPAward(amount)
	}
}

// Hydrate overwrites progress from a synced profile. Negative xp or
// streak and a nil persona mean "not present remotely" and leave the
// current value alone. The hooks do not fire; hydration mirrors remote
// state, it does not create it.
func (c *Context) Hydrate(xp, streak int, persona *Persona) {
	if xp >= 0 {
		c.XP = xp
	}
	if streak >= 0 {
		c.Streak = streak
	}
	if persona != nil {
		c.Persona = persona
	}
}

// SetLanguage switches the response language for tutor-style screens.
func (c *Context) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	c.Language = lang
}

// Logout drops the user, persona, and progress back to seeds.
func (c *Context) Logout() {
	c.User = nil
	c.Persona = nil
	c.XP = SeedXP
	c.Streak = SeedStreak
	c.Language = DefaultLanguage
}
