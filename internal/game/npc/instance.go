package npc

// Instance is a live enemy spawned for one encounter.
//
// Invariant: 0 <= Health <= MaxHealth.
type Instance struct {
	// ID uniquely identifies this runtime instance.
	ID string
	// TemplateID is the source template's ID.
	TemplateID string
	Name       string
	Health     int
	MaxHealth  int
	Strength   int
	Magic      int
	// XPReward and GoldReward are fixed by the archetype at spawn time.
	XPReward   int
	GoldReward int
}

// NewInstance creates a live enemy from a template at full health.
//
// Precondition: id must be non-empty; tmpl must be non-nil.
// Postcondition: Health equals tmpl.Health.
func NewInstance(id string, tmpl *Template) *Instance {
	return &Instance{
		ID:         id,
		TemplateID: tmpl.ID,
		Name:       tmpl.Name,
		Health:     tmpl.Health,
		MaxHealth:  tmpl.Health,
		Strength:   tmpl.Strength,
		Magic:      tmpl.Magic,
		XPReward:   tmpl.XPReward,
		GoldReward: tmpl.GoldReward,
	}
}

// IsDead reports whether the enemy has no health left.
func (i *Instance) IsDead() bool {
	return i.Health <= 0
}

// TakeDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: Health >= 0.
func (i *Instance) TakeDamage(amount int) {
	i.Health -= amount
	if i.Health < 0 {
		i.Health = 0
	}
}
