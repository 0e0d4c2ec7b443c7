package player

// DefaultMaxHP is the default max HP per spec.md §3, overridable per
// player for tests via playerConfigs.
const DefaultMaxHP = 5

// Player is one game participant's HP/inventory/stun state.
type Player struct {
	PlayerID       string
	HP             int
	MaxHP          int
	Defeated       bool
	Inventory      Inventory
	StunnedAtZero  bool
}

// New creates a player at full health with an empty inventory. maxHP<=0
// falls back to DefaultMaxHP.
func New(playerID string, maxHP int) *Player {
	if maxHP <= 0 {
		maxHP = DefaultMaxHP
	}
	return &Player{PlayerID: playerID, HP: maxHP, MaxHP: maxHP}
}

// TakeDamage applies battle-loss damage, setting StunnedAtZero when HP
// reaches 0. Per spec.md §4.6, Defeated stays false — the game only ends
// via ruby_chest collection, never player defeat.
func (p *Player) TakeDamage(amount int) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
	if p.HP == 0 {
		p.StunnedAtZero = true
	}
}

// NeedsHealing reports whether the player is below max HP.
func (p *Player) NeedsHealing() bool {
	return p.HP < p.MaxHP
}

// HealToMax restores HP to MaxHP and clears the stun flag.
func (p *Player) HealToMax() {
	p.HP = p.MaxHP
	p.StunnedAtZero = false
}

// IsStunned reports whether the player is at 0 HP awaiting the
// next-TurnStarted stun-recovery rule of spec.md §4.3/§4.6.
func (p *Player) IsStunned() bool {
	return p.HP == 0 && p.StunnedAtZero
}
