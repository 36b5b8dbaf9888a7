package host

// Facade centralises the composite game-state predicates shared by
// handlers. Each predicate is fail-safe: when a field can't be read,
// the answer is the conservative one — treat the player as blocked
// rather than risk announcing over a cutscene.
//
// Every field is read-only; nothing mutates host state through the
// facade. Fields left nil read as unavailable.
type Facade struct {
	InBattle     BoolField
	Paused       BoolField
	InCutscene   BoolField
	Recovering   BoolField // death-recovery animation
	AnimLocked   BoolField // non-controllable animation states
	BlockingMenu BoolField
}

// IsInBattle reports whether a battle is in progress. Unknown reads
// as true: battles block.
func (f *Facade) IsInBattle() bool {
	return BoolOr(f.InBattle, true)
}

// IsPaused reports whether the game is paused. Unknown reads as true.
func (f *Facade) IsPaused() bool {
	return BoolOr(f.Paused, true)
}

// IsInCutscene reports whether a cutscene is playing. Unknown reads
// as true.
func (f *Facade) IsInCutscene() bool {
	return BoolOr(f.InCutscene, true)
}

// IsAnyBlockingMenuOpen reports whether a modal menu is consuming
// input. Unknown reads as true.
func (f *Facade) IsAnyBlockingMenuOpen() bool {
	return BoolOr(f.BlockingMenu, true)
}

// IsPlayerControllable reports whether the player can act right now:
// not paused and not inside a battle, cutscene, death recovery, or a
// locked animation. Any unreadable component makes this false.
func (f *Facade) IsPlayerControllable() bool {
	if f.IsPaused() || f.IsInBattle() || f.IsInCutscene() {
		return false
	}
	if BoolOr(f.Recovering, true) {
		return false
	}
	if BoolOr(f.AnimLocked, true) {
		return false
	}
	return true
}
