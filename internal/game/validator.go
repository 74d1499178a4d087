package game

import (
	"fmt"

	"github.com/mage-knight-digital/knight-engine-go/internal/content"
	"github.com/mage-knight-digital/knight-engine-go/internal/game/mana"
)

// Verdict is the outcome of one validation step.
type Verdict struct {
	OK      bool
	Code    string
	Message string
}

// Valid passes.
func Valid() Verdict { return Verdict{OK: true} }

// Invalid fails with a machine-readable code and a human message.
func Invalid(code, format string, args ...any) Verdict {
	return Verdict{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validator is one pure precondition check. Validators never mutate state.
type Validator func(st *GameState, cat content.Catalog, playerID string, act Action) Verdict

// chain runs validators in order; the first failure wins.
func chain(vs ...Validator) Validator {
	return func(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
		for _, v := range vs {
			if verdict := v(st, cat, playerID, act); !verdict.OK {
				return verdict
			}
		}
		return Valid()
	}
}

// --- generic preconditions ---

func playerExists(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	if _, err := st.Player(playerID); err != nil {
		return Invalid(CodePlayerNotFound, "player %s not found", playerID)
	}
	return Valid()
}

func gameNotFinished(st *GameState, _ content.Catalog, _ string, _ Action) Verdict {
	if st.Finished {
		return Invalid(CodeGameFinished, "the game is over")
	}
	return Valid()
}

func isCurrentPlayer(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	if st.CurrentPlayerID != playerID {
		return Invalid(CodeNotCurrentPlayer, "it is not %s's turn", playerID)
	}
	return Valid()
}

// isActingPlayer admits the current player, and any combat participant while
// a cooperative assault is live. The engine still processes one action at a
// time; this only widens who may submit the next one.
func isActingPlayer(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	if st.CurrentPlayerID == playerID {
		return Valid()
	}
	if st.Combat != nil && st.Combat.HasParticipant(playerID) {
		return Valid()
	}
	return Invalid(CodeNotCurrentPlayer, "it is not %s's turn", playerID)
}

func notKnockedOut(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	p, _ := st.Player(playerID)
	if p != nil && p.KnockedOut {
		return Invalid(CodePlayerKnockedOut, "player is knocked out for the rest of the combat")
	}
	return Valid()
}

// noPending blocks ordinary actions while an interaction is unresolved. The
// resolve-* actions use their own matching checks instead.
func noPending(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	p, _ := st.Player(playerID)
	if p != nil && p.Pending != nil {
		return Invalid(CodePendingUnresolved, "a pending %s must be resolved first", p.Pending.Kind)
	}
	return Valid()
}

func inCombat(st *GameState, _ content.Catalog, _ string, _ Action) Verdict {
	if st.Combat == nil {
		return Invalid(CodeNotInCombat, "no combat in progress")
	}
	return Valid()
}

func notInCombat(st *GameState, _ content.Catalog, _ string, _ Action) Verdict {
	if st.Combat != nil {
		return Invalid(CodeAlreadyInCombat, "combat is in progress")
	}
	return Valid()
}

func combatPhaseIs(phases ...CombatPhase) Validator {
	return func(st *GameState, _ content.Catalog, _ string, _ Action) Verdict {
		for _, ph := range phases {
			if st.Combat != nil && st.Combat.Phase == ph {
				return Valid()
			}
		}
		current := CombatPhase("")
		if st.Combat != nil {
			current = st.Combat.Phase
		}
		return Invalid(CodeWrongCombatPhase, "action not legal in combat phase %s", current)
	}
}

// --- movement ---

func validateMove(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if act.To == nil {
		return Invalid(CodeHexNotFound, "move requires a destination")
	}
	hex, ok := st.HexAt(*act.To)
	if !ok {
		return Invalid(CodeHexNotFound, "no hex at %s", act.To.Key())
	}
	if !p.Position.Adjacent(*act.To) {
		return Invalid(CodeNotAdjacent, "%s is not adjacent to %s", act.To.Key(), p.Position.Key())
	}
	cost, passable := st.EffectiveTerrainCost(hex.Terrain, playerID)
	if !passable {
		return Invalid(CodeTerrainImpassable, "%s terrain cannot be entered", hex.Terrain)
	}
	if p.Accum.Move < cost {
		return Invalid(CodeInsufficientMove, "need %d move, have %d", cost, p.Accum.Move)
	}
	return Valid()
}

// --- card plays ---

func validatePlayCard(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if !p.HasCardInHand(act.CardID) {
		return Invalid(CodeCardNotInHand, "card %s is not in hand", act.CardID)
	}
	card, ok := cat.Card(act.CardID)
	if !ok {
		return Invalid(CodeCardNotInHand, "card %s is not in the catalog", act.CardID)
	}
	if card.Type == content.CardWound {
		return Invalid(CodeWoundNotPlayable, "wounds cannot be played for their effect")
	}
	eff := card.Basic
	if act.Powered {
		eff = card.Powered
	}
	if eff == nil {
		return Invalid(CodeCardWrongContext, "card %s has no %s effect", act.CardID, playMode(act.Powered))
	}
	if act.Powered || card.IsSpell() {
		if verdict := validateManaPayment(st, p, card, act); !verdict.OK {
			return verdict
		}
	}
	if !effectResolvable(st, p, *eff) {
		return Invalid(CodeEffectNotResolvable, "card %s can do nothing right now", act.CardID)
	}
	return Valid()
}

func playMode(powered bool) string {
	if powered {
		return "powered"
	}
	return "basic"
}

// validateManaPayment checks a payment parameter against the inventory, the
// shared source and the color-gating rules.
func validateManaPayment(st *GameState, p *Player, card content.CardDef, act Action) Verdict {
	if act.Payment == nil {
		return Invalid(CodeManaRequired, "playing %s %s requires mana", card.ID, playMode(act.Powered))
	}
	pay := *act.Payment
	nightRules := st.Combat != nil && st.Combat.NightRules
	reason := mana.CanPay(pay.Color, card.AcceptedColors(), st.TimeOfDay, nightRules, card.IsSpell())
	switch reason {
	case mana.PayOK:
	case mana.PayGoldAtNight:
		return Invalid(CodeGoldManaAtNight, "gold mana is inert at night")
	case mana.PayBlackAtDay:
		return Invalid(CodeBlackManaByDay, "black mana only powers spells at night")
	case mana.PayBlackOnAction:
		return Invalid(CodeBlackManaOnAction, "black mana never pays for action cards")
	default:
		return Invalid(CodeDieColorMismatch, "%s mana cannot pay for %s", pay.Color, card.ID)
	}
	switch pay.Source {
	case PayFromCrystal:
		if p.Mana.CrystalCount(pay.Color) == 0 {
			return Invalid(CodeManaUnavailable, "no %s crystal available", pay.Color)
		}
	case PayFromToken:
		if !p.Mana.HasToken(pay.Color) {
			return Invalid(CodeManaUnavailable, "no %s mana token available", pay.Color)
		}
	case PayFromDie:
		die, ok := mana.FindDie(st.Source, pay.DieID)
		if !ok {
			return Invalid(CodeDieNotFound, "source die %s not found", pay.DieID)
		}
		if die.Taken {
			return Invalid(CodeDieTaken, "source die %s was already taken this turn", pay.DieID)
		}
		if die.Color != pay.Color {
			return Invalid(CodeDieColorMismatch, "die %s shows %s, not %s", pay.DieID, die.Color, pay.Color)
		}
	default:
		return Invalid(CodeManaUnavailable, "unknown mana source %q", pay.Source)
	}
	return Valid()
}

func validatePlaySideways(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if !p.HasCardInHand(act.CardID) {
		return Invalid(CodeCardNotInHand, "card %s is not in hand", act.CardID)
	}
	card, ok := cat.Card(act.CardID)
	if !ok {
		return Invalid(CodeCardNotInHand, "card %s is not in the catalog", act.CardID)
	}
	if card.Type == content.CardWound && !st.IsRuleActive(RuleWoundsSideways, playerID) {
		return Invalid(CodeWoundNotPlayable, "wounds cannot be played sideways")
	}
	if verdict := sidewaysContext(st, act); !verdict.OK {
		return verdict
	}
	return Valid()
}

// sidewaysContext checks the declared sideways use against the current
// context: attack/block only inside a combat phase that accepts them, move
// and influence only outside combat.
func sidewaysContext(st *GameState, act Action) Verdict {
	switch content.PointKind(act.Option) {
	case content.PointMove, content.PointInfluence:
		if st.Combat != nil {
			return Invalid(CodeCardWrongContext, "sideways %s is not available during combat", act.Option)
		}
	case content.PointAttack:
		if st.Combat == nil || st.Combat.Phase != PhaseAttack {
			return Invalid(CodeCardWrongContext, "sideways attack needs the attack phase")
		}
	case content.PointBlock:
		if st.Combat == nil || st.Combat.Phase != PhaseBlock {
			return Invalid(CodeCardWrongContext, "sideways block needs the block phase")
		}
	default:
		return Invalid(CodeOptionUnknown, "sideways cards give move, influence, attack or block")
	}
	return Valid()
}

// --- pending interactions ---

func validateResolveChoice(st *GameState, _ content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Pending == nil || p.Pending.Kind != PendingChoiceKind {
		return Invalid(CodeNoPendingChoice, "no choice is pending")
	}
	if act.OptionIndex < 0 || act.OptionIndex >= len(p.Pending.Choice.Options) {
		return Invalid(CodeChoiceOutOfRange, "option %d of %d", act.OptionIndex, len(p.Pending.Choice.Options))
	}
	return Valid()
}

func validateResolveDiscard(st *GameState, _ content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Pending == nil || p.Pending.Kind != PendingDiscardKind {
		return Invalid(CodeNoPendingDiscard, "no discard is pending")
	}
	if len(act.CardIDs) != p.Pending.Discard.Count {
		return Invalid(CodeDiscardCountWrong, "must discard exactly %d cards", p.Pending.Discard.Count)
	}
	return cardsAllInHand(p, act.CardIDs)
}

func validateResolveDiscardForBonus(st *GameState, _ content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Pending == nil || p.Pending.Kind != PendingDiscardForBonusKind {
		return Invalid(CodeNoPendingDiscard, "no bonus discard is pending")
	}
	if act.Decline {
		return Valid()
	}
	if len(act.CardIDs) != 1 {
		return Invalid(CodeDiscardCountWrong, "discard exactly one card or decline")
	}
	return cardsAllInHand(p, act.CardIDs)
}

// cardsAllInHand verifies multiset containment: duplicates in the request
// need duplicates in hand.
func cardsAllInHand(p *Player, cardIDs []string) Verdict {
	counts := map[string]int{}
	for _, c := range p.Hand {
		counts[c]++
	}
	for _, c := range cardIDs {
		counts[c]--
		if counts[c] < 0 {
			return Invalid(CodeCardNotInHand, "card %s is not in hand", c)
		}
	}
	return Valid()
}

// --- combat actions ---

func validateEnterCombat(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	hex, ok := st.HexAt(p.Position)
	if !ok {
		return Invalid(CodeHexNotFound, "player is off the map")
	}
	if len(hex.EnemyIDs) == 0 {
		return Invalid(CodeNoEnemiesHere, "nothing to fight at %s", p.Position.Key())
	}
	seen := map[string]bool{playerID: true}
	for _, id := range act.Allies {
		if seen[id] {
			return Invalid(CodeAllyNotHere, "player %s is already in this assault", id)
		}
		seen[id] = true
		ally, err := st.Player(id)
		if err != nil {
			return Invalid(CodePlayerNotFound, "player %s not found", id)
		}
		if ally.Position != p.Position {
			return Invalid(CodeAllyNotHere, "player %s is not on this hex", id)
		}
		if ally.KnockedOut {
			return Invalid(CodePlayerKnockedOut, "player %s is knocked out", id)
		}
	}
	return Valid()
}

func validateDeclareBlock(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	enemy, ok := st.Combat.FindEnemy(act.EnemyInstanceID)
	if !ok {
		return Invalid(CodeEnemyNotFound, "enemy %s is not in this combat", act.EnemyInstanceID)
	}
	if enemy.Defeated {
		return Invalid(CodeEnemyDefeated, "enemy %s is already defeated", act.EnemyInstanceID)
	}
	if act.AttackIndex < 0 || act.AttackIndex >= len(enemy.AttacksBlocked) {
		return Invalid(CodeAttackOutOfRange, "enemy %s has no attack %d", act.EnemyInstanceID, act.AttackIndex)
	}
	if enemy.AttacksBlocked[act.AttackIndex] {
		return Invalid(CodeEnemyAlreadyBlocked, "that attack is already blocked")
	}
	if p.Accum.TotalBlock() == 0 {
		return Invalid(CodeInsufficientBlock, "no block points accumulated")
	}
	return Valid()
}

func validateDeclareAttack(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if len(act.Targets) == 0 {
		return Invalid(CodeNoTargets, "declare at least one target")
	}
	seen := map[string]bool{}
	for _, id := range act.Targets {
		if seen[id] {
			return Invalid(CodeEnemyNotFound, "enemy %s listed twice", id)
		}
		seen[id] = true
		enemy, ok := st.Combat.FindEnemy(id)
		if !ok {
			return Invalid(CodeEnemyNotFound, "enemy %s is not in this combat", id)
		}
		if enemy.Defeated {
			return Invalid(CodeEnemyDefeated, "enemy %s is already defeated", id)
		}
	}
	if p.Accum.TotalAttack() == 0 {
		return Invalid(CodeNoAttackDeclared, "no attack points accumulated")
	}
	return Valid()
}

func validateAssignDamage(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	combat := st.Combat
	enemy, ok := combat.FindEnemy(act.EnemyInstanceID)
	if !ok {
		return Invalid(CodeEnemyNotFound, "enemy %s is not in this combat", act.EnemyInstanceID)
	}
	if enemy.Defeated {
		return Invalid(CodeEnemyDefeated, "enemy %s is already defeated", act.EnemyInstanceID)
	}
	if act.AttackIndex < 0 || act.AttackIndex >= len(enemy.DamageResolved) {
		return Invalid(CodeAttackOutOfRange, "enemy %s has no attack %d", act.EnemyInstanceID, act.AttackIndex)
	}
	if enemy.AttacksBlocked[act.AttackIndex] {
		return Invalid(CodeAttackBlocked, "that attack was blocked")
	}
	if enemy.DamageResolved[act.AttackIndex] {
		return Invalid(CodeDamageAssigned, "damage for that attack is already assigned")
	}

	assassin := enemyHasAbility(st, cat, enemy, content.AbilityAssassination)

	// A redirect binds only while its unit can still soak a wound and units
	// are legal targets at all; Assassination overrides it.
	redirectID, redirected := st.DamageRedirectUnit(playerID)
	if redirected {
		unit, ok := p.FindUnit(redirectID)
		if !ok || unit.Wounded || assassin ||
			!combat.UnitsAllowed || st.IsRuleActive(RuleNoDamageToUnits, playerID) {
			redirected = false
		}
	}

	if act.DamageTarget == DamageTargetHero {
		if redirected {
			return Invalid(CodeDamageRedirected, "damage must go to unit %s first", redirectID)
		}
		return Valid()
	}
	// Unit target.
	if !combat.UnitsAllowed {
		return Invalid(CodeUnitsNotAllowed, "units cannot take part at this site")
	}
	if st.IsRuleActive(RuleNoDamageToUnits, playerID) {
		return Invalid(CodeUnitsProtected, "damage cannot be assigned to units right now")
	}
	if assassin {
		return Invalid(CodeAssassination, "an assassin's damage must go to the hero")
	}
	if redirected && act.DamageTarget != redirectID {
		return Invalid(CodeDamageRedirected, "damage must go to unit %s first", redirectID)
	}
	unit, ok := p.FindUnit(act.DamageTarget)
	if !ok {
		return Invalid(CodeUnitNotFound, "unit %s is not in the roster", act.DamageTarget)
	}
	if unit.Wounded {
		return Invalid(CodeUnitWounded, "unit %s is already wounded", act.DamageTarget)
	}
	return Valid()
}

func validateEndCombatPhase(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	if st.Combat.Phase == PhaseAssignDamage {
		for _, e := range st.Combat.Undefeated() {
			if _, skipped := st.SkipsAttack(e.InstanceID); skipped {
				continue
			}
			for i, blocked := range e.AttacksBlocked {
				if !blocked && !e.DamageResolved[i] {
					return Invalid(CodeDamageOutstanding, "enemy %s attack %d still needs damage assignment", e.InstanceID, i)
				}
			}
		}
	}
	return Valid()
}

// --- economy, units, sites ---

func validateRecruitUnit(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	inOffer := false
	for _, id := range st.UnitOffer {
		if id == act.UnitID {
			inOffer = true
			break
		}
	}
	if !inOffer {
		return Invalid(CodeUnitNotInOffer, "unit %s is not in the offer", act.UnitID)
	}
	def, ok := cat.Unit(act.UnitID)
	if !ok {
		return Invalid(CodeUnitNotInOffer, "unit %s is not in the catalog", act.UnitID)
	}
	if len(p.Units) >= p.CommandTokens {
		return Invalid(CodeRosterFull, "roster limit of %d reached", p.CommandTokens)
	}
	bonus := content.ReputationBonus(p.Reputation)
	if bonus < -100 {
		return Invalid(CodeReputationTooLow, "reputation is too low to interact")
	}
	if p.Accum.Influence+bonus < def.Cost {
		return Invalid(CodeInsufficientInfluence, "need %d influence, have %d", def.Cost, p.Accum.Influence+bonus)
	}
	return Valid()
}

func validateActivateUnit(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	unit, ok := p.FindUnit(act.UnitID)
	if !ok {
		return Invalid(CodeUnitNotFound, "unit %s is not in the roster", act.UnitID)
	}
	if unit.Wounded {
		return Invalid(CodeUnitWounded, "unit %s is wounded", act.UnitID)
	}
	if !unit.Ready {
		return Invalid(CodeUnitNotReady, "unit %s is spent", act.UnitID)
	}
	def, ok := cat.Unit(unit.DefID)
	if !ok || def.Ability == nil {
		return Invalid(CodeUnitNotFound, "unit %s has no activation", act.UnitID)
	}
	if st.Combat != nil && !st.Combat.UnitsAllowed {
		return Invalid(CodeUnitsNotAllowed, "units cannot take part at this site")
	}
	if !effectResolvable(st, p, *def.Ability) {
		return Invalid(CodeEffectNotResolvable, "unit %s can do nothing right now", act.UnitID)
	}
	return Valid()
}

func validateInteract(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	hex, ok := st.HexAt(p.Position)
	if !ok || hex.Site == SiteNone {
		return Invalid(CodeNoSiteHere, "no site to interact with at %s", p.Position.Key())
	}
	if content.ReputationBonus(p.Reputation) < -100 {
		return Invalid(CodeReputationTooLow, "reputation is too low to interact")
	}
	switch act.Option {
	case "heal":
		if hex.Site != SiteVillage && hex.Site != SiteMonastery {
			return Invalid(CodeOptionUnknown, "healing is offered at villages and monasteries")
		}
		cost := 3
		if hex.Site == SiteMonastery {
			cost = 2
		}
		if p.Accum.Influence+content.ReputationBonus(p.Reputation) < cost {
			return Invalid(CodeInsufficientInfluence, "healing costs %d influence here", cost)
		}
		if p.WoundsInHand() == 0 && !anyWoundedUnit(p) {
			return Invalid(CodeNothingToHeal, "no wounds to heal")
		}
	default:
		return Invalid(CodeOptionUnknown, "unknown interaction %q", act.Option)
	}
	return Valid()
}

func anyWoundedUnit(p *Player) bool {
	for _, u := range p.Units {
		if u.Wounded {
			return true
		}
	}
	return false
}

func validateEnterSite(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	hex, ok := st.HexAt(p.Position)
	if !ok || hex.Site == SiteNone {
		return Invalid(CodeNoSiteHere, "no site at %s", p.Position.Key())
	}
	if hex.Conquered {
		return Invalid(CodeSiteConquered, "%s was already conquered", hex.Site)
	}
	return Valid()
}

// --- skills ---

func validateUseSkill(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if !p.HasSkill(act.SkillID) {
		return Invalid(CodeSkillNotOwned, "skill %s is not owned", act.SkillID)
	}
	def, ok := cat.Skill(act.SkillID)
	if !ok {
		return Invalid(CodeSkillNotFound, "skill %s is not in the catalog", act.SkillID)
	}
	switch def.Cooldown {
	case content.CooldownTurn:
		if p.UsedTurn[act.SkillID] {
			return Invalid(CodeSkillOnCooldown, "skill %s was already used this turn", act.SkillID)
		}
	case content.CooldownRound:
		if p.UsedRound[act.SkillID] {
			return Invalid(CodeSkillOnCooldown, "skill %s was already used this round", act.SkillID)
		}
	case content.CooldownCombat:
		if st.Combat == nil {
			return Invalid(CodeNotInCombat, "skill %s only works in combat", act.SkillID)
		}
		if p.UsedCombat[act.SkillID] {
			return Invalid(CodeSkillOnCooldown, "skill %s was already used this combat", act.SkillID)
		}
	case content.CooldownInteractive:
		if _, out := p.InteractiveTokens[act.SkillID]; out {
			return Invalid(CodeSkillOnCooldown, "skill token %s is already placed", act.SkillID)
		}
	}
	if def.Effect != nil && !effectResolvable(st, p, *def.Effect) {
		return Invalid(CodeEffectNotResolvable, "skill %s can do nothing right now", act.SkillID)
	}
	if def.Modifier != nil && modifierTargetsEnemy(ModifierKind(def.Modifier.Kind)) {
		if st.Combat == nil {
			return Invalid(CodeNotInCombat, "skill %s targets an enemy in combat", act.SkillID)
		}
		if act.EnemyInstanceID != "" {
			if _, ok := st.Combat.FindEnemy(act.EnemyInstanceID); !ok {
				return Invalid(CodeEnemyNotFound, "enemy %s is not in this combat", act.EnemyInstanceID)
			}
		}
	}
	if def.Modifier != nil && modifierTargetsUnit(ModifierKind(def.Modifier.Kind)) {
		if st.Combat == nil {
			return Invalid(CodeNotInCombat, "skill %s targets a unit in combat", act.SkillID)
		}
		if !st.Combat.UnitsAllowed {
			return Invalid(CodeUnitsNotAllowed, "units cannot take part at this site")
		}
		unit, ok := p.FindUnit(act.UnitID)
		if !ok {
			return Invalid(CodeUnitNotFound, "unit %s is not in the roster", act.UnitID)
		}
		if unit.Wounded {
			return Invalid(CodeUnitWounded, "unit %s is already wounded", act.UnitID)
		}
	}
	return Valid()
}

// --- tactics ---

func validateSelectTactic(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Tactic != "" {
		return Invalid(CodeTacticAlreadyOwned, "a tactic was already selected this round")
	}
	def, ok := cat.Tactic(act.TacticID)
	if !ok {
		return Invalid(CodeTacticNotFound, "tactic %s is not in the catalog", act.TacticID)
	}
	if def.TimeOfDay != st.TimeOfDay {
		return Invalid(CodeTacticWrongTime, "tactic %s belongs to the %s deck", act.TacticID, def.TimeOfDay)
	}
	if owner, taken := st.TacticsTaken[act.TacticID]; taken {
		return Invalid(CodeTacticTaken, "tactic %s was taken by %s", act.TacticID, owner)
	}
	return Valid()
}

func validateActivateTactic(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Tactic == "" || p.Tactic != act.TacticID {
		return Invalid(CodeNotYourTactic, "tactic %s is not yours", act.TacticID)
	}
	if p.TacticFlipped {
		return Invalid(CodeTacticUsed, "tactic %s was already activated", act.TacticID)
	}
	return Valid()
}

func validateResolveTacticDecision(st *GameState, cat content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Pending == nil || p.Pending.Kind != PendingTacticDecisionKind {
		return Invalid(CodeNoTacticDecision, "no tactic decision is pending")
	}
	if act.DieID != "" {
		die, ok := mana.FindDie(st.Source, act.DieID)
		if !ok {
			return Invalid(CodeDieNotFound, "source die %s not found", act.DieID)
		}
		if die.Taken {
			return Invalid(CodeDieTaken, "source die %s was already taken", act.DieID)
		}
	}
	return Valid()
}

// --- rewards ---

func validateSelectReward(st *GameState, _ content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if p.Pending == nil || p.Pending.Kind != PendingLevelUpKind {
		return Invalid(CodeNoPendingLevelUp, "no level-up reward is pending")
	}
	if act.OptionIndex < 0 || act.OptionIndex >= len(p.Pending.LevelUp.SkillOptions) {
		return Invalid(CodeRewardOutOfRange, "option %d of %d", act.OptionIndex, len(p.Pending.LevelUp.SkillOptions))
	}
	return Valid()
}

// --- round flow ---

func validateAnnounceEnd(st *GameState, _ content.Catalog, playerID string, _ Action) Verdict {
	if st.EndAnnouncedBy != "" {
		return Invalid(CodeEndAlreadyCalled, "end of round was announced by %s", st.EndAnnouncedBy)
	}
	return Valid()
}

func validateRerollSource(st *GameState, _ content.Catalog, _ string, act Action) Verdict {
	if act.DieID == "" {
		return Valid()
	}
	die, ok := mana.FindDie(st.Source, act.DieID)
	if !ok {
		return Invalid(CodeDieNotFound, "source die %s not found", act.DieID)
	}
	if die.Taken {
		return Invalid(CodeDieTaken, "source die %s was already taken", act.DieID)
	}
	return Valid()
}

func validateRest(st *GameState, _ content.Catalog, playerID string, act Action) Verdict {
	p, _ := st.Player(playerID)
	if len(act.CardIDs) == 0 {
		return Invalid(CodeDiscardCountWrong, "resting discards at least one card")
	}
	return cardsAllInHand(p, act.CardIDs)
}
