package content

import "github.com/mage-knight-digital/knight-engine-go/internal/game/mana"

// BuiltinSet returns the in-process base content set. It is a representative
// slice of the full game: enough cards, enemies, units, skills and tactics to
// exercise every engine mechanism. Full expansion content ships as YAML files
// loaded through LoadSetFromPath.
func BuiltinSet() SetFile {
	return SetFile{
		Name:    "base",
		Cards:   builtinCards(),
		Enemies: builtinEnemies(),
		Units:   builtinUnits(),
		Skills:  builtinSkills(),
		Tactics: builtinTactics(),
	}
}

// NewBuiltinCatalog builds a catalog holding only the base set.
func NewBuiltinCatalog() Catalog {
	return NewCatalog(BuiltinSet())
}

func builtinCards() []CardDef {
	return []CardDef{
		{
			ID: "card_march", Name: "March", Type: CardAction, Color: mana.ColorGreen,
			Basic:   Simple(PointMove, 2),
			Powered: Simple(PointMove, 4),
		},
		{
			ID: "card_stamina", Name: "Stamina", Type: CardAction, Color: mana.ColorBlue,
			Basic:   Simple(PointMove, 2),
			Powered: Simple(PointMove, 4),
		},
		{
			ID: "card_swiftness", Name: "Swiftness", Type: CardAction, Color: mana.ColorWhite,
			Basic:   Simple(PointMove, 2),
			Powered: SimpleAttack(3, CombatRanged, ElementPhysical),
		},
		{
			ID: "card_rage", Name: "Rage", Type: CardAction, Color: mana.ColorRed,
			Basic: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 2, ElementPhysical),
			),
			Powered: SimpleAttack(4, CombatMelee, ElementPhysical),
		},
		{
			ID: "card_determination", Name: "Determination", Type: CardAction, Color: mana.ColorBlue,
			Basic: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 2, ElementPhysical),
			),
			Powered: SimpleElemental(PointBlock, 5, ElementPhysical),
		},
		{
			ID: "card_tranquility", Name: "Tranquility", Type: CardAction, Color: mana.ColorGreen,
			Basic: Choice(
				Simple(PointHeal, 1),
				Simple(PointDraw, 1),
			),
			Powered: Choice(
				Simple(PointHeal, 2),
				Simple(PointDraw, 2),
			),
		},
		{
			ID: "card_promise", Name: "Promise", Type: CardAction, Color: mana.ColorGreen,
			Basic:   Simple(PointInfluence, 2),
			Powered: Simple(PointInfluence, 4),
		},
		{
			ID: "card_threaten", Name: "Threaten", Type: CardAction, Color: mana.ColorRed,
			Basic:   Simple(PointInfluence, 2),
			Powered: Simple(PointInfluence, 5),
		},
		{
			ID: "card_crystallize", Name: "Crystallize", Type: CardAction, Color: mana.ColorBlue,
			Basic: Choice(
				&Effect{Kind: EffectSimple, Points: PointCrystal, Amount: 1, Color: mana.ColorRed},
				&Effect{Kind: EffectSimple, Points: PointCrystal, Amount: 1, Color: mana.ColorBlue},
				&Effect{Kind: EffectSimple, Points: PointCrystal, Amount: 1, Color: mana.ColorGreen},
				&Effect{Kind: EffectSimple, Points: PointCrystal, Amount: 1, Color: mana.ColorWhite},
			),
			Powered: Compound(
				&Effect{Kind: EffectSimple, Points: PointCrystal, Amount: 1, Color: mana.ColorBlue},
				Simple(PointInfluence, 2),
			),
		},
		{
			ID: "card_cold_toughness", Name: "Cold Toughness", Type: CardAction, Color: mana.ColorBlue,
			Basic:   SimpleElemental(PointBlock, 2, ElementIce),
			Powered: SimpleElemental(PointBlock, 5, ElementIce),
		},
		{
			ID: "card_battle_versatility", Name: "Battle Versatility", Type: CardAdvancedAction, Color: mana.ColorRed,
			Basic: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 2, ElementPhysical),
				SimpleAttack(1, CombatRanged, ElementPhysical),
			),
			Powered: Choice(
				SimpleAttack(4, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 4, ElementPhysical),
				SimpleAttack(3, CombatRanged, ElementPhysical),
				SimpleAttack(3, CombatMelee, ElementFire),
			),
		},
		{
			ID: "card_fireball", Name: "Fireball", Type: CardSpell, Color: mana.ColorRed,
			Basic:   SimpleAttack(5, CombatRanged, ElementFire),
			Powered: SimpleAttack(8, CombatSiege, ElementFire),
		},
		{
			ID: "card_snowstorm", Name: "Snowstorm", Type: CardSpell, Color: mana.ColorBlue,
			Basic:   SimpleElemental(PointBlock, 5, ElementIce),
			Powered: SimpleAttack(5, CombatSiege, ElementIce),
		},
		{
			ID: "card_wound", Name: "Wound", Type: CardWound,
		},
	}
}

func builtinEnemies() []EnemyDef {
	return []EnemyDef{
		{
			ID: "enemy_prowlers", Name: "Prowlers", Pile: "green", Armor: 3, Fame: 2,
			Attacks: []EnemyAttack{{Value: 4, Element: ElementPhysical}},
		},
		{
			ID: "enemy_ironclads", Name: "Ironclads", Pile: "green", Armor: 3, Fame: 2,
			Attacks:   []EnemyAttack{{Value: 3, Element: ElementPhysical}},
			Abilities: []EnemyAbility{AbilityBrutal},
		},
		{
			ID: "enemy_orc_summoners", Name: "Orc Summoners", Pile: "green", Armor: 4, Fame: 4,
			Abilities: []EnemyAbility{AbilitySummon},
		},
		{
			ID: "enemy_crossbowmen", Name: "Crossbowmen", Pile: "grey", Armor: 4, Fame: 3,
			Attacks:   []EnemyAttack{{Value: 4, Element: ElementPhysical}},
			Abilities: []EnemyAbility{AbilitySwift},
		},
		{
			ID: "enemy_guardsmen", Name: "Guardsmen", Pile: "grey", Armor: 7, Fame: 3,
			Attacks:   []EnemyAttack{{Value: 3, Element: ElementPhysical}},
			Abilities: []EnemyAbility{AbilityFortified},
		},
		{
			ID: "enemy_swordsmen", Name: "Swordsmen", Pile: "grey", Armor: 5, Fame: 4,
			Attacks:   []EnemyAttack{{Value: 6, Element: ElementPhysical}},
			Abilities: []EnemyAbility{AbilityPoison},
		},
		{
			ID: "enemy_fire_golems", Name: "Fire Golems", Pile: "brown", Armor: 4, Fame: 4,
			Attacks:     []EnemyAttack{{Value: 3, Element: ElementFire}},
			Resistances: []Element{ElementFire},
		},
		{
			ID: "enemy_gargoyles", Name: "Gargoyles", Pile: "brown", Armor: 4, Fame: 4,
			Attacks:     []EnemyAttack{{Value: 5, Element: ElementPhysical}},
			Resistances: []Element{ElementPhysical},
		},
		{
			ID: "enemy_shadow_assassins", Name: "Shadow Assassins", Pile: "violet", Armor: 3, Fame: 4,
			Attacks:   []EnemyAttack{{Value: 4, Element: ElementPhysical}},
			Abilities: []EnemyAbility{AbilityAssassination},
		},
		{
			ID: "enemy_hydra", Name: "Hydra", Pile: "red", Armor: 6, Fame: 7,
			Attacks: []EnemyAttack{
				{Value: 3, Element: ElementFire},
				{Value: 3, Element: ElementFire},
			},
		},
	}
}

func builtinUnits() []UnitDef {
	return []UnitDef{
		{
			ID: "unit_peasants", Name: "Peasants", Level: 1, Cost: 4, Armor: 3,
			Ability: Choice(
				Simple(PointMove, 1),
				Simple(PointInfluence, 1),
				SimpleAttack(1, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 1, ElementPhysical),
			),
		},
		{
			ID: "unit_herbalists", Name: "Herbalists", Level: 1, Cost: 3, Armor: 2,
			Ability: Simple(PointHeal, 2),
		},
		{
			ID: "unit_utem_guardsmen", Name: "Utem Guardsmen", Level: 2, Cost: 5, Armor: 5,
			Ability: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 4, ElementPhysical),
			),
		},
		{
			ID: "unit_guardian_golems", Name: "Guardian Golems", Level: 2, Cost: 7, Armor: 3,
			Resistances: []Element{ElementPhysical},
			Ability: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleElemental(PointBlock, 2, ElementPhysical),
			),
		},
	}
}

func builtinSkills() []SkillDef {
	return []SkillDef{
		{
			ID: "skill_pathfinding", Name: "Pathfinding", Cooldown: CooldownTurn,
			Modifier: &ModifierSpec{Kind: "TERRAIN_COST", Amount: -1, Minimum: 2, Duration: "TURN"},
		},
		{
			ID: "skill_refreshing_walk", Name: "Refreshing Walk", Cooldown: CooldownRound,
			Effect: Compound(Simple(PointMove, 2), Simple(PointHeal, 1)),
		},
		{
			ID: "skill_power_of_pain", Name: "Power of Pain", Cooldown: CooldownTurn,
			Modifier: &ModifierSpec{Kind: "RULE", RuleID: "WOUNDS_SIDEWAYS", Duration: "TURN"},
		},
		{
			ID: "skill_dark_negotiation", Name: "Dark Negotiation", Cooldown: CooldownRound,
			Effect: Conditional(CondIsNight, Simple(PointInfluence, 3), Simple(PointInfluence, 2)),
		},
		{
			ID: "skill_cold_swordsmanship", Name: "Cold Swordsmanship", Cooldown: CooldownCombat,
			Effect: Choice(
				SimpleAttack(2, CombatMelee, ElementPhysical),
				SimpleAttack(2, CombatMelee, ElementIce),
			),
		},
		{
			ID: "skill_shield_mastery", Name: "Shield Mastery", Cooldown: CooldownCombat,
			Effect: Choice(
				SimpleElemental(PointBlock, 3, ElementPhysical),
				SimpleElemental(PointBlock, 2, ElementFire),
				SimpleElemental(PointBlock, 2, ElementIce),
			),
		},
		{
			ID: "skill_provocation", Name: "Provocation", Cooldown: CooldownInteractive,
			Modifier: &ModifierSpec{Kind: "ENEMY_ATTACK", Amount: 1, Duration: "PERMANENT"},
		},
		{
			ID: "skill_taunt", Name: "Taunt", Cooldown: CooldownCombat,
			Modifier: &ModifierSpec{Kind: "DAMAGE_REDIRECT", Duration: "COMBAT"},
		},
		{
			ID: "skill_banner_of_fear", Name: "Banner of Fear", Cooldown: CooldownCombat,
			Modifier: &ModifierSpec{Kind: "SKIP_ATTACK", Duration: "COMBAT"},
		},
		{
			ID: "skill_ritual_purge", Name: "Ritual Purge", Cooldown: CooldownCombat,
			Modifier: &ModifierSpec{Kind: "ABILITY_NULLIFIER", Ability: AbilityAssassination, Duration: "COMBAT"},
		},
		{
			ID: "skill_improvisation", Name: "Improvisation", Cooldown: CooldownTurn,
			Modifier: &ModifierSpec{Kind: "SIDEWAYS_BONUS", Amount: 1, Duration: "TURN"},
		},
	}
}

func builtinTactics() []TacticDef {
	return []TacticDef{
		{ID: "tactic_early_bird", Name: "Early Bird", Number: 1, TimeOfDay: mana.Day},
		{ID: "tactic_rethink", Name: "Rethink", Number: 2, TimeOfDay: mana.Day,
			Effect: Simple(PointDraw, 2)},
		{ID: "tactic_mana_steal", Name: "Mana Steal", Number: 3, TimeOfDay: mana.Day,
			Decision: true},
		{ID: "tactic_great_start", Name: "Great Start", Number: 6, TimeOfDay: mana.Day,
			Effect: Simple(PointDraw, 2)},
		{ID: "tactic_from_the_dusk", Name: "From the Dusk", Number: 1, TimeOfDay: mana.Night},
		{ID: "tactic_long_night", Name: "Long Night", Number: 3, TimeOfDay: mana.Night,
			Effect: Simple(PointDraw, 2)},
		{ID: "tactic_mana_search", Name: "Mana Search", Number: 4, TimeOfDay: mana.Night,
			Decision: true},
		{ID: "tactic_sparing_power", Name: "Sparing Power", Number: 6, TimeOfDay: mana.Night},
	}
}
