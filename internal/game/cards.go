package game

// Built-in card set. Each constructor returns a fresh *Card so callers can
// never alias catalog entries.

// TurboTony: plumber, HP 100, fix 25.
func TurboTony() *Card {
	return newPlumber("plumber_turbo_tony", "Turbo Tony", "A burly plumber with a big red wrench and a confident grin. Wears blue coveralls and a tool belt.", 300, 3, 100, 25)
}

// SpeedySal: plumber, HP 80, fix 19.
func SpeedySal() *Card {
	return newPlumber("plumber_speedy_sal", "Speedy Sal", "A slim, speedy plumber in green with goggles and rollerblades attached to his boots.", 250, 2, 80, 19)
}

// MightyMona: plumber, HP 105, fix 29.
func MightyMona() *Card {
	return newPlumber("plumber_mighty_mona", "Mighty Mona", "A tall, muscular woman holding two plungers, ready for battle. Has utility pouches and an iconic yellow cap.", 320, 4, 105, 29)
}

// WrenchinWes: plumber, HP 65, fix 17.
func WrenchinWes() *Card {
	return newPlumber("plumber_wrenchin_wes", "Wrenchin' Wes", "A young, scrappy plumber with spiky hair and an oversized wrench slung over his shoulder.", 180, 1, 65, 17)
}

// PipeProPaula: plumber, HP 75, fix 22.
func PipeProPaula() *Card {
	return newPlumber("plumber_pipe_pro_paula", "Pipe Pro Paula", "A stylish plumber with fluorescent-pink gloves, glasses, and a digital leak detector.", 220, 2, 75, 22)
}

// MegaPlunger: tool, 14 damage.
func MegaPlunger() *Card {
	return newTool("tool_mega_plunger", "Mega Plunger", "A bright orange, oversized plunger with a metal handle and glowing accents.", 90, 2, 14)
}

// SnakeOMatic: tool, 20 damage.
func SnakeOMatic() *Card {
	return newTool("tool_snake_o_matic", "Snake-O-Matic", "A mechanical, coiled drain snake that retracts and extends with buttons.", 110, 3, 20)
}

// LeakDetector: tool, 6 damage.
func LeakDetector() *Card {
	return newTool("tool_leak_detector", "Leak Detector", "A hi-tech gadget with blinking blue lights to find hidden leaks.", 60, 1, 6)
}

// PipePatchKit: tool, 10 damage.
func PipePatchKit() *Card {
	return newTool("tool_pipe_patch_kit", "Pipe Patch Kit", "A small metal box filled with tape, putty, and quick fixes for cracks.", 75, 2, 10)
}

// TurboTorqueWrench: tool, 18 damage.
func TurboTorqueWrench() *Card {
	return newTool("tool_turbo_torque_wrench", "Turbo Torque Wrench", "A gleaming chrome wrench with digital torque settings.", 100, 3, 18)
}

// BlameTheDog: excuse, +5 turns.
func BlameTheDog() *Card {
	return newExcuse("excuse_blame_the_dog", "Blame the Dog", "A comical card featuring a guilty-looking dog next to a puddle.", 45, 1, 5)
}

// TrafficJam: excuse, +8 turns.
func TrafficJam() *Card {
	return newExcuse("excuse_traffic_jam", "Traffic Jam", "A cartoon traffic jam blocks a city street full of plumbers.", 60, 2, 8)
}

// MisplacedTools: excuse, +3 turns.
func MisplacedTools() *Card {
	return newExcuse("excuse_misplaced_tools", "Misplaced Tools", "A messy toolbox with open drawers and scattered wrenches.", 30, 1, 3)
}

// PartsOnBackorder: excuse, +10 turns.
func PartsOnBackorder() *Card {
	return newExcuse("excuse_parts_on_backorder", "Parts on Backorder", "A computer with a 'backorder' alert on the screen.", 80, 3, 10)
}

// ClientNotHome: excuse, +6 turns.
func ClientNotHome() *Card {
	return newExcuse("excuse_client_not_home", "Client Not Home", "A locked door with a 'Sorry, missed you' note.", 65, 2, 6)
}

// CaffeinatedSurge: power-up, x1.2 damage.
func CaffeinatedSurge() *Card {
	return newPowerUp("powerup_caffeinated_surge", "Caffeinated Surge", "A neon coffee mug overflowing with energy bolts.", 70, 2, Boost{Stat: BoostDamage, Factor: 1.2})
}

// UnbreakableGloves: power-up, x1.25 health.
func UnbreakableGloves() *Card {
	return newPowerUp("powerup_unbreakable_gloves", "Unbreakable Gloves", "Shiny black gloves etched with golden symbols.", 120, 4, Boost{Stat: BoostHealth, Factor: 1.25})
}

// SafetyGoggles: power-up, x1.1 health.
func SafetyGoggles() *Card {
	return newPowerUp("powerup_safety_goggles", "Safety Goggles", "Translucent blue goggles radiating a protective aura.", 55, 1, Boost{Stat: BoostHealth, Factor: 1.1})
}

// ProteinShake: power-up, x1.15 damage.
func ProteinShake() *Card {
	return newPowerUp("powerup_protein_shake", "Protein Shake", "A sports bottle with liquid strength sloshing inside.", 85, 2, Boost{Stat: BoostDamage, Factor: 1.15})
}

// QuickReflexes: power-up, x1.18 damage.
func QuickReflexes() *Card {
	return newPowerUp("powerup_quick_reflexes", "Quick Reflexes", "A pair of hands juggling pipes, tools, and a wrench all at once.", 95, 3, Boost{Stat: BoostDamage, Factor: 1.18})
}

// ClassicSub: sandwich, heals 22.
func ClassicSub() *Card {
	return newSandwich("sandwich_classic_sub", "Classic Sub", "A traditional submarine sandwich overflowing with deli meats and cheese.", 35, 1, 22)
}

// MegaBLT: sandwich, heals 33.
func MegaBLT() *Card {
	return newSandwich("sandwich_mega_blt", "Mega BLT", "A huge BLT with crisp lettuce and bacon, radiating tempting aroma.", 50, 2, 33)
}

// SpicyWrap: sandwich, heals 29.
func SpicyWrap() *Card {
	return newSandwich("sandwich_spicy_wrap", "Spicy Wrap", "A tightly-rolled wrap with bright peppers peeking out the sides.", 48, 2, 29)
}

// VeggieHoagie: sandwich, heals 18.
func VeggieHoagie() *Card {
	return newSandwich("sandwich_veggie_hoagie", "Veggie Hoagie", "A fresh green hoagie loaded with crisp veggies and creamy dressing.", 42, 1, 18)
}

// EnergyBagel: sandwich, heals 20.
func EnergyBagel() *Card {
	return newSandwich("sandwich_energy_bagel", "Energy Bagel", "A plump bagel with sunflower seeds and glowing cream cheese.", 37, 1, 20)
}

// CopperPipeSet: tool, 12 damage.
func CopperPipeSet() *Card {
	return newTool("tool_copper_pipe_set", "Copper Pipe Set", "A bundle of shiny copper pipes ready for installation.", 80, 2, 12)
}

// WaterproofTape: tool, 8 damage.
func WaterproofTape() *Card {
	return newTool("tool_waterproof_tape", "Waterproof Tape", "A roll of gray, ultra-sticky tape that magically seals leaks.", 70, 1, 8)
}

// MiniShopVac: tool, 5 damage.
func MiniShopVac() *Card {
	return newTool("tool_mini_shop_vac", "Mini Shop Vac", "A portable vacuum with wheels and a big blue button.", 60, 1, 5)
}

// DelicateDani: plumber, HP 60, fix 15.
func DelicateDani() *Card {
	return newPlumber("plumber_delicate_dani", "Delicate Dani", "A careful, meticulous plumber with small tools and surgical gloves.", 190, 1, 60, 15)
}

// InspirationalPlaylist: power-up, x1.12 damage.
func InspirationalPlaylist() *Card {
	return newPowerUp("powerup_inspirational_playlist", "Inspirational Playlist", "A phone with musical notes floating around, headphones plugged in.", 78, 2, Boost{Stat: BoostDamage, Factor: 1.12})
}

// EpicRainstorm: excuse, +7 turns.
func EpicRainstorm() *Card {
	return newExcuse("excuse_epic_rainstorm", "Epic Rainstorm", "A deluge outside the window with flashing thunderbolts.", 70, 2, 7)
}

// OldSchoolStan: plumber, HP 90, fix 21.
func OldSchoolStan() *Card {
	return newPlumber("plumber_old_school_stan", "Old School Stan", "A gray-bearded plumber in suspenders, wielding a classic monkey wrench.", 240, 2, 90, 21)
}

// LiquidDrainBlaster: tool, 13 damage.
func LiquidDrainBlaster() *Card {
	return newTool("tool_liquid_drain_blaster", "Liquid Drain Blaster", "A big blue and red bottle with warning labels, bubbling with potent chemicals.", 85, 2, 13)
}

// TechieTessa: plumber, HP 85, fix 20.
func TechieTessa() *Card {
	return newPlumber("plumber_techie_tessa", "Techie Tessa", "A high-tech plumber adorned with smart glasses and a tablet for diagnostics.", 250, 3, 85, 20)
}

// PipeCutterDeluxe: tool, 16 damage.
func PipeCutterDeluxe() *Card {
	return newTool("tool_pipe_cutter_deluxe", "Pipe Cutter Deluxe", "A heavy-duty red pipe cutter with a digital readout.", 95, 2, 16)
}

func newPlumber(id, name, desc string, price, rarity, hp, damage int) *Card {
	return &Card{ID: id, Name: name, Description: desc, Type: CardTypePlumber, Price: price, Rarity: Rarity(rarity), HP: hp, Damage: damage}
}

func newTool(id, name, desc string, price, rarity, damage int) *Card {
	return &Card{ID: id, Name: name, Description: desc, Type: CardTypeTool, Price: price, Rarity: Rarity(rarity), Damage: damage}
}

func newExcuse(id, name, desc string, price, rarity, timeGain int) *Card {
	return &Card{ID: id, Name: name, Description: desc, Type: CardTypeExcuse, Price: price, Rarity: Rarity(rarity), TimeGain: timeGain}
}

func newPowerUp(id, name, desc string, price, rarity int, boost Boost) *Card {
	return &Card{ID: id, Name: name, Description: desc, Type: CardTypePowerUp, Price: price, Rarity: Rarity(rarity), Boost: boost}
}

func newSandwich(id, name, desc string, price, rarity, health int) *Card {
	return &Card{ID: id, Name: name, Description: desc, Type: CardTypeSandwich, Price: price, Rarity: Rarity(rarity), Health: health}
}
