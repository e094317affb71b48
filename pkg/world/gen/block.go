package gen

import "fmt"

// BlockState identifies the material in one voxel cell. The ids are stable:
// a new material always gets a new id, retired ids are never reused.
type BlockState uint16

const (
	BlockAir     BlockState = 0
	BlockBedrock BlockState = 1
	BlockStone   BlockState = 2
	BlockDirt    BlockState = 3
	BlockGrass   BlockState = 4
	BlockWater   BlockState = 5

	BlockDiamondOre  BlockState = 6
	BlockCoalOre     BlockState = 7
	BlockIronOre     BlockState = 8
	BlockGoldOre     BlockState = 9
	BlockRedstoneOre BlockState = 10
	BlockLapisOre    BlockState = 11
	BlockEmeraldOre  BlockState = 12
)

var blockNames = map[BlockState]string{
	BlockAir:         "air",
	BlockBedrock:     "bedrock",
	BlockStone:       "stone",
	BlockDirt:        "dirt",
	BlockGrass:       "grass",
	BlockWater:       "water",
	BlockDiamondOre:  "diamond_ore",
	BlockCoalOre:     "coal_ore",
	BlockIronOre:     "iron_ore",
	BlockGoldOre:     "gold_ore",
	BlockRedstoneOre: "redstone_ore",
	BlockLapisOre:    "lapis_ore",
	BlockEmeraldOre:  "emerald_ore",
}

var blockIDs = func() map[string]BlockState {
	m := make(map[string]BlockState, len(blockNames))
	for id, name := range blockNames {
		m[name] = id
	}
	return m
}()

// Palette returns every known block state in id order.
func Palette() []BlockState {
	out := make([]BlockState, 0, len(blockNames))
	for id := BlockState(0); int(id) < len(blockNames); id++ {
		out = append(out, id)
	}
	return out
}

// ParseBlock returns the block state with the given palette name.
func ParseBlock(name string) (BlockState, error) {
	id, ok := blockIDs[name]
	if !ok {
		return 0, fmt.Errorf("unknown block %q", name)
	}
	return id, nil
}

func (b BlockState) String() string {
	if name, ok := blockNames[b]; ok {
		return name
	}
	return fmt.Sprintf("block_%d", uint16(b))
}

// IsAir reports whether the cell is empty. Air never produces geometry.
func (b BlockState) IsAir() bool { return b == BlockAir }

// IsOre reports whether b is one of the ore variants.
func (b BlockState) IsOre() bool { return b >= BlockDiamondOre && b <= BlockEmeraldOre }

func (b BlockState) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BlockState) UnmarshalText(text []byte) error {
	id, err := ParseBlock(string(text))
	if err != nil {
		return err
	}
	*b = id
	return nil
}
