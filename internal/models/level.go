package models

// Level is an ordinal confidence marker. Higher values mean a more specific match.
type Level int

const (
	LevelUnknown           Level = 0
	LevelPrefecture        Level = 1
	LevelCity              Level = 2
	LevelMachiaza          Level = 3
	LevelMachiazaDetail    Level = 4
	LevelResidentialBlock  Level = 7
	LevelResidentialDetail Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelPrefecture:
		return "prefecture"
	case LevelCity:
		return "city"
	case LevelMachiaza:
		return "machiaza"
	case LevelMachiazaDetail:
		return "machiaza_detail"
	case LevelResidentialBlock:
		return "residential_block"
	case LevelResidentialDetail:
		return "residential_detail"
	default:
		return "unknown"
	}
}

func maxLevel(a, b Level) Level {
	if a > b {
		return a
	}
	return b
}
