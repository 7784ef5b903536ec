package constants

// Grid dimensions. The engine is fixed-size 9x9; these exist so the rest of
// the module never repeats the magic numbers.
const (
	GridSize   = 9
	BoxSize    = 3
	TotalCells = 81
	NumHouses  = 27
	MinGivens  = 17
)

// House index bands, fixed by the external ABI: boxes occupy 0..8, columns
// 9..17, rows 18..26.
const (
	HouseBoxBase = 0
	HouseColBase = GridSize
	HouseRowBase = GridSize * 2
)

// API version reported by the HTTP transport.
const APIVersion = "0.1.0"

// DefaultPort is used when PORT is not set in the environment.
const DefaultPort = "8080"

// DefaultSnapshotsFile is used when SNAPSHOTS_FILE is not set in the environment.
const DefaultSnapshotsFile = "snapshots.json"
