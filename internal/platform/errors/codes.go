// Package errors provides coded domain errors for the code around the battle
// core: reference data loading, battle setup and persistence.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Dex errors
	CodeDexInvalidTable    Code = "DEX_INVALID_TABLE"
	CodeDexUnknownType     Code = "DEX_UNKNOWN_TYPE"
	CodeDexInvalidMove     Code = "DEX_INVALID_MOVE"
	CodeDexInvalidSpecies  Code = "DEX_INVALID_SPECIES"
	CodeDexInvalidRecord   Code = "DEX_INVALID_RECORD"
	CodeDexInvalidCategory Code = "DEX_INVALID_CATEGORY"

	// Battle setup errors
	CodeBattleInvalidConfig Code = "BATTLE_INVALID_CONFIG"

	// Narration errors
	CodeCatalogInvalid Code = "CATALOG_INVALID"

	// Scenario errors
	CodeScenarioInvalid     Code = "SCENARIO_INVALID"
	CodeScenarioExpectation Code = "SCENARIO_EXPECTATION_FAILED"

	// Storage errors
	CodeNotFound               Code = "NOT_FOUND"
	CodeStorageInvalidRecord   Code = "STORAGE_INVALID_RECORD"
	CodeStorageAlreadyRecorded Code = "STORAGE_ALREADY_RECORDED"
)

// InvalidInput reports whether the code describes bad caller input rather than
// an internal failure.
func (c Code) InvalidInput() bool {
	switch c {
	case CodeDexInvalidTable,
		CodeDexUnknownType,
		CodeDexInvalidMove,
		CodeDexInvalidSpecies,
		CodeDexInvalidRecord,
		CodeDexInvalidCategory,
		CodeBattleInvalidConfig,
		CodeCatalogInvalid,
		CodeScenarioInvalid,
		CodeStorageInvalidRecord:
		return true
	default:
		return false
	}
}
