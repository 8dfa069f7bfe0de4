package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// InputFormat represents the format of a problem file.
	InputFormat string

	// FunctionKind represents a preference function family.
	FunctionKind string

	// Direction represents the optimization direction of a criterion.
	Direction string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	ChartOut   OutputMode = "chart"
)

// All input formats supported.
const (
	AutoFormat    InputFormat = "auto" // default, detected by extension
	CSVFormat     InputFormat = "csv"
	YAMLFormat    InputFormat = "yaml"
	JSONFormat    InputFormat = "json"
	ParquetFormat InputFormat = "parquet"
)

// All preference function families supported.
const (
	UsualKind  FunctionKind = "usual"
	UShapeKind FunctionKind = "ushape"
	VShapeKind FunctionKind = "vshape"
	LinearKind FunctionKind = "linear"
)

// All criterion directions supported.
const (
	MaxDirection Direction = "max" // default
	MinDirection Direction = "min"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	ChartOut:   {},
}

// ValidInputFormats lists all valid input formats.
var ValidInputFormats = map[InputFormat]struct{}{
	AutoFormat:    {},
	CSVFormat:     {},
	YAMLFormat:    {},
	JSONFormat:    {},
	ParquetFormat: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == MinDirection {
		return MaxDirection
	}
	return MinDirection
}
