package params

import "cfgtemplate"

// DatabaseParm identifies a database configuration parameter.
type DatabaseParm int8

const (
	MaxRowsPerRowgroup DatabaseParm = iota
	StrideSize
	SharedFSType
	CacheMemSize
)

var databaseParmNames = [...]string{
	MaxRowsPerRowgroup: "MaxRowsPerRowgroup",
	StrideSize:         "StrideSize",
	SharedFSType:       "SharedFSType",
	CacheMemSize:       "CacheMemSize",
}

func (p DatabaseParm) String() string {
	if p >= 0 && int(p) < len(databaseParmNames) {
		return databaseParmNames[p]
	}
	return "DatabaseParm(unknown)"
}

// AllDatabaseParms returns every database parameter.
func AllDatabaseParms() []DatabaseParm {
	return []DatabaseParm{MaxRowsPerRowgroup, StrideSize, SharedFSType, CacheMemSize}
}

// DatabaseConfig is the registry of database parameters.
type DatabaseConfig = cfgtemplate.Registry[DatabaseParm]

// DatabaseBuilder returns a builder wired with every database parameter.
// Override sources, logger and validators can be added before Build.
func DatabaseBuilder() *cfgtemplate.Builder[DatabaseParm] {
	return cfgtemplate.NewBuilder[DatabaseParm]().
		WithMembers(AllDatabaseParms()...).
		Define(MaxRowsPerRowgroup, cfgtemplate.IntReadOnly[int32]("MAX_ROWS_PER_ROWGROUP", 10000, "Maximum number of rows per row group.")).
		Define(StrideSize, cfgtemplate.IntReadOnly[int16]("STRIDE_SIZE", 512, "Maximum stride size of a table")).
		Define(SharedFSType, cfgtemplate.StrReadOnly("SHARED_FS", "alluxio", "The file system type")).
		Define(CacheMemSize, cfgtemplate.IntUpdatable[int64]("CACHE_MEM_SZ", 0, "Memory size of cache"))
}

// NewDatabaseConfig builds the database registry from an override table.
func NewDatabaseConfig(overrides map[string]string) (*DatabaseConfig, error) {
	return DatabaseBuilder().WithOverrides(overrides).Build()
}
