package checks

// Kind names a check in the fixed catalog. The set is closed: configuration
// resolves user-supplied strings against it, and dispatch rejects anything
// outside it.
type Kind string

const (
	KindUniqueIdentifiers     Kind = "unique_identifiers"
	KindSchemaConsistency     Kind = "schema_consistency"
	KindNonNull               Kind = "non_null"
	KindThreshold             Kind = "threshold"
	KindDynamicThreshold      Kind = "dynamic_threshold"
	KindVariance              Kind = "variance"
	KindRecordAnomalies       Kind = "record_anomalies"
	KindNonZeroRecords        Kind = "non_zero_records"
	KindColumnNameConsistency Kind = "column_name_consistency"
)

// Kinds returns the catalog in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindUniqueIdentifiers,
		KindSchemaConsistency,
		KindNonNull,
		KindThreshold,
		KindDynamicThreshold,
		KindVariance,
		KindRecordAnomalies,
		KindNonZeroRecords,
		KindColumnNameConsistency,
	}
}

// Valid reports whether k names a catalog check.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}
