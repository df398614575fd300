// Package table is the reshaping and normalization engine for benchmark
// result tables. It turns long-format records into analyst-facing wide
// tables, driven entirely by a declarative YAML configuration.
//
// # Reading Guide
//
// The pipeline runs strictly downstream; start with these files:
//   - metricgroup.go: groups total/per-NPU metric fields into logical pairs
//   - derive.go: synthesizes aggregate and single-NPU rows per record
//   - pivot.go: spreads metrics into wide columns and joins the blocks
//   - order.go: prefix-priority column ordering
//   - normalize.go: baseline join and ratio rewriting
//   - sort.go: pattern-priority row ordering
//
// pipeline.go wires the stages together; config.go defines the declarative
// configuration they all consume.
//
// # Data Model
//
// A Record maps field names to string, float64 or nil cells. The engine is
// synchronous and stateless: each BuildPivotTable call reads an immutable
// snapshot of records and produces a fresh Table. Duplicate cells are
// resolved by keeping the first non-null value encountered; there is no
// statistical aggregation anywhere in the pipeline.
//
// Raw file ingestion lives in table/ingest, spreadsheet output in
// table/xlsx.
package table
