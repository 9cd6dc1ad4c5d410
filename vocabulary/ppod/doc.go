// Package ppod provides the ontology vocabulary used to describe the PPOD
// (Persons, Projects, Organizations, Datasets) spreadsheet as RDF.
//
// The vocabulary serves two audiences:
//   - The record mapper, which refers to predicates by their dotted names
//     (ppod.<domain>.<property>) so field tables stay readable
//   - The exporter, which resolves every dotted name to the IRI registered
//     with the semstreams vocabulary registry
//
// # Semstreams Integration
//
// Predicates are registered in init() using vocabulary.Register() with a
// description (reused as the predicate's rdfs:label in the output), a data
// type and the standard IRI the predicate is published under. Anything not
// registered is rejected when the field tables are validated at startup.
//
// # Entity Types
//
// Each spreadsheet entity has a type with a class IRI and a three letter
// identifier code:
//
//	Entity Type  → Class                              → Code
//	person       → foaf:Person                        → per
//	organization → foaf:Organization                  → org
//	project      → vivo:Project                       → prj
//	dataset      → vivo:Dataset                       → dat
//	program      → vivo:Program                       → prg
//	guideline    → sds-okn:BestPracticesAndMandates   → gmt
//	tool         → sds-okn:Tool                       → tol
//	role         → bfo:Role                           → rol
//
// # Ontology Alignment
//
// BFOClassMap, CCOClassMap and PROVClassMap align the entity classes with
// upper ontologies. The exporter emits these as rdfs:subClassOf statements
// for the bfo and cco profiles.
package ppod
