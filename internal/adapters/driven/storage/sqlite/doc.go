// Package sqlite provides the SQLite-backed storage adapters.
//
// One Store owns the database connection and hands out wrapper types
// implementing the entity, taxonomy and file storage ports. Enclosure
// downloads land in a files directory next to the database; storage
// scheme URIs map onto subdirectories of it.
package sqlite
