// Package material implements a compact, type-erased attribute store for
// render material data.
//
// A Material holds a flat array of fixed-size attribute records, optionally
// partitioned into named layers. Each record is 64 bytes and carries a type
// tag, a null-terminated name and an inline value. Within a layer the records
// are sorted by name, so lookups are binary searches. The attribute set,
// names, types and layer boundaries are immutable after construction; values
// may be overwritten in place when the backing storage is owned and mutable.
//
// The package describes structure and data only and never implies how a
// renderer consumes the attributes.
package material
