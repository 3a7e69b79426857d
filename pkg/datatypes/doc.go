// Package datatypes holds the codecs for the plain data shapes components
// are built from. Components wrap these types and delegate serialization to
// them.
package datatypes
