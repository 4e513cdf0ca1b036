// Package adconv converts locally stored classified-ad pages into
// normalized JSON records. It walks a directory of saved HTML pages,
// extracts a record from each, and keeps a ledger of converted files so
// repeated runs only convert what is new.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, fs/).
package adconv
