// Package version discovers and names version-numbered files and folders.
//
// A version token is a fixed-width, zero-padded decimal number embedded in a
// name right after a literal "v": "shot_v007.ma" for files (the token must be
// followed by "."), "v007" for folders (the token must end the name).
//
// # Basic Usage
//
//	files := version.Files() // width 3, base "Name", ext "ma"
//
//	latest, err := files.LatestEntry("/proj/sh010/anim", version.Filter{Ext: "ma"})
//	next, err := files.NextEntry("/proj/sh010/anim", version.Filter{Ext: "ma"})
//	// "/proj/sh010/anim/shot_v008.ma" when shot_v007.ma is the newest,
//	// "/proj/sh010/anim/Name_v001.ma" when the directory is empty.
//
// # Naming Contract
//
// The next name inherits the base name and extension of the newest existing
// entry; only the token changes. The scheme's DefaultBase/DefaultExt template
// is used only when no entry exists.
//
// # Collisions
//
// When two entries carry the same numeric version (for example "a_v003.ma"
// and "b_v003.ma"), the one seen later in directory listing order wins.
// Listing order is platform dependent, so which entry wins is unspecified;
// what is guaranteed is that exactly one entry survives per version.
//
// # Concurrency
//
// Query operations ([Scheme.NextVersion], [Scheme.NextEntry], ...) only read
// the directory and do not create anything. Two processes that each compute
// the next name and then create it can collide (a time-of-check/time-of-use
// race). [Reserver] closes that window for cooperating processes: it takes an
// advisory lock on the directory's [LockFileName] and creates the entry with
// create-if-absent semantics, skipping past names that already exist.
package version
