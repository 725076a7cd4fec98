// Package archive builds zip bundles from the session store.
//
// A Scope selects either one session or the whole store, optionally
// narrowed to an exact, case-sensitive list of bare filenames. When the
// whole store is bundled, files inside session directories are stored
// under "{session}/{name}" so equal names from different sessions do not
// collide; legacy top-level files keep their bare name.
//
// Entries are added in enumeration order. Files that fail to read are
// skipped. A bundle is never empty: Build fails with ErrNoMatchingFiles
// when nothing matches and ErrNoFilesAdded when every match failed to read.
//
// The bundle name is a display hint only:
//
//	session requested         {session}.zip
//	any session directory     all-sessions.zip
//	all files look renamed    renamed-images.zip
//	otherwise                 optimized-images.zip
package archive
