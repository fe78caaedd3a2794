// Package prompt stores named text snippets ("prompts") in two independent
// JSON collections: a per-user global collection and a per-project collection
// that exists only while a workspace is open.
//
// Every operation reloads its working set from disk, so edits made to the
// backing files by other tools are observed on the next call. When both
// collections hold a prompt with the same name, the project prompt wins in
// the merged view while both files keep their own copy.
package prompt
