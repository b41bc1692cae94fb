// Package document models a loaded configuration document as an immutable tree.
//
// A tree is made of three node kinds:
//   - *Object: insertion-ordered members with unique keys
//   - *Array: ordered items
//   - *Leaf: a tagged Value (Bool, HexColor, FloatSequence, Blob, String, Number, Null)
//
// Nodes are never modified after construction. SetAtPath returns a new root in which
// every ancestor of the edited leaf is a fresh container and every node off the path
// is the same pointer as in the input tree:
//
//	root, err := document.Decode(data)
//	path, _ := document.ParsePath("colors.primary")
//	next, err := document.SetAtPath(root, path, document.HexColor("#112233"))
//
// Paths are sequences of Field and Index selectors. The textual form joins fields with
// dots and writes indices in brackets, for example "shadows.md[0]". Resolution never
// creates structure: a missing or mistyped segment fails with ErrKeyNotFound.
//
// Decode keeps the raw JSON literal of every scalar so that unedited leaves render
// exactly as they were loaded.
package document
