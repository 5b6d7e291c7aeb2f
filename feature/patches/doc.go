// Package patches edits the plugin-configuration document of the game
// client, a JSON file that tolerates full-line // comments.
//
// Reads strip comment lines before parsing; the resulting tree is opaque
// pass-through data with no enforced schema. Writes are atomic from a
// reader's perspective and lossy: comments are never re-emitted, so a
// write followed by a read yields a structurally equal, comment-free
// document.
package patches
