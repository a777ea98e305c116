// Package scramble animates a text surface from its current content to a target string.
//
// Every character position (grapheme cluster) becomes a Slot with a randomized reveal frame
// and lock frame. Before its reveal frame a slot shows the old character; between reveal
// and lock it shows placeholder glyphs drawn from a fixed alphabet; from the lock frame on it
// shows the new character. The animation is advanced one frame per scheduler callback and
// signals completion exactly once, when every slot has locked.
//
// An Animator owns one surface. Starting a new transition on it supersedes the running one:
// its pending frame is canceled and its completion never fires its continuations.
package scramble
