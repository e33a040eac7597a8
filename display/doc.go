// Package display renders numbers on a multi-digit seven-segment display and
// interprets the text commands received over the network.
//
// Digits are shifted out least significant first, so the last glyph shifted
// ends up on the leftmost digit. Frames handed to a Sink are already in
// reading order, left to right.
package display
