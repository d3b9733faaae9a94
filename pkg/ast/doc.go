// Package ast defines the regular-expression syntax tree consumed by the
// railroad layout engine.
//
// A pattern is represented as a sequence of [Node] values. Each node carries
// a [Kind] discriminator and the payload fields relevant to that kind; fields
// that do not apply to a kind are left at their zero value. Any node may be
// quantified by an optional [Repeat].
//
// # Kinds
//
//   - [KindExact]: a run of literal characters (Chars)
//   - [KindCharset]: a bracketed class or shorthand (Chars, Ranges, Classes, Exclude)
//   - [KindChoice]: alternation (Branches, one sequence per alternative)
//   - [KindGroup]: parenthesised sub-expression (Sub, Num > 0 when capturing)
//   - [KindAssert]: zero-width assertion (AssertionType, Sub for lookaheads)
//   - [KindDot], [KindBackref], [KindEmpty]
//   - [KindStartPoint], [KindEndPoint]: sentinels added around the top-level
//     sequence by the layout engine, never produced by a parser
//
// # Validation
//
// Quantifiers are checked when they are built: [NewRepeat] rejects negative
// bounds and a maximum below the minimum. [Validate] walks a whole tree and is
// run by [ReadJSON] and by the layout engine before anything is positioned.
//
// # JSON
//
// [ReadJSON] and [WriteJSON] use a plain tree format: an array of objects
// keyed by "type", with an unbounded quantifier maximum encoded as null or
// omitted.
package ast
