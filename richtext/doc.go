// Package richtext defines the block/span document model produced by the
// markdown converter and stored as post bodies.
//
// The JSON encoding follows the portable rich-text layout consumed by the
// site frontend: blocks carry `_type`, `_key`, `style`, optional `listItem`,
// block-scoped `markDefs`, and `children` spans whose `marks` reference
// either the built-in "strong" decorator or a key from the same block's
// `markDefs`.
package richtext
