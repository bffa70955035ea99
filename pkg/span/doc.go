// Package span draws background decorations attached to ranges of text.
//
// A [Text] carries spans bound to UTF-16 offset ranges. During the paint
// pass of a host view, [DrawBackground] visits every [BackgroundSpan] in
// attach order, resolves its effective typeface and lets it draw under the
// text in the view's content coordinates. [ShardSpan] is the shipped
// background span: a bordered rounded rectangle per line of its range,
// vertically sized by the font's ascent and descent.
package span
