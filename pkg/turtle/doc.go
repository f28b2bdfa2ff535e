/*
Package turtle interprets a symbol stream as 2D cursor actions.

A Reader pulls symbols one at a time from any ports.SymbolSource (typically a
lazy expansion engine), looks each one up in a caller-supplied action table and
moves a Cursor accordingly, recording drawn Segments. The expansion engines know
nothing about this package.
*/
package turtle
