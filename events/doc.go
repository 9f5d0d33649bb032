/*
Package events implements DOM style event dispatch over a dom tree.

A Registry binds handlers to entities per event kind and phase. A Dispatcher takes an
event kind and a target, builds the propagation path from the root down to the target,
and runs capture handlers on the way down, every handler of the target itself, and bubble
handlers on the way back up. Handlers see one shared Event and may stop propagation or
prevent the default action; the default action itself belongs to a DefaultActionPerformer
supplied by the caller.

Dispatch is synchronous. Handlers may register and unregister handlers, or start a nested
dispatch, while an event is in flight.
*/
package events
