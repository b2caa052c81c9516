// Package compose provides continuation-passing composition of units.
//
// A unit is anything with a Run(ctx, scope, next, args...) method. It does its work, and decides by
// calling or not calling next whether control flows deeper or unwinds. Whatever next returns comes back
// to the unit, which is free to observe or replace it before returning. Units nest like onion layers:
// code before next runs outer to inner, code after next runs inner to outer.
//
// Pipeline chains units in order, each unit's next stepping to the following one. Branch, And, Or and
// Circuit read the same signal as a boolean: a condition unit passes by calling its continuation and
// fails by returning without doing so. Branch then runs an action or falls back to the outer
// continuation, And and Or combine two conditions with short-circuit semantics, and Circuit chains
// conditions so that any failing stage sends control to the outer continuation instead.
//
// Every composite is itself a Unit, so trees of any shape can be built. The scope value given to the
// root is handed unchanged to every unit of the tree. Continuations handed out by Pipeline and Circuit,
// and the selectors handed out by Branch, And and Or, may be called at most once: a second call
// returns ErrMultipleInvocation. Errors returned by units are passed up unmodified.
package compose
