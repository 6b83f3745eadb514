/*
Package tui implements the terminal interface.

# Architecture

One State owns everything on screen. Model adapts it to bubbletea and
turns every message into State.HandleEvent, which

 1. runs the focus chain for keys: footer, history popup, the editors of
    the top call page;
 2. translates unconsumed keys through the keybinds registry of the
    active context (home, call, history) into action.Action values;
 3. drains the action queue in emission order. App actions (Quit, Tick,
    NewCall, HangUp, Dial, ...) are handled by State; the rest go to the
    popup, else the top call page, else the home page.

A drain processes at most MaxDrain actions; going past that is fatal.
Other handler errors land on the status line.

# Pages

The home page browses the catalog: Apis, Tags, Address, Request and
Response schemas, the latter two drilled with g / b through $ref lines.
A call page edits one session: Address preview, Parameters, Body and the
Response viewport. Pages are a closed set of pane kinds; focus moves
with h / l and f fullscreens the focused pane.

# Calls

Dial hands the built request to the pipeline and returns at once. Each
Tick drains finished calls into the response map. Hanging up with esc
keeps the call for resume (H opens the picker); ctrl+x discards it and
cancels what is in flight.
*/
package tui
