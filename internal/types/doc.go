/*
Package types defines the data shared between the request pipeline and the UI.

HttpRequest is the assembled wire request produced from a session draft.
ResponseRecord is the latest outcome of a dial, stored once per operation
key. A transport failure is kept as a ResponseFailed record so the UI can
tell "failed" apart from "no response yet".
*/
package types
