/*
Package executor runs assembled requests over HTTP.

# Overview

Client wraps a net/http client configured from Options:
  - Per-call timeout (DefaultTimeout when unset)
  - TLS verification toggle, custom CA, client certificate (mTLS)

Execute honours the caller's context, so hanging up a session or
re-dialling the same operation aborts the network call.

# Results

Every call that reaches the network yields a types.ResponseRecord:
  - ResponseReceived: status, protocol, sorted headers, content length, body
  - ResponseFailed: transport error or unreadable body, with the message

Execute only returns an error when the request itself cannot be created
(for example an invalid method), which the pipeline also records as a
failure.

# Formatting

FormatDuration and FormatSize render the numbers shown in the response
pane; IsSuccessStatus and friends drive status colouring.
*/
package executor
